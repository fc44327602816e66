package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/campsite/internal/config"
	"github.com/example/campsite/internal/db"
	"github.com/example/campsite/internal/domain/camping"
	"github.com/example/campsite/internal/migrate"
	"github.com/example/campsite/internal/postgres"
	"github.com/spf13/cobra"
)

// openStore is shared by the catalog administration commands, which need
// the database but not the web configuration.
func openStore(ctx context.Context) (*db.DB, *postgres.Store, error) {
	d, err := db.Open(ctx, config.DatabaseURL())
	if err != nil {
		return nil, nil, err
	}
	if err := migrate.Up(ctx, d); err != nil {
		d.Close()
		return nil, nil, err
	}
	return d, postgres.NewStore(d), nil
}

func newParkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "park",
		Short: "Manage parks",
	}
	cmd.AddCommand(newParkAddCmd())
	cmd.AddCommand(newParkListCmd())
	return cmd
}

func newParkAddCmd() *cobra.Command {
	var (
		name, location, description string
		established                 string
		area, visitors              int64
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a park to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			est, err := time.Parse("2006-01-02", established)
			if err != nil {
				return fmt.Errorf("--established: %w", err)
			}

			ctx := context.Background()
			d, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			id, err := store.CreatePark(ctx, camping.Park{
				Name:           name,
				Location:       location,
				EstablishedOn:  est,
				AreaAcres:      area,
				AnnualVisitors: visitors,
				Description:    description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created park %q (id=%d)\n", name, id)
			return nil
		},
	}

	c.Flags().StringVar(&name, "name", "", "park name")
	c.Flags().StringVar(&location, "location", "", "state or region")
	c.Flags().StringVar(&established, "established", "", "establishment date (YYYY-MM-DD)")
	c.Flags().Int64Var(&area, "area", 0, "area in acres")
	c.Flags().Int64Var(&visitors, "visitors", 0, "annual visitor count")
	c.Flags().StringVar(&description, "description", "", "free-text description")
	_ = c.MarkFlagRequired("name")
	_ = c.MarkFlagRequired("location")
	_ = c.MarkFlagRequired("established")
	return c
}

func newParkListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			parks, err := store.ListParks(ctx)
			if err != nil {
				return err
			}
			for _, p := range parks {
				fmt.Fprintf(os.Stdout, "%d\t%s\t%s\n", p.ID, p.Name, p.Location)
			}
			return nil
		},
	}
}

func newCampgroundCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campground",
		Short: "Manage campgrounds",
	}
	cmd.AddCommand(newCampgroundAddCmd())
	return cmd
}

func newCampgroundAddCmd() *cobra.Command {
	var (
		parkID           int64
		name             string
		opening, closing int
		feeCents         int64
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a campground to a park",
		RunE: func(cmd *cobra.Command, args []string) error {
			season, err := camping.NewSeasonWindow(opening, closing)
			if err != nil {
				return err
			}
			if feeCents < 0 {
				return fmt.Errorf("--fee-cents must be non-negative")
			}

			ctx := context.Background()
			d, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if _, err := store.GetPark(ctx, parkID); err != nil {
				return fmt.Errorf("park %d: %w", parkID, err)
			}
			id, err := store.CreateCampground(ctx, camping.Campground{
				ParkID:        parkID,
				Name:          name,
				Season:        season,
				DailyFeeCents: feeCents,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created campground %q (id=%d)\n", name, id)
			return nil
		},
	}

	c.Flags().Int64Var(&parkID, "park-id", 0, "owning park id")
	c.Flags().StringVar(&name, "name", "", "campground name")
	c.Flags().IntVar(&opening, "opening-month", 1, "first open month (1-12)")
	c.Flags().IntVar(&closing, "closing-month", 12, "last open month (1-12)")
	c.Flags().Int64Var(&feeCents, "fee-cents", 0, "nightly fee in cents")
	_ = c.MarkFlagRequired("park-id")
	_ = c.MarkFlagRequired("name")
	return c
}

func newSiteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage campsites",
	}
	cmd.AddCommand(newSiteAddCmd())
	return cmd
}

func newSiteAddCmd() *cobra.Command {
	var (
		campgroundID          int64
		number, occupancy, rv int
		accessible, utilities bool
	)

	c := &cobra.Command{
		Use:   "add",
		Short: "Add a site to a campground",
		RunE: func(cmd *cobra.Command, args []string) error {
			if occupancy < 0 || rv < 0 {
				return fmt.Errorf("--occupancy and --max-rv-length must be non-negative")
			}

			ctx := context.Background()
			d, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if _, err := store.GetCampground(ctx, campgroundID); err != nil {
				return fmt.Errorf("campground %d: %w", campgroundID, err)
			}
			id, err := store.CreateSite(ctx, camping.Site{
				CampgroundID: campgroundID,
				Number:       number,
				MaxOccupancy: occupancy,
				Accessible:   accessible,
				MaxRVLength:  rv,
				Utilities:    utilities,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "created site %d (id=%d)\n", number, id)
			return nil
		},
	}

	c.Flags().Int64Var(&campgroundID, "campground-id", 0, "owning campground id")
	c.Flags().IntVar(&number, "number", 0, "site number, unique within the campground")
	c.Flags().IntVar(&occupancy, "occupancy", 0, "max occupancy")
	c.Flags().BoolVar(&accessible, "accessible", false, "wheelchair accessible")
	c.Flags().IntVar(&rv, "max-rv-length", 0, "max RV length in feet (0 = no RVs)")
	c.Flags().BoolVar(&utilities, "utilities", false, "utility hookup")
	_ = c.MarkFlagRequired("campground-id")
	_ = c.MarkFlagRequired("number")
	return c
}
