package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/campsite/internal/domain/camping"
	"github.com/example/campsite/internal/postgres"
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo park catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer d.Close()

			if parks, err := store.ListParks(ctx); err != nil {
				return err
			} else if len(parks) > 0 {
				return fmt.Errorf("catalog is not empty (%d parks); refusing to seed", len(parks))
			}

			if err := seedCatalog(ctx, store); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "seeded demo catalog")
			return nil
		},
	}
}

type seedCampground struct {
	name             string
	opening, closing int
	feeCents         int64
	sites            []camping.Site
}

type seedPark struct {
	park        camping.Park
	campgrounds []seedCampground
}

func seedCatalog(ctx context.Context, store *postgres.Store) error {
	est := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	catalog := []seedPark{
		{
			park: camping.Park{
				Name: "Acadia", Location: "Maine", EstablishedOn: est(1919, time.February, 26),
				AreaAcres: 47389, AnnualVisitors: 2563129,
				Description: "Covering most of Mount Desert Island and other coastal islands, Acadia features the tallest mountain on the Atlantic coast of the United States, granite peaks, ocean shoreline, woodlands, and lakes.",
			},
			campgrounds: []seedCampground{
				{
					name: "Blackwoods", opening: 1, closing: 12, feeCents: 3500,
					sites: []camping.Site{
						{Number: 1, MaxOccupancy: 6, Accessible: true},
						{Number: 2, MaxOccupancy: 6},
						{Number: 3, MaxOccupancy: 8, MaxRVLength: 30},
						{Number: 4, MaxOccupancy: 6, MaxRVLength: 35, Utilities: true},
						{Number: 5, MaxOccupancy: 4},
						{Number: 6, MaxOccupancy: 6, Accessible: true, MaxRVLength: 45, Utilities: true},
					},
				},
				{
					name: "Seawall", opening: 5, closing: 9, feeCents: 3000,
					sites: []camping.Site{
						{Number: 1, MaxOccupancy: 4},
						{Number: 2, MaxOccupancy: 6, MaxRVLength: 20},
						{Number: 3, MaxOccupancy: 8, Accessible: true},
						{Number: 4, MaxOccupancy: 6, MaxRVLength: 35, Utilities: true},
					},
				},
			},
		},
		{
			park: camping.Park{
				Name: "Arches", Location: "Utah", EstablishedOn: est(1971, time.November, 12),
				AreaAcres: 76519, AnnualVisitors: 1284767,
				Description: "This site features more than 2,000 natural sandstone arches, including the famous Delicate Arch. Other geologic formations include stone pinnacles, fins, and balancing rocks.",
			},
			campgrounds: []seedCampground{
				{
					name: "Devil's Garden", opening: 1, closing: 12, feeCents: 2500,
					sites: []camping.Site{
						{Number: 1, MaxOccupancy: 10, MaxRVLength: 30},
						{Number: 2, MaxOccupancy: 6, Accessible: true},
						{Number: 3, MaxOccupancy: 10, MaxRVLength: 40, Utilities: true},
						{Number: 4, MaxOccupancy: 4},
						{Number: 5, MaxOccupancy: 6, MaxRVLength: 25},
					},
				},
				{
					name: "Canyon Wren Group Site", opening: 3, closing: 10, feeCents: 16000,
					sites: []camping.Site{
						{Number: 1, MaxOccupancy: 35, Accessible: true},
					},
				},
			},
		},
		{
			park: camping.Park{
				Name: "Cuyahoga Valley", Location: "Ohio", EstablishedOn: est(2000, time.October, 11),
				AreaAcres: 32860, AnnualVisitors: 2189849,
				Description: "This park along the Cuyahoga River has waterfalls, hills, trails, and exhibits on early rural living. The Ohio and Erie Canal Towpath Trail follows the Ohio and Erie Canal, where mules towed canal boats.",
			},
			campgrounds: []seedCampground{
				{
					name: "The Ledges", opening: 5, closing: 11, feeCents: 1500,
					sites: []camping.Site{
						{Number: 1, MaxOccupancy: 4},
						{Number: 2, MaxOccupancy: 6, Accessible: true},
						{Number: 3, MaxOccupancy: 6, MaxRVLength: 20, Utilities: true},
						{Number: 4, MaxOccupancy: 8},
					},
				},
			},
		},
	}

	for _, sp := range catalog {
		parkID, err := store.CreatePark(ctx, sp.park)
		if err != nil {
			return fmt.Errorf("seed park %q: %w", sp.park.Name, err)
		}
		for _, sc := range sp.campgrounds {
			season, err := camping.NewSeasonWindow(sc.opening, sc.closing)
			if err != nil {
				return fmt.Errorf("seed campground %q: %w", sc.name, err)
			}
			campID, err := store.CreateCampground(ctx, camping.Campground{
				ParkID:        parkID,
				Name:          sc.name,
				Season:        season,
				DailyFeeCents: sc.feeCents,
			})
			if err != nil {
				return fmt.Errorf("seed campground %q: %w", sc.name, err)
			}
			for _, site := range sc.sites {
				site.CampgroundID = campID
				if _, err := store.CreateSite(ctx, site); err != nil {
					return fmt.Errorf("seed site %d in %q: %w", site.Number, sc.name, err)
				}
			}
		}
	}
	return nil
}
