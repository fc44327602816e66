package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/campsite/internal/auth"
	"github.com/example/campsite/internal/booking"
	"github.com/example/campsite/internal/config"
	"github.com/example/campsite/internal/db"
	"github.com/example/campsite/internal/migrate"
	"github.com/example/campsite/internal/obs"
	"github.com/example/campsite/internal/postgres"
	"github.com/example/campsite/internal/search"
	"github.com/example/campsite/internal/web"
	"github.com/spf13/cobra"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the reservation web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			log := obs.NewLogger(cfg.Env)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			d, err := db.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer d.Close()

			if err := d.Ping(ctx); err != nil {
				return fmt.Errorf("db ping: %w", err)
			}

			if migrateUp {
				if err := migrate.Up(ctx, d); err != nil {
					return err
				}
			}

			store := postgres.NewStore(d)
			srv := &web.Server{
				Auth:    auth.NewStore(d, cfg.SessionHashKey, cfg.SessionBlockKey),
				Store:   store,
				Search:  &search.Service{Store: store},
				Booking: &booking.Service{Store: store},
				Log:     log,
			}
			return web.Start(ctx, cfg.ListenAddr, srv.Routes(), log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
