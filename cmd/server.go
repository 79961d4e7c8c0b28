package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/groom-scheduler/internal/auth"
	"github.com/example/groom-scheduler/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the booking API + staff dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			e, err := setup(ctx, migrateUp)
			if err != nil {
				return err
			}
			defer e.close()

			ws := &web.Server{
				Booking: e.service,
				Log:     e.log,
			}
			if e.cfg.DashboardEnabled() {
				ws.Auth = auth.NewStore(e.db, e.cfg.SessionHashKey, e.cfg.SessionBlockKey)
				ws.Records = e.repo
			} else {
				e.log.Info("staff dashboard disabled (needs DATABASE_URL and session keys)")
			}

			return web.Start(ctx, e.cfg.HTTPAddr, ws.Routes(), e.log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
