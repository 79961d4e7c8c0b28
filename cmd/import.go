package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/groom-scheduler/internal/booking"
)

func newImportCmd() *cobra.Command {
	var file string

	c := &cobra.Command{
		Use:   "import",
		Short: "Commit a batch of booking requests from a JSON file",
		Long: `Reads a JSON array of booking requests (the same field set as
POST /api/bookings) and commits them one by one. A request that fails,
e.g. because its slot filled up earlier in the batch, is reported and
skipped; the rest of the batch continues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer e.close()

			b, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var reqs []booking.BookingRequest
			if err := json.Unmarshal(b, &reqs); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}

			var booked, failed int
			for i, req := range reqs {
				rec, err := e.service.Commit(ctx, req)
				if err != nil {
					failed++
					e.log.Warn("import: booking failed",
						zap.Int("index", i),
						zap.String("dog", req.DogName),
						zap.String("date", req.RequestedDate),
						zap.String("time", req.RequestedTime),
						zap.Error(err))
					fmt.Fprintf(os.Stdout, "[%d] FAILED %s %s %s: %v\n", i, req.DogName, req.RequestedDate, req.RequestedTime, err)
					continue
				}
				booked++
				fmt.Fprintf(os.Stdout, "[%d] booked %s on %s at %s ref=%s\n", i, rec.DogName, rec.Date, rec.Time, rec.Reference)
			}

			fmt.Fprintf(os.Stdout, "done: %d booked, %d failed\n", booked, failed)
			if booked == 0 && failed > 0 {
				return fmt.Errorf("no bookings imported")
			}
			return nil
		},
	}

	c.Flags().StringVar(&file, "file", "", "path to JSON array of booking requests")
	_ = c.MarkFlagRequired("file")
	return c
}
