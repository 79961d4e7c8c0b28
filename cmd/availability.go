package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/groom-scheduler/internal/booking"
)

func newAvailabilityCmd() *cobra.Command {
	var date, size string

	c := &cobra.Command{
		Use:   "availability",
		Short: "List open slots for a date and dog size",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer e.close()

			resp, err := e.service.Availability(ctx, booking.AvailabilityRequest{
				RequestedDate: date,
				DogSize:       size,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "requested=%s operating=%s\n", resp.RequestedDate, resp.OperatingDate)
			for _, n := range resp.Notes {
				fmt.Fprintf(os.Stdout, "note: %s\n", n)
			}
			if len(resp.AvailableSlots) == 0 {
				fmt.Fprintln(os.Stdout, "no slots available")
				return nil
			}
			fmt.Fprintf(os.Stdout, "slots: %s\n", strings.Join(resp.AvailableSlots, " "))
			return nil
		},
	}

	c.Flags().StringVar(&date, "date", "", "requested date YYYY-MM-DD")
	c.Flags().StringVar(&size, "size", "medium", "dog size: small, medium or large")
	_ = c.MarkFlagRequired("date")
	return c
}
