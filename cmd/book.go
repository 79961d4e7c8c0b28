package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/groom-scheduler/internal/booking"
	"github.com/example/groom-scheduler/internal/salon"
)

func newBookCmd() *cobra.Command {
	var (
		dogName  string
		dogSize  string
		date     string
		slot     string
		customer string
		phone    string
		flexible bool
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Book a grooming appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			e, err := setup(ctx, true)
			if err != nil {
				return err
			}
			defer e.close()

			requestedTime := slot
			if flexible {
				avail, err := e.service.Availability(ctx, booking.AvailabilityRequest{
					RequestedDate: date,
					DogSize:       dogSize,
				})
				if err != nil {
					return err
				}
				chosen, ok := salon.ChooseSlot(slot, avail.AvailableSlots)
				if !ok {
					return fmt.Errorf("no slots available on %s", avail.OperatingDate)
				}
				if chosen != slot {
					fmt.Fprintf(os.Stdout, "requested %s unavailable, booking nearest slot %s\n", slot, chosen)
				}
				requestedTime = chosen
			}

			rec, err := e.service.Commit(ctx, booking.BookingRequest{
				DogName:       dogName,
				DogSize:       dogSize,
				RequestedDate: date,
				RequestedTime: requestedTime,
				CustomerName:  customer,
				ContactNumber: phone,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "booked %s (%s) on %s at %s for %s ref=%s\n",
				rec.DogName, rec.DogSize, rec.Date, rec.Time, rec.Customer, rec.Reference)
			if len(rec.Notes) > 0 {
				fmt.Fprintf(os.Stdout, "notes: %s\n", strings.Join(rec.Notes, " "))
			}
			return nil
		},
	}

	c.Flags().StringVar(&dogName, "dog", "", "dog name")
	c.Flags().StringVar(&dogSize, "size", "medium", "dog size: small, medium or large")
	c.Flags().StringVar(&date, "date", "", "requested date YYYY-MM-DD")
	c.Flags().StringVar(&slot, "time", "", "requested slot HH:MM")
	c.Flags().StringVar(&customer, "customer", "", "customer name")
	c.Flags().StringVar(&phone, "phone", "", "customer contact number")
	c.Flags().BoolVar(&flexible, "flexible", false, "fall back to the nearest open slot if the requested one is taken")
	_ = c.MarkFlagRequired("dog")
	_ = c.MarkFlagRequired("date")
	_ = c.MarkFlagRequired("time")
	_ = c.MarkFlagRequired("customer")
	return c
}
