package records

import (
	"context"

	"github.com/example/groom-scheduler/internal/booking"
)

// Noop satisfies booking.RecordStore for deployments that run without a
// database; committed bookings then live only in the in-memory ledger.
type Noop struct{}

func (Noop) Append(ctx context.Context, rec booking.BookingRecord) error { return nil }
