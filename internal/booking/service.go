// Package booking composes the calendar resolver and the capacity ledger
// into the two operations the salon exposes: availability query and booking
// commit.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/groom-scheduler/internal/ledger"
	"github.com/example/groom-scheduler/internal/salon"
)

// Service owns one calendar and one ledger for the lifetime of the process.
// Availability only reads; Commit is the single writer.
type Service struct {
	cal     *salon.Calendar
	ledger  *ledger.Ledger
	records RecordStore
	log     *zap.Logger
}

func NewService(cal *salon.Calendar, led *ledger.Ledger, records RecordStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cal: cal, ledger: led, records: records, log: log}
}

// Ledger exposes the underlying ledger for startup seeding.
func (s *Service) Ledger() *ledger.Ledger { return s.ledger }

// Availability resolves the requested date and lists every slot that still
// has room for a dog of the given size. Closed days come back with an empty
// slot list and explanatory notes, never as an error; only an unparseable
// date or size fails.
func (s *Service) Availability(ctx context.Context, req AvailabilityRequest) (AvailabilityResponse, error) {
	size, err := salon.ParseSize(req.DogSize)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	res, err := s.cal.ResolveString(req.RequestedDate)
	if err != nil {
		return AvailabilityResponse{}, err
	}

	out := AvailabilityResponse{
		RequestedDate:  req.RequestedDate,
		OperatingDate:  res.OperatingDate.Format(salon.DateFormat),
		AvailableSlots: []string{},
		Notes:          res.Notes,
	}
	if !res.Open {
		if len(out.Notes) == 0 {
			out.Notes = []string{fmt.Sprintf("%s is outside operating days.", out.OperatingDate)}
		}
		return out, nil
	}

	units := size.Units()
	for _, slot := range salon.SlotTimes {
		if s.ledger.UnitsUsed(res.OperatingDate, slot)+units <= salon.CapacityPerSlot {
			out.AvailableSlots = append(out.AvailableSlots, slot)
		}
	}
	return out, nil
}

// Commit reserves capacity for the requested slot and returns the confirmed
// record. Failures are explicit: salon.ErrClosedDay, salon.ErrInvalidTime,
// salon.ErrSlotFull or salon.ErrMalformedDate, never a degraded success.
// The ledger reservation is the transaction; appending to the record store
// happens after it, outside the lock, and a store failure is logged rather
// than rolled back.
func (s *Service) Commit(ctx context.Context, req BookingRequest) (BookingRecord, error) {
	size, err := salon.ParseSize(req.DogSize)
	if err != nil {
		return BookingRecord{}, err
	}
	res, err := s.cal.ResolveString(req.RequestedDate)
	if err != nil {
		return BookingRecord{}, err
	}

	operating := res.OperatingDate.Format(salon.DateFormat)
	if !res.Open {
		reason := "outside operating days"
		if len(res.Notes) > 0 {
			reason = strings.Join(res.Notes, " ")
		}
		return BookingRecord{}, fmt.Errorf("%w on %s: %s", salon.ErrClosedDay, operating, reason)
	}
	if !salon.IsSlotTime(req.RequestedTime) {
		return BookingRecord{}, fmt.Errorf("%w: %q", salon.ErrInvalidTime, req.RequestedTime)
	}

	units := size.Units()
	if !s.ledger.TryReserve(res.OperatingDate, req.RequestedTime, units) {
		return BookingRecord{}, fmt.Errorf("%w: %s %s", salon.ErrSlotFull, operating, req.RequestedTime)
	}

	rec := BookingRecord{
		DogName:   req.DogName,
		DogSize:   string(size),
		Date:      operating,
		Time:      req.RequestedTime,
		Customer:  req.CustomerName,
		Phone:     req.ContactNumber,
		Status:    StatusBooked,
		Notes:     res.Notes,
		Reference: uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}

	if s.records != nil {
		if err := s.records.Append(ctx, rec); err != nil {
			// The reservation stands; the record log is a downstream
			// collaborator, not part of the transaction.
			s.log.Warn("booking record append failed",
				zap.String("reference", rec.Reference),
				zap.String("date", rec.Date),
				zap.String("time", rec.Time),
				zap.Error(err))
		}
	}

	s.log.Info("booking committed",
		zap.String("reference", rec.Reference),
		zap.String("date", rec.Date),
		zap.String("time", rec.Time),
		zap.String("size", rec.DogSize),
		zap.Int("units", units))
	return rec, nil
}
