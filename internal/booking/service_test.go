package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/groom-scheduler/internal/ledger"
	"github.com/example/groom-scheduler/internal/salon"
)

type fakeStore struct {
	mu      sync.Mutex
	appends []BookingRecord
	err     error
}

func (f *fakeStore) Append(ctx context.Context, rec BookingRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appends = append(f.appends, rec)
	return nil
}

func newTestService(store RecordStore) *Service {
	return NewService(salon.NewCalendar(), ledger.New(salon.CapacityPerSlot), store, nil)
}

// Monday 15 July 2024: a plain operating day.
const openDay = "2024-07-15"

func TestAvailabilityOpenDay(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Availability(context.Background(), AvailabilityRequest{
		RequestedDate: openDay,
		DogSize:       "medium",
	})
	require.NoError(t, err)

	assert.Equal(t, openDay, resp.RequestedDate)
	assert.Equal(t, openDay, resp.OperatingDate)
	assert.Equal(t, salon.SlotTimes, resp.AvailableSlots)
	assert.Empty(t, resp.Notes)
}

func TestAvailabilityRespectsCapacity(t *testing.T) {
	svc := newTestService(nil)
	day, err := salon.ParseDate(openDay)
	require.NoError(t, err)

	svc.Ledger().Seed(day, "09:00", 2)
	svc.Ledger().Seed(day, "10:30", 1)

	// A medium dog (1 unit) fits everywhere except the full 09:00.
	resp, err := svc.Availability(context.Background(), AvailabilityRequest{RequestedDate: openDay, DogSize: "medium"})
	require.NoError(t, err)
	assert.NotContains(t, resp.AvailableSlots, "09:00")
	assert.Contains(t, resp.AvailableSlots, "10:30")
	assert.Len(t, resp.AvailableSlots, len(salon.SlotTimes)-1)

	// A large dog (2 units) also misses the half-used 10:30.
	resp, err = svc.Availability(context.Background(), AvailabilityRequest{RequestedDate: openDay, DogSize: "large"})
	require.NoError(t, err)
	assert.NotContains(t, resp.AvailableSlots, "09:00")
	assert.NotContains(t, resp.AvailableSlots, "10:30")
	assert.Len(t, resp.AvailableSlots, len(salon.SlotTimes)-2)
}

func TestAvailabilityClosedDayIsNotAnError(t *testing.T) {
	svc := newTestService(nil)

	resp, err := svc.Availability(context.Background(), AvailabilityRequest{
		RequestedDate: "2024-07-13", // Saturday
		DogSize:       "small",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
	require.NotEmpty(t, resp.Notes)
	assert.Contains(t, resp.Notes[0], "Saturday")
}

func TestAvailabilitySlotOrderChronological(t *testing.T) {
	svc := newTestService(nil)
	day, err := salon.ParseDate(openDay)
	require.NoError(t, err)
	svc.Ledger().Seed(day, "08:30", 2)

	resp, err := svc.Availability(context.Background(), AvailabilityRequest{RequestedDate: openDay, DogSize: "small"})
	require.NoError(t, err)
	assert.Equal(t, salon.SlotTimes[1:], resp.AvailableSlots)
}

func TestAvailabilityMalformedDate(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Availability(context.Background(), AvailabilityRequest{RequestedDate: "next tuesday", DogSize: "small"})
	assert.ErrorIs(t, err, salon.ErrMalformedDate)
}

func TestCommitRoundTrip(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	avail, err := svc.Availability(ctx, AvailabilityRequest{RequestedDate: openDay, DogSize: "large"})
	require.NoError(t, err)
	require.NotEmpty(t, avail.AvailableSlots)
	slot := avail.AvailableSlots[0]

	day, err := salon.ParseDate(openDay)
	require.NoError(t, err)
	before := svc.Ledger().UnitsUsed(day, slot)

	rec, err := svc.Commit(ctx, BookingRequest{
		DogName:       "Luna",
		DogSize:       "large",
		RequestedDate: openDay,
		RequestedTime: slot,
		CustomerName:  "Sarah Chen",
		ContactNumber: "555-0123",
	})
	require.NoError(t, err)

	assert.Equal(t, "Luna", rec.DogName)
	assert.Equal(t, "large", rec.DogSize)
	assert.Equal(t, openDay, rec.Date)
	assert.Equal(t, slot, rec.Time)
	assert.Equal(t, "Sarah Chen", rec.Customer)
	assert.Equal(t, "555-0123", rec.Phone)
	assert.Equal(t, StatusBooked, rec.Status)
	assert.NotEmpty(t, rec.Reference)

	assert.Equal(t, before+2, svc.Ledger().UnitsUsed(day, slot))

	require.Len(t, store.appends, 1)
	assert.Equal(t, rec.Reference, store.appends[0].Reference)
}

func TestCommitInvalidTime(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Commit(context.Background(), BookingRequest{
		DogName:       "Rex",
		DogSize:       "small",
		RequestedDate: openDay,
		RequestedTime: "09:15",
		CustomerName:  "A",
		ContactNumber: "1",
	})
	assert.ErrorIs(t, err, salon.ErrInvalidTime)
}

func TestCommitClosedDay(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Commit(context.Background(), BookingRequest{
		DogName:       "Rex",
		DogSize:       "small",
		RequestedDate: "2024-12-25",
		RequestedTime: "09:00",
		CustomerName:  "A",
		ContactNumber: "1",
	})
	require.ErrorIs(t, err, salon.ErrClosedDay)
	assert.Contains(t, err.Error(), "Christmas shutdown")
}

func TestCommitHolidayShiftBooksThursday(t *testing.T) {
	svc := newTestService(nil)

	rec, err := svc.Commit(context.Background(), BookingRequest{
		DogName:       "Biscuit",
		DogSize:       "medium",
		RequestedDate: "2024-05-27", // spring bank holiday Monday
		RequestedTime: "10:00",
		CustomerName:  "B",
		ContactNumber: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-30", rec.Date)
	require.NotEmpty(t, rec.Notes)
	assert.Contains(t, rec.Notes[0], "bank holiday")

	// The units landed on the shifted date, not the requested one.
	thursday, err := salon.ParseDate("2024-05-30")
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Ledger().UnitsUsed(thursday, "10:00"))
}

func TestCommitSlotFull(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()

	req := BookingRequest{
		DogSize:       "medium",
		RequestedDate: openDay,
		RequestedTime: "11:00",
		CustomerName:  "C",
		ContactNumber: "3",
	}
	req.DogName = "First"
	_, err := svc.Commit(ctx, req)
	require.NoError(t, err)
	req.DogName = "Second"
	_, err = svc.Commit(ctx, req)
	require.NoError(t, err)

	req.DogName = "Third"
	_, err = svc.Commit(ctx, req)
	assert.ErrorIs(t, err, salon.ErrSlotFull)
}

func TestCommitInvalidSize(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.Commit(context.Background(), BookingRequest{
		DogName:       "Rex",
		DogSize:       "giant",
		RequestedDate: openDay,
		RequestedTime: "09:00",
	})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, salon.ErrSlotFull)
}

func TestCommitSurvivesRecordStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("sheet unreachable")}
	svc := newTestService(store)

	rec, err := svc.Commit(context.Background(), BookingRequest{
		DogName:       "Rex",
		DogSize:       "small",
		RequestedDate: openDay,
		RequestedTime: "12:30",
		CustomerName:  "D",
		ContactNumber: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusBooked, rec.Status)

	// The reservation stands even though the log append failed.
	day, err := salon.ParseDate(openDay)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Ledger().UnitsUsed(day, "12:30"))
}

func TestConcurrentCommitsNeverOvercommit(t *testing.T) {
	const attempts = 12

	svc := newTestService(&fakeStore{})
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Commit(ctx, BookingRequest{
				DogName:       "Doggo",
				DogSize:       "small",
				RequestedDate: openDay,
				RequestedTime: "13:00",
				CustomerName:  "E",
				ContactNumber: "5",
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var booked, full int
	for err := range errs {
		switch {
		case err == nil:
			booked++
		case errors.Is(err, salon.ErrSlotFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 2, booked)
	assert.Equal(t, attempts-2, full)

	day, err := salon.ParseDate(openDay)
	require.NoError(t, err)
	assert.Equal(t, salon.CapacityPerSlot, svc.Ledger().UnitsUsed(day, "13:00"))
}
