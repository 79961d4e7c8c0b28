// Package records persists confirmed bookings to postgres. It is the
// record-logging collaborator downstream of a commit, and the seed source
// for the capacity ledger at startup; the scheduling core itself never
// depends on it being present.
package records

import (
	"context"
	"strings"
	"time"

	"github.com/example/groom-scheduler/internal/booking"
	"github.com/example/groom-scheduler/internal/db"
	"github.com/example/groom-scheduler/internal/ledger"
	"github.com/example/groom-scheduler/internal/salon"
)

type Repo struct{ db *db.DB }

func NewRepo(d *db.DB) *Repo { return &Repo{db: d} }

func joinNotes(notes []string) string {
	return strings.Join(notes, "\n")
}

func parseNotes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Append logs one confirmed booking. Records are append-only; nothing in
// the scheduler updates or deletes them.
func (r *Repo) Append(ctx context.Context, rec booking.BookingRecord) error {
	size, err := salon.ParseSize(rec.DogSize)
	if err != nil {
		return err
	}
	date, err := salon.ParseDate(rec.Date)
	if err != nil {
		return err
	}
	return r.db.Exec(ctx, `
INSERT INTO bookings(reference,dog_name,dog_size,booking_date,slot_time,units,customer,phone,status,notes,created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		rec.Reference, rec.DogName, rec.DogSize, date, rec.Time, size.Units(),
		rec.Customer, rec.Phone, rec.Status, joinNotes(rec.Notes), rec.CreatedAt,
	)
}

// ListRecent returns the most recently created bookings for the staff
// dashboard, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]booking.BookingRecord, error) {
	rows, err := r.db.Query(ctx, `
SELECT reference,dog_name,dog_size,booking_date,slot_time,customer,phone,status,notes,created_at
FROM bookings
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []booking.BookingRecord
	for rows.Next() {
		var rec booking.BookingRecord
		var date time.Time
		var notes string
		if err := rows.Scan(
			&rec.Reference, &rec.DogName, &rec.DogSize, &date, &rec.Time,
			&rec.Customer, &rec.Phone, &rec.Status, &notes, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		rec.Date = date.Format(salon.DateFormat)
		rec.Notes = parseNotes(notes)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SeedLedger replays booked capacity from the log into a fresh ledger.
// Only bookings on or after the given date matter; the past cannot be
// booked again.
func (r *Repo) SeedLedger(ctx context.Context, led *ledger.Ledger, from time.Time) error {
	rows, err := r.db.Query(ctx, `
SELECT booking_date, slot_time, SUM(units)
FROM bookings
WHERE status=$1 AND booking_date >= $2
GROUP BY booking_date, slot_time`, booking.StatusBooked, from)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		var slot string
		var units int
		if err := rows.Scan(&date, &slot, &units); err != nil {
			return err
		}
		led.Seed(date, slot, units)
	}
	return rows.Err()
}
