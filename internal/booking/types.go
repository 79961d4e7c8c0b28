package booking

import (
	"context"
	"time"
)

// AvailabilityRequest carries the structured fields an external caller (chat
// agent, web form, importer) extracted for an availability check.
type AvailabilityRequest struct {
	RequestedDate string `json:"requested_date"`
	DogSize       string `json:"dog_size"`
}

// AvailabilityResponse lists the open slots for the resolved operating date,
// in schedule order. A closed day is a valid response: empty slots plus the
// notes explaining the closure.
type AvailabilityResponse struct {
	RequestedDate  string   `json:"requested_date"`
	OperatingDate  string   `json:"operating_date"`
	AvailableSlots []string `json:"available_slots"`
	Notes          []string `json:"notes"`
}

// BookingRequest carries the structured fields for a booking commit.
type BookingRequest struct {
	DogName       string `json:"dog_name"`
	DogSize       string `json:"dog_size"`
	RequestedDate string `json:"requested_date"`
	RequestedTime string `json:"requested_time"`
	CustomerName  string `json:"customer_name"`
	ContactNumber string `json:"contact_number"`
}

// StatusBooked is the status of every record a successful commit produces.
const StatusBooked = "Booked"

// BookingRecord is the immutable result of a successful commit. Date is the
// resolved operating date, which may differ from the requested one. The JSON
// field set is the external contract; downstream record logging depends on
// it, so Reference and CreatedAt stay out of the payload.
type BookingRecord struct {
	DogName  string   `json:"dog_name"`
	DogSize  string   `json:"dog_size"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Customer string   `json:"customer"`
	Phone    string   `json:"phone"`
	Status   string   `json:"status"`
	Notes    []string `json:"notes"`

	Reference string    `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// RecordStore receives confirmed bookings for durable logging. The core does
// not depend on any particular backend; a postgres implementation lives in
// internal/records.
type RecordStore interface {
	Append(ctx context.Context, rec BookingRecord) error
}
