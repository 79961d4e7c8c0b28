package salon

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DateFormat is the ISO calendar-date layout used on every external surface.
const DateFormat = "2006-01-02"

// Resolution is the outcome of mapping a requested date onto the salon
// calendar. OperatingDate may differ from the requested date when a bank
// holiday shifts the booking; Notes explain every adjustment or closure.
type Resolution struct {
	RequestedDate time.Time
	OperatingDate time.Time
	Notes         []string
	Open          bool
}

// Calendar resolves requested dates against the salon's operating rules:
// Monday to Wednesday opening, UK bank holiday shifts to Thursday, and the
// Christmas shutdown. Resolution is deterministic; the per-year holiday set
// is memoized. Safe for concurrent use.
type Calendar struct {
	mu       sync.Mutex
	holidays map[int]map[time.Time]bool
}

func NewCalendar() *Calendar {
	return &Calendar{holidays: make(map[int]map[time.Time]bool)}
}

// ParseDate parses an ISO date string (YYYY-MM-DD) into a UTC midnight value.
func ParseDate(v string) (time.Time, error) {
	d, err := time.Parse(DateFormat, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrMalformedDate, v)
	}
	return d, nil
}

// isoWeekday maps time.Weekday onto Monday=0 .. Sunday=6.
func isoWeekday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}

func isOperatingWeekday(d time.Time) bool {
	return isoWeekday(d) <= 2 // Mon, Tue, Wed
}

// ResolveString parses and resolves in one step.
func (c *Calendar) ResolveString(requested string) (Resolution, error) {
	d, err := ParseDate(requested)
	if err != nil {
		return Resolution{}, err
	}
	return c.Resolve(d), nil
}

// Resolve maps a requested date to the actual operating date. Rules apply in
// order: a bank holiday on an operating weekday shifts the booking to the
// Thursday of the same week (force-open), then the shutdown window and the
// weekday pattern decide whether the resulting day is open.
func (c *Calendar) Resolve(requested time.Time) Resolution {
	day, notes, forceOpen := c.shiftBankHoliday(requested)
	operating, closureNotes := c.ensureOperatingDay(day, forceOpen)
	notes = append(notes, closureNotes...)
	open := len(closureNotes) == 0 && (forceOpen || isOperatingWeekday(operating))
	return Resolution{
		RequestedDate: requested,
		OperatingDate: operating,
		Notes:         notes,
		Open:          open,
	}
}

// shiftBankHoliday moves a booking off a bank holiday that falls on an
// operating weekday, onto the Thursday of that week. The shifted date is
// force-open even though Thursday is not normally an operating day.
func (c *Calendar) shiftBankHoliday(day time.Time) (time.Time, []string, bool) {
	if isOperatingWeekday(day) && c.isBankHoliday(day) {
		shifted := day.AddDate(0, 0, 3-isoWeekday(day))
		note := fmt.Sprintf("%s is a bank holiday, booking moved to %s.",
			day.Format(DateFormat), shifted.Format(DateFormat))
		return shifted, []string{note}, true
	}
	return day, nil, false
}

// ensureOperatingDay returns closure notes for days the salon cannot service.
// The shutdown window overrides force-open.
func (c *Calendar) ensureOperatingDay(day time.Time, forceOpen bool) (time.Time, []string) {
	if forceOpen && isoWeekday(day) == 3 && !isChristmasShutdown(day) {
		return day, nil
	}
	if isChristmasShutdown(day) {
		return day, []string{fmt.Sprintf("%s is during the Christmas shutdown.", day.Format(DateFormat))}
	}
	if !isOperatingWeekday(day) {
		return day, []string{fmt.Sprintf("%s falls on %s, salon closed.", day.Format(DateFormat), day.Weekday())}
	}
	return day, nil
}

// isBankHoliday reports whether the date is in the recognized UK set for its
// year: the late-May and late-August Monday holidays, Christmas Day, and the
// in-lieu substitute when the 25th lands on a weekend.
func (c *Calendar) isBankHoliday(day time.Time) bool {
	year := day.Year()

	c.mu.Lock()
	set, ok := c.holidays[year]
	if !ok {
		set = bankHolidaysForYear(year)
		c.holidays[year] = set
	}
	c.mu.Unlock()

	return set[day]
}

func bankHolidaysForYear(year int) map[time.Time]bool {
	set := map[time.Time]bool{
		lastWeekdayOfMonth(year, time.May, time.Monday):    true,
		lastWeekdayOfMonth(year, time.August, time.Monday): true,
	}

	christmas := time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC)
	set[christmas] = true
	switch christmas.Weekday() {
	case time.Saturday:
		set[christmas.AddDate(0, 0, 2)] = true
	case time.Sunday:
		set[christmas.AddDate(0, 0, 1)] = true
	}
	return set
}

func lastWeekdayOfMonth(year int, month time.Month, weekday time.Weekday) time.Time {
	// Day 0 of the next month is the last day of this one.
	d := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// isChristmasShutdown covers December 24-26 plus the first Monday-Wednesday
// run after the 26th, during which the salon stays closed.
func isChristmasShutdown(day time.Time) bool {
	if day.Month() == time.December && day.Day() >= 24 && day.Day() <= 26 {
		return true
	}
	dec26 := time.Date(day.Year(), time.December, 26, 0, 0, 0, 0, time.UTC)
	if !day.After(dec26) {
		return false
	}
	monday := dec26.AddDate(0, 0, 1)
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, 1)
	}
	return !day.Before(monday) && day.Before(monday.AddDate(0, 0, 3))
}
