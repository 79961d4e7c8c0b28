package salon

import "errors"

// Booking failure kinds. Callers classify with errors.Is; the wrapped
// message carries the human-readable detail (dates, adjustment notes).
var (
	ErrMalformedDate = errors.New("malformed date")
	ErrClosedDay     = errors.New("salon closed")
	ErrInvalidTime   = errors.New("time outside operating hours")
	ErrSlotFull      = errors.New("slot is full")
)
