package salon

// SlotTimes is the published intake schedule: 30-minute slots from 08:30
// to 13:00, in chronological order. Availability responses preserve this
// ordering.
var SlotTimes = []string{
	"08:30",
	"09:00",
	"09:30",
	"10:00",
	"10:30",
	"11:00",
	"11:30",
	"12:00",
	"12:30",
	"13:00",
}

// CapacityPerSlot is the number of capacity units a single slot can hold:
// two small/medium dogs, or one large dog.
const CapacityPerSlot = 2

// IsSlotTime reports whether t is one of the published slot times.
func IsSlotTime(t string) bool {
	for _, s := range SlotTimes {
		if s == t {
			return true
		}
	}
	return false
}
