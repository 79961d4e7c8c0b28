package salon

// ChooseSlot picks the slot to book from an availability listing. The
// requested time wins when it is open; otherwise the nearest open slot by
// clock distance is chosen, earlier on a tie. Used by flexible callers
// (CLI --flexible, batch import); a strict commit never substitutes slots.
func ChooseSlot(requested string, available []string) (string, bool) {
	if len(available) == 0 {
		return "", false
	}
	best, bestDist := "", 0
	want := slotMinutes(requested)
	for _, s := range available {
		if s == requested {
			return s, true
		}
		d := slotMinutes(s) - want
		if d < 0 {
			d = -d
		}
		if best == "" || d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}

// slotMinutes converts "HH:MM" to minutes since midnight. Malformed input
// yields 0, which only affects ordering, never membership.
func slotMinutes(t string) int {
	if len(t) != 5 || t[2] != ':' {
		return 0
	}
	h := int(t[0]-'0')*10 + int(t[1]-'0')
	m := int(t[3]-'0')*10 + int(t[4]-'0')
	return h*60 + m
}
