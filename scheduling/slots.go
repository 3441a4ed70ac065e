package scheduling

import "time"

// slotAllocator hands out match start times: the k-th match of a day starts
// at dayStart + k*duration, and once a day holds MatchesPerDay matches the
// date rolls to the next calendar day at the same start time. Both
// generators share it so scheduling density is uniform across formats.
type slotAllocator struct {
	day      time.Time // current day at its start-of-play clock time
	perDay   int
	duration time.Duration
	used     int
}

func newSlotAllocator(spec Spec) *slotAllocator {
	y, m, d := spec.StartDate.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, spec.StartDate.Location()).Add(spec.DayStart)
	return &slotAllocator{
		day:      day,
		perDay:   spec.MatchesPerDay,
		duration: spec.MatchDuration,
	}
}

// Next returns the start time for the next match and advances the cursor.
func (a *slotAllocator) Next() time.Time {
	t := a.day.Add(time.Duration(a.used) * a.duration)
	a.used++
	if a.used >= a.perDay {
		a.used = 0
		a.day = a.day.AddDate(0, 0, 1)
	}
	return t
}
