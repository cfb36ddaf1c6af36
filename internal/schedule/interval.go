package schedule

import (
	"errors"
	"time"
)

var (
	ErrPastDate      = errors.New("start date is in the past")
	ErrStartAfterEnd = errors.New("start date must be before end date")
)

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share any instant. A session ending exactly when another starts does
// not overlap. Every occupancy check in the engine goes through this
// predicate (or its SQL mirror) so the boundary rule stays in one place.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// ValidateInterval checks that a candidate interval is well-formed and not
// in the past. The clock is passed in by the caller, never read here.
func ValidateInterval(start, end, now time.Time) error {
	if start.Before(now) {
		return ErrPastDate
	}
	if !start.Before(end) {
		return ErrStartAfterEnd
	}
	return nil
}
