package appointment

import (
	"fmt"
	"time"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Valid reports start < end. Degenerate (zero-length) intervals are not valid bookings.
func (i Interval) Valid() bool {
	return i.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// OverlapMode selects the predicate the interval store uses.
//
// strict: half-open intervals, existing.Start < candidate.End && candidate.Start < existing.End.
// Touching intervals ([10:00,11:00] and [11:00,12:00]) do not overlap.
//
// legacy: an existing interval overlaps when its start or its end lies inside
// [candidate.Start, candidate.End], bounds inclusive. Touching intervals overlap,
// and an existing interval that fully contains the candidate is missed.
type OverlapMode string

const (
	OverlapStrict OverlapMode = "strict"
	OverlapLegacy OverlapMode = "legacy"
)

func ParseOverlapMode(s string) (OverlapMode, error) {
	switch OverlapMode(s) {
	case OverlapStrict, "":
		return OverlapStrict, nil
	case OverlapLegacy:
		return OverlapLegacy, nil
	}
	return "", fmt.Errorf("unknown overlap mode %q", s)
}

// Overlaps reports whether existing intersects candidate under mode m.
func (m OverlapMode) Overlaps(existing, candidate Interval) bool {
	if m == OverlapLegacy {
		return within(existing.Start, candidate) || within(existing.End, candidate)
	}
	return existing.Start.Before(candidate.End) && candidate.Start.Before(existing.End)
}

func within(t time.Time, iv Interval) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}
