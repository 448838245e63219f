package appointment

import (
	"time"

	"github.com/PedrohFolster/inkspiration/internal/models"
)

// IsWithinAvailability valida se o intervalo cabe na janela do dia da semana.
// The interval must start and end on the same calendar day in loc.
func IsWithinAvailability(
	av *models.Availability,
	iv Interval,
	loc *time.Location,
) bool {
	if av == nil || av.StartTime == "" || av.EndTime == "" {
		return false
	}

	start := iv.Start.In(loc)
	end := iv.End.In(loc)

	if int(start.Weekday()) != av.Weekday {
		return false
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		), true
	}

	workStart, ok1 := parseHM(av.StartTime)
	workEnd, ok2 := parseHM(av.EndTime)
	if !ok1 || !ok2 {
		return false
	}

	return !start.Before(workStart) && !end.After(workEnd)
}
