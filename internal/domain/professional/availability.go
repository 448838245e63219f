package professional

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
)

var weekdayLabels = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "dom": time.Sunday, "domingo": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "seg": time.Monday, "segunda": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "ter": time.Tuesday, "terca": time.Tuesday, "terça": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "qua": time.Wednesday, "quarta": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "qui": time.Thursday, "quinta": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "sex": time.Friday, "sexta": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "sab": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday,
}

func ParseWeekday(label string) (time.Weekday, bool) {
	wd, ok := weekdayLabels[strings.ToLower(strings.TrimSpace(label))]
	return wd, ok
}

// Window is one parsed availability entry.
type Window struct {
	Weekday time.Weekday
	Label   string
	Start   string
	End     string
}

// ParseToken parses "<weekday>-<HH:MM>-<HH:MM>". Anything other than exactly
// three parts, an unknown weekday, a malformed time or start >= end is rejected.
func ParseToken(token string) (Window, error) {
	parts := strings.Split(strings.TrimSpace(token), "-")
	if len(parts) != 3 {
		return Window{}, fmt.Errorf("expected <weekday>-<start>-<end>, got %q", token)
	}

	label := strings.ToLower(strings.TrimSpace(parts[0]))
	wd, ok := ParseWeekday(label)
	if !ok {
		return Window{}, fmt.Errorf("unknown weekday %q", parts[0])
	}

	start, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return Window{}, fmt.Errorf("invalid start time %q", parts[1])
	}
	end, err := time.Parse("15:04", strings.TrimSpace(parts[2]))
	if err != nil {
		return Window{}, fmt.Errorf("invalid end time %q", parts[2])
	}
	if !start.Before(end) {
		return Window{}, fmt.Errorf("start %s must be before end %s", parts[1], parts[2])
	}

	return Window{
		Weekday: wd,
		Label:   label,
		Start:   start.Format("15:04"),
		End:     end.Format("15:04"),
	}, nil
}

// BuildAvailability parses every token and folds them into one window per
// weekday. Later tokens for the same weekday overwrite earlier ones
// ("mon-09:00-12:00", "mon-13:00-18:00" keeps 13:00-18:00). A malformed token
// fails the whole set.
func BuildAvailability(professionalID uint, tokens []string) ([]models.Availability, error) {
	byDay := make(map[time.Weekday]Window, len(tokens))

	for i, tok := range tokens {
		w, err := ParseToken(tok)
		if err != nil {
			return nil, httperr.ErrInvalidArgument(fmt.Sprintf("availability[%d]", i), err.Error())
		}
		byDay[w.Weekday] = w
	}

	out := make([]models.Availability, 0, len(byDay))
	for _, w := range byDay {
		out = append(out, models.Availability{
			ProfessionalID: professionalID,
			Weekday:        int(w.Weekday),
			Label:          w.Label,
			StartTime:      w.Start,
			EndTime:        w.End,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })

	return out, nil
}
