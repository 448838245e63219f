package appointment

import (
	"context"
	"time"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/timezone"
)

type GetSlots struct {
	repo domain.Repository
	mode domain.OverlapMode
	loc  *time.Location
}

func NewGetSlots(repo domain.Repository, mode domain.OverlapMode, loc *time.Location) *GetSlots {
	return &GetSlots{repo: repo, mode: mode, loc: loc}
}

// Execute lists the free slots of in.Duration inside the availability window
// of in.Date, stepping by the duration.
func (uc *GetSlots) Execute(
	ctx context.Context,
	in domain.SlotsInput,
) ([]domain.TimeSlot, error) {

	if in.Duration <= 0 {
		return nil, httperr.ErrInvalidArgument("duration", "must be positive")
	}

	prof, err := uc.repo.GetProfessional(ctx, in.ProfessionalID)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if prof == nil {
		return nil, httperr.ErrNotFound("professional", in.ProfessionalID)
	}

	date := in.Date.In(uc.loc)

	av, err := uc.repo.GetAvailability(ctx, prof.ID, int(date.Weekday()))
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}
	if av == nil {
		return []domain.TimeSlot{}, nil
	}

	parseHM := func(hm string) (time.Time, bool) {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(
			date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			uc.loc,
		), true
	}

	dayStart, ok1 := parseHM(av.StartTime)
	dayEnd, ok2 := parseHM(av.EndTime)
	if !ok1 || !ok2 {
		return []domain.TimeSlot{}, nil
	}

	from, to := timezone.DayBounds(date, uc.loc)
	apps, err := uc.repo.ListForProfessional(ctx, prof.ID, from, to)
	if err != nil {
		return nil, httperr.ErrTransaction(err)
	}

	busy := make([]domain.Interval, 0, len(apps))
	for i := range apps {
		if domain.IsActive(domain.Status(apps[i].Status)) {
			busy = append(busy, domain.IntervalOf(&apps[i]))
		}
	}

	slots := []domain.TimeSlot{}

	for cur := dayStart; !cur.Add(in.Duration).After(dayEnd); cur = cur.Add(in.Duration) {
		slot := domain.Interval{Start: cur, End: cur.Add(in.Duration)}

		free := true
		for _, b := range busy {
			if uc.mode.Overlaps(b, slot) {
				free = false
				break
			}
		}

		if free {
			slots = append(slots, domain.TimeSlot{
				Start: slot.Start.Format("15:04"),
				End:   slot.End.Format("15:04"),
			})
		}
	}

	return slots, nil
}
