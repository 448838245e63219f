package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

type store struct {
	professionals map[uint]models.Professional
	availability  map[uint]map[int]models.Availability
	appointments  map[uint]models.Appointment
	nextID        uint
}

func (s *store) clone() *store {
	out := &store{
		professionals: make(map[uint]models.Professional, len(s.professionals)),
		availability:  make(map[uint]map[int]models.Availability, len(s.availability)),
		appointments:  make(map[uint]models.Appointment, len(s.appointments)),
		nextID:        s.nextID,
	}
	for k, v := range s.professionals {
		out.professionals[k] = v
	}
	for k, days := range s.availability {
		cp := make(map[int]models.Availability, len(days))
		for d, av := range days {
			cp[d] = av
		}
		out.availability[k] = cp
	}
	for k, v := range s.appointments {
		out.appointments[k] = v
	}
	return out
}

// fakeRepo keeps everything in memory. WithTx works on a copy that is
// swapped in only when fn succeeds, and transactions run one at a time.
type fakeRepo struct {
	mu   *sync.Mutex
	st   *store
	mode domain.OverlapMode
	inTx bool
}

func newFakeRepo(mode domain.OverlapMode) *fakeRepo {
	return &fakeRepo{
		mu: &sync.Mutex{},
		st: &store{
			professionals: map[uint]models.Professional{},
			availability:  map[uint]map[int]models.Availability{},
			appointments:  map[uint]models.Appointment{},
			nextID:        1,
		},
		mode: mode,
	}
}

func (r *fakeRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *fakeRepo) WithTx(_ context.Context, fn func(tx domain.Repository) error) error {
	defer r.lock()()

	tx := &fakeRepo{mu: r.mu, st: r.st.clone(), mode: r.mode, inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	*r.st = *tx.st
	return nil
}

// -------- seeding --------

func (r *fakeRepo) addProfessional(id, userID uint) {
	r.st.professionals[id] = models.Professional{ID: id, UserID: userID}
}

func (r *fakeRepo) addAvailability(professionalID uint, weekday time.Weekday, start, end string) {
	if r.st.availability[professionalID] == nil {
		r.st.availability[professionalID] = map[int]models.Availability{}
	}
	r.st.availability[professionalID][int(weekday)] = models.Availability{
		ProfessionalID: professionalID,
		Weekday:        int(weekday),
		StartTime:      start,
		EndTime:        end,
	}
}

func (r *fakeRepo) addAppointment(ap models.Appointment) uint {
	ap.ID = r.st.nextID
	r.st.nextID++
	if ap.Status == "" {
		ap.Status = string(domain.StatusScheduled)
	}
	r.st.appointments[ap.ID] = ap
	return ap.ID
}

// -------- domain.Repository --------

func (r *fakeRepo) LockProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	return r.GetProfessional(ctx, id)
}

func (r *fakeRepo) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	defer r.lock()()
	p, ok := r.st.professionals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) GetAvailability(_ context.Context, professionalID uint, weekday int) (*models.Availability, error) {
	defer r.lock()()
	av, ok := r.st.availability[professionalID][weekday]
	if !ok {
		return nil, nil
	}
	return &av, nil
}

func (r *fakeRepo) FindOverlapping(_ context.Context, professionalID uint, iv domain.Interval) ([]models.Appointment, error) {
	defer r.lock()()
	var out []models.Appointment
	for _, ap := range r.st.appointments {
		if ap.ProfessionalID != professionalID || !domain.IsActive(domain.Status(ap.Status)) {
			continue
		}
		if r.mode.Overlaps(domain.IntervalOf(&ap), iv) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	defer r.lock()()
	ap.ID = r.st.nextID
	r.st.nextID++
	r.st.appointments[ap.ID] = *ap
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	defer r.lock()()
	ap, ok := r.st.appointments[id]
	if !ok {
		return nil, nil
	}
	return &ap, nil
}

func (r *fakeRepo) TransitionAppointment(_ context.Context, ap *models.Appointment, from domain.Status) (bool, error) {
	defer r.lock()()
	cur, ok := r.st.appointments[ap.ID]
	if !ok || cur.Status != string(from) {
		return false, nil
	}
	r.st.appointments[ap.ID] = *ap
	return true, nil
}

func (r *fakeRepo) ListForProfessional(_ context.Context, professionalID uint, start, end time.Time) ([]models.Appointment, error) {
	defer r.lock()()
	var out []models.Appointment
	for _, ap := range r.st.appointments {
		if ap.ProfessionalID == professionalID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *fakeRepo) ListForClient(
	_ context.Context,
	clientID uint,
	now time.Time,
	upcoming bool,
	page pagination.Page,
) ([]models.Appointment, int64, error) {
	defer r.lock()()
	var out []models.Appointment
	for _, ap := range r.st.appointments {
		if ap.ClientID != clientID {
			continue
		}
		if upcoming == ap.EndTime.After(now) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	if !upcoming {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}

	total := int64(len(out))
	lo := page.Offset()
	if lo > len(out) {
		lo = len(out)
	}
	hi := lo + page.Size
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], total, nil
}

func (r *fakeRepo) ListExpired(_ context.Context, before time.Time, limit int) ([]models.Appointment, error) {
	defer r.lock()()
	var out []models.Appointment
	for _, ap := range r.st.appointments {
		if ap.Status == string(domain.StatusScheduled) && ap.EndTime.Before(before) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortByStart(apps []models.Appointment) {
	sort.Slice(apps, func(i, j int) bool {
		if apps[i].StartTime.Equal(apps[j].StartTime) {
			return apps[i].ID < apps[j].ID
		}
		return apps[i].StartTime.Before(apps[j].StartTime)
	})
}

var _ domain.Repository = (*fakeRepo)(nil)
