package rating

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	domain "github.com/PedrohFolster/inkspiration/internal/domain/rating"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

type store struct {
	appointments  map[uint]models.Appointment
	professionals map[uint]models.Professional
	ratings       map[uint]models.Rating
	nextID        uint
}

func (s *store) clone() *store {
	out := &store{
		appointments:  map[uint]models.Appointment{},
		professionals: map[uint]models.Professional{},
		ratings:       map[uint]models.Rating{},
		nextID:        s.nextID,
	}
	for k, v := range s.appointments {
		out.appointments[k] = v
	}
	for k, v := range s.professionals {
		out.professionals[k] = v
	}
	for k, v := range s.ratings {
		out.ratings[k] = v
	}
	return out
}

type fakeRepo struct {
	mu   *sync.Mutex
	st   *store
	inTx bool

	// skipExistsCheck makes ExistsForAppointment lie, so the unique index
	// is the only guard left.
	skipExistsCheck bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		mu: &sync.Mutex{},
		st: &store{
			appointments:  map[uint]models.Appointment{},
			professionals: map[uint]models.Professional{},
			ratings:       map[uint]models.Rating{},
			nextID:        1,
		},
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

	tx := &fakeRepo{mu: r.mu, st: r.st.clone(), inTx: true, skipExistsCheck: r.skipExistsCheck}
	err := fn(tx)
	r.st.nextID = tx.st.nextID
	if err != nil {
		return err
	}
	*r.st = *tx.st
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

func (r *fakeRepo) LockProfessional(_ context.Context, id uint) (*models.Professional, error) {
	defer r.lock()()
	p, ok := r.st.professionals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) ScoreTotals(_ context.Context, professionalID uint) (int64, int64, error) {
	defer r.lock()()
	var sum, count int64
	for _, rt := range r.st.ratings {
		if rt.ProfessionalID == professionalID {
			sum += int64(rt.Score)
			count++
		}
	}
	return sum, count, nil
}

func (r *fakeRepo) UpdateProfessionalRating(_ context.Context, id uint, avg decimal.Decimal, count int) error {
	defer r.lock()()
	p := r.st.professionals[id]
	p.Rating = avg
	p.RatingsCount = count
	r.st.professionals[id] = p
	return nil
}

func (r *fakeRepo) ExistsForAppointment(_ context.Context, appointmentID uint) (bool, error) {
	defer r.lock()()
	if r.skipExistsCheck {
		return false, nil
	}
	for _, rt := range r.st.ratings {
		if rt.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateRating(_ context.Context, rt *models.Rating) error {
	defer r.lock()()
	for _, existing := range r.st.ratings {
		if existing.AppointmentID == rt.AppointmentID {
			return httperr.ErrConflict(httperr.CodeAlreadyRated)
		}
	}
	rt.ID = r.st.nextID
	r.st.nextID++
	r.st.ratings[rt.ID] = *rt
	return nil
}

func (r *fakeRepo) GetRating(_ context.Context, id uint) (*models.Rating, error) {
	defer r.lock()()
	rt, ok := r.st.ratings[id]
	if !ok {
		return nil, nil
	}
	return &rt, nil
}

func (r *fakeRepo) ListByProfessional(_ context.Context, professionalID uint, page pagination.Page) ([]models.Rating, int64, error) {
	return r.list(func(rt models.Rating) bool { return rt.ProfessionalID == professionalID }, page)
}

func (r *fakeRepo) ListByClient(_ context.Context, clientID uint, page pagination.Page) ([]models.Rating, int64, error) {
	return r.list(func(rt models.Rating) bool { return rt.ClientID == clientID }, page)
}

func (r *fakeRepo) list(keep func(models.Rating) bool, page pagination.Page) ([]models.Rating, int64, error) {
	defer r.lock()()
	var out []models.Rating
	for _, rt := range r.st.ratings {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	total := int64(len(out))
	lo := min(page.Offset(), len(out))
	hi := min(lo+page.Size, len(out))
	return out[lo:hi], total, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
