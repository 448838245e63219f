package professional

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/professional"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

var errUniqueWeekday = errors.New("duplicate key value violates unique constraint idx_availability_professional_weekday")

type store struct {
	users         map[uint]models.User
	addresses     map[uint]models.Address
	professionals map[uint]models.Professional
	portfolios    map[uint]models.Portfolio // by professional id
	images        map[uint]models.PortfolioImage
	availability  map[uint][]models.Availability
	appointments  map[uint]models.Appointment
	nextID        uint
}

func (s *store) clone() *store {
	out := &store{
		users:         map[uint]models.User{},
		addresses:     map[uint]models.Address{},
		professionals: map[uint]models.Professional{},
		portfolios:    map[uint]models.Portfolio{},
		images:        map[uint]models.PortfolioImage{},
		availability:  map[uint][]models.Availability{},
		appointments:  map[uint]models.Appointment{},
		nextID:        s.nextID,
	}
	for k, v := range s.users {
		out.users[k] = v
	}
	for k, v := range s.addresses {
		out.addresses[k] = v
	}
	for k, v := range s.professionals {
		out.professionals[k] = v
	}
	for k, v := range s.portfolios {
		out.portfolios[k] = v
	}
	for k, v := range s.images {
		out.images[k] = v
	}
	for k, v := range s.availability {
		out.availability[k] = append([]models.Availability(nil), v...)
	}
	for k, v := range s.appointments {
		out.appointments[k] = v
	}
	return out
}

func (s *store) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

// fakeRepo is an in-memory domain.Repository. WithTx runs fn against a copy
// committed only when fn returns nil. fail maps a method name to the error
// it should return.
type fakeRepo struct {
	mu   *sync.Mutex
	st   *store
	fail map[string]error
	inTx bool

	// last professional id handed out, committed or not
	lastProfessionalID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		mu: &sync.Mutex{},
		st: &store{
			users:         map[uint]models.User{},
			addresses:     map[uint]models.Address{},
			professionals: map[uint]models.Professional{},
			portfolios:    map[uint]models.Portfolio{},
			images:        map[uint]models.PortfolioImage{},
			availability:  map[uint][]models.Availability{},
			appointments:  map[uint]models.Appointment{},
			nextID:        1,
		},
		fail: map[string]error{},
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

	tx := &fakeRepo{mu: r.mu, st: r.st.clone(), fail: r.fail, inTx: true}
	err := fn(tx)
	if tx.lastProfessionalID != 0 {
		r.lastProfessionalID = tx.lastProfessionalID
	}
	// sequences survive rollbacks
	r.st.nextID = tx.st.nextID
	if err != nil {
		return err
	}
	*r.st = *tx.st
	return nil
}

// -------- seeding --------

func (r *fakeRepo) addUser(name string) uint {
	id := r.st.id()
	r.st.users[id] = models.User{ID: id, Name: name, Role: models.RoleClient}
	return id
}

func (r *fakeRepo) addAddress(userID uint) uint {
	id := r.st.id()
	r.st.addresses[id] = models.Address{ID: id, UserID: userID, Street: "Rua XV", City: "Blumenau", State: "SC"}
	return id
}

// -------- collaborators --------

func (r *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	defer r.lock()()
	u, ok := r.st.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeRepo) GetAddress(_ context.Context, id uint) (*models.Address, error) {
	defer r.lock()()
	a, ok := r.st.addresses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeRepo) UpdateUserRole(_ context.Context, userID uint, role string) error {
	defer r.lock()()
	u := r.st.users[userID]
	u.Role = role
	r.st.users[userID] = u
	return nil
}

// -------- professional --------

func (r *fakeRepo) ExistsByUser(_ context.Context, userID uint) (bool, error) {
	defer r.lock()()
	for _, p := range r.st.professionals {
		if p.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) CreateProfessional(_ context.Context, p *models.Professional) error {
	defer r.lock()()
	if err := r.fail["CreateProfessional"]; err != nil {
		return err
	}
	for _, existing := range r.st.professionals {
		if existing.UserID == p.UserID {
			return httperr.ErrConflict(httperr.CodeDuplicateProfile)
		}
	}
	p.ID = r.st.id()
	r.lastProfessionalID = p.ID
	r.st.professionals[p.ID] = *p
	return nil
}

func (r *fakeRepo) GetProfessional(_ context.Context, id uint) (*models.Professional, error) {
	defer r.lock()()
	p, ok := r.st.professionals[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) GetProfessionalByUser(_ context.Context, userID uint) (*models.Professional, error) {
	defer r.lock()()
	for _, p := range r.st.professionals {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ListProfessionals(_ context.Context, page pagination.Page) ([]models.Professional, int64, error) {
	defer r.lock()()
	out := make([]models.Professional, 0, len(r.st.professionals))
	for _, p := range r.st.professionals {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	total := int64(len(out))
	lo := min(page.Offset(), len(out))
	hi := min(lo+page.Size, len(out))
	return out[lo:hi], total, nil
}

func (r *fakeRepo) DeleteProfessional(_ context.Context, id uint) error {
	defer r.lock()()
	delete(r.st.professionals, id)
	return nil
}

func (r *fakeRepo) CancelOpenAppointments(_ context.Context, professionalID uint, at time.Time) (int64, error) {
	defer r.lock()()
	if err := r.fail["CancelOpenAppointments"]; err != nil {
		return 0, err
	}
	var n int64
	for id, ap := range r.st.appointments {
		if ap.ProfessionalID != professionalID || ap.Status != string(appointment.StatusScheduled) || !ap.EndTime.After(at) {
			continue
		}
		ap.Status = string(appointment.StatusCancelled)
		ap.CancelledAt = &at
		r.st.appointments[id] = ap
		n++
	}
	return n, nil
}

// -------- portfolio --------

func (r *fakeRepo) CreatePortfolio(_ context.Context, p *models.Portfolio) error {
	defer r.lock()()
	if err := r.fail["CreatePortfolio"]; err != nil {
		return err
	}
	p.ID = r.st.id()
	r.st.portfolios[p.ProfessionalID] = *p
	return nil
}

func (r *fakeRepo) GetPortfolio(_ context.Context, professionalID uint) (*models.Portfolio, error) {
	defer r.lock()()
	p, ok := r.st.portfolios[professionalID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *fakeRepo) DeletePortfolio(_ context.Context, professionalID uint) error {
	defer r.lock()()
	delete(r.st.portfolios, professionalID)
	return nil
}

func (r *fakeRepo) AddPortfolioImage(_ context.Context, img *models.PortfolioImage) error {
	defer r.lock()()
	if err := r.fail["AddPortfolioImage"]; err != nil {
		return err
	}
	img.ID = r.st.id()
	r.st.images[img.ID] = *img
	return nil
}

func (r *fakeRepo) ListPortfolioImages(_ context.Context, portfolioID uint) ([]models.PortfolioImage, error) {
	defer r.lock()()
	var out []models.PortfolioImage
	for _, img := range r.st.images {
		if img.PortfolioID == portfolioID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRepo) DeletePortfolioImages(_ context.Context, portfolioID uint) error {
	defer r.lock()()
	for id, img := range r.st.images {
		if img.PortfolioID == portfolioID {
			delete(r.st.images, id)
		}
	}
	return nil
}

// -------- availability --------

func (r *fakeRepo) ReplaceAvailability(_ context.Context, professionalID uint, set []models.Availability) error {
	defer r.lock()()
	if err := r.fail["ReplaceAvailability"]; err != nil {
		return err
	}
	seen := map[int]bool{}
	for _, av := range set {
		if seen[av.Weekday] {
			return errUniqueWeekday
		}
		seen[av.Weekday] = true
	}
	if len(set) == 0 {
		delete(r.st.availability, professionalID)
		return nil
	}
	r.st.availability[professionalID] = append([]models.Availability(nil), set...)
	return nil
}

func (r *fakeRepo) ListAvailability(_ context.Context, professionalID uint) ([]models.Availability, error) {
	defer r.lock()()
	return append([]models.Availability(nil), r.st.availability[professionalID]...), nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// memStore is an in-memory storage.ObjectStore.
type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut error
}

func newMemStore() *memStore {
	return &memStore{objects: map[string][]byte{}}
}

func (m *memStore) Put(_ context.Context, key, _ string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failPut != nil {
		return m.failPut
	}
	m.objects[key] = body
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStore) URL(key string) string {
	return "https://cdn.test/" + key
}
