package appointment

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedrohFolster/inkspiration/internal/audit"
	domain "github.com/PedrohFolster/inkspiration/internal/domain/appointment"
	"github.com/PedrohFolster/inkspiration/internal/httperr"
	"github.com/PedrohFolster/inkspiration/internal/models"
	"github.com/PedrohFolster/inkspiration/internal/pagination"
)

const (
	profID     uint = 1
	profUserID uint = 100
	clientID   uint = 200
)

var (
	studio = time.FixedZone("BRT", -3*60*60)
	// Monday
	bookingDay = time.Date(2026, 11, 2, 0, 0, 0, 0, studio)
	fixedNow   = time.Date(2026, 10, 19, 12, 0, 0, 0, studio)
)

func at(hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		panic(err)
	}
	return bookingDay.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
}

type recordingSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
	return nil
}

func setup(t *testing.T, mode domain.OverlapMode) (*fakeRepo, *CreateAppointment) {
	t.Helper()
	repo := newFakeRepo(mode)
	repo.addProfessional(profID, profUserID)
	repo.addAvailability(profID, time.Monday, "09:00", "18:00")

	uc := NewCreateAppointment(repo, nil, studio)
	uc.now = func() time.Time { return fixedNow }
	return repo, uc
}

func book(uc *CreateAppointment, start, end string) (*models.Appointment, error) {
	return uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: profID,
		ClientID:       clientID,
		Start:          at(start),
		End:            at(end),
		Service:        "fine line",
	})
}

// ======================================================
// Booking
// ======================================================

func TestCreate_RejectsOverlap(t *testing.T) {
	_, uc := setup(t, domain.OverlapStrict)

	a, err := book(uc, "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusScheduled), a.Status)
	assert.NotZero(t, a.ID)

	_, err = book(uc, "10:30", "11:30")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict), err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
}

func TestCreate_StrictBoundaries(t *testing.T) {
	t.Run("candidate after existing", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapStrict)
		_, err := book(uc, "10:00", "11:00")
		require.NoError(t, err)

		_, err = book(uc, "11:00", "12:00")
		assert.NoError(t, err)
	})

	t.Run("candidate before existing", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapStrict)
		_, err := book(uc, "11:00", "12:00")
		require.NoError(t, err)

		_, err = book(uc, "10:00", "11:00")
		assert.NoError(t, err)
	})

	t.Run("candidate nested in existing", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapStrict)
		_, err := book(uc, "10:00", "13:00")
		require.NoError(t, err)

		_, err = book(uc, "11:00", "12:00")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict))
	})
}

func TestCreate_LegacyBoundaries(t *testing.T) {
	t.Run("candidate after existing", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapLegacy)
		_, err := book(uc, "10:00", "11:00")
		require.NoError(t, err)

		_, err = book(uc, "11:00", "12:00")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict))
	})

	t.Run("candidate before existing", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapLegacy)
		_, err := book(uc, "11:00", "12:00")
		require.NoError(t, err)

		_, err = book(uc, "10:00", "11:00")
		assert.True(t, httperr.IsBusiness(err, httperr.CodeScheduleConflict))
	})

	t.Run("candidate nested in existing is missed", func(t *testing.T) {
		_, uc := setup(t, domain.OverlapLegacy)
		_, err := book(uc, "10:00", "13:00")
		require.NoError(t, err)

		_, err = book(uc, "11:00", "12:00")
		assert.NoError(t, err)
	})
}

func TestCreate_InactiveAppointmentsDoNotBlock(t *testing.T) {
	repo, uc := setup(t, domain.OverlapStrict)
	repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: 300,
		StartTime: at("10:00"), EndTime: at("11:00"),
		Status: string(domain.StatusCancelled),
	})

	_, err := book(uc, "10:00", "11:00")
	assert.NoError(t, err)
}

func TestCreate_OtherProfessionalDoesNotBlock(t *testing.T) {
	repo, uc := setup(t, domain.OverlapStrict)
	repo.addAppointment(models.Appointment{
		ProfessionalID: 2, ClientID: 300,
		StartTime: at("10:00"), EndTime: at("11:00"),
	})

	_, err := book(uc, "10:00", "11:00")
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	cases := []struct {
		name  string
		in    CreateAppointmentInput
		field string
	}{
		{"zero length", CreateAppointmentInput{ProfessionalID: profID, ClientID: clientID, Start: at("10:00"), End: at("10:00")}, "end"},
		{"reversed", CreateAppointmentInput{ProfessionalID: profID, ClientID: clientID, Start: at("11:00"), End: at("10:00")}, "end"},
		{"past", CreateAppointmentInput{ProfessionalID: profID, ClientID: clientID, Start: fixedNow.Add(-2 * time.Hour), End: fixedNow.Add(-time.Hour)}, "start"},
		{"self booking", CreateAppointmentInput{ProfessionalID: profID, ClientID: profUserID, Start: at("10:00"), End: at("11:00")}, "client_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, uc := setup(t, domain.OverlapStrict)
			_, err := uc.Execute(context.Background(), tc.in)

			be, ok := httperr.As(err)
			require.True(t, ok, err)
			assert.Equal(t, httperr.KindInvalidArgument, be.Kind)
			assert.Equal(t, tc.field, be.Field)
		})
	}
}

func TestCreate_OutsideAvailability(t *testing.T) {
	_, uc := setup(t, domain.OverlapStrict)

	_, err := book(uc, "17:30", "18:30")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))

	_, err = uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: profID,
		ClientID:       clientID,
		Start:          at("10:00").AddDate(0, 0, 1),
		End:            at("11:00").AddDate(0, 0, 1),
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeOutsideAvailability))
}

func TestCreate_UnknownProfessional(t *testing.T) {
	_, uc := setup(t, domain.OverlapStrict)

	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ProfessionalID: 99,
		ClientID:       clientID,
		Start:          at("10:00"),
		End:            at("11:00"),
	})
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))
}

func TestCreate_ConcurrentOverlappingBookings(t *testing.T) {
	_, uc := setup(t, domain.OverlapStrict)

	var (
		wg        sync.WaitGroup
		succeeded int32
		conflicts int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := book(uc, "14:00", "15:00")
			switch {
			case err == nil:
				atomic.AddInt32(&succeeded, 1)
			case httperr.IsBusiness(err, httperr.CodeScheduleConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded)
	assert.Equal(t, int32(15), conflicts)
}

func TestCreate_AuditsConflicts(t *testing.T) {
	repo, _ := setup(t, domain.OverlapStrict)
	sink := &recordingSink{}
	d := audit.NewDispatcher(sink, nil)

	uc := NewCreateAppointment(repo, d, studio)
	uc.now = func() time.Time { return fixedNow }

	_, err := book(uc, "10:00", "11:00")
	require.NoError(t, err)
	_, err = book(uc, "10:00", "11:00")
	require.Error(t, err)

	d.Close()
	assert.Equal(t, []string{"appointment_created", "appointment_conflict"}, sink.actions)
}

// ======================================================
// Conflict checker
// ======================================================

func TestHasConflict(t *testing.T) {
	repo, uc := setup(t, domain.OverlapStrict)
	_, err := book(uc, "10:00", "11:00")
	require.NoError(t, err)

	checker := NewHasConflict(repo)
	ctx := context.Background()

	got, err := checker.Execute(ctx, profID, at("10:30"), at("11:30"))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = checker.Execute(ctx, profID, at("11:00"), at("12:00"))
	require.NoError(t, err)
	assert.False(t, got)

	// zero-length interval inside an appointment is evaluated as given
	got, err = checker.Execute(ctx, profID, at("10:30"), at("10:30"))
	require.NoError(t, err)
	assert.True(t, got)

	_, err = checker.Execute(ctx, 42, at("10:00"), at("11:00"))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

// ======================================================
// Lifecycle
// ======================================================

func TestCancel(t *testing.T) {
	repo, create := setup(t, domain.OverlapStrict)
	ap, err := book(create, "10:00", "11:00")
	require.NoError(t, err)

	uc := NewCancelAppointment(repo, nil, studio)
	uc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	_, err = uc.Execute(ctx, 999, ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	cancelled, err := uc.Execute(ctx, clientID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = uc.Execute(ctx, profUserID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	_, err = uc.Execute(ctx, clientID, 999)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	// the slot is free again
	_, err = book(create, "10:00", "11:00")
	assert.NoError(t, err)
}

func TestComplete(t *testing.T) {
	repo, create := setup(t, domain.OverlapStrict)
	ap, err := book(create, "10:00", "11:00")
	require.NoError(t, err)

	uc := NewCompleteAppointment(repo, nil, studio)
	ctx := context.Background()

	_, err = uc.Execute(ctx, clientID, ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	done, err := uc.Execute(ctx, profUserID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), done.Status)

	stored, _ := repo.GetAppointment(ctx, ap.ID)
	assert.Equal(t, string(domain.StatusCompleted), stored.Status)
}

func TestGetAppointment_AfterProfessionalIsGone(t *testing.T) {
	repo, create := setup(t, domain.OverlapStrict)
	ap, err := book(create, "10:00", "11:00")
	require.NoError(t, err)

	delete(repo.st.professionals, profID)

	uc := NewGetAppointment(repo)
	got, err := uc.Execute(context.Background(), clientID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.ID, got.ID)

	_, err = uc.Execute(context.Background(), profUserID, ap.ID)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))
}

func TestCompleteExpired(t *testing.T) {
	repo := newFakeRepo(domain.OverlapStrict)
	past := fixedNow.Add(-48 * time.Hour)

	for i := 0; i < expiredBatchSize+5; i++ {
		repo.addAppointment(models.Appointment{
			ProfessionalID: profID, ClientID: clientID,
			StartTime: past.Add(time.Duration(i) * time.Minute),
			EndTime:   past.Add(time.Duration(i+1) * time.Minute),
		})
	}
	future := repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: fixedNow.Add(time.Hour), EndTime: fixedNow.Add(2 * time.Hour),
	})
	cancelled := repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: past, EndTime: past.Add(time.Hour),
		Status: string(domain.StatusCancelled),
	})

	uc := NewCompleteExpired(repo, nil, studio)
	uc.now = func() time.Time { return fixedNow }

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expiredBatchSize+5, n)

	assert.Equal(t, string(domain.StatusScheduled), repo.st.appointments[future].Status)
	assert.Equal(t, string(domain.StatusCancelled), repo.st.appointments[cancelled].Status)

	n, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

// cancelDuringSweep calls between once the sweep has read its first batch.
type cancelDuringSweep struct {
	*fakeRepo
	once    sync.Once
	between func()
}

func (r *cancelDuringSweep) ListExpired(ctx context.Context, before time.Time, limit int) ([]models.Appointment, error) {
	out, err := r.fakeRepo.ListExpired(ctx, before, limit)
	r.once.Do(r.between)
	return out, err
}

func TestCompleteExpired_KeepsCancellationThatLandsMidSweep(t *testing.T) {
	repo := newFakeRepo(domain.OverlapStrict)
	repo.addProfessional(profID, profUserID)
	past := fixedNow.Add(-2 * time.Hour)

	raced := repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: past, EndTime: past.Add(time.Hour),
	})
	other := repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: past.Add(-3 * time.Hour), EndTime: past.Add(-2 * time.Hour),
	})

	cancel := NewCancelAppointment(repo, nil, studio)
	wrapped := &cancelDuringSweep{fakeRepo: repo, between: func() {
		_, err := cancel.Execute(context.Background(), clientID, raced)
		require.NoError(t, err)
	}}

	uc := NewCompleteExpired(wrapped, nil, studio)
	uc.now = func() time.Time { return fixedNow }

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, string(domain.StatusCancelled), repo.st.appointments[raced].Status)
	assert.Nil(t, repo.st.appointments[raced].CompletedAt)
	assert.Equal(t, string(domain.StatusCompleted), repo.st.appointments[other].Status)
}

// staleReads serves a fixed copy of the appointment, as a reader that lost a
// race would see it.
type staleReads struct {
	domain.Repository
	snapshot models.Appointment
}

func (s staleReads) GetAppointment(context.Context, uint) (*models.Appointment, error) {
	ap := s.snapshot
	return &ap, nil
}

func (s staleReads) WithTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	return s.Repository.WithTx(ctx, func(tx domain.Repository) error {
		return fn(staleReads{Repository: tx, snapshot: s.snapshot})
	})
}

func TestComplete_DoesNotOverwriteConcurrentCancel(t *testing.T) {
	repo := newFakeRepo(domain.OverlapStrict)
	repo.addProfessional(profID, profUserID)
	id := repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: at("10:00"), EndTime: at("11:00"),
	})
	snapshot := repo.st.appointments[id]

	_, err := NewCancelAppointment(repo, nil, studio).Execute(context.Background(), clientID, id)
	require.NoError(t, err)

	complete := NewCompleteAppointment(staleReads{Repository: repo, snapshot: snapshot}, nil, studio)
	_, err = complete.Execute(context.Background(), profUserID, id)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState), err)
	assert.Equal(t, string(domain.StatusCancelled), repo.st.appointments[id].Status)
}

// ======================================================
// Queries
// ======================================================

func TestGetSlots(t *testing.T) {
	repo := newFakeRepo(domain.OverlapStrict)
	repo.addProfessional(profID, profUserID)
	repo.addAvailability(profID, time.Monday, "09:00", "13:00")
	repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: at("10:00"), EndTime: at("11:00"),
	})
	repo.addAppointment(models.Appointment{
		ProfessionalID: profID, ClientID: clientID,
		StartTime: at("11:00"), EndTime: at("12:00"),
		Status: string(domain.StatusCancelled),
	})

	uc := NewGetSlots(repo, domain.OverlapStrict, studio)
	ctx := context.Background()

	slots, err := uc.Execute(ctx, domain.SlotsInput{ProfessionalID: profID, Date: bookingDay, Duration: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "10:00"},
		{Start: "11:00", End: "12:00"},
		{Start: "12:00", End: "13:00"},
	}, slots)

	slots, err = uc.Execute(ctx, domain.SlotsInput{ProfessionalID: profID, Date: bookingDay.AddDate(0, 0, 1), Duration: time.Hour})
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = uc.Execute(ctx, domain.SlotsInput{ProfessionalID: profID, Date: bookingDay})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))
}

func TestListProfessionalAppointments(t *testing.T) {
	repo, create := setup(t, domain.OverlapStrict)
	_, err := book(create, "10:00", "11:00")
	require.NoError(t, err)
	_, err = book(create, "12:00", "13:00")
	require.NoError(t, err)

	uc := NewListProfessionalAppointments(repo)
	ctx := context.Background()

	out, err := uc.Execute(ctx, profID, bookingDay, bookingDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].StartTime.Before(out[1].StartTime))

	_, err = uc.Execute(ctx, profID, bookingDay, bookingDay)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))

	_, err = uc.Execute(ctx, 77, bookingDay, bookingDay.AddDate(0, 0, 1))
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestListClientAppointments(t *testing.T) {
	repo := newFakeRepo(domain.OverlapStrict)
	for i := 1; i <= 3; i++ {
		repo.addAppointment(models.Appointment{
			ProfessionalID: profID, ClientID: clientID,
			StartTime: fixedNow.Add(time.Duration(i) * 24 * time.Hour),
			EndTime:   fixedNow.Add(time.Duration(i)*24*time.Hour + time.Hour),
		})
		repo.addAppointment(models.Appointment{
			ProfessionalID: profID, ClientID: clientID,
			StartTime: fixedNow.Add(-time.Duration(i) * 24 * time.Hour),
			EndTime:   fixedNow.Add(-time.Duration(i)*24*time.Hour + time.Hour),
		})
	}

	uc := NewListClientAppointments(repo, studio)
	uc.now = func() time.Time { return fixedNow }
	ctx := context.Background()

	upcoming, err := uc.Execute(ctx, clientID, true, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), upcoming.Total)
	require.Len(t, upcoming.Items, 2)
	assert.True(t, upcoming.Items[0].StartTime.Before(upcoming.Items[1].StartTime))

	past, err := uc.Execute(ctx, clientID, false, pagination.New(1, 10))
	require.NoError(t, err)
	require.Len(t, past.Items, 3)
	assert.True(t, past.Items[0].StartTime.After(past.Items[1].StartTime))

	none, err := uc.Execute(ctx, 555, true, pagination.New(1, 10))
	require.NoError(t, err)
	assert.NotNil(t, none.Items)
	assert.Empty(t, none.Items)
}
