package search_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

type fakeSlotRepo struct {
	slots []domain.AvailabilitySlot
}

func (r *fakeSlotRepo) ListOpenSlots(_ context.Context, f domain.SlotFilter) ([]domain.AvailabilitySlot, error) {
	var out []domain.AvailabilitySlot
	for _, s := range r.slots {
		if s.IsBooked {
			continue
		}
		if f.CounselorID != nil && s.CounselorID != *f.CounselorID {
			continue
		}
		if f.Date != nil && !domain.SameDate(s.Date, *f.Date) {
			continue
		}
		if f.FromDate != nil && s.Date.Before(*f.FromDate) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	out := make(map[uuid.UUID]*domain.User)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context, role *domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

// readOnlyTx считает транзакции на чтение
type readOnlyTx struct {
	calls int
}

func (tx *readOnlyTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	slots    *fakeSlotRepo
	tx       *readOnlyTx
	alice    uuid.UUID
	bob      uuid.UUID
	formerly uuid.UUID
	ghost    uuid.UUID
}

func day(s string) time.Time {
	d, _ := domain.ParseDate(s)
	return d
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		alice:    uuid.New(),
		bob:      uuid.New(),
		formerly: uuid.New(),
		ghost:    uuid.New(),
	}

	users := &fakeUserRepo{users: map[uuid.UUID]*domain.User{
		f.alice:    {ID: f.alice, Name: "Alice", Role: domain.RoleCounselor},
		f.bob:      {ID: f.bob, Name: "Bob", Role: domain.RoleCounselor},
		f.formerly: {ID: f.formerly, Name: "Carol", Role: domain.RoleStudent},
	}}

	var all []domain.AvailabilitySlot
	add := func(counselor uuid.UUID, date string, start, end string, unit int) {
		gen, err := domain.GenerateSlots(counselor, day(date), types.TimeString(start), types.TimeString(end), unit)
		require.NoError(t, err)
		for _, s := range gen {
			s.ID = int64(len(all) + 1)
			all = append(all, s)
		}
	}

	add(f.bob, "2025-03-10", "13:00", "15:00", 60)
	add(f.alice, "2025-03-10", "09:00", "12:00", 60)
	add(f.alice, "2025-03-12", "10:00", "11:00", 60)
	add(f.alice, "2025-03-01", "10:00", "11:00", 60)
	add(f.formerly, "2025-03-10", "09:00", "10:00", 60)
	add(f.ghost, "2025-03-10", "09:00", "10:00", 60)

	f.slots = &fakeSlotRepo{slots: all}
	f.tx = &readOnlyTx{}
	f.uc = NewUseCase(f.slots, users, f.tx, time.UTC, nopLogger{})
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)}
	return f
}

func TestSearchByDate_GroupsByCounselor(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SearchByDate(context.Background(), domain.GuestSession(), day("2025-03-10"))
	require.NoError(t, err)

	require.Len(t, resp.Counselors, 2)
	assert.Equal(t, "Alice", resp.Counselors[0].Counselor.Name)
	assert.Equal(t, "Bob", resp.Counselors[1].Counselor.Name)

	require.Len(t, resp.Counselors[0].Slots, 3)
	assert.Equal(t, "09:00", resp.Counselors[0].Slots[0].StartTime.String())
	assert.Equal(t, "11:00", resp.Counselors[0].Slots[2].StartTime.String())
	assert.Len(t, resp.Counselors[1].Slots, 2)
}

func TestSearchByDate_PastDateIsEmpty(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SearchByDate(context.Background(), domain.GuestSession(), day("2025-03-01"))
	require.NoError(t, err)
	assert.Empty(t, resp.Counselors)
}

func TestSearchByDate_OmitsCounselorsWithoutOpenSlots(t *testing.T) {
	f := newFixture(t)
	for i := range f.slots.slots {
		if f.slots.slots[i].CounselorID == f.bob {
			f.slots.slots[i].IsBooked = true
		}
	}

	resp, err := f.uc.SearchByDate(context.Background(), domain.GuestSession(), day("2025-03-10"))
	require.NoError(t, err)
	require.Len(t, resp.Counselors, 1)
	assert.Equal(t, f.alice, resp.Counselors[0].Counselor.ID)
}

func TestSearchByCounselor_GroupsByDateFromToday(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.SearchByCounselor(context.Background(), domain.GuestSession(), f.alice)
	require.NoError(t, err)
	require.NotNil(t, resp.Counselor)

	require.Len(t, resp.Days, 2)
	assert.Equal(t, "2025-03-10", resp.Days[0].Date.Format(domain.DateFormat))
	assert.Equal(t, "2025-03-12", resp.Days[1].Date.Format(domain.DateFormat))
	assert.Len(t, resp.Days[0].Slots, 3)
}

func TestSearchByCounselor_ExcludesMissingOrDemotedCounselor(t *testing.T) {
	f := newFixture(t)

	for _, id := range []uuid.UUID{f.formerly, f.ghost} {
		resp, err := f.uc.SearchByCounselor(context.Background(), domain.GuestSession(), id)
		require.NoError(t, err)
		assert.Nil(t, resp.Counselor)
		assert.Empty(t, resp.Days)
	}
}

func TestSearch_ModesAgree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	type key struct {
		counselor uuid.UUID
		date      string
		start     string
	}

	fromDate := make(map[key]bool)
	for _, d := range []string{"2025-03-10", "2025-03-12"} {
		resp, err := f.uc.SearchByDate(ctx, domain.GuestSession(), day(d))
		require.NoError(t, err)
		for _, cs := range resp.Counselors {
			for _, s := range cs.Slots {
				fromDate[key{cs.Counselor.ID, d, s.StartTime.String()}] = true
			}
		}
	}

	fromCounselor := make(map[key]bool)
	for _, c := range []uuid.UUID{f.alice, f.bob, f.formerly, f.ghost} {
		resp, err := f.uc.SearchByCounselor(ctx, domain.GuestSession(), c)
		require.NoError(t, err)
		for _, ds := range resp.Days {
			for _, s := range ds.Slots {
				fromCounselor[key{c, ds.Date.Format(domain.DateFormat), s.StartTime.String()}] = true
			}
		}
	}

	assert.Equal(t, fromDate, fromCounselor)
}

func TestSearch_BookedSlotDisappearsFromBothModes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var middle *domain.AvailabilitySlot
	for i := range f.slots.slots {
		s := &f.slots.slots[i]
		if s.CounselorID == f.alice && s.Date.Equal(day("2025-03-10")) && s.StartTime == "10:00" {
			middle = s
		}
	}
	require.NotNil(t, middle)
	middle.IsBooked = true

	byDate, err := f.uc.SearchByDate(ctx, domain.GuestSession(), day("2025-03-10"))
	require.NoError(t, err)
	require.Equal(t, f.alice, byDate.Counselors[0].Counselor.ID)
	starts := []string{}
	for _, s := range byDate.Counselors[0].Slots {
		starts = append(starts, s.StartTime.String())
	}
	assert.Equal(t, []string{"09:00", "11:00"}, starts)

	byCounselor, err := f.uc.SearchByCounselor(ctx, domain.GuestSession(), f.alice)
	require.NoError(t, err)
	assert.Len(t, byCounselor.Days[0].Slots, 2)
}

func TestSearch_InvalidInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SearchByDate(context.Background(), domain.GuestSession(), time.Time{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.SearchByCounselor(context.Background(), domain.GuestSession(), uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_SkipsSlotsThatAlreadyStartedToday(t *testing.T) {
	f := newFixture(t)
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC)}
	ctx := context.Background()

	byDate, err := f.uc.SearchByDate(ctx, domain.GuestSession(), day("2025-03-10"))
	require.NoError(t, err)
	require.Len(t, byDate.Counselors, 2)
	assert.Equal(t, f.alice, byDate.Counselors[0].Counselor.ID)
	require.Len(t, byDate.Counselors[0].Slots, 1)
	assert.Equal(t, "11:00", byDate.Counselors[0].Slots[0].StartTime.String())
	assert.Len(t, byDate.Counselors[1].Slots, 2)

	byCounselor, err := f.uc.SearchByCounselor(ctx, domain.GuestSession(), f.alice)
	require.NoError(t, err)
	require.Len(t, byCounselor.Days, 2)
	require.Len(t, byCounselor.Days[0].Slots, 1)
	assert.Equal(t, "11:00", byCounselor.Days[0].Slots[0].StartTime.String())
}

func TestSearch_ReadsInOneReadOnlyTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.SearchByDate(ctx, domain.GuestSession(), day("2025-03-10"))
	require.NoError(t, err)
	_, err = f.uc.SearchByCounselor(ctx, domain.GuestSession(), f.alice)
	require.NoError(t, err)

	assert.Equal(t, 2, f.tx.calls)
}
