package consultation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func pending() *domain.Consultation {
	return &domain.Consultation{
		StudentID:    uuid.New(),
		CounselorID:  uuid.New(),
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00"),
		EndTime:      types.TimeString("11:00"),
		Status:       domain.StatusPending,
		SourceSlotID: 2,
	}
}

func TestCreate_ReturnsGeneratedID(t *testing.T) {
	repo, mock := newRepo(t)
	c := pending()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO consultations .* RETURNING id, created_at, updated_at`).
		WithArgs(c.StudentID.String(), c.CounselorID.String(), "2025-03-10", "10:00", "11:00", "pending", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(11), now, now))

	created, err := repo.Create(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateSourceSlot(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO consultations`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "consultations_source_slot_uidx"})

	_, err := repo.Create(context.Background(), pending())
	assert.ErrorIs(t, err, ErrSlotAlreadyUsed)
}

func TestCreate_OtherFailure(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO consultations`).WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), pending())
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestTransitionFromPending(t *testing.T) {
	c := pending()
	now := time.Now()

	t.Run("accepted", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`UPDATE consultations SET status = \$1, video_token = \$2, updated_at = NOW\(\), resolved_at = NOW\(\) WHERE id = \$3 AND status = \$4 RETURNING`).
			WithArgs("accepted", "tok", int64(11), "pending").
			WillReturnRows(sqlmock.NewRows(consultationColumns).AddRow(
				int64(11), c.StudentID.String(), c.CounselorID.String(), c.Date, "10:00:00", "11:00:00",
				"accepted", "tok", int64(2), now, now, now,
			))

		updated, err := repo.TransitionFromPending(context.Background(), 11, domain.StatusAccepted, ptr.Ptr("tok"))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepted, updated.Status)
		require.NotNil(t, updated.VideoToken)
		assert.Equal(t, "tok", *updated.VideoToken)
		require.NotNil(t, updated.ResolvedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not pending", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(`UPDATE consultations`).WillReturnRows(sqlmock.NewRows(consultationColumns))

		_, err := repo.TransitionFromPending(context.Background(), 11, domain.StatusRejected, nil)
		assert.ErrorIs(t, err, ErrNotPending)
	})
}

func TestListByStudent(t *testing.T) {
	repo, mock := newRepo(t)
	c := pending()
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM consultations WHERE student_id = \$1 ORDER BY slot_date DESC, start_time DESC`).
		WithArgs(c.StudentID.String()).
		WillReturnRows(sqlmock.NewRows(consultationColumns).AddRow(
			int64(11), c.StudentID.String(), c.CounselorID.String(), c.Date, "10:00:00", "11:00:00",
			"pending", nil, int64(2), now, now, nil,
		))

	list, err := repo.ListByStudent(context.Background(), c.StudentID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].VideoToken)
	assert.Nil(t, list[0].ResolvedAt)
	assert.Equal(t, c.CounselorID, list[0].CounselorID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_NewestFirst(t *testing.T) {
	repo, mock := newRepo(t)
	c := pending()
	now := time.Now()
	earlier := c.Date.AddDate(0, 0, -3)

	mock.ExpectQuery(`SELECT .* FROM consultations ORDER BY slot_date DESC, start_time DESC`).
		WillReturnRows(sqlmock.NewRows(consultationColumns).
			AddRow(int64(12), c.StudentID.String(), c.CounselorID.String(), c.Date, "10:00:00", "11:00:00",
				"rejected", nil, int64(3), now, now, now).
			AddRow(int64(11), c.StudentID.String(), c.CounselorID.String(), earlier, "09:00:00", "10:00:00",
				"pending", nil, int64(2), now, now, nil))

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(12), list[0].ID)
	assert.Equal(t, domain.StatusRejected, list[0].Status)
	require.NotNil(t, list[0].ResolvedAt)
	assert.Equal(t, "2025-03-07", list[1].Date.Format(domain.DateFormat))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListAll_QueryFailure(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(`SELECT .* FROM consultations`).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrExecQuery)
}
