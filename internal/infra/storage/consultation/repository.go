package consultation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const (
	table = "consultations"

	uniqueViolation = "23505"
)

var consultationColumns = []string{
	"id",
	"student_id",
	"counselor_id",
	"slot_date",
	"start_time",
	"end_time",
	"status",
	"video_token",
	"source_slot_id",
	"created_at",
	"updated_at",
	"resolved_at",
}

// Repository репозиторий консультаций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория консультаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает консультацию.
// Если в контексте передана активная транзакция, использует её: при бронировании
// вставка идет в одной транзакции с закрытием слота.
func (r *Repository) Create(ctx context.Context, c *domain.Consultation) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"student_id",
			"counselor_id",
			"slot_date",
			"start_time",
			"end_time",
			"status",
			"source_slot_id",
		).
		Values(
			c.StudentID,
			c.CounselorID,
			c.Date.Format(domain.DateFormat),
			c.StartTime,
			c.EndTime,
			c.Status,
			c.SourceSlotID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotAlreadyUsed
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает консультацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(consultationColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanConsultation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListByStudent консультации студента, новые сверху
func (r *Repository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.Consultation, error) {
	return r.list(ctx, "ListByStudent", squirrel.Eq{"student_id": studentID})
}

// ListByCounselor консультации консультанта, новые сверху
func (r *Repository) ListByCounselor(ctx context.Context, counselorID uuid.UUID) ([]*domain.Consultation, error) {
	return r.list(ctx, "ListByCounselor", squirrel.Eq{"counselor_id": counselorID})
}

// ListAll все консультации для администратора, новые сверху
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Consultation, error) {
	return r.list(ctx, "ListAll", nil)
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(consultationColumns...).From(table)
	if len(where) > 0 {
		builder = builder.Where(where)
	}

	query, args, err := builder.
		OrderBy("slot_date DESC", "start_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	consultations := make([]*domain.Consultation, 0)
	for rows.Next() {
		c, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan consultation: %v", ErrScanRow, op, err)
		}
		consultations = append(consultations, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return consultations, nil
}

// TransitionFromPending переводит консультацию из pending в target условным обновлением.
// Если консультация уже не pending (или не существует), возвращает ErrNotPending:
// из двух конкурентных переходов успешен только один.
func (r *Repository) TransitionFromPending(ctx context.Context, id int64, target domain.ConsultationStatus, videoToken *string) (*domain.Consultation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", target).
		Set("video_token", videoToken).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionFromPending - build update query: %v", ErrBuildQuery, err)
	}

	c, err := scanConsultation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotPending
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: TransitionFromPending - duplicate video token: %v", ErrExecQuery, err)
		}
		return nil, fmt.Errorf("%w: TransitionFromPending - scan consultation: %v", ErrScanRow, err)
	}

	return c, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*domain.Consultation, error) {
	var (
		c                    domain.Consultation
		videoToken           sql.NullString
		createdAt, updatedAt sql.NullTime
		resolvedAt           sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&c.StudentID,
		&c.CounselorID,
		&c.Date,
		&c.StartTime,
		&c.EndTime,
		&c.Status,
		&videoToken,
		&c.SourceSlotID,
		&createdAt,
		&updatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Date = domain.NormalizeDate(c.Date)
	if videoToken.Valid {
		token := videoToken.String
		c.VideoToken = &token
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
	if resolvedAt.Valid {
		resolved := resolvedAt.Time
		c.ResolvedAt = &resolved
	}

	return &c, nil
}

func returningColumns() string {
	return strings.Join(consultationColumns, ", ")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
