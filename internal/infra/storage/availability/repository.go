package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ConsultationService/pkg/psqlbuilder"
)

const table = "availability_slots"

var slotColumns = []string{
	"id",
	"counselor_id",
	"slot_date",
	"start_time",
	"end_time",
	"is_booked",
	"created_at",
}

// Repository репозиторий слотов доступности консультантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListOpenSlots возвращает незабронированные слоты по фильтру,
// отсортированные по дате и времени начала
func (r *Repository) ListOpenSlots(ctx context.Context, filter domain.SlotFilter) ([]domain.AvailabilitySlot, error) {
	filter.OnlyOpen = true
	return r.list(ctx, "ListOpenSlots", filter)
}

// ListByCounselorAndDate возвращает все слоты консультанта на дату, включая забронированные.
// Используется при объявлении доступности для отсева дублей.
func (r *Repository) ListByCounselorAndDate(ctx context.Context, counselorID uuid.UUID, date time.Time) ([]domain.AvailabilitySlot, error) {
	return r.list(ctx, "ListByCounselorAndDate", domain.SlotFilter{
		CounselorID: &counselorID,
		Date:        &date,
	})
}

// ListByCounselor возвращает слоты консультанта начиная с fromDate
func (r *Repository) ListByCounselor(ctx context.Context, counselorID uuid.UUID, fromDate time.Time) ([]domain.AvailabilitySlot, error) {
	return r.list(ctx, "ListByCounselor", domain.SlotFilter{
		CounselorID: &counselorID,
		FromDate:    &fromDate,
	})
}

func (r *Repository) list(ctx context.Context, op string, filter domain.SlotFilter) ([]domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).From(table)

	if filter.CounselorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"counselor_id": *filter.CounselorID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": dateArg(*filter.Date)})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": dateArg(*filter.FromDate)})
	}
	if filter.OnlyOpen {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_booked": false})
	}

	query, args, err := selectBuilder.
		OrderBy("slot_date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]domain.AvailabilitySlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}

// InsertSlots вставляет слоты одним запросом и возвращает число реально вставленных.
// Дубли по (counselor_id, slot_date, start_time) и пересечения (exclusion constraint)
// пропускаются через ON CONFLICT DO NOTHING.
func (r *Repository) InsertSlots(ctx context.Context, slots []domain.AvailabilitySlot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("counselor_id", "slot_date", "start_time", "end_time", "is_booked")
	for i := range slots {
		insertBuilder = insertBuilder.Values(
			slots[i].CounselorID,
			dateArg(slots[i].Date),
			slots[i].StartTime,
			slots[i].EndTime,
			false,
		)
	}

	query, args, err := insertBuilder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: InsertSlots - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertSlots - get rows affected: %v", ErrExecQuery, err)
	}

	return int(inserted), nil
}

// MarkBooked закрывает слот условным обновлением.
// Возвращает false, если слот уже забронирован или не существует: из конкурентных
// вызовов true получает ровно один.
func (r *Repository) MarkBooked(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_booked", true).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkBooked - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkBooked - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkBooked - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// DeleteSlot удаляет незабронированный слот.
// Если ни одна строка не удалена, повторным чтением различает ErrSlotBooked и ErrSlotNotFound.
func (r *Repository) DeleteSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "is_booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	slot, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if slot.IsBooked {
		return ErrSlotBooked
	}

	// слот появился между DELETE и SELECT, считаем что его не было
	return ErrSlotNotFound
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var (
		slot      domain.AvailabilitySlot
		createdAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.CounselorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	slot.Date = domain.NormalizeDate(slot.Date)
	slot.CreatedAt = createdAt.Time

	return &slot, nil
}

// dateArg передает дату строкой, чтобы сравнение с DATE не зависело от таймзоны сессии
func dateArg(t time.Time) string {
	return t.Format(domain.DateFormat)
}
