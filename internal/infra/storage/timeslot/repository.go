package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"department_id",
	"date",
	"start_time",
	"end_time",
	"max_bookings",
	"current_bookings",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий временных слотов (учёт ёмкости)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает слот по ID.
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы параллельные
// бронирования одного слота выполнялись последовательно.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTimeSlotNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return slot, nil
}

// UpdateBookings сохраняет новый счётчик и статус слота.
// Обновление условное: счётчик в БД должен быть равен expectedCurrent,
// а новое значение не может превысить max_bookings. Иначе ErrSlotNotAvailable.
func (r *Repository) UpdateBookings(ctx context.Context, slot *domain.TimeSlot, expectedCurrent int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("current_bookings", slot.CurrentBookings).
		Set("status", slot.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID, "current_bookings": expectedCurrent}).
		Where(squirrel.GtOrEq{"max_bookings": slot.CurrentBookings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBookings - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if dbmetrics.IsCheckViolation(err, "time_slots_capacity") {
			return ErrSlotNotAvailable
		}
		return fmt.Errorf("%w: UpdateBookings - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBookings - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// ListAvailable слоты отдела в [from, to), в которых есть свободные места и статус AVAILABLE.
// Отсортированы по времени начала.
func (r *Repository) ListAvailable(ctx context.Context, departmentID int64, from, to time.Time) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("time_slots").
		Where(squirrel.Eq{"department_id": departmentID, "status": domain.SlotAvailable}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		Where("current_bookings < max_bookings").
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// CreateBatch вставляет слоты; уже существующие (department_id, start_time) пропускаются.
// Возвращает только созданные слоты.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if len(slots) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("time_slots").
		Columns("department_id", "date", "start_time", "end_time", "max_bookings", "current_bookings", "status")

	for _, s := range slots {
		builder = builder.Values(s.DepartmentID, s.Date, s.StartTime, s.EndTime, s.MaxBookings, s.CurrentBookings, s.Status)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (department_id, start_time) DO NOTHING RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var (
		slot                 domain.TimeSlot
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&slot.ID,
		&slot.DepartmentID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.MaxBookings,
		&slot.CurrentBookings,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	var slots []*domain.TimeSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}
