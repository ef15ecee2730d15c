package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

const uniqueActiveUserSlot = "uq_appointments_user_slot_active"

var columns = []string{
	"id",
	"booking_reference",
	"qr_code",
	"user_id",
	"service_id",
	"time_slot_id",
	"officer_id",
	"status",
	"appointment_date",
	"notes",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий приёмов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория приёмов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает приём.
// Вызывается внутри транзакции бронирования вместе с обновлением счётчика слота.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"booking_reference",
			"qr_code",
			"user_id",
			"service_id",
			"time_slot_id",
			"officer_id",
			"status",
			"appointment_date",
			"notes",
		).
		Values(
			appointment.BookingReference,
			appointment.QRCode,
			appointment.UserID,
			appointment.ServiceID,
			appointment.TimeSlotID,
			appointment.OfficerID,
			appointment.Status,
			appointment.AppointmentDate,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if dbmetrics.IsUniqueViolation(err, uniqueActiveUserSlot) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает приём по ID. Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return appointment, nil
}

// HasActiveForUserSlot есть ли у пользователя неотменённый приём на слот
func (r *Repository) HasActiveForUserSlot(ctx context.Context, userID, timeSlotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("appointments").
		Where(squirrel.Eq{"user_id": userID, "time_slot_id": timeSlotID}).
		Where(squirrel.NotEq{"status": domain.AppointmentCancelled}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForUserSlot - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveForUserSlot - execute select: %v", ErrExecQuery, err)
	}

	return true, nil
}

// ListByOfficersInRange приёмы указанных офицеров с appointment_date в [from, to)
func (r *Repository) ListByOfficersInRange(ctx context.Context, officerIDs []int64, from, to time.Time) ([]*domain.Appointment, error) {
	if len(officerIDs) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("appointments").
		Where(squirrel.Eq{"officer_id": officerIDs}).
		Where(squirrel.GtOrEq{"appointment_date": from}).
		Where(squirrel.Lt{"appointment_date": to}).
		OrderBy("appointment_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByOfficersInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOfficersInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var appointments []*domain.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOfficersInRange - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOfficersInRange - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus меняет статус приёма, офицера и время завершения
func (r *Repository) UpdateStatus(ctx context.Context, appointment *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", appointment.Status).
		Set("officer_id", appointment.OfficerID).
		Set("completed_at", appointment.CompletedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAppointmentNotFound
		}
		if dbmetrics.IsUniqueViolation(err, uniqueActiveUserSlot) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	appointment.UpdatedAt = updatedAt.Time
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		appointment          domain.Appointment
		officerID            sql.NullInt64
		notes                sql.NullString
		completedAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&appointment.ID,
		&appointment.BookingReference,
		&appointment.QRCode,
		&appointment.UserID,
		&appointment.ServiceID,
		&appointment.TimeSlotID,
		&officerID,
		&appointment.Status,
		&appointment.AppointmentDate,
		&notes,
		&completedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if officerID.Valid {
		appointment.OfficerID = &officerID.Int64
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}
	if completedAt.Valid {
		appointment.CompletedAt = &completedAt.Time
	}
	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}
