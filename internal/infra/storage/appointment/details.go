package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

// detailsSelect приём вместе с пользователем, услугой, отделом, слотом и офицером
func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id", "a.booking_reference", "a.qr_code", "a.user_id", "a.service_id", "a.time_slot_id",
		"a.officer_id", "a.status", "a.appointment_date", "a.notes", "a.completed_at", "a.created_at", "a.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.phone",
		"s.id", "s.department_id", "s.code", "s.name", "s.description", "s.fee", "s.estimated_minutes", "s.required_documents", "s.is_active",
		"d.id", "d.code", "d.name", "d.address",
		"t.id", "t.department_id", "t.date", "t.start_time", "t.end_time", "t.max_bookings", "t.current_bookings", "t.status",
		"o.id", "o.department_id", "o.employee_id", "o.first_name", "o.last_name", "o.is_active",
	).
		From("appointments a").
		Join("users u ON u.id = a.user_id").
		Join("services s ON s.id = a.service_id").
		Join("departments d ON d.id = s.department_id").
		Join("time_slots t ON t.id = a.time_slot_id").
		LeftJoin("officers o ON o.id = a.officer_id")
}

// GetDetailsByID приём со всеми связанными сущностями
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("%w: GetDetailsByID - scan: %v", ErrScanRow, err)
	}

	return details, nil
}

// ListDetails приёмы по фильтру, по возрастанию даты приёма
func (r *Repository) ListDetails(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := detailsSelect().
		OrderBy("a.appointment_date ASC", "a.id ASC").
		Offset(filter.Skip).
		Limit(filter.Take)

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"a.user_id": *filter.UserID})
	}
	if filter.OfficerID != nil {
		builder = builder.Where(squirrel.Eq{"a.officer_id": *filter.OfficerID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDetails - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListDetails - scan row: %v", ErrScanRow, err)
		}
		result = append(result, details)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDetails - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func scanDetails(row rowScanner) (*domain.AppointmentDetails, error) {
	var (
		d                    domain.AppointmentDetails
		officerID            sql.NullInt64
		notes                sql.NullString
		completedAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
		userPhone            sql.NullString
		serviceDescription   sql.NullString
		departmentAddress    sql.NullString

		oID, oDepartmentID         sql.NullInt64
		oEmployeeID, oFirst, oLast sql.NullString
		oActive                    sql.NullBool
	)
	a := &d.Appointment

	err := row.Scan(
		&a.ID, &a.BookingReference, &a.QRCode, &a.UserID, &a.ServiceID, &a.TimeSlotID,
		&officerID, &a.Status, &a.AppointmentDate, &notes, &completedAt, &createdAt, &updatedAt,
		&d.User.ID, &d.User.Email, &d.User.FirstName, &d.User.LastName, &userPhone,
		&d.Service.ID, &d.Service.DepartmentID, &d.Service.Code, &d.Service.Name, &serviceDescription,
		&d.Service.Fee, &d.Service.EstimatedMinutes, pq.Array(&d.Service.RequiredDocuments), &d.Service.IsActive,
		&d.Department.ID, &d.Department.Code, &d.Department.Name, &departmentAddress,
		&d.TimeSlot.ID, &d.TimeSlot.DepartmentID, &d.TimeSlot.Date, &d.TimeSlot.StartTime, &d.TimeSlot.EndTime,
		&d.TimeSlot.MaxBookings, &d.TimeSlot.CurrentBookings, &d.TimeSlot.Status,
		&oID, &oDepartmentID, &oEmployeeID, &oFirst, &oLast, &oActive,
	)
	if err != nil {
		return nil, err
	}

	if officerID.Valid {
		a.OfficerID = &officerID.Int64
	}
	if notes.Valid {
		a.Notes = &notes.String
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	if userPhone.Valid {
		d.User.Phone = &userPhone.String
	}
	if serviceDescription.Valid {
		d.Service.Description = &serviceDescription.String
	}
	if departmentAddress.Valid {
		d.Department.Address = &departmentAddress.String
	}

	if oID.Valid {
		d.Officer = &domain.Officer{
			ID:           oID.Int64,
			DepartmentID: oDepartmentID.Int64,
			EmployeeID:   oEmployeeID.String,
			FirstName:    oFirst.String,
			LastName:     oLast.String,
			IsActive:     oActive.Bool,
		}
	}

	return &d, nil
}
