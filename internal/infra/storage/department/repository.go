package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий отделов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отделов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает отдел вместе с расписанием работы
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"code",
		"name",
		"address",
		"working_hours",
		"created_at",
		"updated_at",
	).
		From("departments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		department           domain.Department
		address              sql.NullString
		workingHours         []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&department.ID,
		&department.Code,
		&department.Name,
		&address,
		&workingHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	if len(workingHours) > 0 {
		if err := json.Unmarshal(workingHours, &department.WorkingHours); err != nil {
			return nil, fmt.Errorf("%w: department id=%d: %v", ErrInvalidWorkingHours, id, err)
		}
	}

	if address.Valid {
		department.Address = &address.String
	}
	department.CreatedAt = createdAt.Time
	department.UpdatedAt = updatedAt.Time

	return &department, nil
}
