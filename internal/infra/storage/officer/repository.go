package officer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"department_id",
	"employee_id",
	"first_name",
	"last_name",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий офицеров отделов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория офицеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает офицера по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Officer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("officers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	officer, err := scanOfficer(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return officer, nil
}

// ListActiveByDepartment активные офицеры отдела по возрастанию ID.
// excludeID исключает одного офицера из выборки.
// Внутри транзакции строки блокируются (FOR UPDATE): одновременные назначения
// в одном отделе выполняются последовательно и видят нагрузку друг друга.
func (r *Repository) ListActiveByDepartment(ctx context.Context, departmentID int64, excludeID *int64) ([]*domain.Officer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("officers").
		Where(squirrel.Eq{"department_id": departmentID, "is_active": true}).
		OrderBy("id ASC")

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDepartment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDepartment - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var officers []*domain.Officer
	for rows.Next() {
		officer, err := scanOfficer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDepartment - scan row: %v", ErrScanRow, err)
		}
		officers = append(officers, officer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDepartment - rows iteration: %v", ErrScanRow, err)
	}

	return officers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOfficer(row rowScanner) (*domain.Officer, error) {
	var (
		officer              domain.Officer
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&officer.ID,
		&officer.DepartmentID,
		&officer.EmployeeID,
		&officer.FirstName,
		&officer.LastName,
		&officer.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	officer.CreatedAt = createdAt.Time
	officer.UpdatedAt = updatedAt.Time

	return &officer, nil
}
