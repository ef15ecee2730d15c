package feedback

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
	"github.com/m04kA/GovAppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв; повторный отзыв того же пользователя на приём даёт ErrFeedbackExists
func (r *Repository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("feedback").
		Columns("appointment_id", "user_id", "rating", "comment", "is_anonymous").
		Values(f.AppointmentID, f.UserID, f.Rating, f.Comment, f.IsAnonymous).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&f.ID, &createdAt); err != nil {
		if dbmetrics.IsUniqueViolation(err, "feedback_appointment_user") {
			return nil, ErrFeedbackExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	f.CreatedAt = createdAt.Time

	return f, nil
}
