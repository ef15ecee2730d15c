package feedback

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	feedbackRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/feedback"
)

// Service отзывы о завершённых приёмах
type Service struct {
	appointmentRepo AppointmentRepository
	feedbackRepo    FeedbackRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(appointmentRepo AppointmentRepository, feedbackRepo FeedbackRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		feedbackRepo:    feedbackRepo,
		logger:          logger,
	}
}

// Create оставляет отзыв. Один отзыв на приём от пользователя, только после COMPLETED.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	if err := validate(req); err != nil {
		s.logger.Warn("Create: invalid request for appointment id=%d: %v", req.AppointmentID, err)
		return nil, err
	}

	a, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Create: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - get appointment: %v", ErrInternal, err)
	}

	if a.UserID != req.UserID {
		s.logger.Warn("Create: access denied for user=%d to appointment id=%d", req.UserID, req.AppointmentID)
		return nil, ErrAccessDenied
	}
	if a.Status != domain.AppointmentCompleted {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCompleted, a.Status)
	}

	f, err := s.feedbackRepo.Create(ctx, &domain.Feedback{
		AppointmentID: req.AppointmentID,
		UserID:        req.UserID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		IsAnonymous:   req.IsAnonymous,
	})
	if err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackExists) {
			return nil, ErrAlreadyExists
		}
		s.logger.Error("Create: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - save feedback: %v", ErrInternal, err)
	}

	s.logger.Info("Create: feedback id=%d rating=%d for appointment id=%d", f.ID, f.Rating, f.AppointmentID)

	return &Response{
		ID:            f.ID,
		AppointmentID: f.AppointmentID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		IsAnonymous:   f.IsAnonymous,
		CreatedAt:     f.CreatedAt,
	}, nil
}

func validate(req *CreateRequest) error {
	if req.AppointmentID <= 0 || req.UserID <= 0 {
		return fmt.Errorf("%w: appointment_id and user_id must be positive", ErrInvalidInput)
	}
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}
	if req.Comment != nil && utf8.RuneCountInString(*req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}
	return nil
}
