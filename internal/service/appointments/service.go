package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
)

// Service сервис чтения приёмов: карточка, список, QR-код и талон
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса приёмов
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает приём по ID
// Пользователь видит только свои приёмы
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	details, err := s.getOwned(ctx, "GetByID", id, userID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainDetails(details), nil
}

// List приёмы по возрастанию даты приёма.
// Опционально фильтрует по гражданину, офицеру и статусу.
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	scope := listScope(req)
	s.logger.Info("List: fetching appointments for %s, status=%v, skip=%d, take=%d",
		scope, req.Status, req.Skip, req.Take)

	filter := domain.AppointmentsFilter{
		UserID:    req.UserID,
		OfficerID: req.OfficerID,
		Skip:      req.Skip,
		Take:      req.Take,
	}

	if filter.Take == 0 {
		filter.Take = domain.DefaultListTake
	}
	if filter.Take > domain.MaxListTake {
		s.logger.Warn("List: take=%d exceeds limit for %s", req.Take, scope)
		return nil, fmt.Errorf("%w: take must be at most %d", ErrInvalidInput, domain.MaxListTake)
	}
	if req.OfficerID != nil && *req.OfficerID <= 0 {
		s.logger.Warn("List: invalid officer id=%d", *req.OfficerID)
		return nil, fmt.Errorf("%w: officer_id must be positive", ErrInvalidInput)
	}

	if req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for %s", *req.Status, scope)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.appointmentRepo.ListDetails(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for %s: %v", scope, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for %s", len(list), scope)
	return models.FromDomainDetailsList(list, filter.Skip, filter.Take), nil
}

func listScope(req *models.ListAppointmentsRequest) string {
	switch {
	case req.UserID != nil:
		return fmt.Sprintf("user=%d", *req.UserID)
	case req.OfficerID != nil:
		return fmt.Sprintf("officer=%d", *req.OfficerID)
	default:
		return "all"
	}
}

// getOwned загружает приём и проверяет, что он принадлежит пользователю
func (s *Service) getOwned(ctx context.Context, op string, id, userID int64) (*domain.AppointmentDetails, error) {
	s.logger.Info("%s: fetching appointment id=%d for user=%d", op, id, userID)

	details, err := s.appointmentRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if details.Appointment.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to appointment id=%d", op, userID, id)
		return nil, ErrAccessDenied
	}

	return details, nil
}
