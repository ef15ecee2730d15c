package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	serviceRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/govservice"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	serviceRepo  ServiceRepository
	slotRepo     TimeSlotRepository
	windowDays   int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// windowDays длина периода по умолчанию, если конец не указан.
func NewUseCase(
	serviceRepo ServiceRepository,
	slotRepo TimeSlotRepository,
	windowDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		slotRepo:     slotRepo,
		windowDays:   windowDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает слоты отдела услуги, в которых есть свободные места.
// Уже начавшиеся слоты не возвращаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Период поиска
	now := uc.timeProvider.Now()
	start, end, err := resolvePeriod(req, now, uc.windowDays)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: service=%d, period=%s..%s",
		req.ServiceID, start.Format(domain.DateFormat), end.Format(domain.DateFormat))

	// 3. Услуга определяет отдел
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Слоты со свободными местами; конец периода включительно
	from := start
	if now.After(from) {
		from = now
	}
	slots, err := uc.slotRepo.ListAvailable(ctx, service.DepartmentID, from, end.AddDate(0, 0, 1))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for department=%d: %v", service.DepartmentID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	if slots == nil {
		slots = []*domain.TimeSlot{}
	}

	uc.logger.Info("GetAvailableSlots: found %d available slots for service=%d", len(slots), req.ServiceID)

	return &Response{
		ServiceID:    service.ID,
		DepartmentID: service.DepartmentID,
		StartDate:    start,
		EndDate:      end,
		Slots:        slots,
	}, nil
}
