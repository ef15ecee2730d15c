package update_appointment_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	officerRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	"github.com/m04kA/GovAppointmentService/pkg/txmanager"
)

// UseCase use case смены статуса приёма
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        TimeSlotRepository
	officerRepo     OfficerRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo TimeSlotRepository,
	officerRepo OfficerRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		officerRepo:     officerRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит приём в новый статус по таблице допустимых переходов.
// IN_PROGRESS с офицером переназначает приём, COMPLETED фиксирует время завершения,
// CANCELLED освобождает место в слоте.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointmentStatus: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment=%d -> %s", req.AppointmentID, target)

	// 2. Смена статуса в транзакции (строка приёма блокируется)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: UpdateAppointmentStatus - get appointment: %v", ErrInternal, err)
		}

		from := appointment.Status
		if err := domain.ValidateTransition(from, target); err != nil {
			uc.logger.Warn("UpdateAppointmentStatus: appointment id=%d: %s -> %s rejected", appointment.ID, from, target)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, target)
		}

		// 2.1. Побочные эффекты перехода
		switch target {
		case domain.AppointmentInProgress:
			if req.OfficerID != nil {
				if err := uc.attachOfficer(txCtx, appointment, *req.OfficerID); err != nil {
					return err
				}
			}
		case domain.AppointmentCompleted:
			now := uc.timeProvider.Now()
			appointment.CompletedAt = &now
		case domain.AppointmentCancelled:
			if err := uc.releaseSeat(txCtx, appointment.TimeSlotID); err != nil {
				return err
			}
		}
		if req.OfficerID != nil && target != domain.AppointmentInProgress {
			uc.logger.Warn("UpdateAppointmentStatus: officer_id ignored for status %s", target)
		}

		appointment.Status = target
		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment); err != nil {
			return fmt.Errorf("%w: UpdateAppointmentStatus - update status: %v", ErrInternal, err)
		}

		// 2.2. Уведомление после commit
		notification := domain.Notification{
			UserID:        appointment.UserID,
			AppointmentID: &appointment.ID,
			Title:         "Appointment Status Updated",
			Message: fmt.Sprintf("Your appointment %s status changed from %s to %s.",
				appointment.BookingReference, from, target),
			Channel: domain.ChannelInApp,
			Type:    domain.NotificationStatusUpdate,
		}
		txmanager.OnCommit(txCtx, "status_update", func(hookCtx context.Context) error {
			return uc.notifier.Send(hookCtx, notification)
		})

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		uc.logger.Error("UpdateAppointmentStatus: transaction failed for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateAppointmentStatus - transaction: %v", ErrInternal, err)
	}

	// 3. Приём со связанными сущностями
	details, err := uc.appointmentRepo.GetDetailsByID(ctx, req.AppointmentID)
	if err != nil {
		uc.logger.Error("UpdateAppointmentStatus: failed to load details for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: UpdateAppointmentStatus - load details: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateAppointmentStatus: appointment id=%d is now %s", req.AppointmentID, target)
	return &Response{Appointment: details}, nil
}

// attachOfficer назначает офицера; он должен быть активен и работать в отделе слота
func (uc *UseCase) attachOfficer(txCtx context.Context, appointment *domain.Appointment, officerID int64) error {
	officer, err := uc.officerRepo.GetByID(txCtx, officerID)
	if err != nil {
		if errors.Is(err, officerRepo.ErrOfficerNotFound) {
			uc.logger.Warn("UpdateAppointmentStatus: officer id=%d not found", officerID)
			return ErrOfficerNotFound
		}
		return fmt.Errorf("%w: UpdateAppointmentStatus - get officer: %v", ErrInternal, err)
	}

	slot, err := uc.slotRepo.GetByID(txCtx, appointment.TimeSlotID)
	if err != nil {
		return fmt.Errorf("%w: UpdateAppointmentStatus - get time slot: %v", ErrInternal, err)
	}

	if !officer.IsActive || officer.DepartmentID != slot.DepartmentID {
		uc.logger.Warn("UpdateAppointmentStatus: officer id=%d is not an active officer of department=%d",
			officerID, slot.DepartmentID)
		return ErrOfficerNotFound
	}

	appointment.OfficerID = &officer.ID
	return nil
}

// releaseSeat возвращает место в слот после отмены
func (uc *UseCase) releaseSeat(txCtx context.Context, slotID int64) error {
	slot, err := uc.slotRepo.GetByID(txCtx, slotID)
	if err != nil {
		return fmt.Errorf("%w: UpdateAppointmentStatus - get time slot: %v", ErrInternal, err)
	}

	expected := slot.CurrentBookings
	slot.Release()
	if slot.CurrentBookings == expected {
		return nil
	}

	if err := uc.slotRepo.UpdateBookings(txCtx, slot, expected); err != nil {
		return fmt.Errorf("%w: UpdateAppointmentStatus - release seat: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateAppointmentStatus: released seat in slot id=%d (%d/%d)", slot.ID, slot.CurrentBookings, slot.MaxBookings)
	return nil
}
