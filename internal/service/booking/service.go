package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/appointment"
	serviceRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/govservice"
	officerRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/officer"
	slotRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/timeslot"
	userRepo "github.com/m04kA/GovAppointmentService/internal/infra/storage/user"
	"github.com/m04kA/GovAppointmentService/internal/service/assignment"
)

// Placer размещает приём в слоте: резервирует место, назначает офицера и создаёт запись.
// Все шаги выполняются в транзакции вызывающего, любая ошибка откатывает их целиком.
type Placer struct {
	userRepo        UserRepository
	serviceRepo     ServiceRepository
	slotRepo        TimeSlotRepository
	officerRepo     OfficerRepository
	appointmentRepo AppointmentRepository
	resolver        OfficerResolver
	logger          Logger
}

// NewPlacer создает новый экземпляр координатора бронирования
func NewPlacer(
	userRepo UserRepository,
	serviceRepo ServiceRepository,
	slotRepo TimeSlotRepository,
	officerRepo OfficerRepository,
	appointmentRepo AppointmentRepository,
	resolver OfficerResolver,
	logger Logger,
) *Placer {
	return &Placer{
		userRepo:        userRepo,
		serviceRepo:     serviceRepo,
		slotRepo:        slotRepo,
		officerRepo:     officerRepo,
		appointmentRepo: appointmentRepo,
		resolver:        resolver,
		logger:          logger,
	}
}

// Place должен вызываться внутри транзакции (txCtx): строка слота блокируется
// первой, поэтому конкурирующие бронирования выстраиваются в очередь по ней
func (p *Placer) Place(txCtx context.Context, req PlaceRequest) (*domain.Appointment, error) {
	// 1. Пользователь
	if _, err := p.userRepo.GetByID(txCtx, req.UserID); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			p.logger.Warn("Place: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: Place - get user: %v", ErrInternal, err)
	}

	// 2. Услуга
	service, err := p.serviceRepo.GetByID(txCtx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			p.logger.Warn("Place: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: Place - get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		p.logger.Warn("Place: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Слот (строка блокируется до конца транзакции)
	slot, err := p.slotRepo.GetByID(txCtx, req.TimeSlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrTimeSlotNotFound) {
			p.logger.Warn("Place: time slot id=%d not found", req.TimeSlotID)
			return nil, ErrTimeSlotNotFound
		}
		return nil, fmt.Errorf("%w: Place - get time slot: %v", ErrInternal, err)
	}
	if slot.DepartmentID != service.DepartmentID {
		p.logger.Warn("Place: slot id=%d (department=%d) does not match service id=%d (department=%d)",
			slot.ID, slot.DepartmentID, service.ID, service.DepartmentID)
		return nil, ErrSlotDepartmentMismatch
	}

	// 4. Повторная бронь того же слота
	booked, err := p.appointmentRepo.HasActiveForUserSlot(txCtx, req.UserID, slot.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: Place - check duplicate: %v", ErrInternal, err)
	}
	if booked {
		p.logger.Warn("Place: user id=%d already booked slot id=%d", req.UserID, slot.ID)
		return nil, ErrAlreadyBooked
	}

	// 5. Резервируем место
	expected := slot.CurrentBookings
	if err := slot.Reserve(); err != nil {
		p.logger.Warn("Place: slot id=%d rejected booking (%d/%d, %s): %v",
			slot.ID, expected, slot.MaxBookings, slot.Status, err)
		if errors.Is(err, domain.ErrSlotNotBookable) {
			return nil, ErrSlotNotBookable
		}
		return nil, ErrSlotFullyBooked
	}

	// 6. Офицер
	officer, err := p.pickOfficer(txCtx, req.OfficerID, service.DepartmentID, slot)
	if err != nil {
		return nil, err
	}

	// 7. Приём
	created, err := p.appointmentRepo.Create(txCtx, &domain.Appointment{
		BookingReference: domain.NewBookingReference(),
		QRCode:           domain.NewQRToken(),
		UserID:           req.UserID,
		ServiceID:        service.ID,
		TimeSlotID:       slot.ID,
		OfficerID:        &officer.ID,
		Status:           domain.AppointmentConfirmed,
		AppointmentDate:  slot.StartTime,
		Notes:            req.Notes,
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateBooking) {
			return nil, ErrAlreadyBooked
		}
		return nil, fmt.Errorf("%w: Place - create appointment: %v", ErrInternal, err)
	}

	// 8. Счётчик слота (CAS по ожидаемому значению)
	if err := p.slotRepo.UpdateBookings(txCtx, slot, expected); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
			p.logger.Warn("Place: slot id=%d changed concurrently", slot.ID)
			return nil, ErrSlotFullyBooked
		}
		return nil, fmt.Errorf("%w: Place - update slot: %v", ErrInternal, err)
	}

	p.logger.Info("Place: appointment id=%d ref=%s slot id=%d (%d/%d) officer=%d",
		created.ID, created.BookingReference, slot.ID, slot.CurrentBookings, slot.MaxBookings, officer.ID)

	return created, nil
}

func (p *Placer) pickOfficer(txCtx context.Context, officerID *int64, departmentID int64, slot *domain.TimeSlot) (*domain.Officer, error) {
	if officerID == nil {
		officer, err := p.resolver.Resolve(txCtx, departmentID, slot.StartTime, nil)
		if err != nil {
			if errors.Is(err, assignment.ErrNoOfficersAvailable) {
				return nil, ErrNoOfficersAvailable
			}
			return nil, fmt.Errorf("%w: Place - resolve officer: %v", ErrInternal, err)
		}
		return officer, nil
	}

	officer, err := p.officerRepo.GetByID(txCtx, *officerID)
	if err != nil {
		if errors.Is(err, officerRepo.ErrOfficerNotFound) {
			p.logger.Warn("Place: officer id=%d not found", *officerID)
			return nil, ErrOfficerNotFound
		}
		return nil, fmt.Errorf("%w: Place - get officer: %v", ErrInternal, err)
	}
	if !officer.IsActive || officer.DepartmentID != departmentID {
		p.logger.Warn("Place: officer id=%d is not an active officer of department=%d", officer.ID, departmentID)
		return nil, ErrOfficerNotFound
	}
	return officer, nil
}
