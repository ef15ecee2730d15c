package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/GovAppointmentService/internal/domain"
	"github.com/m04kA/GovAppointmentService/internal/service/booking"
	"github.com/m04kA/GovAppointmentService/pkg/txmanager"
)

// Исходы бронирования для метрик
const (
	OutcomeConfirmed   = "confirmed"
	OutcomeFullyBooked = "fully_booked"
	OutcomeNoOfficers  = "no_officers"
	OutcomeRejected    = "rejected"
	OutcomeError       = "error"
)

const tracerName = "github.com/m04kA/GovAppointmentService/internal/usecase/book_appointment"

// UseCase use case бронирования приёма
type UseCase struct {
	placer          AppointmentPlacer
	appointmentRepo AppointmentRepository
	notifier        Notifier
	recorder        BookingRecorder
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	placer AppointmentPlacer,
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	recorder BookingRecorder,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		placer:          placer,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		recorder:        recorder,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute бронирует место в слоте и назначает офицера.
// Резерв места, назначение и создание приёма выполняются в одной транзакции под блокировкой слота:
// либо всё, либо ничего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("BookAppointment: user=%d, service=%d, slot=%d", req.UserID, req.ServiceID, req.TimeSlotID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "BookAppointment",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("appointment.user_id", req.UserID),
			attribute.Int64("appointment.service_id", req.ServiceID),
			attribute.Int64("appointment.time_slot_id", req.TimeSlotID),
		),
	)
	defer span.End()

	var created *domain.Appointment

	// 2. Размещаем приём в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := uc.placer.Place(txCtx, booking.PlaceRequest{
			UserID:     req.UserID,
			ServiceID:  req.ServiceID,
			TimeSlotID: req.TimeSlotID,
			Notes:      req.Notes,
		})
		if err != nil {
			return err
		}

		// 2.1. Уведомление уходит только после commit
		notification := confirmationNotification(appointment)
		txmanager.OnCommit(txCtx, "booking_confirmation", func(hookCtx context.Context) error {
			return uc.notifier.Send(hookCtx, notification)
		})

		created = appointment
		return nil
	})

	uc.recorder.RecordBooking(outcome(err))
	span.SetAttributes(attribute.String("booking.outcome", outcome(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome(err))
		if isBusinessError(err) {
			return nil, err
		}
		uc.logger.Error("BookAppointment: transaction failed for user=%d slot=%d: %v", req.UserID, req.TimeSlotID, err)
		return nil, fmt.Errorf("%w: BookAppointment - transaction: %v", ErrInternal, err)
	}

	// 3. Загружаем приём со связанными сущностями
	details, err := uc.appointmentRepo.GetDetailsByID(ctx, created.ID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to load details for appointment id=%d: %v", created.ID, err)
		return nil, fmt.Errorf("%w: BookAppointment - load details: %v", ErrInternal, err)
	}

	uc.logger.Info("BookAppointment: successfully booked appointment id=%d ref=%s", created.ID, created.BookingReference)
	return &Response{Appointment: details}, nil
}

func confirmationNotification(a *domain.Appointment) domain.Notification {
	return domain.Notification{
		UserID:        a.UserID,
		AppointmentID: &a.ID,
		Title:         "Appointment Confirmed",
		Message: fmt.Sprintf("Your appointment %s on %s is confirmed.",
			a.BookingReference, a.AppointmentDate.Format(domain.DateFormat+" "+domain.TimeFormat)),
		Channel: domain.ChannelInApp,
		Type:    domain.NotificationAppointmentConfirmation,
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSlotFullyBooked) ||
		errors.Is(err, ErrSlotNotBookable) ||
		errors.Is(err, ErrAlreadyBooked) ||
		errors.Is(err, ErrNoOfficersAvailable) ||
		errors.Is(err, ErrSlotDepartmentMismatch)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConfirmed
	case errors.Is(err, ErrSlotFullyBooked):
		return OutcomeFullyBooked
	case errors.Is(err, ErrNoOfficersAvailable):
		return OutcomeNoOfficers
	case isBusinessError(err):
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
