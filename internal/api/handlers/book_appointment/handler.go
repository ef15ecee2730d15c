package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/service/appointments/models"
	bookAppointment "github.com/m04kA/GovAppointmentService/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные бронирования"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgUserNotFound        = "пользователь не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgTimeSlotNotFound    = "временной слот не найден"
	msgSlotFullyBooked     = "все места в выбранном слоте заняты"
	msgSlotNotBookable     = "выбранный слот недоступен для записи"
	msgAlreadyBooked       = "вы уже записаны на этот слот"
	msgNoOfficersAvailable = "в отделе нет доступных сотрудников"
	msgDepartmentMismatch  = "слот не относится к отделу, оказывающему услугу"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/book - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments/book - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookAppointment.ErrUserNotFound):
			h.logger.Warn("POST /appointments/book - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments/book - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrTimeSlotNotFound):
			h.logger.Warn("POST /appointments/book - Time slot not found: time_slot_id=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, bookAppointment.ErrSlotFullyBooked):
			h.logger.Warn("POST /appointments/book - Slot fully booked: time_slot_id=%d", req.TimeSlotID)
			handlers.RespondConflict(w, msgSlotFullyBooked)

		case errors.Is(err, bookAppointment.ErrAlreadyBooked):
			h.logger.Warn("POST /appointments/book - Already booked: user_id=%d, time_slot_id=%d", userID, req.TimeSlotID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, bookAppointment.ErrNoOfficersAvailable):
			h.logger.Warn("POST /appointments/book - No officers available: service_id=%d", req.ServiceID)
			handlers.RespondConflict(w, msgNoOfficersAvailable)

		case errors.Is(err, bookAppointment.ErrSlotNotBookable):
			h.logger.Warn("POST /appointments/book - Slot not bookable: time_slot_id=%d", req.TimeSlotID)
			handlers.RespondBadRequest(w, msgSlotNotBookable)

		case errors.Is(err, bookAppointment.ErrSlotDepartmentMismatch):
			h.logger.Warn("POST /appointments/book - Department mismatch: service_id=%d, time_slot_id=%d", req.ServiceID, req.TimeSlotID)
			handlers.RespondBadRequest(w, msgDepartmentMismatch)

		default:
			h.logger.Error("POST /appointments/book - Failed to book appointment: user_id=%d, time_slot_id=%d, error=%v",
				userID, req.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := models.FromDomainDetails(result.Appointment)

	h.logger.Info("POST /appointments/book - Appointment booked: appointment_id=%d, reference=%s, user_id=%d",
		response.ID, response.BookingReference, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
