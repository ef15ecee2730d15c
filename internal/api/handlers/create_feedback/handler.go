package create_feedback

import (
	"errors"
	"net/http"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	"github.com/m04kA/GovAppointmentService/internal/service/feedback"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidInput         = "оценка должна быть от 1 до 5, комментарий не длиннее 1000 символов"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "приём не найден"
	msgForbidden            = "доступ запрещен"
	msgNotCompleted         = "отзыв можно оставить только после завершения приёма"
	msgAlreadyExists        = "отзыв на этот приём уже оставлен"
)

type Handler struct {
	service FeedbackService
	logger  Logger
}

func NewHandler(service FeedbackService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathInt64(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/feedback - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/feedback - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req feedback.CreateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/{id}/feedback - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AppointmentID = appointmentID
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, feedback.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, feedback.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/feedback - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, feedback.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, feedback.ErrNotCompleted):
			h.logger.Warn("POST /appointments/{id}/feedback - Appointment not completed: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNotCompleted)

		case errors.Is(err, feedback.ErrAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /appointments/{id}/feedback - Failed to create feedback: appointment_id=%d, error=%v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/feedback - Feedback created: appointment_id=%d, rating=%d", appointmentID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
