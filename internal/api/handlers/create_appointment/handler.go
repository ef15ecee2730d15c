package create_appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/GovAppointmentService/internal/api/handlers"
	"github.com/m04kA/GovAppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/GovAppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidForm         = "ожидается multipart/form-data с полями data и files"
	msgInvalidData         = "некорректное поле data"
	msgInvalidFile         = "не удалось прочитать файл"
	msgInvalidInput        = "некорректные данные бронирования или документы"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgUserNotFound        = "пользователь не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgTimeSlotNotFound    = "временной слот не найден"
	msgOfficerNotFound     = "сотрудник не найден в отделе услуги"
	msgSlotFullyBooked     = "все места в выбранном слоте заняты"
	msgSlotNotBookable     = "выбранный слот недоступен для записи"
	msgAlreadyBooked       = "вы уже записаны на этот слот"
	msgNoOfficersAvailable = "в отделе нет доступных сотрудников"
	msgDepartmentMismatch  = "слот не относится к отделу, оказывающему услугу"
	msgUploadFailure       = "не удалось загрузить документы, запись не создана"

	formMemory = 32 << 20
)

type Handler struct {
	useCase      CreateAppointmentUseCase
	maxBodyBytes int64
	logger       Logger
}

// NewHandler maxBodyBytes ограничивает размер всей формы
func NewHandler(useCase CreateAppointmentUseCase, maxBodyBytes int64, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Handle POST /api/v1/appointments
// multipart/form-data: data (JSON), files (ноль или несколько файлов)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		h.logger.Warn("POST /appointments - Invalid multipart form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var data AppointmentData
	dec := json.NewDecoder(strings.NewReader(r.FormValue("data")))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		h.logger.Warn("POST /appointments - Invalid data field: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	useCaseReq, err := data.ToUseCaseRequest(userID, r.MultipartForm.File["files"])
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to read files: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFile)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrUserNotFound):
			h.logger.Warn("POST /appointments - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%d", data.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrTimeSlotNotFound):
			h.logger.Warn("POST /appointments - Time slot not found: time_slot_id=%d", data.TimeSlotID)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, createAppointment.ErrOfficerNotFound):
			h.logger.Warn("POST /appointments - Officer not found: officer_id=%v", data.OfficerID)
			handlers.RespondNotFound(w, msgOfficerNotFound)

		case errors.Is(err, createAppointment.ErrSlotFullyBooked):
			h.logger.Warn("POST /appointments - Slot fully booked: time_slot_id=%d", data.TimeSlotID)
			handlers.RespondConflict(w, msgSlotFullyBooked)

		case errors.Is(err, createAppointment.ErrAlreadyBooked):
			h.logger.Warn("POST /appointments - Already booked: user_id=%d, time_slot_id=%d", userID, data.TimeSlotID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, createAppointment.ErrNoOfficersAvailable):
			h.logger.Warn("POST /appointments - No officers available: service_id=%d", data.ServiceID)
			handlers.RespondConflict(w, msgNoOfficersAvailable)

		case errors.Is(err, createAppointment.ErrSlotNotBookable):
			h.logger.Warn("POST /appointments - Slot not bookable: time_slot_id=%d", data.TimeSlotID)
			handlers.RespondBadRequest(w, msgSlotNotBookable)

		case errors.Is(err, createAppointment.ErrSlotDepartmentMismatch):
			h.logger.Warn("POST /appointments - Department mismatch: service_id=%d, time_slot_id=%d", data.ServiceID, data.TimeSlotID)
			handlers.RespondBadRequest(w, msgDepartmentMismatch)

		case errors.Is(err, createAppointment.ErrUploadFailure):
			h.logger.Error("POST /appointments - Upload failed: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgUploadFailure)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, time_slot_id=%d, error=%v",
				userID, data.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, documents=%d, user_id=%d",
		response.Appointment.ID, len(response.Documents), userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
