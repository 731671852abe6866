package transition_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID встречи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "встреча не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidStatus        = "неизвестный целевой статус"
	msgInvalidTransition    = "переход в целевой статус недопустим"
	msgNotBookable          = "диапазон встречи больше не покрыт доступным интервалом"
	msgConflict             = "таймлайн изменен конкурентным запросом, повторите попытку"
	msgInvalidInput         = "некорректные входные данные"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем actorID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req TransitionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(appointmentID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/status - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/status - Access denied: appointment_id=%d, actor_id=%d",
				appointmentID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionAppointment.ErrInvalidStatus):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid target status: %q", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, transitionAppointment.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid transition: appointment_id=%d, target=%q",
				appointmentID, req.Status)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTransition)

		case errors.Is(err, transitionAppointment.ErrNotBookable):
			h.logger.Warn("PATCH /appointments/{id}/status - Range not bookable anymore: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotBookable)

		case errors.Is(err, transitionAppointment.ErrConflict):
			h.logger.Warn("PATCH /appointments/{id}/status - Concurrent conflict: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, transitionAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/{id}/status - Failed to transition: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/status - Transition successful: appointment_id=%d, %s -> %s",
		appointmentID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
