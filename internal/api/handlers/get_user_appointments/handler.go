package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidRole   = "некорректная роль, ожидается customer или seller"
	msgInvalidStatus = "некорректный статус встречи"
)

const (
	roleCustomer = "customer"
	roleSeller   = "seller"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/appointments
// Query params: role (customer|seller, по умолчанию customer), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Получаем actorID из контекста (через middleware Auth)
	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь видит только собственные встречи
	if actorID != userID {
		h.logger.Warn("GET /users/{id}/appointments - Access denied: user_id=%d, actor_id=%d", userID, actorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	role := r.URL.Query().Get("role")
	if role == "" {
		role = roleCustomer
	}
	if role != roleCustomer && role != roleSeller {
		h.logger.Warn("GET /users/{id}/appointments - Invalid role: %q", role)
		handlers.RespondBadRequest(w, msgInvalidRole)
		return
	}

	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		if _, ok := domain.ParseAppointmentStatus(raw); !ok {
			h.logger.Warn("GET /users/{id}/appointments - Invalid status: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &raw
	}

	var appts []*domain.Appointment
	if role == roleSeller {
		appts, err = h.service.ListBySeller(r.Context(), userID, status)
	} else {
		appts, err = h.service.ListByCustomer(r.Context(), userID, status)
	}

	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/appointments - Failed to list appointments: user_id=%d, role=%s, error=%v",
				userID, role, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{id}/appointments - Retrieved %d appointment(s): user_id=%d, role=%s",
		len(appts), userID, role)
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(appts))
}
