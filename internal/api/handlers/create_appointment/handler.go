package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные входные данные"
	msgServiceNotFound    = "услуга не найдена в каталоге"
	msgNotBookable        = "диапазон встречи не покрыт доступным интервалом продавца"
	msgStartInPast        = "начало встречи должно быть в будущем"
	msgInvalidRange       = "некорректный временной диапазон"
	msgConflict           = "таймлайн изменен конкурентным запросом, повторите попытку"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Получаем customerID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(customerID))
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrNotBookable):
			h.logger.Warn("POST /appointments - Range not bookable: customer_id=%d, seller_id=%d",
				customerID, req.SellerID)
			handlers.RespondConflict(w, msgNotBookable)

		case errors.Is(err, createAppointment.ErrConflict):
			h.logger.Warn("POST /appointments - Concurrent conflict: customer_id=%d, seller_id=%d",
				customerID, req.SellerID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Catalog service not found: service_ids=%v", req.ServiceIDs)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrStartInPast):
			h.logger.Warn("POST /appointments - Start in past: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createAppointment.ErrInvalidRange):
			h.logger.Warn("POST /appointments - Invalid range: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, seller_id=%d, error=%v",
				customerID, req.SellerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, customer_id=%d, seller_id=%d",
		result.ID, customerID, req.SellerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
