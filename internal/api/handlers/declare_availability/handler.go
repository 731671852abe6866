package declare_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	declareAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidRange       = "некорректный временной диапазон"
	msgInvalidWindow      = "некорректное суточное окно"
	msgConflict           = "таймлайн изменен конкурентным запросом, повторите попытку"
)

type Handler struct {
	useCase DeclareAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeclareAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/timeline/availability
// Владелец таймлайна определяется по аутентифицированному пользователю
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем ownerID из контекста (через middleware Auth)
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /timeline/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req DeclareAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeline/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID))
	if err != nil {
		switch {
		case errors.Is(err, declareAvailability.ErrConflict):
			h.logger.Warn("POST /timeline/availability - Concurrent conflict: owner_id=%d", ownerID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, declareAvailability.ErrInvalidWindow):
			h.logger.Warn("POST /timeline/availability - Invalid daily window: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, declareAvailability.ErrInvalidRange):
			h.logger.Warn("POST /timeline/availability - Invalid range: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, declareAvailability.ErrInvalidInput):
			h.logger.Warn("POST /timeline/availability - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /timeline/availability - Failed to declare availability: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /timeline/availability - Availability declared: owner_id=%d, intervals=%d",
		ownerID, len(result.Intervals))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
