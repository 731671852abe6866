package get_owner_timeline

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidSellerID = "некорректный ID продавца"
	msgInvalidFrom     = "некорректный параметр from, ожидается RFC3339"
	msgInvalidTo       = "некорректный параметр to, ожидается RFC3339"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/sellers/{sellerId}/timeline
// Query params: from, to (RFC3339, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sellerID, err := strconv.ParseInt(vars["sellerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sellers/{id}/timeline - Invalid seller ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSellerID)
		return
	}

	var from, to *time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /sellers/{id}/timeline - Invalid from param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /sellers/{id}/timeline - Invalid to param: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTo)
			return
		}
		to = &parsed
	}

	intervals, err := h.service.GetTimeline(r.Context(), sellerID, from, to)
	if err != nil {
		h.logger.Error("GET /sellers/{id}/timeline - Failed to get timeline: seller_id=%d, error=%v",
			sellerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sellers/{id}/timeline - Retrieved %d interval(s): seller_id=%d", len(intervals), sellerID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainList(sellerID, intervals))
}
