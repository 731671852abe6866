package check_bookability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	msgInvalidSellerID = "некорректный ID продавца"
	msgMissingParams   = "параметры startAt и endAt обязательны"
	msgInvalidStartAt  = "некорректный параметр startAt, ожидается RFC3339"
	msgInvalidEndAt    = "некорректный параметр endAt, ожидается RFC3339"
	msgInvalidRange    = "endAt должен быть позже startAt"
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

// Handle GET /api/v1/sellers/{sellerId}/bookable
// Query params: startAt, endAt (RFC3339, обязательны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sellerID, err := strconv.ParseInt(vars["sellerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /sellers/{id}/bookable - Invalid seller ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSellerID)
		return
	}

	startRaw := r.URL.Query().Get("startAt")
	endRaw := r.URL.Query().Get("endAt")
	if startRaw == "" || endRaw == "" {
		h.logger.Warn("GET /sellers/{id}/bookable - Missing startAt/endAt params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	startAt, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		h.logger.Warn("GET /sellers/{id}/bookable - Invalid startAt param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}
	endAt, err := time.Parse(time.RFC3339, endRaw)
	if err != nil {
		h.logger.Warn("GET /sellers/{id}/bookable - Invalid endAt param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndAt)
		return
	}
	if !endAt.After(startAt) {
		h.logger.Warn("GET /sellers/{id}/bookable - Invalid range: start=%s, end=%s", startRaw, endRaw)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	bookable, err := h.service.IsBookable(r.Context(), sellerID, startAt, endAt)
	if err != nil {
		h.logger.Error("GET /sellers/{id}/bookable - Failed to check bookability: seller_id=%d, error=%v",
			sellerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /sellers/{id}/bookable - Checked: seller_id=%d, bookable=%t", sellerID, bookable)
	handlers.RespondJSON(w, http.StatusOK, BookabilityResponse{
		SellerID: sellerID,
		StartAt:  startAt.Format(time.RFC3339),
		EndAt:    endAt.Format(time.RFC3339),
		Bookable: bookable,
	})
}
