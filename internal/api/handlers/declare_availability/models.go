package declare_availability

import (
	"time"

	declareAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_availability"
)

// DailyWindowRequest суточное окно в HTTP запросе
type DailyWindowRequest struct {
	MinHour    int `json:"minHour"`
	MinMinutes int `json:"minMinutes"`
	MaxHour    int `json:"maxHour"`
	MaxMinutes int `json:"maxMinutes"`
}

// DeclareAvailabilityRequest HTTP request model
type DeclareAvailabilityRequest struct {
	StartAt   time.Time           `json:"startAt"`
	EndAt     time.Time           `json:"endAt"`
	Available bool                `json:"available"`
	Window    *DailyWindowRequest `json:"window,omitempty"`
}

// IntervalResponse представление интервала таймлайна в HTTP ответе
type IntervalResponse struct {
	ID        int64  `json:"id"`
	OwnerID   int64  `json:"ownerId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Available bool   `json:"available"`
}

// DeclareAvailabilityResponse HTTP response model
type DeclareAvailabilityResponse struct {
	Intervals []IntervalResponse `json:"intervals"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *DeclareAvailabilityRequest) ToUseCaseRequest(ownerID int64) *declareAvailability.Request {
	req := &declareAvailability.Request{
		OwnerID:   ownerID,
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		Available: r.Available,
	}

	if r.Window != nil {
		req.Window = &declareAvailability.DailyWindow{
			MinHour:    r.Window.MinHour,
			MinMinutes: r.Window.MinMinutes,
			MaxHour:    r.Window.MaxHour,
			MaxMinutes: r.Window.MaxMinutes,
		}
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *declareAvailability.Response) *DeclareAvailabilityResponse {
	intervals := make([]IntervalResponse, 0, len(resp.Intervals))
	for _, iv := range resp.Intervals {
		intervals = append(intervals, IntervalResponse{
			ID:        iv.ID,
			OwnerID:   iv.OwnerID,
			StartAt:   iv.StartAt.Format(time.RFC3339),
			EndAt:     iv.EndAt.Format(time.RFC3339),
			Available: iv.Available,
		})
	}

	return &DeclareAvailabilityResponse{Intervals: intervals}
}
