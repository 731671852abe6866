package get_owner_timeline

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// IntervalResponse представление интервала таймлайна в HTTP ответе
type IntervalResponse struct {
	ID        int64  `json:"id"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	Available bool   `json:"available"`
}

// TimelineResponse HTTP response model таймлайна владельца
type TimelineResponse struct {
	OwnerID   int64              `json:"ownerId"`
	Intervals []IntervalResponse `json:"intervals"`
}

// FromDomainList конвертирует интервалы таймлайна в HTTP response
func FromDomainList(ownerID int64, intervals []*domain.Interval) *TimelineResponse {
	items := make([]IntervalResponse, 0, len(intervals))
	for _, iv := range intervals {
		items = append(items, IntervalResponse{
			ID:        iv.ID,
			StartAt:   iv.StartAt.Format(time.RFC3339),
			EndAt:     iv.EndAt.Format(time.RFC3339),
			Available: iv.Available,
		})
	}

	return &TimelineResponse{
		OwnerID:   ownerID,
		Intervals: items,
	}
}
