package get_owner_timeline

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type AvailabilityService interface {
	GetTimeline(ctx context.Context, ownerID int64, from, to *time.Time) ([]*domain.Interval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
