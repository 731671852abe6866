package check_bookability

import (
	"context"
	"time"
)

type AvailabilityService interface {
	IsBookable(ctx context.Context, sellerID int64, start, end time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
