package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	Create(ctx context.Context, iv *domain.Interval) (*domain.Interval, error)
	ListByOwner(ctx context.Context, ownerID int64, from, to *time.Time) ([]*domain.Interval, error)
	FindCovering(ctx context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error)
	FindOverlapping(ctx context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*domain.Interval, error)
	FindEndingAt(ctx context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error)
	FindStartingAt(ctx context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error)
	FindExact(ctx context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error)
	UpdateBounds(ctx context.Context, id int64, start, end time.Time) error
	SetAvailable(ctx context.Context, id int64, available bool) error
	Delete(ctx context.Context, id int64) error
}

// EventRepository интерфейс записи событий изменений
type EventRepository interface {
	Create(ctx context.Context, event *domain.ChangeEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
