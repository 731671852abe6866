package transition_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, sellerComment *string) error
}

// AvailabilityService интерфейс мутаций таймлайна продавца
// Вызывается внутри транзакции use case
type AvailabilityService interface {
	IsBookable(ctx context.Context, sellerID int64, start, end time.Time) (bool, error)
	CarveUnavailability(ctx context.Context, ownerID int64, start, end time.Time) error
	RestoreAvailability(ctx context.Context, ownerID int64, start, end time.Time) error
}

// EventRepository интерфейс записи событий изменений
type EventRepository interface {
	Create(ctx context.Context, event *domain.ChangeEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
