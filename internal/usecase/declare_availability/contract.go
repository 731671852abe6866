package declare_availability

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	DeclareAvailability(ctx context.Context, candidate *domain.Interval) ([]*domain.Interval, error)
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
