package appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/catalogservice"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListBySeller(ctx context.Context, sellerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ReplaceServices(ctx context.Context, appointmentID int64, serviceIDs []int64) error
	UpdatePrice(ctx context.Context, id int64, price float64) error
}

// CatalogServiceClient интерфейс клиента каталога услуг
type CatalogServiceClient interface {
	GetServices(ctx context.Context, serviceIDs []int64) ([]*catalogservice.Service, error)
}

// EventRepository интерфейс записи событий изменений
type EventRepository interface {
	Create(ctx context.Context, event *domain.ChangeEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
