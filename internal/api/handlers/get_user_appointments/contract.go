package get_user_appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type AppointmentService interface {
	ListBySeller(ctx context.Context, sellerID int64, status *string) ([]*domain.Appointment, error)
	ListByCustomer(ctx context.Context, customerID int64, status *string) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
