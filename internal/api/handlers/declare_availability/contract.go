package declare_availability

import (
	"context"

	declareAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/declare_availability"
)

type DeclareAvailabilityUseCase interface {
	Execute(ctx context.Context, req *declareAvailability.Request) (*declareAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
