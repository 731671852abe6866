package declare_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case объявления (не)доступности владельца таймлайна
type UseCase struct {
	availability AvailabilityService
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(availabilitySvc AvailabilityService, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		availability: availabilitySvc,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case объявления доступности
// Диапазон при заданном окне разворачивается в посуточные отрезки; все
// отрезки применяются к таймлайну в одной сериализуемой транзакции,
// чтобы объявление было атомарным целиком
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeclareAvailability: owner=%d, start=%s, end=%s, available=%t, window=%t",
		req.OwnerID, req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339),
		req.Available, req.Window != nil)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeclareAvailability: validation failed: %v", err)
		return nil, err
	}

	spans := expandByDays(req.StartAt, req.EndAt, req.Window)
	if len(spans) == 0 {
		return nil, fmt.Errorf("%w: declared range does not intersect the daily window", ErrInvalidRange)
	}

	var affected []*domain.Interval

	run := func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			affected = affected[:0]
			for _, sp := range spans {
				candidate := &domain.Interval{
					OwnerID:   req.OwnerID,
					StartAt:   sp.start,
					EndAt:     sp.end,
					Available: req.Available,
				}

				result, err := uc.availability.DeclareAvailability(txCtx, candidate)
				if err != nil {
					return err
				}
				affected = append(affected, result...)
			}
			return nil
		})
	}

	err := run()
	if err != nil && txmanager.IsSerializationError(err) {
		// Конкурентная транзакция изменила таймлайн: повторяем один раз
		// со свежими чтениями
		uc.logger.Warn("DeclareAvailability: serialization conflict, retrying once")
		err = run()
	}

	if err != nil {
		switch {
		case txmanager.IsSerializationError(err):
			uc.logger.Warn("DeclareAvailability: conflict persisted after retry")
			return nil, ErrConflict
		case errors.Is(err, availability.ErrInvariantViolation):
			uc.logger.Error("DeclareAvailability: %v", err)
			return nil, ErrInvariantViolation
		case errors.Is(err, availability.ErrInvalidRange):
			return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
		default:
			uc.logger.Error("DeclareAvailability: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("DeclareAvailability: owner=%d, %d interval(s) affected", req.OwnerID, len(affected))

	views := make([]IntervalView, 0, len(affected))
	for _, iv := range affected {
		views = append(views, IntervalView{
			ID:        iv.ID,
			OwnerID:   iv.OwnerID,
			StartAt:   iv.StartAt,
			EndAt:     iv.EndAt,
			Available: iv.Available,
		})
	}

	return &Response{Intervals: views}, nil
}
