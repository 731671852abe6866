package transition_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case перехода статуса встречи
// Переходы с побочными эффектами на таймлайне:
//   - hold -> accepted: вырезает недоступность под встречу
//   - accepted -> {canceled, finished, refused}: восстанавливает доступность
//
// Запись статуса и мутации интервалов фиксируются одной сериализуемой
// транзакцией; при конфликте конкурентных транзакций переход повторяется
// один раз со свежими чтениями
type UseCase struct {
	appointmentRepo AppointmentRepository
	availability    AvailabilityService
	eventRepo       EventRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availability AvailabilityService,
	eventRepo EventRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		availability:    availability,
		eventRepo:       eventRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет переход статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: id=%d, actor=%d, target=%s",
		req.AppointmentID, req.ActorID, req.TargetStatus)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	target, ok := domain.ParseAppointmentStatus(req.TargetStatus)
	if !ok {
		uc.logger.Warn("TransitionAppointment: unknown status %q", req.TargetStatus)
		return nil, ErrInvalidStatus
	}

	var result *Response

	run := func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			// Встреча читается с блокировкой строки: конкурентный переход
			// дождется фиксации и увидит новый статус
			appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
			if err != nil {
				if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
					return ErrAppointmentNotFound
				}
				return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
			}

			if err := checkActor(appt, req.ActorID, target); err != nil {
				return err
			}

			if !appt.CanTransitionTo(target) {
				uc.logger.Warn("TransitionAppointment: id=%d transition %s -> %s is not allowed",
					appt.ID, appt.Status, target)
				return ErrInvalidTransition
			}

			previous := appt.Status

			// Побочные эффекты на таймлайне продавца
			if target == domain.StatusAccepted {
				bookable, err := uc.availability.IsBookable(txCtx, appt.SellerID, appt.StartAt, appt.EndAt)
				if err != nil {
					return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
				}
				if !bookable {
					uc.logger.Warn("TransitionAppointment: id=%d range no longer bookable", appt.ID)
					return ErrNotBookable
				}

				if err := uc.availability.CarveUnavailability(txCtx, appt.SellerID, appt.StartAt, appt.EndAt); err != nil {
					return fmt.Errorf("%w: failed to carve unavailability: %v", ErrInternal, err)
				}
			}

			// Восстановление только если вырезание действительно происходило,
			// то есть предыдущий статус был accepted
			if previous == domain.StatusAccepted {
				if err := uc.availability.RestoreAvailability(txCtx, appt.SellerID, appt.StartAt, appt.EndAt); err != nil {
					return fmt.Errorf("%w: failed to restore availability: %v", ErrInternal, err)
				}
			}

			if err := uc.appointmentRepo.UpdateStatus(txCtx, appt.ID, target, req.SellerComment); err != nil {
				return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
			}

			if err := uc.emitTransitionEvent(txCtx, appt, previous, target); err != nil {
				return err
			}

			sellerComment := appt.SellerComment
			if req.SellerComment != nil {
				sellerComment = req.SellerComment
			}

			result = &Response{
				ID:             appt.ID,
				CustomerID:     appt.CustomerID,
				SellerID:       appt.SellerID,
				StartAt:        appt.StartAt,
				EndAt:          appt.EndAt,
				PreviousStatus: string(previous),
				Status:         string(target),
				Price:          appt.Price,
				SellerComment:  sellerComment,
				UpdatedAt:      appt.UpdatedAt,
			}
			return nil
		})
	}

	err := run()
	if err != nil && txmanager.IsSerializationError(err) {
		uc.logger.Warn("TransitionAppointment: serialization conflict, retrying once")
		err = run()
	}

	if err != nil {
		if txmanager.IsSerializationError(err) {
			uc.logger.Warn("TransitionAppointment: conflict persisted after retry")
			return nil, ErrConflict
		}
		return nil, err
	}

	uc.logger.Info("TransitionAppointment: id=%d transitioned %s -> %s",
		result.ID, result.PreviousStatus, result.Status)

	return result, nil
}

func (uc *UseCase) emitTransitionEvent(ctx context.Context, appt *domain.Appointment, previous, target domain.AppointmentStatus) error {
	payload, err := json.Marshal(map[string]interface{}{
		"action":         "status_changed",
		"appointmentId":  appt.ID,
		"sellerId":       appt.SellerID,
		"customerId":     appt.CustomerID,
		"previousStatus": previous,
		"status":         target,
		"startAt":        appt.StartAt,
		"endAt":          appt.EndAt,
	})
	if err != nil {
		return fmt.Errorf("%w: marshal transition event: %v", ErrInternal, err)
	}

	event := &domain.ChangeEvent{
		EventID: uuid.NewString(),
		OwnerID: appt.SellerID,
		Kind:    domain.EventKindAppointment,
		Payload: payload,
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: store transition event: %v", ErrInternal, err)
	}

	return nil
}
