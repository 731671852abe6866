package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// intervalEventPayload тело события изменения таймлайна
type intervalEventPayload struct {
	Action  string    `json:"action"` // carve | restore | declare
	OwnerID int64     `json:"ownerId"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// emitIntervalEvent записывает событие изменения таймлайна в outbox
// Запись попадает в ту же транзакцию, что и сама мутация
func (s *Service) emitIntervalEvent(ctx context.Context, ownerID int64, action string, start, end time.Time) error {
	payload, err := json.Marshal(intervalEventPayload{
		Action:  action,
		OwnerID: ownerID,
		StartAt: start,
		EndAt:   end,
	})
	if err != nil {
		return fmt.Errorf("%w: emit interval event - marshal payload: %v", ErrInternal, err)
	}

	event := &domain.ChangeEvent{
		EventID: uuid.NewString(),
		OwnerID: ownerID,
		Kind:    domain.EventKindInterval,
		Payload: payload,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("%w: emit interval event - store event: %v", ErrInternal, err)
	}

	return nil
}
