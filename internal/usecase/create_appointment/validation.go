package create_appointment

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.SellerID <= 0 {
		return fmt.Errorf("%w: sellerID must be positive", ErrInvalidInput)
	}

	if req.CustomerID == req.SellerID {
		return fmt.Errorf("%w: customer cannot book their own timeline", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: startAt is required", ErrInvalidInput)
	}

	// Начало встречи строго в будущем
	if !req.StartAt.After(now) {
		return ErrStartInPast
	}

	if req.EndAt != nil && !req.EndAt.After(req.StartAt) {
		return ErrInvalidRange
	}

	if req.Comment == "" {
		return fmt.Errorf("%w: comment is required", ErrInvalidInput)
	}
	if len(req.Comment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment exceeds %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
		}
	}

	return nil
}
