package transition_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.TargetStatus == "" {
		return fmt.Errorf("%w: targetStatus is required", ErrInvalidInput)
	}

	if req.SellerComment != nil && len(*req.SellerComment) > domain.MaxSellerCommentLength {
		return fmt.Errorf("%w: sellerComment exceeds %d characters", ErrInvalidInput, domain.MaxSellerCommentLength)
	}

	return nil
}

// checkActor проверяет право инициатора на переход
// Продавец управляет всеми переходами своей встречи; клиент может только
// отменить свою
func checkActor(appt *domain.Appointment, actorID int64, target domain.AppointmentStatus) error {
	if actorID == appt.SellerID {
		return nil
	}

	if actorID == appt.CustomerID && target == domain.StatusCanceled {
		return nil
	}

	return ErrAccessDenied
}
