package declare_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerId must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidRange)
	}

	if req.EndAt.Sub(req.StartAt) > time.Duration(domain.MaxDeclaredRangeDays)*24*time.Hour {
		return fmt.Errorf("%w: declared range exceeds %d days", ErrInvalidRange, domain.MaxDeclaredRangeDays)
	}

	if req.Window != nil {
		if err := validateWindow(req.Window); err != nil {
			return err
		}
	}

	return nil
}

// validateWindow проверяет суточное окно: границы внутри суток и
// начало окна строго раньше его конца
func validateWindow(w *DailyWindow) error {
	if w.MinHour < domain.MinWindowHour || w.MinHour > domain.MaxWindowHour ||
		w.MaxHour < domain.MinWindowHour || w.MaxHour > domain.MaxWindowHour {
		return fmt.Errorf("%w: hours must be within [%d, %d]", ErrInvalidWindow, domain.MinWindowHour, domain.MaxWindowHour)
	}

	if w.MinMinutes < domain.MinWindowMinutes || w.MinMinutes > domain.MaxWindowMinutes ||
		w.MaxMinutes < domain.MinWindowMinutes || w.MaxMinutes > domain.MaxWindowMinutes {
		return fmt.Errorf("%w: minutes must be within [%d, %d]", ErrInvalidWindow, domain.MinWindowMinutes, domain.MaxWindowMinutes)
	}

	openMinutes := w.MinHour*60 + w.MinMinutes
	closeMinutes := w.MaxHour*60 + w.MaxMinutes
	if openMinutes >= closeMinutes {
		return fmt.Errorf("%w: window must open before it closes", ErrInvalidWindow)
	}

	return nil
}
