package availability

import "errors"

var (
	// ErrInvalidRange возвращается при пустом или перевернутом диапазоне
	ErrInvalidRange = errors.New("availability: invalid time range")

	// ErrNoCoveringInterval возвращается, когда нет доступного интервала,
	// полностью покрывающего запрошенный диапазон
	ErrNoCoveringInterval = errors.New("availability: no covering available interval")

	// ErrUnavailabilityNotFound возвращается, когда запись недоступности,
	// подлежащая восстановлению, не найдена
	ErrUnavailabilityNotFound = errors.New("availability: unavailability record not found")

	// ErrInvariantViolation возвращается, когда разрешение пересечений дало
	// пересекающиеся интервалы. Это ошибка логики, а не пользователя:
	// операция откатывается целиком, таймлайн остается без изменений
	ErrInvariantViolation = errors.New("availability: interval partition invariant violated")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
