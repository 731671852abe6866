package transition_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда встреча не найдена
	ErrAppointmentNotFound = errors.New("transition_appointment: appointment not found")

	// ErrInvalidStatus возвращается при неизвестном целевом статусе
	ErrInvalidStatus = errors.New("transition_appointment: invalid target status")

	// ErrInvalidTransition возвращается при недопустимом переходе статусов
	ErrInvalidTransition = errors.New("transition_appointment: transition is not allowed")

	// ErrAccessDenied возвращается, когда инициатор не имеет права на переход
	ErrAccessDenied = errors.New("transition_appointment: access denied")

	// ErrNotBookable возвращается, когда при принятии встречи её диапазон
	// уже не покрыт доступным интервалом продавца
	ErrNotBookable = errors.New("transition_appointment: range is not inside an available interval")

	// ErrConflict возвращается, когда конкурентная транзакция помешала
	// переходу и повтор не помог
	ErrConflict = errors.New("transition_appointment: concurrent modification conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_appointment: internal error")
)
