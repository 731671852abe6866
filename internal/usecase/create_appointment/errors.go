package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: catalog service not found")

	// ErrNotBookable возвращается, когда диапазон встречи не покрыт ни одним
	// доступным интервалом продавца
	ErrNotBookable = errors.New("create_appointment: range is not inside an available interval")

	// ErrStartInPast возвращается, когда начало встречи не в будущем
	ErrStartInPast = errors.New("create_appointment: start must be in the future")

	// ErrInvalidRange возвращается при пустом или перевернутом диапазоне
	ErrInvalidRange = errors.New("create_appointment: invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrConflict возвращается, когда конкурентная транзакция помешала
	// созданию и повтор не помог
	ErrConflict = errors.New("create_appointment: concurrent modification conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
