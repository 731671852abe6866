package domain

// Business validation constants
const (
	MaxCommentLength       = 500
	MaxSellerCommentLength = 500

	// MaxDeclaredRangeDays ограничение длины диапазона при объявлении доступности
	MaxDeclaredRangeDays = 366
)

// Параметры дневного окна при развертывании диапазона в посуточные интервалы
const (
	MinWindowHour    = 0
	MaxWindowHour    = 23
	MinWindowMinutes = 0
	MaxWindowMinutes = 59
)

// TerminalStatuses статусы, из которых нет дальнейших переходов
var TerminalStatuses = []AppointmentStatus{
	StatusFinished,
	StatusCanceled,
	StatusRefused,
}
