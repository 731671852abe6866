package declare_availability

import "errors"

var (
	ErrInvalidInput       = errors.New("usecase.declare_availability: invalid input data")
	ErrInvalidRange       = errors.New("usecase.declare_availability: invalid time range")
	ErrInvalidWindow      = errors.New("usecase.declare_availability: invalid daily window")
	ErrConflict           = errors.New("usecase.declare_availability: concurrent timeline modification")
	ErrInvariantViolation = errors.New("usecase.declare_availability: timeline invariant violation")
	ErrInternal           = errors.New("usecase.declare_availability: internal error")
)
