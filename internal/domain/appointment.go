package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusHold     AppointmentStatus = "hold"
	StatusAccepted AppointmentStatus = "accepted"
	StatusFinished AppointmentStatus = "finished"
	StatusCanceled AppointmentStatus = "canceled"
	StatusRefused  AppointmentStatus = "refused"
)

// Appointment represents a customer's reservation against one seller's timeline
type Appointment struct {
	ID         int64
	CustomerID int64
	SellerID   int64
	StartAt    time.Time
	EndAt      time.Time
	Status     AppointmentStatus

	Comment       string
	SellerComment *string

	// Price агрегат по привязанным услугам, пересчитывается при изменении состава
	Price      float64
	ServiceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// validTransitions допустимые переходы статусов
// Терминальные статусы (finished, canceled, refused) переходов не имеют
var validTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusHold:     {StatusAccepted, StatusCanceled, StatusRefused},
	StatusAccepted: {StatusFinished, StatusCanceled, StatusRefused},
}

// CanTransitionTo returns true if the transition from the current status is allowed
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range validTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return len(validTransitions[a.Status]) == 0
}

// IsAccepted returns true if the appointment currently occupies the seller's timeline
func (a *Appointment) IsAccepted() bool {
	return a.Status == StatusAccepted
}

// ParseAppointmentStatus валидирует и конвертирует строку в статус
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusHold, StatusAccepted, StatusFinished, StatusCanceled, StatusRefused:
		return AppointmentStatus(s), true
	}
	return "", false
}
