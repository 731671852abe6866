package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{StatusHold, StatusAccepted, true},
		{StatusHold, StatusCanceled, true},
		{StatusHold, StatusRefused, true},
		{StatusHold, StatusFinished, false},
		{StatusHold, StatusHold, false},

		{StatusAccepted, StatusFinished, true},
		{StatusAccepted, StatusCanceled, true},
		{StatusAccepted, StatusRefused, true},
		{StatusAccepted, StatusHold, false},
		{StatusAccepted, StatusAccepted, false},

		{StatusFinished, StatusHold, false},
		{StatusFinished, StatusAccepted, false},
		{StatusCanceled, StatusAccepted, false},
		{StatusRefused, StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			appt := &Appointment{Status: tt.from}
			assert.Equal(t, tt.allowed, appt.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsTerminal(t *testing.T) {
	assert.False(t, (&Appointment{Status: StatusHold}).IsTerminal())
	assert.False(t, (&Appointment{Status: StatusAccepted}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusFinished}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusCanceled}).IsTerminal())
	assert.True(t, (&Appointment{Status: StatusRefused}).IsTerminal())
}

func TestParseAppointmentStatus(t *testing.T) {
	status, ok := ParseAppointmentStatus("accepted")
	assert.True(t, ok)
	assert.Equal(t, StatusAccepted, status)

	_, ok = ParseAppointmentStatus("confirmed")
	assert.False(t, ok)

	_, ok = ParseAppointmentStatus("")
	assert.False(t, ok)
}
