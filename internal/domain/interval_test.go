package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	iv := &Interval{StartAt: at(2), EndAt: at(6)}

	assert.True(t, iv.Overlaps(at(0), at(3)))
	assert.True(t, iv.Overlaps(at(5), at(9)))
	assert.True(t, iv.Overlaps(at(3), at(4)))
	assert.True(t, iv.Overlaps(at(0), at(9)))

	// Общая граница пересечением не считается
	assert.False(t, iv.Overlaps(at(0), at(2)))
	assert.False(t, iv.Overlaps(at(6), at(9)))
	assert.False(t, iv.Overlaps(at(7), at(9)))
}

func TestInterval_Contains(t *testing.T) {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	iv := &Interval{StartAt: at(2), EndAt: at(6)}

	assert.True(t, iv.Contains(at(2), at(6)))
	assert.True(t, iv.Contains(at(3), at(5)))
	assert.False(t, iv.Contains(at(1), at(5)))
	assert.False(t, iv.Contains(at(3), at(7)))
}

func TestInterval_IsValid(t *testing.T) {
	now := time.Now()

	assert.True(t, (&Interval{StartAt: now, EndAt: now.Add(time.Hour)}).IsValid())
	assert.False(t, (&Interval{StartAt: now, EndAt: now}).IsValid())
	assert.False(t, (&Interval{StartAt: now.Add(time.Hour), EndAt: now}).IsValid())
}
