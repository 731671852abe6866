package domain

import "time"

// Interval represents a labeled span of time on one owner's timeline.
// Per owner the stored intervals form a partition: no two intervals overlap,
// adjacent intervals of differing kinds may share a boundary.
type Interval struct {
	ID        int64
	OwnerID   int64
	StartAt   time.Time
	EndAt     time.Time
	Available bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid returns true if the interval bounds form a non-empty range
func (i *Interval) IsValid() bool {
	return i.EndAt.After(i.StartAt)
}

// Contains returns true if [start, end) lies fully inside the interval
func (i *Interval) Contains(start, end time.Time) bool {
	return !start.Before(i.StartAt) && !end.After(i.EndAt)
}

// Overlaps returns true if the interval shares time with [start, end)
// Граничные случаи (end == start) пересечением не считаются
func (i *Interval) Overlaps(start, end time.Time) bool {
	return i.StartAt.Before(end) && i.EndAt.After(start)
}

// Duration returns the length of the interval
func (i *Interval) Duration() time.Duration {
	return i.EndAt.Sub(i.StartAt)
}
