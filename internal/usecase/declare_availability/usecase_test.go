package declare_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type fakeAvailability struct {
	seq        int64
	candidates []*domain.Interval
	err        error
}

func (f *fakeAvailability) DeclareAvailability(_ context.Context, candidate *domain.Interval) ([]*domain.Interval, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	candidate.ID = f.seq
	f.candidates = append(f.candidates, candidate)
	return []*domain.Interval{candidate}, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_SingleSpan(t *testing.T) {
	availability := &fakeAvailability{}
	uc := NewUseCase(availability, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:   1,
		StartAt:   day(10, 9, 0),
		EndAt:     day(10, 17, 0),
		Available: true,
	})
	require.NoError(t, err)

	require.Len(t, resp.Intervals, 1)
	assert.Equal(t, day(10, 9, 0), resp.Intervals[0].StartAt)
	assert.Equal(t, day(10, 17, 0), resp.Intervals[0].EndAt)
	assert.True(t, resp.Intervals[0].Available)
}

func TestExecute_WindowExpandsIntoDailyIntervals(t *testing.T) {
	availability := &fakeAvailability{}
	uc := NewUseCase(availability, passthroughTxManager{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		OwnerID:   1,
		StartAt:   day(10, 0, 0),
		EndAt:     day(13, 0, 0),
		Available: true,
		Window:    workWindow(),
	})
	require.NoError(t, err)

	// Три дня - три посуточных интервала
	require.Len(t, resp.Intervals, 3)
	require.Len(t, availability.candidates, 3)
	for i, candidate := range availability.candidates {
		assert.Equal(t, int64(1), candidate.OwnerID)
		assert.Equal(t, day(10+i, 9, 0), candidate.StartAt)
		assert.Equal(t, day(10+i, 18, 0), candidate.EndAt)
	}
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		StartAt: day(10, 17, 0),
		EndAt:   day(10, 9, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_RangeTooLong(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID: 1,
		StartAt: day(10, 0, 0),
		EndAt:   day(10, 0, 0).Add(400 * 24 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_InvalidWindow(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   1,
		StartAt:   day(10, 0, 0),
		EndAt:     day(11, 0, 0),
		Available: true,
		// Окно закрывается раньше, чем открывается
		Window: &DailyWindow{MinHour: 18, MaxHour: 9},
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExecute_RangeOutsideWindow(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		OwnerID:   1,
		StartAt:   day(10, 19, 0),
		EndAt:     day(10, 21, 0),
		Available: true,
		Window:    workWindow(),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_MissingOwner(t *testing.T) {
	uc := NewUseCase(&fakeAvailability{}, passthroughTxManager{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		StartAt: day(10, 9, 0),
		EndAt:   day(10, 17, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
