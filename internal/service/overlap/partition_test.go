package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestCheckPartition_Valid(t *testing.T) {
	intervals := []*domain.Interval{
		interval(1, 4, 6, false),
		interval(2, 0, 2, true),
		interval(3, 2, 4, true), // общая граница пересечением не является
	}

	assert.Nil(t, CheckPartition(intervals))
}

func TestCheckPartition_Empty(t *testing.T) {
	assert.Nil(t, CheckPartition(nil))
}

func TestCheckPartition_Overlap(t *testing.T) {
	intervals := []*domain.Interval{
		interval(1, 0, 3, true),
		interval(2, 2, 5, false),
	}

	violating := CheckPartition(intervals)
	require.Len(t, violating, 2)
	assert.Equal(t, int64(1), violating[0].ID)
	assert.Equal(t, int64(2), violating[1].ID)
}

func TestCheckPartition_InvalidInterval(t *testing.T) {
	broken := interval(1, 5, 5, true)

	violating := CheckPartition([]*domain.Interval{broken})
	require.Len(t, violating, 1)
	assert.Equal(t, broken.ID, violating[0].ID)
}
