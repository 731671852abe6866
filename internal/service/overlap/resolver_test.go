package overlap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var base = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hours int) time.Time {
	return base.Add(time.Duration(hours) * time.Hour)
}

func interval(id int64, startHour, endHour int, available bool) *domain.Interval {
	return &domain.Interval{
		ID:        id,
		OwnerID:   1,
		StartAt:   at(startHour),
		EndAt:     at(endHour),
		Available: available,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		candidate *domain.Interval
		neighbor  *domain.Interval
		want      Kind
	}{
		{
			name:      "same type intervals merge",
			candidate: interval(0, 0, 4, true),
			neighbor:  interval(1, 2, 6, true),
			want:      KindSameType,
		},
		{
			name:      "candidate starts before and ends inside",
			candidate: interval(0, 0, 3, true),
			neighbor:  interval(1, 2, 6, false),
			want:      KindPartialStart,
		},
		{
			name:      "candidate starts inside and ends after",
			candidate: interval(0, 4, 8, true),
			neighbor:  interval(1, 2, 6, false),
			want:      KindPartialEnd,
		},
		{
			name:      "candidate fully contains neighbor",
			candidate: interval(0, 0, 8, true),
			neighbor:  interval(1, 2, 6, false),
			want:      KindCompleteInside,
		},
		{
			name:      "neighbor fully contains candidate",
			candidate: interval(0, 3, 5, true),
			neighbor:  interval(1, 2, 6, false),
			want:      KindCompleteOutside,
		},
		{
			name:      "exact bounds match goes to complete outside",
			candidate: interval(0, 2, 6, true),
			neighbor:  interval(1, 2, 6, false),
			want:      KindCompleteOutside,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.candidate, tt.neighbor))
		})
	}
}

func TestResolve_SameTypeMerge(t *testing.T) {
	candidate := interval(0, 2, 6, true)
	neighbor := interval(1, 4, 8, true)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	assert.Equal(t, at(2), candidate.StartAt)
	assert.Equal(t, at(8), candidate.EndAt)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, neighbor.ID, res.Deleted[0].ID)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
}

func TestResolve_PartialStartClipsCandidate(t *testing.T) {
	candidate := interval(0, 0, 4, true)
	neighbor := interval(1, 3, 7, false)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	// Кандидат уступает занятую часть
	assert.Equal(t, at(0), candidate.StartAt)
	assert.Equal(t, at(3), candidate.EndAt)
	require.Len(t, res.Kept, 1)
	assert.Equal(t, at(3), res.Kept[0].StartAt)
	assert.Equal(t, at(7), res.Kept[0].EndAt)
}

func TestResolve_PartialEndClipsCandidate(t *testing.T) {
	candidate := interval(0, 5, 9, true)
	neighbor := interval(1, 3, 7, false)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	assert.Equal(t, at(7), candidate.StartAt)
	assert.Equal(t, at(9), candidate.EndAt)
	require.Len(t, res.Kept, 1)
}

func TestResolve_CandidateContainsNeighbor(t *testing.T) {
	// Объявление доступности поверх недоступного куска: кандидат
	// делится на части до и после куска
	candidate := interval(0, 0, 4, true)
	neighbor := interval(1, 2, 3, false)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	assert.Equal(t, at(0), candidate.StartAt)
	assert.Equal(t, at(2), candidate.EndAt)

	require.Len(t, res.Created, 1)
	assert.Equal(t, at(3), res.Created[0].StartAt)
	assert.Equal(t, at(4), res.Created[0].EndAt)
	assert.True(t, res.Created[0].Available)

	require.Len(t, res.Kept, 1)
	assert.Nil(t, CheckPartition(res.Affected()))
}

func TestResolve_NeighborContainsCandidate(t *testing.T) {
	candidate := interval(0, 3, 5, false)
	neighbor := interval(1, 0, 8, true)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	// Кандидат не меняется, сосед делится на две части
	assert.Equal(t, at(3), candidate.StartAt)
	assert.Equal(t, at(5), candidate.EndAt)

	require.Len(t, res.Updated, 1)
	assert.Equal(t, at(0), res.Updated[0].StartAt)
	assert.Equal(t, at(3), res.Updated[0].EndAt)

	require.Len(t, res.Created, 1)
	assert.Equal(t, at(5), res.Created[0].StartAt)
	assert.Equal(t, at(8), res.Created[0].EndAt)

	assert.Nil(t, CheckPartition(res.Affected()))
}

func TestResolve_ExactBoundsReplaceNeighbor(t *testing.T) {
	candidate := interval(0, 2, 6, false)
	neighbor := interval(1, 2, 6, true)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	// Передняя и задняя части соседа выродились - он удаляется целиком
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, neighbor.ID, res.Deleted[0].ID)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
	assert.Nil(t, CheckPartition(res.Affected()))
}

func TestResolve_MultipleNeighbors(t *testing.T) {
	// Кандидат накрывает недоступный кусок и сливается с доступным соседом
	candidate := interval(0, 1, 7, true)
	busy := interval(1, 3, 4, false)
	sameType := interval(2, 6, 9, true)

	res := Resolve(candidate, []*domain.Interval{busy, sameType})

	// Сначала слияние с дальним соседом, затем деление вокруг занятого куска
	assert.Equal(t, at(1), candidate.StartAt)
	assert.Equal(t, at(3), candidate.EndAt)

	require.Len(t, res.Created, 1)
	assert.Equal(t, at(4), res.Created[0].StartAt)
	assert.Equal(t, at(9), res.Created[0].EndAt)

	require.Len(t, res.Deleted, 1)
	assert.Equal(t, sameType.ID, res.Deleted[0].ID)

	assert.Nil(t, CheckPartition(res.Affected()))
}

func TestResolve_NoOverlapKeepsNeighbor(t *testing.T) {
	candidate := interval(0, 0, 2, true)
	neighbor := interval(1, 5, 7, false)

	res := Resolve(candidate, []*domain.Interval{neighbor})

	assert.Equal(t, at(0), candidate.StartAt)
	assert.Equal(t, at(2), candidate.EndAt)
	require.Len(t, res.Kept, 1)
	assert.Empty(t, res.Created)
	assert.Empty(t, res.Updated)
	assert.Empty(t, res.Deleted)
}
