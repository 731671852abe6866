package overlap

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CheckPartition проверяет инвариант разбиения: интервалы попарно не
// пересекаются и каждый имеет непустой диапазон
// Возвращает пару нарушающих интервалов, либо nil при корректном разбиении
func CheckPartition(intervals []*domain.Interval) (violating []*domain.Interval) {
	for _, iv := range intervals {
		if !iv.IsValid() {
			return []*domain.Interval{iv}
		}
	}

	ordered := make([]*domain.Interval, len(intervals))
	copy(ordered, intervals)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartAt.Before(ordered[j].StartAt)
	})

	for i := 1; i < len(ordered); i++ {
		prev, curr := ordered[i-1], ordered[i]
		// Совпадающая граница (prev.EndAt == curr.StartAt) пересечением не является
		if curr.StartAt.Before(prev.EndAt) {
			return []*domain.Interval{prev, curr}
		}
	}

	return nil
}
