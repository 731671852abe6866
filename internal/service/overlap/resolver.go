package overlap

import (
	"sort"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Kind классификация пересечения кандидата с существующим интервалом
type Kind int

const (
	// KindSameType интервалы одного типа - сливаются
	KindSameType Kind = iota
	// KindPartialStart кандидат начинается раньше соседа и заканчивается внутри него
	KindPartialStart
	// KindPartialEnd кандидат начинается внутри соседа и заканчивается позже него
	KindPartialEnd
	// KindCompleteInside кандидат полностью содержит соседа
	KindCompleteInside
	// KindCompleteOutside сосед полностью содержит кандидата (и остальные формы)
	KindCompleteOutside
)

// Resolution итог разрешения пересечений
// Candidate - кандидат с финальными границами; Created - новые куски к созданию;
// Updated - соседи с измененными границами; Deleted - соседи к удалению;
// Kept - соседи, которых разрешение не затронуло
type Resolution struct {
	Candidate *domain.Interval
	Created   []*domain.Interval
	Updated   []*domain.Interval
	Deleted   []*domain.Interval
	Kept      []*domain.Interval
}

// Affected возвращает полную картину интервалов после применения разрешения:
// кандидат, новые куски, измененные и нетронутые соседи (без удаленных)
// Используется для проверки инварианта разбиения перед записью
func (r *Resolution) Affected() []*domain.Interval {
	affected := make([]*domain.Interval, 0, 1+len(r.Created)+len(r.Updated)+len(r.Kept))
	affected = append(affected, r.Candidate)
	affected = append(affected, r.Created...)
	affected = append(affected, r.Updated...)
	affected = append(affected, r.Kept...)
	return affected
}

// Classify определяет вид пересечения кандидата с соседом
// Предусловие: интервалы пересекаются
func Classify(candidate, neighbor *domain.Interval) Kind {
	if candidate.Available == neighbor.Available {
		return KindSameType
	}

	switch {
	case candidate.StartAt.Before(neighbor.StartAt) && candidate.EndAt.Before(neighbor.EndAt):
		return KindPartialStart
	case candidate.StartAt.After(neighbor.StartAt) &&
		candidate.StartAt.Before(neighbor.EndAt) &&
		candidate.EndAt.After(neighbor.EndAt):
		return KindPartialEnd
	case candidate.StartAt.Before(neighbor.StartAt) && candidate.EndAt.After(neighbor.EndAt):
		return KindCompleteInside
	default:
		// Сюда попадают и точные совпадения границ
		return KindCompleteOutside
	}
}

// Resolve разрешает пересечения кандидата с соседями, восстанавливая
// инвариант разбиения: итоговый набор интервалов владельца не пересекается.
//
// Соседи обрабатываются в порядке убывания начала. Каждый шаг либо сжимает
// кандидата, либо режет соседа, поэтому алгоритм завершает работу без
// рекурсии по вновь созданным кускам.
func Resolve(candidate *domain.Interval, neighbors []*domain.Interval) Resolution {
	res := Resolution{Candidate: candidate}

	ordered := make([]*domain.Interval, len(neighbors))
	copy(ordered, neighbors)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartAt.After(ordered[j].StartAt)
	})

	for _, neighbor := range ordered {
		// К моменту обработки кандидат мог сжаться и перестать пересекаться
		if !candidate.Overlaps(neighbor.StartAt, neighbor.EndAt) {
			res.Kept = append(res.Kept, neighbor)
			continue
		}

		switch Classify(candidate, neighbor) {
		case KindSameType:
			mergeSameType(candidate, neighbor, &res)
		case KindPartialStart:
			// Кандидат уступает занятую часть: обрезается по началу соседа
			candidate.EndAt = neighbor.StartAt
			res.Kept = append(res.Kept, neighbor)
		case KindPartialEnd:
			candidate.StartAt = neighbor.EndAt
			res.Kept = append(res.Kept, neighbor)
		case KindCompleteInside:
			splitCandidateAround(candidate, neighbor, &res)
		case KindCompleteOutside:
			splitNeighborAround(candidate, neighbor, &res)
		}
	}

	return res
}

// mergeSameType сливает соседа того же типа в кандидата
func mergeSameType(candidate, neighbor *domain.Interval, res *Resolution) {
	if neighbor.StartAt.Before(candidate.StartAt) {
		candidate.StartAt = neighbor.StartAt
	}
	if neighbor.EndAt.After(candidate.EndAt) {
		candidate.EndAt = neighbor.EndAt
	}
	res.Deleted = append(res.Deleted, neighbor)
}

// splitCandidateAround обрабатывает кандидата, полностью содержащего соседа
// другого типа: кандидат сжимается до начала соседа, остаток после соседа
// покрывается новым интервалом типа кандидата
func splitCandidateAround(candidate, neighbor *domain.Interval, res *Resolution) {
	tail := &domain.Interval{
		OwnerID:   candidate.OwnerID,
		StartAt:   neighbor.EndAt,
		EndAt:     candidate.EndAt,
		Available: candidate.Available,
	}

	candidate.EndAt = neighbor.StartAt

	if tail.IsValid() {
		res.Created = append(res.Created, tail)
	}
	res.Kept = append(res.Kept, neighbor)
}

// splitNeighborAround обрабатывает соседа, полностью содержащего кандидата
// другого типа: сосед делится на часть до кандидата и часть после него,
// кандидат остается без изменений
func splitNeighborAround(candidate, neighbor *domain.Interval, res *Resolution) {
	tail := &domain.Interval{
		OwnerID:   neighbor.OwnerID,
		StartAt:   candidate.EndAt,
		EndAt:     neighbor.EndAt,
		Available: neighbor.Available,
	}

	neighbor.EndAt = candidate.StartAt

	if neighbor.IsValid() {
		res.Updated = append(res.Updated, neighbor)
	} else {
		// Границы совпали - передняя часть выродилась
		res.Deleted = append(res.Deleted, neighbor)
	}

	if tail.IsValid() {
		res.Created = append(res.Created, tail)
	}
}
