package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	intervalRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/interval"
	"github.com/m04kA/SMC-AppointmentService/internal/service/overlap"
)

// Service сервис управления таймлайном владельца
// Все мутирующие методы рассчитаны на вызов внутри транзакции (контекст с
// активной транзакцией): чтения блокируют строки, изменения фиксируются
// атомарно вместе с операцией, которая их вызвала
type Service struct {
	intervals IntervalRepository
	events    EventRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(intervals IntervalRepository, events EventRepository, logger Logger) *Service {
	return &Service{
		intervals: intervals,
		events:    events,
		logger:    logger,
	}
}

// IsBookable проверяет, что диапазон [start, end) полностью лежит внутри
// одного доступного интервала продавца. Чистое чтение без мутаций
func (s *Service) IsBookable(ctx context.Context, sellerID int64, start, end time.Time) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidRange
	}

	_, err := s.intervals.FindCovering(ctx, sellerID, start, end, true)
	if err != nil {
		if errors.Is(err, intervalRepo.ErrIntervalNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: IsBookable - find covering: %v", ErrInternal, err)
	}

	return true, nil
}

// GetTimeline возвращает интервалы владельца, опционально ограниченные периодом
func (s *Service) GetTimeline(ctx context.Context, ownerID int64, from, to *time.Time) ([]*domain.Interval, error) {
	intervals, err := s.intervals.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeline - list intervals: %v", ErrInternal, err)
	}
	return intervals, nil
}

// CarveUnavailability вырезает недоступность [start, end) из покрывающего
// доступного интервала: до трех кусков - доступный префикс, сама
// недоступность, доступный суффикс
//
// Если покрывающий интервал не найден, операция ничего не делает: вызывающая
// сторона обязана проверить покрытие заранее (в той же транзакции)
func (s *Service) CarveUnavailability(ctx context.Context, ownerID int64, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}

	covering, err := s.intervals.FindCovering(ctx, ownerID, start, end, true)
	if err != nil {
		if errors.Is(err, intervalRepo.ErrIntervalNotFound) {
			s.logger.Warn("CarveUnavailability: no covering interval for owner=%d [%s, %s), skipping",
				ownerID, start.Format(time.RFC3339), end.Format(time.RFC3339))
			return nil
		}
		return fmt.Errorf("%w: CarveUnavailability - find covering: %v", ErrInternal, err)
	}

	pieces := make([]*domain.Interval, 0, 3)

	if covering.StartAt.Before(start) {
		pieces = append(pieces, &domain.Interval{
			OwnerID:   ownerID,
			StartAt:   covering.StartAt,
			EndAt:     start,
			Available: true,
		})
	}

	pieces = append(pieces, &domain.Interval{
		OwnerID:   ownerID,
		StartAt:   start,
		EndAt:     end,
		Available: false,
	})

	if covering.EndAt.After(end) {
		pieces = append(pieces, &domain.Interval{
			OwnerID:   ownerID,
			StartAt:   end,
			EndAt:     covering.EndAt,
			Available: true,
		})
	}

	if violating := overlap.CheckPartition(pieces); violating != nil {
		s.logger.Error("CarveUnavailability: resulting pieces overlap for owner=%d, aborting", ownerID)
		return ErrInvariantViolation
	}

	if err := s.intervals.Delete(ctx, covering.ID); err != nil {
		return fmt.Errorf("%w: CarveUnavailability - delete covering: %v", ErrInternal, err)
	}

	for _, piece := range pieces {
		if _, err := s.intervals.Create(ctx, piece); err != nil {
			return fmt.Errorf("%w: CarveUnavailability - create piece: %v", ErrInternal, err)
		}
	}

	s.logger.Info("CarveUnavailability: owner=%d carved [%s, %s) into %d pieces",
		ownerID, start.Format(time.RFC3339), end.Format(time.RFC3339), len(pieces))

	return s.emitIntervalEvent(ctx, ownerID, "carve", start, end)
}

// RestoreAvailability восстанавливает доступность диапазона [start, end),
// сливая его со смежными доступными интервалами
//
// Пять взаимоисключающих вариантов:
//  1. есть сосед до и после - сосед до растягивается на весь объединенный
//     диапазон, сосед после и запись недоступности удаляются
//  2. только сосед до - растягивается до end
//  3. только сосед после - растягивается от start
//  4. соседей нет, запись недоступности есть - становится доступным интервалом
//  5. соседей и записи нет - создается новый доступный интервал
func (s *Service) RestoreAvailability(ctx context.Context, ownerID int64, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}

	before, err := s.findAdjacent(ctx, func() (*domain.Interval, error) {
		return s.intervals.FindEndingAt(ctx, ownerID, start, true)
	})
	if err != nil {
		return fmt.Errorf("%w: RestoreAvailability - find interval before: %v", ErrInternal, err)
	}

	after, err := s.findAdjacent(ctx, func() (*domain.Interval, error) {
		return s.intervals.FindStartingAt(ctx, ownerID, end, true)
	})
	if err != nil {
		return fmt.Errorf("%w: RestoreAvailability - find interval after: %v", ErrInternal, err)
	}

	current, err := s.findAdjacent(ctx, func() (*domain.Interval, error) {
		return s.intervals.FindExact(ctx, ownerID, start, end, false)
	})
	if err != nil {
		return fmt.Errorf("%w: RestoreAvailability - find unavailability: %v", ErrInternal, err)
	}

	switch {
	case before != nil && after != nil:
		if err := s.intervals.UpdateBounds(ctx, before.ID, before.StartAt, after.EndAt); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - extend over both neighbours: %v", ErrInternal, err)
		}
		if err := s.intervals.Delete(ctx, after.ID); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - delete after: %v", ErrInternal, err)
		}
		if err := s.deleteIfPresent(ctx, current); err != nil {
			return err
		}

	case before != nil:
		if err := s.intervals.UpdateBounds(ctx, before.ID, before.StartAt, end); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - extend before: %v", ErrInternal, err)
		}
		if err := s.deleteIfPresent(ctx, current); err != nil {
			return err
		}

	case after != nil:
		if err := s.intervals.UpdateBounds(ctx, after.ID, start, after.EndAt); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - extend after: %v", ErrInternal, err)
		}
		if err := s.deleteIfPresent(ctx, current); err != nil {
			return err
		}

	case current != nil:
		// Соседей нет: запись недоступности становится доступным интервалом
		if err := s.intervals.SetAvailable(ctx, current.ID, true); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - flip unavailability: %v", ErrInternal, err)
		}

	default:
		if _, err := s.intervals.Create(ctx, &domain.Interval{
			OwnerID:   ownerID,
			StartAt:   start,
			EndAt:     end,
			Available: true,
		}); err != nil {
			return fmt.Errorf("%w: RestoreAvailability - create replacement: %v", ErrInternal, err)
		}
	}

	s.logger.Info("RestoreAvailability: owner=%d restored [%s, %s) (before=%v, after=%v)",
		ownerID, start.Format(time.RFC3339), end.Format(time.RFC3339), before != nil, after != nil)

	return s.emitIntervalEvent(ctx, ownerID, "restore", start, end)
}

// DeclareAvailability сохраняет объявленный владельцем интервал, разрешая
// пересечения с существующими: слияние одного типа, обрезка и разрез разных
// типов. Возвращает итоговый набор затронутых интервалов
//
// Если разрешение нарушило инвариант разбиения, операция завершается
// ErrInvariantViolation без каких-либо записей
func (s *Service) DeclareAvailability(ctx context.Context, candidate *domain.Interval) ([]*domain.Interval, error) {
	if !candidate.IsValid() {
		return nil, ErrInvalidRange
	}

	neighbors, err := s.intervals.FindOverlapping(ctx, candidate.OwnerID, candidate.StartAt, candidate.EndAt, candidate.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: DeclareAvailability - find overlapping: %v", ErrInternal, err)
	}

	res := overlap.Resolve(candidate, neighbors)

	if violating := overlap.CheckPartition(res.Affected()); violating != nil {
		s.logger.Error("DeclareAvailability: resolution violated partition invariant for owner=%d, aborting",
			candidate.OwnerID)
		return nil, ErrInvariantViolation
	}

	for _, deleted := range res.Deleted {
		if err := s.intervals.Delete(ctx, deleted.ID); err != nil {
			return nil, fmt.Errorf("%w: DeclareAvailability - delete merged neighbour: %v", ErrInternal, err)
		}
	}

	for _, updated := range res.Updated {
		if err := s.intervals.UpdateBounds(ctx, updated.ID, updated.StartAt, updated.EndAt); err != nil {
			return nil, fmt.Errorf("%w: DeclareAvailability - update neighbour bounds: %v", ErrInternal, err)
		}
	}

	for _, created := range res.Created {
		if _, err := s.intervals.Create(ctx, created); err != nil {
			return nil, fmt.Errorf("%w: DeclareAvailability - create piece: %v", ErrInternal, err)
		}
	}

	if candidate.ID > 0 {
		if err := s.intervals.UpdateBounds(ctx, candidate.ID, candidate.StartAt, candidate.EndAt); err != nil {
			return nil, fmt.Errorf("%w: DeclareAvailability - update candidate bounds: %v", ErrInternal, err)
		}
	} else {
		if _, err := s.intervals.Create(ctx, candidate); err != nil {
			return nil, fmt.Errorf("%w: DeclareAvailability - create candidate: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeclareAvailability: owner=%d saved interval [%s, %s) available=%t (merged=%d, split=%d, created=%d)",
		candidate.OwnerID, candidate.StartAt.Format(time.RFC3339), candidate.EndAt.Format(time.RFC3339),
		candidate.Available, len(res.Deleted), len(res.Updated), len(res.Created))

	if err := s.emitIntervalEvent(ctx, candidate.OwnerID, "declare", candidate.StartAt, candidate.EndAt); err != nil {
		return nil, err
	}

	result := make([]*domain.Interval, 0, 1+len(res.Created)+len(res.Updated))
	result = append(result, candidate)
	result = append(result, res.Created...)
	result = append(result, res.Updated...)
	return result, nil
}

// findAdjacent нормализует "не найдено" в nil без ошибки
func (s *Service) findAdjacent(_ context.Context, find func() (*domain.Interval, error)) (*domain.Interval, error) {
	iv, err := find()
	if err != nil {
		if errors.Is(err, intervalRepo.ErrIntervalNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return iv, nil
}

func (s *Service) deleteIfPresent(ctx context.Context, iv *domain.Interval) error {
	if iv == nil {
		return nil
	}
	if err := s.intervals.Delete(ctx, iv.ID); err != nil {
		return fmt.Errorf("%w: delete interval id=%d: %v", ErrInternal, iv.ID, err)
	}
	return nil
}
