package availability

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	intervalRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/interval"
)

// fakeIntervalRepo in-memory реализация IntervalRepository для тестов
type fakeIntervalRepo struct {
	seq   int64
	items map[int64]*domain.Interval
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{items: make(map[int64]*domain.Interval)}
}

func (f *fakeIntervalRepo) Create(_ context.Context, iv *domain.Interval) (*domain.Interval, error) {
	f.seq++
	iv.ID = f.seq
	stored := *iv
	f.items[iv.ID] = &stored
	return iv, nil
}

func (f *fakeIntervalRepo) ListByOwner(_ context.Context, ownerID int64, from, to *time.Time) ([]*domain.Interval, error) {
	var result []*domain.Interval
	for _, iv := range f.items {
		if iv.OwnerID != ownerID {
			continue
		}
		if from != nil && iv.EndAt.Before(*from) {
			continue
		}
		if to != nil && iv.StartAt.After(*to) {
			continue
		}
		copied := *iv
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.Before(result[j].StartAt) })
	return result, nil
}

func (f *fakeIntervalRepo) FindCovering(_ context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error) {
	for _, iv := range f.items {
		if iv.OwnerID == ownerID && iv.Available == available &&
			!iv.StartAt.After(start) && !iv.EndAt.Before(end) {
			copied := *iv
			return &copied, nil
		}
	}
	return nil, intervalRepo.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) FindOverlapping(_ context.Context, ownerID int64, start, end time.Time, excludeID int64) ([]*domain.Interval, error) {
	var result []*domain.Interval
	for _, iv := range f.items {
		if iv.OwnerID != ownerID || iv.ID == excludeID {
			continue
		}
		if iv.Overlaps(start, end) {
			copied := *iv
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartAt.After(result[j].StartAt) })
	return result, nil
}

func (f *fakeIntervalRepo) FindEndingAt(_ context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error) {
	for _, iv := range f.items {
		if iv.OwnerID == ownerID && iv.Available == available && iv.EndAt.Equal(t) {
			copied := *iv
			return &copied, nil
		}
	}
	return nil, intervalRepo.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) FindStartingAt(_ context.Context, ownerID int64, t time.Time, available bool) (*domain.Interval, error) {
	for _, iv := range f.items {
		if iv.OwnerID == ownerID && iv.Available == available && iv.StartAt.Equal(t) {
			copied := *iv
			return &copied, nil
		}
	}
	return nil, intervalRepo.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) FindExact(_ context.Context, ownerID int64, start, end time.Time, available bool) (*domain.Interval, error) {
	for _, iv := range f.items {
		if iv.OwnerID == ownerID && iv.Available == available &&
			iv.StartAt.Equal(start) && iv.EndAt.Equal(end) {
			copied := *iv
			return &copied, nil
		}
	}
	return nil, intervalRepo.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) UpdateBounds(_ context.Context, id int64, start, end time.Time) error {
	iv, ok := f.items[id]
	if !ok {
		return intervalRepo.ErrIntervalNotFound
	}
	iv.StartAt = start
	iv.EndAt = end
	return nil
}

func (f *fakeIntervalRepo) SetAvailable(_ context.Context, id int64, available bool) error {
	iv, ok := f.items[id]
	if !ok {
		return intervalRepo.ErrIntervalNotFound
	}
	iv.Available = available
	return nil
}

func (f *fakeIntervalRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return intervalRepo.ErrIntervalNotFound
	}
	delete(f.items, id)
	return nil
}

// fakeEventRepo собирает записанные события
type fakeEventRepo struct {
	events []*domain.ChangeEvent
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.ChangeEvent) error {
	f.events = append(f.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testBase = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time {
	return testBase.Add(time.Duration(h) * time.Hour)
}

func newTestService() (*Service, *fakeIntervalRepo, *fakeEventRepo) {
	repo := newFakeIntervalRepo()
	events := &fakeEventRepo{}
	return NewService(repo, events, nopLogger{}), repo, events
}

func timeline(t *testing.T, svc *Service, ownerID int64) []*domain.Interval {
	t.Helper()
	intervals, err := svc.GetTimeline(context.Background(), ownerID, nil, nil)
	require.NoError(t, err)
	return intervals
}

func TestIsBookable(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)

	bookable, err := svc.IsBookable(ctx, 1, hour(10), hour(11))
	require.NoError(t, err)
	assert.True(t, bookable)

	// Диапазон выходит за пределы доступного интервала
	bookable, err = svc.IsBookable(ctx, 1, hour(16), hour(18))
	require.NoError(t, err)
	assert.False(t, bookable)

	// Чужой таймлайн пуст
	bookable, err = svc.IsBookable(ctx, 2, hour(10), hour(11))
	require.NoError(t, err)
	assert.False(t, bookable)

	_, err = svc.IsBookable(ctx, 1, hour(11), hour(11))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCarveUnavailability_SplitsCoveringInterval(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.CarveUnavailability(ctx, 1, hour(12), hour(13)))

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 3)

	assert.Equal(t, hour(9), intervals[0].StartAt)
	assert.Equal(t, hour(12), intervals[0].EndAt)
	assert.True(t, intervals[0].Available)

	assert.Equal(t, hour(12), intervals[1].StartAt)
	assert.Equal(t, hour(13), intervals[1].EndAt)
	assert.False(t, intervals[1].Available)

	assert.Equal(t, hour(13), intervals[2].StartAt)
	assert.Equal(t, hour(17), intervals[2].EndAt)
	assert.True(t, intervals[2].Available)

	// Диапазон недоступности больше не бронируется
	bookable, err := svc.IsBookable(ctx, 1, hour(12), hour(13))
	require.NoError(t, err)
	assert.False(t, bookable)

	// declare + carve
	assert.Len(t, events.events, 2)
}

func TestCarveUnavailability_AtIntervalEdge(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)

	// Вырезание с самого начала интервала: префикс вырождается
	require.NoError(t, svc.CarveUnavailability(ctx, 1, hour(9), hour(10)))

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 2)
	assert.False(t, intervals[0].Available)
	assert.Equal(t, hour(9), intervals[0].StartAt)
	assert.Equal(t, hour(10), intervals[0].EndAt)
	assert.True(t, intervals[1].Available)
	assert.Equal(t, hour(10), intervals[1].StartAt)
	assert.Equal(t, hour(17), intervals[1].EndAt)
}

func TestCarveUnavailability_NoCoveringIsNoop(t *testing.T) {
	svc, _, events := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CarveUnavailability(ctx, 1, hour(12), hour(13)))

	assert.Empty(t, timeline(t, svc, 1))
	assert.Empty(t, events.events)
}

func TestRestoreAvailability_MergesBothNeighbours(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)
	require.NoError(t, svc.CarveUnavailability(ctx, 1, hour(12), hour(13)))

	// Отмена встречи возвращает таймлайн в исходное состояние
	require.NoError(t, svc.RestoreAvailability(ctx, 1, hour(12), hour(13)))

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 1)
	assert.Equal(t, hour(9), intervals[0].StartAt)
	assert.Equal(t, hour(17), intervals[0].EndAt)
	assert.True(t, intervals[0].Available)
}

func TestRestoreAvailability_OnlyBeforeNeighbour(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)
	// Недоступность до конца интервала: суффикса нет
	require.NoError(t, svc.CarveUnavailability(ctx, 1, hour(12), hour(17)))

	require.NoError(t, svc.RestoreAvailability(ctx, 1, hour(12), hour(17)))

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 1)
	assert.Equal(t, hour(9), intervals[0].StartAt)
	assert.Equal(t, hour(17), intervals[0].EndAt)
	assert.True(t, intervals[0].Available)
}

func TestRestoreAvailability_NoNeighbours(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// Одинокая запись недоступности без доступных соседей
	created, err := repo.Create(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(12), EndAt: hour(13), Available: false,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RestoreAvailability(ctx, 1, hour(12), hour(13)))

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 1)
	// Запись меняет тип на месте, без пересоздания
	assert.Equal(t, created.ID, intervals[0].ID)
	assert.True(t, intervals[0].Available)
	assert.Equal(t, hour(12), intervals[0].StartAt)
	assert.Equal(t, hour(13), intervals[0].EndAt)
}

func TestDeclareAvailability_OverUnavailablePiece(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	// Существующая недоступность внутри объявляемого диапазона
	_, err := repo.Create(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(2), EndAt: hour(3), Available: false,
	})
	require.NoError(t, err)

	affected, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(0), EndAt: hour(4), Available: true,
	})
	require.NoError(t, err)
	assert.Len(t, affected, 2)

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 3)

	assert.Equal(t, hour(0), intervals[0].StartAt)
	assert.Equal(t, hour(2), intervals[0].EndAt)
	assert.True(t, intervals[0].Available)

	assert.Equal(t, hour(2), intervals[1].StartAt)
	assert.Equal(t, hour(3), intervals[1].EndAt)
	assert.False(t, intervals[1].Available)

	assert.Equal(t, hour(3), intervals[2].StartAt)
	assert.Equal(t, hour(4), intervals[2].EndAt)
	assert.True(t, intervals[2].Available)
}

func TestDeclareAvailability_MergesAdjacentDeclarations(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(12), Available: true,
	})
	require.NoError(t, err)

	// Пересекающееся объявление того же типа сливается в один интервал
	_, err = svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(11), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)

	intervals := timeline(t, svc, 1)
	require.Len(t, intervals, 1)
	assert.Equal(t, hour(9), intervals[0].StartAt)
	assert.Equal(t, hour(17), intervals[0].EndAt)
}

func TestDeclareAvailability_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.DeclareAvailability(context.Background(), &domain.Interval{
		OwnerID: 1, StartAt: hour(5), EndAt: hour(5), Available: true,
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestDeclareAvailability_OwnersAreIsolated(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 1, StartAt: hour(9), EndAt: hour(17), Available: true,
	})
	require.NoError(t, err)

	_, err = svc.DeclareAvailability(ctx, &domain.Interval{
		OwnerID: 2, StartAt: hour(10), EndAt: hour(15), Available: false,
	})
	require.NoError(t, err)

	// Таймлайны владельцев не влияют друг на друга
	first := timeline(t, svc, 1)
	require.Len(t, first, 1)
	assert.True(t, first[0].Available)

	second := timeline(t, svc, 2)
	require.Len(t, second, 1)
	assert.False(t, second[0].Available)
}
