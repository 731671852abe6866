package declare_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d, h, m int) time.Time {
	return time.Date(2026, 3, d, h, m, 0, 0, time.UTC)
}

func workWindow() *DailyWindow {
	return &DailyWindow{MinHour: 9, MinMinutes: 0, MaxHour: 18, MaxMinutes: 0}
}

func TestExpandByDays_NoWindow(t *testing.T) {
	start, end := day(10, 15, 0), day(12, 12, 0)

	spans := expandByDays(start, end, nil)

	require.Len(t, spans, 1)
	assert.Equal(t, start, spans[0].start)
	assert.Equal(t, end, spans[0].end)
}

func TestExpandByDays_MultiDay(t *testing.T) {
	spans := expandByDays(day(10, 15, 0), day(12, 12, 0), workWindow())

	require.Len(t, spans, 3)

	// Первый день сохраняет исходное начало
	assert.Equal(t, day(10, 15, 0), spans[0].start)
	assert.Equal(t, day(10, 18, 0), spans[0].end)

	// Промежуточный день - полное окно
	assert.Equal(t, day(11, 9, 0), spans[1].start)
	assert.Equal(t, day(11, 18, 0), spans[1].end)

	// Последний день сохраняет исходный конец
	assert.Equal(t, day(12, 9, 0), spans[2].start)
	assert.Equal(t, day(12, 12, 0), spans[2].end)
}

func TestExpandByDays_SingleDayInsideWindow(t *testing.T) {
	spans := expandByDays(day(10, 10, 30), day(10, 14, 0), workWindow())

	require.Len(t, spans, 1)
	assert.Equal(t, day(10, 10, 30), spans[0].start)
	assert.Equal(t, day(10, 14, 0), spans[0].end)
}

func TestExpandByDays_StartBeforeWindowClipped(t *testing.T) {
	spans := expandByDays(day(10, 6, 0), day(10, 14, 0), workWindow())

	require.Len(t, spans, 1)
	assert.Equal(t, day(10, 9, 0), spans[0].start)
	assert.Equal(t, day(10, 14, 0), spans[0].end)
}

func TestExpandByDays_DaysOutsideWindowSkipped(t *testing.T) {
	// Первый день начинается после закрытия окна
	spans := expandByDays(day(10, 19, 0), day(11, 12, 0), workWindow())

	require.Len(t, spans, 1)
	assert.Equal(t, day(11, 9, 0), spans[0].start)
	assert.Equal(t, day(11, 12, 0), spans[0].end)
}

func TestExpandByDays_NoIntersection(t *testing.T) {
	spans := expandByDays(day(10, 19, 0), day(10, 21, 0), workWindow())

	assert.Empty(t, spans)
}

func TestExpandByDays_WindowWithMinutes(t *testing.T) {
	window := &DailyWindow{MinHour: 8, MinMinutes: 30, MaxHour: 17, MaxMinutes: 45}

	spans := expandByDays(day(10, 0, 0), day(11, 0, 0), window)

	require.Len(t, spans, 1)
	assert.Equal(t, day(10, 8, 30), spans[0].start)
	assert.Equal(t, day(10, 17, 45), spans[0].end)
}
