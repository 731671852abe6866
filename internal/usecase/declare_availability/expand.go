package declare_availability

import "time"

// span непрерывный отрезок времени после развертывания по дням
type span struct {
	start time.Time
	end   time.Time
}

// expandByDays разворачивает диапазон [start, end) в посуточные отрезки,
// обрезанные по границам суточного окна. Первый день сохраняет исходное
// начало, если оно позже открытия окна, последний день — исходный конец,
// если он раньше закрытия. Дни, чья часть диапазона не пересекается с
// окном, пропускаются
func expandByDays(start, end time.Time, w *DailyWindow) []span {
	if w == nil {
		return []span{{start: start, end: end}}
	}

	var spans []span

	loc := start.Location()
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

	for day.Before(end) {
		open := time.Date(day.Year(), day.Month(), day.Day(), w.MinHour, w.MinMinutes, 0, 0, loc)
		close := time.Date(day.Year(), day.Month(), day.Day(), w.MaxHour, w.MaxMinutes, 0, 0, loc)

		pieceStart := open
		if start.After(open) {
			pieceStart = start
		}
		pieceEnd := close
		if end.Before(close) {
			pieceEnd = end
		}

		if pieceStart.Before(pieceEnd) {
			spans = append(spans, span{start: pieceStart, end: pieceEnd})
		}

		day = day.AddDate(0, 0, 1)
	}

	return spans
}
