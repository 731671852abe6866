package declare_availability

import "time"

// DailyWindow рабочее окно внутри суток. Если окно задано, объявленный
// диапазон разворачивается в отдельные интервалы по дням, обрезанные
// по границам окна
type DailyWindow struct {
	MinHour    int `json:"minHour"`
	MinMinutes int `json:"minMinutes"`
	MaxHour    int `json:"maxHour"`
	MaxMinutes int `json:"maxMinutes"`
}

// Request модель запроса на объявление (не)доступности
type Request struct {
	OwnerID   int64        `json:"ownerId"`
	StartAt   time.Time    `json:"startAt"`
	EndAt     time.Time    `json:"endAt"`
	Available bool         `json:"available"`
	Window    *DailyWindow `json:"window,omitempty"`
}

// IntervalView представление интервала таймлайна в ответе
type IntervalView struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"ownerId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Available bool      `json:"available"`
}

// Response модель ответа: интервалы, затронутые объявлением
type Response struct {
	Intervals []IntervalView `json:"intervals"`
}
