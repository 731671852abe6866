package transition_appointment

import "time"

// Request модель запроса на переход статуса встречи
type Request struct {
	AppointmentID int64   // ID встречи
	ActorID       int64   // Инициатор перехода (продавец или клиент)
	TargetStatus  string  // Целевой статус
	SellerComment *string // Комментарий продавца (опционально)
}

// Response модель ответа с результатом перехода
type Response struct {
	ID             int64
	CustomerID     int64
	SellerID       int64
	StartAt        time.Time
	EndAt          time.Time
	PreviousStatus string
	Status         string
	Price          float64
	SellerComment  *string
	UpdatedAt      time.Time
}
