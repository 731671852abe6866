package create_appointment

import "time"

// Request модель запроса на создание встречи
type Request struct {
	CustomerID int64      // ID клиента
	SellerID   int64      // ID продавца (владелец таймлайна)
	StartAt    time.Time  // Начало встречи
	EndAt      *time.Time // Конец встречи; если не задан, вычисляется из длительностей услуг
	Comment    string     // Комментарий клиента (обязателен)
	ServiceIDs []int64    // Услуги каталога, входящие во встречу
}

// Response модель ответа с созданной встречей
type Response struct {
	ID         int64
	CustomerID int64
	SellerID   int64
	StartAt    time.Time
	EndAt      time.Time
	Status     string
	Comment    string
	Price      float64 // Сумма цен привязанных услуг
	ServiceIDs []int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
