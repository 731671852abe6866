package catalogservice

// Service каталожная услуга продавца
// Ядро читает только цену и длительность; управление каталогом - зона
// ответственности CatalogService
type Service struct {
	ID              int64   `json:"id"`
	SellerID        int64   `json:"sellerId"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}
