package check_bookability

// BookabilityResponse HTTP response model проверки бронируемости
type BookabilityResponse struct {
	SellerID int64  `json:"sellerId"`
	StartAt  string `json:"startAt"`
	EndAt    string `json:"endAt"`
	Bookable bool   `json:"bookable"`
}
