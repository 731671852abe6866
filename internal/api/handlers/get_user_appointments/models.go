package get_user_appointments

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse HTTP response model одной встречи
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	CustomerID    int64   `json:"customerId"`
	SellerID      int64   `json:"sellerId"`
	StartAt       string  `json:"startAt"`
	EndAt         string  `json:"endAt"`
	Status        string  `json:"status"`
	Comment       string  `json:"comment"`
	SellerComment *string `json:"sellerComment,omitempty"`
	Price         float64 `json:"price"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// AppointmentsListResponse HTTP response model списка встреч
type AppointmentsListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainList конвертирует список доменных встреч в HTTP response
func FromDomainList(appts []*domain.Appointment) *AppointmentsListResponse {
	items := make([]AppointmentResponse, 0, len(appts))
	for _, appt := range appts {
		items = append(items, AppointmentResponse{
			ID:            appt.ID,
			CustomerID:    appt.CustomerID,
			SellerID:      appt.SellerID,
			StartAt:       appt.StartAt.Format(time.RFC3339),
			EndAt:         appt.EndAt.Format(time.RFC3339),
			Status:        string(appt.Status),
			Comment:       appt.Comment,
			SellerComment: appt.SellerComment,
			Price:         appt.Price,
			CreatedAt:     appt.CreatedAt.Format(time.RFC3339),
			UpdatedAt:     appt.UpdatedAt.Format(time.RFC3339),
		})
	}

	return &AppointmentsListResponse{
		Appointments: items,
		Total:        len(items),
	}
}
