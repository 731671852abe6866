package get_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse HTTP response model
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
	ServiceIDs    []int64 `json:"serviceIds"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель встречи в HTTP response
func FromDomain(appt *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            appt.ID,
		CustomerID:    appt.CustomerID,
		SellerID:      appt.SellerID,
		StartAt:       appt.StartAt.Format(time.RFC3339),
		EndAt:         appt.EndAt.Format(time.RFC3339),
		Status:        string(appt.Status),
		Comment:       appt.Comment,
		SellerComment: appt.SellerComment,
		Price:         appt.Price,
		ServiceIDs:    appt.ServiceIDs,
		CreatedAt:     appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     appt.UpdatedAt.Format(time.RFC3339),
	}
}
