package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	SellerID   int64      `json:"sellerId"`
	StartAt    time.Time  `json:"startAt"`
	EndAt      *time.Time `json:"endAt,omitempty"`
	Comment    string     `json:"comment"`
	ServiceIDs []int64    `json:"serviceIds"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customerId"`
	SellerID   int64   `json:"sellerId"`
	StartAt    string  `json:"startAt"`
	EndAt      string  `json:"endAt"`
	Status     string  `json:"status"`
	Comment    string  `json:"comment"`
	Price      float64 `json:"price"`
	ServiceIDs []int64 `json:"serviceIds"`
	CreatedAt  string  `json:"createdAt"`
	UpdatedAt  string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) *createAppointment.Request {
	return &createAppointment.Request{
		CustomerID: customerID,
		SellerID:   r.SellerID,
		StartAt:    r.StartAt,
		EndAt:      r.EndAt,
		Comment:    r.Comment,
		ServiceIDs: r.ServiceIDs,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:         resp.ID,
		CustomerID: resp.CustomerID,
		SellerID:   resp.SellerID,
		StartAt:    resp.StartAt.Format(time.RFC3339),
		EndAt:      resp.EndAt.Format(time.RFC3339),
		Status:     resp.Status,
		Comment:    resp.Comment,
		Price:      resp.Price,
		ServiceIDs: resp.ServiceIDs,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  resp.UpdatedAt.Format(time.RFC3339),
	}
}
