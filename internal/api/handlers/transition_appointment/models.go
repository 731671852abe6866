package transition_appointment

import (
	"time"

	transitionAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/transition_appointment"
)

// TransitionRequest HTTP request model
type TransitionRequest struct {
	Status        string  `json:"status"`
	SellerComment *string `json:"sellerComment,omitempty"`
}

// TransitionResponse HTTP response model
type TransitionResponse struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customerId"`
	SellerID       int64   `json:"sellerId"`
	StartAt        string  `json:"startAt"`
	EndAt          string  `json:"endAt"`
	PreviousStatus string  `json:"previousStatus"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
	SellerComment  *string `json:"sellerComment,omitempty"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *TransitionRequest) ToUseCaseRequest(appointmentID, actorID int64) *transitionAppointment.Request {
	return &transitionAppointment.Request{
		AppointmentID: appointmentID,
		ActorID:       actorID,
		TargetStatus:  r.Status,
		SellerComment: r.SellerComment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionAppointment.Response) *TransitionResponse {
	return &TransitionResponse{
		ID:             resp.ID,
		CustomerID:     resp.CustomerID,
		SellerID:       resp.SellerID,
		StartAt:        resp.StartAt.Format(time.RFC3339),
		EndAt:          resp.EndAt.Format(time.RFC3339),
		PreviousStatus: resp.PreviousStatus,
		Status:         resp.Status,
		Price:          resp.Price,
		SellerComment:  resp.SellerComment,
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
