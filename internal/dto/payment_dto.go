package dto

import (
	"time"

	"github.com/noah-isme/eduly-api/internal/models"
)

// PaymentInitiateRequest starts a wallet payment for a booking.
type PaymentInitiateRequest struct {
	BookingID uint `json:"bookingId" validate:"required,gt=0"`
}

// PaymentConfirmRequest carries the student-supplied wallet transfer code.
type PaymentConfirmRequest struct {
	PaymentID uint   `json:"paymentId" validate:"required,gt=0"`
	TransID   string `json:"transId" validate:"required,min=3,max=128"`
}

// PaymentInitiateResponse returns the payment handle plus the receiving
// wallet number the student should transfer to.
type PaymentInitiateResponse struct {
	PaymentID      uint    `json:"paymentId"`
	Amount         float64 `json:"amount"`
	VodafoneNumber string  `json:"vodafoneNumber"`
}

// PaymentResponse is returned to API clients when viewing payments.
type PaymentResponse struct {
	ID          uint         `json:"id"`
	BookingID   uint         `json:"booking_id"`
	Amount      float64      `json:"amount"`
	Method      string       `json:"method"`
	Status      string       `json:"status"`
	TransID     *string      `json:"trans_id,omitempty"`
	PaidAt      *time.Time   `json:"paid_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CourseTitle string       `json:"course_title,omitempty"`
	Student     *StudentLite `json:"student,omitempty"`
}

// NewPaymentResponse converts a Payment model into a DTO.
func NewPaymentResponse(model models.Payment) PaymentResponse {
	response := PaymentResponse{
		ID:        model.ID,
		BookingID: model.BookingID,
		Amount:    model.Amount,
		Method:    model.Method,
		Status:    model.Status,
		TransID:   model.TransID,
		PaidAt:    model.PaidAt,
		CreatedAt: model.CreatedAt,
	}

	if model.Booking.Course.ID != 0 {
		response.CourseTitle = model.Booking.Course.Title
	}

	if model.Student.ID != 0 {
		response.Student = &StudentLite{
			ID:    model.Student.ID,
			Name:  model.Student.Name,
			Email: model.Student.Email,
			Phone: model.Student.Phone,
		}
	}

	return response
}

// NewPaymentResponseSlice converts a slice of payments.
func NewPaymentResponseSlice(payments []models.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, NewPaymentResponse(payment))
	}
	return responses
}
