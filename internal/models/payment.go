package models

import "time"

// Payment methods accepted by the platform.
const (
	PaymentMethodVodafoneCash = "vodafoneCash"
	PaymentMethodCard         = "card"
	PaymentMethodCash         = "cash"
)

// Payment statuses. PaidAt is set exactly once, when status reaches paid.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment is a monetary transaction record attempting to settle a booking.
// Amount snapshots the course price at initiation; later price changes never
// affect an existing payment.
type Payment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"not null;index" json:"student_id"`
	BookingID uint       `gorm:"not null;index" json:"booking_id"`
	Amount    float64    `gorm:"not null" json:"amount"`
	Method    string     `gorm:"size:32;not null" json:"method"`
	Status    string     `gorm:"size:16;not null;default:pending" json:"status"`
	TransID   *string    `gorm:"size:128" json:"trans_id,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Student Student `json:"-"`
	Booking Booking `json:"-"`
}

// IsValidPaymentMethod reports whether method is one of the accepted methods.
func IsValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodVodafoneCash, PaymentMethodCard, PaymentMethodCash:
		return true
	}
	return false
}
