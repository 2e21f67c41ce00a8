package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/models"
)

// ErrBookingUnavailable reports an approval whose booking was cancelled or
// deleted after the caller's checks but before the transaction committed.
var ErrBookingUnavailable = errors.New("booking cancelled or missing")

// PaymentRepository defines data operations for payments, including the
// approval cascade that is the only multi-entity write in the system.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (models.Payment, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error)
	ListPendingVodafone(ctx context.Context) ([]models.Payment, error)
	FindActiveByBooking(ctx context.Context, bookingID uint) (models.Payment, error)
	SetTransID(ctx context.Context, paymentID, studentID uint, transID string) (int64, error)
	ApproveWithBooking(ctx context.Context, paymentID, bookingID uint, paidAt time.Time) error
	MarkFailed(ctx context.Context, paymentID uint) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository instantiates the repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Preload("Booking").First(&payment, id).Error; err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Booking.Course").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) ListPendingVodafone(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Booking.Course").
		Where("method = ?", models.PaymentMethodVodafoneCash).
		Where("status = ?", models.PaymentStatusPending).
		Where("trans_id IS NOT NULL").
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}

// FindActiveByBooking returns the latest non-failed payment for a booking.
func (r *paymentRepository) FindActiveByBooking(ctx context.Context, bookingID uint) (models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Where("status <> ?", models.PaymentStatusFailed).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

// SetTransID stores the student-supplied wallet code, scoped to the owning
// student so a code can never be attached to another student's payment. The
// update only applies while the payment is still pending. Returns the number
// of rows affected; zero means no matching pending payment for that student.
func (r *paymentRepository) SetTransID(ctx context.Context, paymentID, studentID uint, transID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ? AND student_id = ?", paymentID, studentID).
		Where("status = ?", models.PaymentStatusPending).
		Update("trans_id", transID)
	return result.RowsAffected, result.Error
}

// ApproveWithBooking marks the payment paid and the booking confirmed inside
// one transaction. Both writes commit or neither does; a payment that is
// already paid is left untouched so paid_at is set exactly once, and a
// booking cancelled in the meantime rolls the whole approval back with
// ErrBookingUnavailable.
func (r *paymentRepository) ApproveWithBooking(ctx context.Context, paymentID, bookingID uint, paidAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Payment{}).
			Where("id = ?", paymentID).
			Where("status <> ?", models.PaymentStatusPaid).
			Updates(map[string]interface{}{
				"status":  models.PaymentStatusPaid,
				"paid_at": paidAt,
			}).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Booking{}).
			Where("id = ?", bookingID).
			Where("status <> ?", models.BookingStatusCancelled).
			Update("status", models.BookingStatusConfirmed)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBookingUnavailable
		}
		return nil
	})
}

// MarkFailed moves a pending payment to failed. Returns rows affected; zero
// means the payment was absent or no longer pending.
func (r *paymentRepository) MarkFailed(ctx context.Context, paymentID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", paymentID).
		Where("status = ?", models.PaymentStatusPending).
		Update("status", models.PaymentStatusFailed)
	return result.RowsAffected, result.Error
}
