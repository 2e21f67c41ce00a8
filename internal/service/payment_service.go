package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/notify"
	"github.com/noah-isme/eduly-api/internal/repository"
)

// Payment workflow failures.
var (
	ErrPaymentNotFound       = errors.New("payment not found")
	ErrPaymentNotPending     = errors.New("payment is no longer pending")
	ErrPaymentAlreadyPending = errors.New("a pending payment already exists for this booking")
	ErrBookingAlreadyPaid    = errors.New("booking is already paid")
	ErrBookingForbidden      = errors.New("booking belongs to another student")
	ErrInvalidPaymentMethod  = errors.New("unsupported payment method")
)

// PaymentService orchestrates payment initiation, code confirmation and
// staff approval, including the cascade that confirms the booking.
type PaymentService interface {
	Initiate(ctx context.Context, studentID uint, payload dto.PaymentInitiateRequest, method string) (dto.PaymentInitiateResponse, error)
	ConfirmTransactionCode(ctx context.Context, studentID uint, payload dto.PaymentConfirmRequest) error
	Approve(ctx context.Context, paymentID uint) error
	Reject(ctx context.Context, paymentID uint) error
	ListMine(ctx context.Context, studentID uint) ([]dto.PaymentResponse, error)
	ListPendingVodafone(ctx context.Context) ([]dto.PaymentResponse, error)
}

type paymentService struct {
	payments       repository.PaymentRepository
	bookings       repository.BookingRepository
	validator      *validator.Validate
	notifier       notify.Notifier
	vodafoneNumber string
	logger         zerolog.Logger
	now            func() time.Time
}

// NewPaymentService constructs a PaymentService instance.
func NewPaymentService(paymentRepo repository.PaymentRepository, bookingRepo repository.BookingRepository, validate *validator.Validate, notifier notify.Notifier, vodafoneNumber string, logger zerolog.Logger) PaymentService {
	return &paymentService{
		payments:       paymentRepo,
		bookings:       bookingRepo,
		validator:      validate,
		notifier:       notifier,
		vodafoneNumber: vodafoneNumber,
		logger:         logger.With().Str("component", "payment_service").Logger(),
		now:            time.Now,
	}
}

// Initiate opens a payment attempt for a booking. The amount snapshots the
// course price at this moment; later price changes never touch it. One
// active (non-failed) attempt is allowed per booking.
func (s *paymentService) Initiate(ctx context.Context, studentID uint, payload dto.PaymentInitiateRequest, method string) (dto.PaymentInitiateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PaymentInitiateResponse{}, err
	}

	if !models.IsValidPaymentMethod(method) {
		return dto.PaymentInitiateResponse{}, ErrInvalidPaymentMethod
	}

	booking, err := s.bookings.GetByID(ctx, payload.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PaymentInitiateResponse{}, ErrBookingNotFound
		}
		return dto.PaymentInitiateResponse{}, err
	}

	if booking.StudentID != studentID {
		return dto.PaymentInitiateResponse{}, ErrBookingForbidden
	}

	if booking.Status == models.BookingStatusCancelled {
		return dto.PaymentInitiateResponse{}, ErrBookingCancelled
	}

	active, err := s.payments.FindActiveByBooking(ctx, booking.ID)
	switch {
	case err == nil:
		if active.Status == models.PaymentStatusPaid {
			return dto.PaymentInitiateResponse{}, ErrBookingAlreadyPaid
		}
		return dto.PaymentInitiateResponse{}, ErrPaymentAlreadyPending
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No active attempt; proceed.
	default:
		return dto.PaymentInitiateResponse{}, err
	}

	payment := models.Payment{
		StudentID: studentID,
		BookingID: booking.ID,
		Amount:    booking.Course.PricePerMonth,
		Method:    method,
		Status:    models.PaymentStatusPending,
	}

	if err := s.payments.Create(ctx, &payment); err != nil {
		return dto.PaymentInitiateResponse{}, err
	}

	s.logger.Info().
		Uint("payment_id", payment.ID).
		Uint("booking_id", booking.ID).
		Float64("amount", payment.Amount).
		Str("method", method).
		Msg("payment initiated")

	response := dto.PaymentInitiateResponse{
		PaymentID: payment.ID,
		Amount:    payment.Amount,
	}
	if method == models.PaymentMethodVodafoneCash {
		response.VodafoneNumber = s.vodafoneNumber
	}

	return response, nil
}

// ConfirmTransactionCode records the wallet transfer code on a pending
// payment owned by the student. A missing or foreign payment id fails with
// ErrPaymentNotFound so the student gets feedback instead of a silent no-op.
func (s *paymentService) ConfirmTransactionCode(ctx context.Context, studentID uint, payload dto.PaymentConfirmRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	affected, err := s.payments.SetTransID(ctx, payload.PaymentID, studentID, payload.TransID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info().Uint("payment_id", payload.PaymentID).Msg("transaction code recorded")
		return nil
	}

	// Nothing matched; work out whether the payment is absent, foreign, or
	// no longer pending. Foreign payments read as not found so ids cannot
	// be probed.
	payment, err := s.payments.GetByID(ctx, payload.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	if payment.StudentID != studentID {
		return ErrPaymentNotFound
	}
	return ErrPaymentNotPending
}

// Approve settles a payment: payment goes to paid and its booking to
// confirmed inside one transaction. Approving an already-paid payment is a
// no-op success; a cancelled booking is never resurrected by a late
// approval. The outbound notification is best-effort and never fails the
// call.
func (s *paymentService) Approve(ctx context.Context, paymentID uint) error {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	if payment.Status == models.PaymentStatusPaid {
		return nil
	}
	if payment.Status == models.PaymentStatusFailed {
		return ErrPaymentNotPending
	}

	if payment.Booking.Status == models.BookingStatusCancelled {
		return ErrBookingCancelled
	}

	paidAt := s.now()
	if err := s.payments.ApproveWithBooking(ctx, payment.ID, payment.BookingID, paidAt); err != nil {
		// A staff cancel can land between the check above and the
		// transaction; the rolled-back approval reads as cancelled.
		if errors.Is(err, repository.ErrBookingUnavailable) {
			return ErrBookingCancelled
		}
		return err
	}

	s.logger.Info().
		Uint("payment_id", payment.ID).
		Uint("booking_id", payment.BookingID).
		Float64("amount", payment.Amount).
		Msg("payment approved")

	event := notify.PaymentApprovedEvent{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		StudentID: payment.StudentID,
		Amount:    payment.Amount,
		Method:    payment.Method,
		PaidAt:    paidAt,
	}
	if err := s.notifier.PaymentApproved(ctx, event); err != nil {
		s.logger.Warn().Err(err).Uint("payment_id", payment.ID).Msg("approval notification failed")
	}

	return nil
}

// Reject moves a pending payment to failed; the booking is untouched so the
// student can retry with another attempt.
func (s *paymentService) Reject(ctx context.Context, paymentID uint) error {
	affected, err := s.payments.MarkFailed(ctx, paymentID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.logger.Info().Uint("payment_id", paymentID).Msg("payment rejected")
		return nil
	}

	if _, err := s.payments.GetByID(ctx, paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}
	return ErrPaymentNotPending
}

func (s *paymentService) ListMine(ctx context.Context, studentID uint) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponseSlice(payments), nil
}

func (s *paymentService) ListPendingVodafone(ctx context.Context) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.ListPendingVodafone(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPaymentResponseSlice(payments), nil
}
