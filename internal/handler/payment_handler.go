package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/observability"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// PaymentHandler handles the student wallet flow and the staff review queue.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("component", "payment_handler").Logger(),
	}
}

// RegisterStudent wires the student-facing payment routes.
func (h *PaymentHandler) RegisterStudent(router fiber.Router) {
	router.Post("/vodafone-cash", h.initiateVodafone)
	router.Post("/confirm-vodafone", h.confirmVodafone)
	router.Get("/my", h.listMine)
}

// RegisterStaff wires the accountant/admin review routes.
func (h *PaymentHandler) RegisterStaff(router fiber.Router) {
	router.Get("/pending-vodafone", h.listPendingVodafone)
	router.Patch("/approve/:id", h.approve)
	router.Patch("/reject/:id", h.reject)
}

func (h *PaymentHandler) initiateVodafone(c *fiber.Ctx) error {
	var payload dto.PaymentInitiateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Initiate(c.UserContext(), principalFromCtx(c).ID, payload, models.PaymentMethodVodafoneCash)
	if err != nil {
		return h.handleError(c, err, "failed to initiate payment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "payment initiated, transfer to the wallet number", response)
}

func (h *PaymentHandler) confirmVodafone(c *fiber.Ctx) error {
	var payload dto.PaymentConfirmRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.ConfirmTransactionCode(c.UserContext(), principalFromCtx(c).ID, payload); err != nil {
		return h.handleError(c, err, "failed to confirm payment")
	}

	return utils.SendSuccess(c, "transaction code recorded, awaiting review", nil)
}

func (h *PaymentHandler) listMine(c *fiber.Ctx) error {
	payments, err := h.service.ListMine(c.UserContext(), principalFromCtx(c).ID)
	if err != nil {
		return h.handleError(c, err, "failed to list payments")
	}

	return utils.SendSuccess(c, "payments retrieved", payments)
}

func (h *PaymentHandler) listPendingVodafone(c *fiber.Ctx) error {
	payments, err := h.service.ListPendingVodafone(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "failed to list pending payments")
	}

	return utils.SendSuccess(c, "pending payments retrieved", payments)
}

func (h *PaymentHandler) approve(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	if err := h.service.Approve(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to approve payment")
	}

	observability.PaymentsProcessed().WithLabelValues("approved").Inc()
	return utils.SendSuccess(c, "payment approved", nil)
}

func (h *PaymentHandler) reject(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payment id")
	}

	if err := h.service.Reject(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to reject payment")
	}

	observability.PaymentsProcessed().WithLabelValues("rejected").Inc()
	return utils.SendSuccess(c, "payment rejected", nil)
}

func (h *PaymentHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrBookingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrBookingForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "booking belongs to another student")
	case errors.Is(err, service.ErrBookingCancelled):
		return utils.SendError(c, fiber.StatusConflict, "booking is cancelled")
	case errors.Is(err, service.ErrBookingAlreadyPaid):
		return utils.SendError(c, fiber.StatusConflict, "booking is already paid")
	case errors.Is(err, service.ErrPaymentAlreadyPending):
		return utils.SendError(c, fiber.StatusConflict, "a pending payment already exists for this booking")
	case errors.Is(err, service.ErrPaymentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "payment not found")
	case errors.Is(err, service.ErrPaymentNotPending):
		return utils.SendError(c, fiber.StatusConflict, "payment is no longer pending")
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		return utils.SendError(c, fiber.StatusBadRequest, "unsupported payment method")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
