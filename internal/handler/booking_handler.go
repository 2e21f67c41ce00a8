package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// BookingHandler handles the student booking flow and the staff ledger.
type BookingHandler struct {
	service service.BookingService
	logger  zerolog.Logger
}

// NewBookingHandler constructs the handler.
func NewBookingHandler(service service.BookingService, logger zerolog.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		logger:  logger.With().Str("component", "booking_handler").Logger(),
	}
}

// RegisterStudent wires the student-facing booking routes.
func (h *BookingHandler) RegisterStudent(router fiber.Router) {
	router.Post("", h.create)
	router.Get("/my", h.listMine)
}

// RegisterStaff wires the staff ledger routes.
func (h *BookingHandler) RegisterStaff(router fiber.Router) {
	router.Get("", h.listAll)
	router.Patch("/confirm/:id", h.confirm)
	router.Patch("/cancel/:id", h.cancel)
}

func (h *BookingHandler) create(c *fiber.Ctx) error {
	var payload dto.BookingCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	booking, err := h.service.Create(c.UserContext(), principalFromCtx(c).ID, payload)
	if err != nil {
		return h.handleError(c, err, "failed to create booking")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "booking created", booking)
}

func (h *BookingHandler) listMine(c *fiber.Ctx) error {
	bookings, err := h.service.ListMine(c.UserContext(), principalFromCtx(c).ID)
	if err != nil {
		return h.handleError(c, err, "failed to list bookings")
	}

	return utils.SendSuccess(c, "bookings retrieved", bookings)
}

func (h *BookingHandler) listAll(c *fiber.Ctx) error {
	var filter dto.BookingFilter
	if err := c.QueryParser(&filter); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	bookings, err := h.service.ListAll(c.UserContext(), filter)
	if err != nil {
		return h.handleError(c, err, "failed to list bookings")
	}

	return utils.SendSuccess(c, "bookings retrieved", bookings)
}

func (h *BookingHandler) confirm(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	if err := h.service.Confirm(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to confirm booking")
	}

	return utils.SendSuccess(c, "booking confirmed", nil)
}

func (h *BookingHandler) cancel(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid booking id")
	}

	if err := h.service.Cancel(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to cancel booking")
	}

	return utils.SendSuccess(c, "booking cancelled", nil)
}

func (h *BookingHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrInvalidMonthYear):
		return utils.SendError(c, fiber.StatusBadRequest, "monthYear must be formatted as YYYY-MM")
	case errors.Is(err, service.ErrCourseNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "course not found")
	case errors.Is(err, service.ErrCourseInactive):
		return utils.SendError(c, fiber.StatusBadRequest, "course is not open for booking")
	case errors.Is(err, service.ErrCourseFull):
		return utils.SendError(c, fiber.StatusConflict, "course is full for this month")
	case errors.Is(err, service.ErrDuplicateBooking):
		return utils.SendError(c, fiber.StatusConflict, "course already booked for this month")
	case errors.Is(err, service.ErrBookingNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "booking not found")
	case errors.Is(err, service.ErrBookingCancelled):
		return utils.SendError(c, fiber.StatusConflict, "booking is cancelled")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
