package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// StudentHandler handles student self-service and the admin student roster.
type StudentHandler struct {
	service service.StudentAccountService
	logger  zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(service service.StudentAccountService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// RegisterSelf wires the student self-service routes.
func (h *StudentHandler) RegisterSelf(router fiber.Router) {
	router.Get("/my-profile", h.profile)
	router.Patch("/update-profile", h.updateProfile)
}

// RegisterAdmin wires the admin roster routes.
func (h *StudentHandler) RegisterAdmin(router fiber.Router) {
	router.Get("", h.list)
	router.Patch("/:id/toggle-status", h.toggleStatus)
	router.Delete("/:id", h.delete)
}

func (h *StudentHandler) profile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.UserContext(), principalFromCtx(c).ID)
	if err != nil {
		return h.handleError(c, err, "failed to get profile")
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *StudentHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.StudentProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), principalFromCtx(c).ID, payload)
	if err != nil {
		return h.handleError(c, err, "failed to update profile")
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) toggleStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var payload dto.StudentToggleStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.service.ToggleStatus(c.UserContext(), id, payload.IsActive); err != nil {
		return h.handleError(c, err, "failed to toggle student status")
	}

	return utils.SendSuccess(c, "student status updated", nil)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to delete student")
	}

	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *StudentHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
