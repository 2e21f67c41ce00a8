package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// EmployeeHandler handles the admin staff roster, including activation of
// pending registrations.
type EmployeeHandler struct {
	service service.EmployeeAccountService
	logger  zerolog.Logger
}

// NewEmployeeHandler constructs the handler.
func NewEmployeeHandler(service service.EmployeeAccountService, logger zerolog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		service: service,
		logger:  logger.With().Str("component", "employee_handler").Logger(),
	}
}

// Register wires the admin-only staff routes.
func (h *EmployeeHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *EmployeeHandler) create(c *fiber.Ctx) error {
	var payload dto.EmployeeCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	employee, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to create employee")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "employee created", employee)
}

func (h *EmployeeHandler) list(c *fiber.Ctx) error {
	employees, err := h.service.List(c.UserContext())
	if err != nil {
		return h.handleError(c, err, "failed to list employees")
	}

	return utils.SendSuccess(c, "employees retrieved", employees)
}

func (h *EmployeeHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid employee id")
	}

	var payload dto.EmployeeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	employee, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		return h.handleError(c, err, "failed to update employee")
	}

	return utils.SendSuccess(c, "employee updated", employee)
}

func (h *EmployeeHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid employee id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.handleError(c, err, "failed to delete employee")
	}

	return utils.SendSuccess(c, "employee deleted", nil)
}

func (h *EmployeeHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrEmployeeNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "employee not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
