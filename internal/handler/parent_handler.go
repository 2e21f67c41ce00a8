package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// ParentHandler handles parent-student linking and the child views.
type ParentHandler struct {
	service service.ParentService
	logger  zerolog.Logger
}

// NewParentHandler constructs the handler.
func NewParentHandler(service service.ParentService, logger zerolog.Logger) *ParentHandler {
	return &ParentHandler{
		service: service,
		logger:  logger.With().Str("component", "parent_handler").Logger(),
	}
}

// Register wires the parent routes.
func (h *ParentHandler) Register(router fiber.Router) {
	router.Post("/link-student", h.link)
	router.Delete("/unlink/:studentId", h.unlink)
	router.Get("/my-children", h.children)
	router.Get("/child-payments/:studentId", h.childPayments)
	router.Get("/child-courses/:studentId", h.childCourses)
	router.Get("/child-attendance/:studentId", h.childAttendance)
}

func (h *ParentHandler) link(c *fiber.Ctx) error {
	var payload dto.ParentLinkRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	child, err := h.service.Link(c.UserContext(), principalFromCtx(c).ID, payload)
	if err != nil {
		return h.handleError(c, err, "failed to link student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student linked", child)
}

func (h *ParentHandler) unlink(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	if err := h.service.Unlink(c.UserContext(), principalFromCtx(c).ID, studentID); err != nil {
		return h.handleError(c, err, "failed to unlink student")
	}

	return utils.SendSuccess(c, "student unlinked", nil)
}

func (h *ParentHandler) children(c *fiber.Ctx) error {
	children, err := h.service.Children(c.UserContext(), principalFromCtx(c).ID)
	if err != nil {
		return h.handleError(c, err, "failed to list children")
	}

	return utils.SendSuccess(c, "children retrieved", children)
}

func (h *ParentHandler) childPayments(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	payments, err := h.service.ChildPayments(c.UserContext(), principalFromCtx(c).ID, studentID)
	if err != nil {
		return h.handleError(c, err, "failed to list child payments")
	}

	return utils.SendSuccess(c, "child payments retrieved", payments)
}

func (h *ParentHandler) childCourses(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	courses, err := h.service.ChildCourses(c.UserContext(), principalFromCtx(c).ID, studentID)
	if err != nil {
		return h.handleError(c, err, "failed to list child courses")
	}

	return utils.SendSuccess(c, "child courses retrieved", courses)
}

func (h *ParentHandler) childAttendance(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	attendance, err := h.service.ChildAttendance(c.UserContext(), principalFromCtx(c).ID, studentID)
	if err != nil {
		return h.handleError(c, err, "failed to list child attendance")
	}

	return utils.SendSuccess(c, "child attendance retrieved", attendance)
}

func (h *ParentHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student not found")
	case errors.Is(err, service.ErrAlreadyLinked):
		return utils.SendError(c, fiber.StatusConflict, "student already linked")
	case errors.Is(err, service.ErrLinkNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "link not found")
	case errors.Is(err, service.ErrNotLinked):
		return utils.SendError(c, fiber.StatusForbidden, "student is not linked to this account")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
