package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/service"
	"github.com/noah-isme/eduly-api/internal/utils"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register-student", h.registerStudent)
	router.Post("/register-parent", h.registerParent)
	router.Post("/register-employee", h.registerEmployee)
	router.Post("/login", h.login)
}

// RegisterProtected wires the routes that require an authenticated caller.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/me", h.me)
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) registerStudent(c *fiber.Ctx) error {
	var payload dto.RegisterStudentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.RegisterStudent(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to register student")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", response)
}

func (h *AuthHandler) registerParent(c *fiber.Ctx) error {
	var payload dto.RegisterParentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.RegisterParent(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to register parent")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "parent registered", response)
}

func (h *AuthHandler) registerEmployee(c *fiber.Ctx) error {
	var payload dto.RegisterEmployeeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.RegisterEmployee(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to register employee")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration received, awaiting activation", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err, "failed to login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    response.Token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "profile retrieved", principalFromCtx(c))
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) handleError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, "validation failed")
	case errors.Is(err, service.ErrEmailTaken):
		return utils.SendError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidLogin):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrAccountInactive):
		return utils.SendError(c, fiber.StatusForbidden, "account is awaiting activation")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
