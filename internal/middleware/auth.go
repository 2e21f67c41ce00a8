package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/utils"
)

const principalLocal = "principal"

// tokenCookie is the HTTP-only cookie set by login for browser clients.
const tokenCookie = "token"

// PrincipalResolver maps verified token claims to a live account.
type PrincipalResolver interface {
	Resolve(ctx context.Context, principalID uint, kind string) (auth.Principal, error)
}

// Protect validates the session token, taken from the Authorization header
// or from the token cookie when no header is present, and resolves the
// caller into a Principal stored on the request. Requests carrying tokens
// for deleted accounts fail with 401; suspended accounts fail with 403.
func Protect(tokens *auth.TokenManager, resolver PrincipalResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var credential string
		if authorization := c.Get(fiber.HeaderAuthorization); authorization != "" {
			const bearer = "Bearer "
			if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
				return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
			}
			credential = strings.TrimSpace(authorization[len(bearer):])
		} else {
			credential = c.Cookies(tokenCookie)
		}
		if credential == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing credentials")
		}

		claims, err := tokens.Verify(credential)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		principal, err := resolver.Resolve(c.UserContext(), claims.PrincipalID, claims.Kind)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrAccountInactive):
				return utils.SendError(c, fiber.StatusForbidden, "account is deactivated")
			case errors.Is(err, auth.ErrPrincipalNotFound):
				return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
			default:
				return utils.SendError(c, fiber.StatusInternalServerError, "failed to authenticate request")
			}
		}

		c.Locals(principalLocal, principal)
		return c.Next()
	}
}

// PrincipalFromCtx returns the Principal stored by Protect.
func PrincipalFromCtx(c *fiber.Ctx) (auth.Principal, bool) {
	principal, ok := c.Locals(principalLocal).(auth.Principal)
	return principal, ok
}

// RequireStudent restricts the route to student accounts.
func RequireStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok || !principal.IsStudent() {
			return utils.SendError(c, fiber.StatusForbidden, "students only")
		}
		return c.Next()
	}
}

// RequireParent restricts the route to parent accounts.
func RequireParent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok || !principal.IsParent() {
			return utils.SendError(c, fiber.StatusForbidden, "parents only")
		}
		return c.Next()
	}
}

// RequireEmployee restricts the route to employee accounts holding one of
// the given roles. With no roles listed any employee passes.
func RequireEmployee(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromCtx(c)
		if !ok || !principal.IsEmployee(roles...) {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}
