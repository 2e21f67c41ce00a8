package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/models"
)

type stubResolver struct {
	principals map[uint]auth.Principal
	inactive   map[uint]bool
}

func (s *stubResolver) Resolve(_ context.Context, principalID uint, kind string) (auth.Principal, error) {
	if s.inactive[principalID] {
		return auth.Principal{}, auth.ErrAccountInactive
	}
	principal, ok := s.principals[principalID]
	if !ok || principal.Kind != kind {
		return auth.Principal{}, auth.ErrPrincipalNotFound
	}
	return principal, nil
}

func newProtectedApp(t *testing.T, gates ...fiber.Handler) (*fiber.App, *auth.TokenManager, *stubResolver) {
	t.Helper()

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	resolver := &stubResolver{
		principals: map[uint]auth.Principal{
			1: {ID: 1, Kind: auth.KindStudent, Name: "Sara"},
			2: {ID: 2, Kind: auth.KindEmployee, Role: models.EmployeeRoleAccountant, Name: "Adel"},
		},
		inactive: map[uint]bool{3: true},
	}

	app := fiber.New()
	handlers := append([]fiber.Handler{Protect(tokens, resolver)}, gates...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromCtx(c)
		return c.SendString(principal.Kind)
	})
	app.Get("/guarded", handlers...)
	return app, tokens, resolver
}

func TestProtect(t *testing.T) {
	app, tokens, _ := newProtectedApp(t)

	token, err := tokens.Issue(auth.Principal{ID: 1, Kind: auth.KindStudent})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectAcceptsTokenCookie(t *testing.T) {
	app, tokens, _ := newProtectedApp(t)

	token, err := tokens.Issue(auth.Principal{ID: 1, Kind: auth.KindStudent})
	require.NoError(t, err)

	// Browser clients carry only the login cookie, no Authorization header.
	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-token"})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A malformed header is rejected even when a valid cookie rides along.
	req = httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic abc123")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectRejectsBadCredentials(t *testing.T) {
	app, tokens, _ := newProtectedApp(t)

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc123",
		"garbage token":  "Bearer not-a-token",
	}
	for name, header := range cases {
		req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, name)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, name)
	}

	// Valid token whose account no longer exists.
	token, err := tokens.Issue(auth.Principal{ID: 99, Kind: auth.KindStudent})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// Valid token whose kind claim points at the wrong store.
	token, err = tokens.Issue(auth.Principal{ID: 1, Kind: auth.KindParent})
	require.NoError(t, err)
	req = httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProtectInactiveAccount(t *testing.T) {
	app, tokens, _ := newProtectedApp(t)

	token, err := tokens.Issue(auth.Principal{ID: 3, Kind: auth.KindStudent})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRoleGates(t *testing.T) {
	app, tokens, _ := newProtectedApp(t, RequireEmployee(models.EmployeeRoleAdmin, models.EmployeeRoleAccountant))

	studentToken, err := tokens.Issue(auth.Principal{ID: 1, Kind: auth.KindStudent})
	require.NoError(t, err)
	accountantToken, err := tokens.Issue(auth.Principal{ID: 2, Kind: auth.KindEmployee, Role: models.EmployeeRoleAccountant})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+studentToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+accountantToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireStudentGate(t *testing.T) {
	app, tokens, _ := newProtectedApp(t, RequireStudent())

	token, err := tokens.Issue(auth.Principal{ID: 2, Kind: auth.KindEmployee, Role: models.EmployeeRoleAccountant})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/guarded", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
