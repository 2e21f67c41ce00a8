package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduly-api/internal/auth"
	"github.com/noah-isme/eduly-api/internal/dto"
	"github.com/noah-isme/eduly-api/internal/handler"
	"github.com/noah-isme/eduly-api/internal/service"
)

type mockBookingService struct {
	lastStudentID uint
	lastPayload   dto.BookingCreateRequest
	createResp    dto.BookingResponse
	createErr     error
	confirmErr    error
	cancelErr     error
	mine          []dto.BookingResponse
	all           []dto.BookingResponse
}

func (m *mockBookingService) Create(_ context.Context, studentID uint, payload dto.BookingCreateRequest) (dto.BookingResponse, error) {
	m.lastStudentID = studentID
	m.lastPayload = payload
	if m.createErr != nil {
		return dto.BookingResponse{}, m.createErr
	}
	return m.createResp, nil
}

func (m *mockBookingService) ListMine(context.Context, uint) ([]dto.BookingResponse, error) {
	return m.mine, nil
}

func (m *mockBookingService) ListAll(context.Context, dto.BookingFilter) ([]dto.BookingResponse, error) {
	return m.all, nil
}

func (m *mockBookingService) Confirm(context.Context, uint) error { return m.confirmErr }
func (m *mockBookingService) Cancel(context.Context, uint) error  { return m.cancelErr }

func withPrincipal(principal auth.Principal) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("principal", principal)
		return c.Next()
	}
}

func newBookingApp(svc *mockBookingService) *fiber.App {
	logger := zerolog.New(io.Discard)
	app := fiber.New()
	h := handler.NewBookingHandler(svc, logger)
	h.RegisterStudent(app.Group("/api/bookings", withPrincipal(auth.Principal{ID: 42, Kind: auth.KindStudent})))
	h.RegisterStaff(app.Group("/api/bookings", withPrincipal(auth.Principal{ID: 7, Kind: auth.KindEmployee, Role: "admin"})))
	return app
}

func postJSON(t *testing.T, app *fiber.App, target string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestBookingHandler_CreateSuccess(t *testing.T) {
	svc := &mockBookingService{createResp: dto.BookingResponse{ID: 5, Status: "pending", MonthYear: "2026-03"}}
	app := newBookingApp(svc)

	resp := postJSON(t, app, "/api/bookings", dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(42), svc.lastStudentID)

	var response struct {
		Success bool                `json:"success"`
		Data    dto.BookingResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, "pending", response.Data.Status)
}

func TestBookingHandler_CreateConflicts(t *testing.T) {
	cases := map[error]int{
		service.ErrDuplicateBooking: fiber.StatusConflict,
		service.ErrCourseFull:       fiber.StatusConflict,
		service.ErrCourseNotFound:   fiber.StatusNotFound,
		service.ErrCourseInactive:   fiber.StatusBadRequest,
		service.ErrInvalidMonthYear: fiber.StatusBadRequest,
	}
	for expectedErr, status := range cases {
		svc := &mockBookingService{createErr: expectedErr}
		app := newBookingApp(svc)

		resp := postJSON(t, app, "/api/bookings", dto.BookingCreateRequest{CourseID: 1, MonthYear: "2026-03"})
		require.Equal(t, status, resp.StatusCode, "error %v", expectedErr)
	}
}

func TestBookingHandler_ConfirmAndCancel(t *testing.T) {
	svc := &mockBookingService{}
	app := newBookingApp(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/confirm/3", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	svc.confirmErr = service.ErrBookingCancelled
	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/api/bookings/confirm/3", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPatch, "/api/bookings/cancel/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestBookingHandler_ListMine(t *testing.T) {
	svc := &mockBookingService{mine: []dto.BookingResponse{{ID: 1}, {ID: 2}}}
	app := newBookingApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/bookings/my", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Data []dto.BookingResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Len(t, response.Data, 2)
}
