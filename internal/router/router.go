package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/eduly-api/internal/config"
	"github.com/noah-isme/eduly-api/internal/handler"
	"github.com/noah-isme/eduly-api/internal/middleware"
	"github.com/noah-isme/eduly-api/internal/models"
	"github.com/noah-isme/eduly-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	CourseHandler    *handler.CourseHandler
	BookingHandler   *handler.BookingHandler
	PaymentHandler   *handler.PaymentHandler
	DashboardHandler *handler.DashboardHandler
	ParentHandler    *handler.ParentHandler
	StudentHandler   *handler.StudentHandler
	EmployeeHandler  *handler.EmployeeHandler
	Protect          fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	protect := deps.Protect
	if protect == nil {
		protect = func(c *fiber.Ctx) error { return c.Next() }
	}

	staffGate := middleware.RequireEmployee()
	adminGate := middleware.RequireEmployee(models.EmployeeRoleAdmin)
	financeGate := middleware.RequireEmployee(models.EmployeeRoleAdmin, models.EmployeeRoleAccountant)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 20, time.Minute))
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterProtected(auth.Group("", protect))
	}

	if deps.CourseHandler != nil {
		courses := api.Group("/courses")
		deps.CourseHandler.Register(courses)
		deps.CourseHandler.RegisterAdmin(courses.Group("", protect, adminGate))
	}

	if deps.BookingHandler != nil {
		bookings := api.Group("/bookings", protect)
		deps.BookingHandler.RegisterStudent(bookings.Group("", middleware.RequireStudent()))
		deps.BookingHandler.RegisterStaff(bookings.Group("", staffGate))
	}

	if deps.PaymentHandler != nil {
		payments := api.Group("/payments", protect)
		deps.PaymentHandler.RegisterStudent(payments.Group("", middleware.RequireStudent()))
		deps.PaymentHandler.RegisterStaff(payments.Group("", financeGate))
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", protect, staffGate)
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.ParentHandler != nil {
		parents := api.Group("/parents", protect, middleware.RequireParent())
		deps.ParentHandler.Register(parents)
	}

	if deps.StudentHandler != nil {
		students := api.Group("/students", protect)
		deps.StudentHandler.RegisterSelf(students.Group("", middleware.RequireStudent()))
		deps.StudentHandler.RegisterAdmin(students.Group("", adminGate))
	}

	if deps.EmployeeHandler != nil {
		employees := api.Group("/employees", protect, adminGate)
		deps.EmployeeHandler.Register(employees)
	}
}
