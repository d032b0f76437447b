package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/valet-pro/internal/application/auth"
	"github.com/tu-usuario/valet-pro/internal/application/custody"
	"github.com/tu-usuario/valet-pro/internal/application/employees"
	"github.com/tu-usuario/valet-pro/internal/application/payments"
	"github.com/tu-usuario/valet-pro/internal/application/plans"
	"github.com/tu-usuario/valet-pro/internal/application/reports"
	"github.com/tu-usuario/valet-pro/internal/application/settings"
	"github.com/tu-usuario/valet-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	CustodyUC  *custody.UseCase
	EmployeeUC *employees.UseCase
	PaymentUC  *payments.UseCase
	PlanUC     *plans.UseCase
	CompanyUC  *plans.CompanyUseCase
	ReportUC   *reports.UseCase
	SettingsUC *settings.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staffRoles := []string{entity.RoleSuperAdmin, entity.RoleAdmin, entity.RoleManager, entity.RoleAttendant}
	adminRoles := []string{entity.RoleSuperAdmin, entity.RoleAdmin}

	// Auth (login siempre público; register hace bootstrap la primera vez
	// y después exige actor, validado en el use case)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", optionalAuth(deps.JWTSecret), authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido)
	users := protected.Group("/users")
	users.Get("/", RequireRole(staffRoles...), authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)
	users.Put("/:id", authHandler.UpdateUser)

	// Vehicles / custodia (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.CustodyUC)
	vehicles.Post("/register", RequireRole(staffRoles...), vehicleHandler.Register)
	vehicles.Get("/", RequireRole(staffRoles...), vehicleHandler.List)
	vehicles.Get("/mine", vehicleHandler.Mine)
	vehicles.Get("/valets", RequireRole(staffRoles...), vehicleHandler.ListValets)
	vehicles.Get("/by-valet/:idNumber", RequireRole(staffRoles...), vehicleHandler.OpenByValet)
	vehicles.Get("/:id", vehicleHandler.GetByID)
	vehicles.Post("/:id/checkout", RequireRole(staffRoles...), vehicleHandler.Checkout)

	// Employees: valets y attendants (protegido, administración)
	employeesGroup := protected.Group("/employees", RequireRole(adminRoles...))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employeesGroup.Post("/", employeeHandler.Create)
	employeesGroup.Get("/", employeeHandler.List)
	employeesGroup.Delete("/:id", employeeHandler.Delete)

	// Payments (protegido, solo staff)
	paymentsGroup := protected.Group("/payments", RequireRole(staffRoles...))
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup.Post("/", paymentHandler.Create)
	paymentsGroup.Get("/", paymentHandler.List)
	paymentsGroup.Get("/methods", paymentHandler.ListMethods)
	paymentsGroup.Post("/methods", RequireRole(adminRoles...), paymentHandler.CreateMethod)
	paymentsGroup.Get("/:id", paymentHandler.GetByID)
	paymentsGroup.Patch("/:id/status", paymentHandler.UpdateStatus)

	// Companies, planes y facturas (protegido)
	companies := protected.Group("/companies", RequireRole(staffRoles...))
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.PlanUC)
	companies.Post("/", RequireRole(adminRoles...), companyHandler.Create)
	companies.Get("/", companyHandler.List)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", RequireRole(adminRoles...), companyHandler.Update)
	companies.Delete("/:id", RequireRole(entity.RoleSuperAdmin), companyHandler.Delete)
	companies.Put("/:id/plan", RequireRole(adminRoles...), companyHandler.SetPlan)
	companies.Get("/:id/plan", companyHandler.ActivePlan)
	companies.Get("/:id/plans", companyHandler.ListPlans)
	companies.Post("/:id/invoices", RequireRole(adminRoles...), companyHandler.GenerateInvoice)

	// Facturas por versión de plan (protegido, administración)
	plansGroup := protected.Group("/plans", RequireRole(adminRoles...))
	plansGroup.Get("/:planId/invoices", companyHandler.ListInvoices)
	plansGroup.Patch("/:planId/invoices/:invoiceId/status", companyHandler.UpdateInvoiceStatus)

	// Reports (protegido, solo staff)
	reportsGroup := protected.Group("/reports", RequireRole(staffRoles...))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/revenue", reportHandler.Revenue)
	reportsGroup.Get("/vehicles", reportHandler.Vehicles)
	reportsGroup.Get("/dashboard", reportHandler.Dashboard)

	// Settings (protegido)
	settingsGroup := protected.Group("/settings", RequireRole(staffRoles...))
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/", RequireRole(adminRoles...), settingsHandler.Update)
}

// optionalAuth carga el Actor si llega un token válido, pero deja pasar
// sin token (lo necesita el bootstrap del primer registro).
func optionalAuth(jwtSecret string) fiber.Handler {
	authMW := AuthMiddleware(jwtSecret)
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}
		return authMW(c)
	}
}
