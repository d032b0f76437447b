package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/tu-usuario/valet-pro/internal/application/auth"
	"github.com/tu-usuario/valet-pro/internal/application/custody"
	"github.com/tu-usuario/valet-pro/internal/application/employees"
	"github.com/tu-usuario/valet-pro/internal/application/payments"
	"github.com/tu-usuario/valet-pro/internal/application/plans"
	"github.com/tu-usuario/valet-pro/internal/application/ports"
	"github.com/tu-usuario/valet-pro/internal/application/reports"
	"github.com/tu-usuario/valet-pro/internal/application/settings"
	"github.com/tu-usuario/valet-pro/internal/infrastructure/email"
	"github.com/tu-usuario/valet-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/valet-pro/internal/interfaces/http"
	"github.com/tu-usuario/valet-pro/pkg/config"
	"github.com/tu-usuario/valet-pro/pkg/logger"
)

// runMigrations aplica las migraciones goose pendientes antes de servir.
func runMigrations(dsn string) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Service: cfg.App.Name,
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	recordRepo := postgres.NewParkingRecordRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	valetRepo := postgres.NewValetRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	methodRepo := postgres.NewPaymentMethodRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var notifier ports.Notifier
	if cfg.Email.Enabled() {
		notifier = email.NewSendGridService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY no configurado: correos de bienvenida deshabilitados")
	}

	custodyUC := custody.NewUseCase(txRunner, recordRepo, userRepo, valetRepo, notifier)
	employeeUC := employees.NewUseCase(valetRepo, userRepo)
	paymentUC := payments.NewUseCase(paymentRepo, methodRepo, recordRepo)
	planUC := plans.NewUseCase(txRunner, planRepo, invoiceRepo, companyRepo)
	companyUC := plans.NewCompanyUseCase(companyRepo)
	reportUC := reports.NewUseCase(reportRepo, userRepo)
	settingsUC := settings.NewUseCase(settingsRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Valet Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		CustodyUC:  custodyUC,
		EmployeeUC: employeeUC,
		PaymentUC:  paymentUC,
		PlanUC:     planUC,
		CompanyUC:  companyUC,
		ReportUC:   reportUC,
		SettingsUC: settingsUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
