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
	"github.com/shopspring/decimal"

	"github.com/dventura/autogest-api/internal/application/auth"
	"github.com/dventura/autogest-api/internal/application/billing"
	"github.com/dventura/autogest-api/internal/application/cars"
	"github.com/dventura/autogest-api/internal/application/usecase"
	infrapdf "github.com/dventura/autogest-api/internal/infrastructure/pdf"
	"github.com/dventura/autogest-api/internal/infrastructure/postgres"
	"github.com/dventura/autogest-api/internal/infrastructure/storage"
	httpRouter "github.com/dventura/autogest-api/internal/interfaces/http"
	"github.com/dventura/autogest-api/pkg/config"
	"github.com/dventura/autogest-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		App:   cfg.App.Name,
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	carRepo := postgres.NewCarRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	docRepo := postgres.NewCarDocumentRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	incidentRepo := postgres.NewIncidentRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	store, err := storage.NewLocalStore(cfg.Storage.PublicDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento local")
	}
	generator := infrapdf.NewMarotoGenerator()

	authUC := auth.NewAuthUseCase(userRepo, notifRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.App.TrialDays)

	documentsUC := billing.NewDocumentUseCase(
		txRunner, carRepo, userRepo, generator, store,
		decimal.NewFromFloat(cfg.Billing.IGICRate),
	)
	carUC := cars.NewCarUseCase(carRepo, noteRepo, docRepo, expenseRepo, notifRepo)
	changeStatusUC := cars.NewChangeStatusUseCase(txRunner, documentsUC, generator, store)

	expenseUC := usecase.NewExpenseUseCase(expenseRepo, carRepo)
	incidentUC := usecase.NewIncidentUseCase(incidentRepo, carRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	notificationUC := usecase.NewNotificationUseCase(notifRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo, userRepo)
	invitationUC := usecase.NewInvitationUseCase(invitationRepo, companyRepo, userRepo, notifRepo, companyUC)
	subscriptionUC := usecase.NewSubscriptionUseCase(userRepo, notifRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // fotos y justificantes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AutoGest API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	// Avatares, fotos y PDFs generados
	app.Static("/public", cfg.Storage.PublicDir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CarUC:          carUC,
		ChangeStatus:   changeStatusUC,
		Documents:      documentsUC,
		ExpenseUC:      expenseUC,
		IncidentUC:     incidentUC,
		LocationUC:     locationUC,
		NotificationUC: notificationUC,
		CompanyUC:      companyUC,
		InvitationUC:   invitationUC,
		SubscriptionUC: subscriptionUC,
		Files:          store,
		JWTSecret:      cfg.JWT.Secret,
		WebhookSecret:  cfg.Stripe.WebhookSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
