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

	"github.com/jhoicas/KwikEMart-api/internal/application/auth"
	"github.com/jhoicas/KwikEMart-api/internal/application/billing"
	"github.com/jhoicas/KwikEMart-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/KwikEMart-api/internal/infrastructure/pdf"
	"github.com/jhoicas/KwikEMart-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/KwikEMart-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/KwikEMart-api/internal/interfaces/http"
	"github.com/jhoicas/KwikEMart-api/pkg/config"
	"github.com/jhoicas/KwikEMart-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	redisClient, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	offerRepo := postgres.NewOfferRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	sessionRepo := infraredis.NewSessionRepository(redisClient, cfg.Redis)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, cfg.Store)
	cartUC := usecase.NewCartUseCase(sessionRepo, productRepo, cfg.Store)
	checkoutUC := usecase.NewCheckoutUseCase(sessionRepo, txRunner, cfg.Store, log)
	offerUC := usecase.NewOfferUseCase(offerRepo, productRepo)
	dailyDealsUC := usecase.NewDailyDealsUseCase(productRepo, log)
	userUC := usecase.NewUserUseCase(userRepo)
	reviewUC := usecase.NewReviewUseCase(productRepo, userRepo)
	salesUC := usecase.NewSalesUseCase(transactionRepo)

	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()
	invoiceUC := billing.NewInvoiceUseCase(userRepo, pdfGenerator, billing.StoreInfo{
		Name:    "Kwik-E-Mart",
		Address: "Evergreen Terrace 742, Springfield",
		Phone:   "(939) 555-0113",
		Email:   "apu@kwikemart.com",
	})

	// Ofertas del día: se aplican al arrancar y se refrescan a diario.
	if out, err := dailyDealsUC.Apply(time.Now()); err != nil {
		log.Error().Err(err).Msg("aplicar ofertas del día al arrancar")
	} else {
		log.Info().Int("aplicadas", out.Applied).Int("retiradas", out.Reset).Msg("ofertas del día aplicadas")
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for now := range ticker.C {
			if _, err := dailyDealsUC.Apply(now); err != nil {
				log.Error().Err(err).Msg("refrescar ofertas del día")
			}
		}
	}()

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
		Title:    "Kwik-E-Mart API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CartUC:     cartUC,
		CheckoutUC: checkoutUC,
		OfferUC:    offerUC,
		DailyDeals: dailyDealsUC,
		UserUC:     userUC,
		ReviewUC:   reviewUC,
		SalesUC:    salesUC,
		InvoiceUC:  invoiceUC,
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
