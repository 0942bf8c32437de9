package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"restoapi/docs"
	"restoapi/internal/auth"
	"restoapi/internal/config"
	"restoapi/internal/database"
	"restoapi/internal/database/migration"
	handlers "restoapi/internal/http/handler"
	"restoapi/internal/http/middleware"
	"restoapi/internal/invoice"
	"restoapi/internal/logger"
	"restoapi/internal/mail"
	"restoapi/internal/otel"
	"restoapi/internal/repository/postgres"
	"restoapi/internal/service"
	"restoapi/internal/storage"
	"restoapi/internal/worker"
)

// @title Restaurant API
// @version 1.0
// @description Reservations, ordering, invoicing and reporting for a restaurant chain.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := cfg.Location()

	appLog := logger.New(logger.Options{Level: cfg.LogLevel, Component: "api", Location: loc})
	slog.SetDefault(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger.Component(appLog, "tracing"))
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(flushCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, appLog, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Object storage for menu images (MinIO-compatible)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	mailer, err := mail.New(cfg.SMTP, logger.Component(appLog, "mail"))
	if err != nil {
		log.Fatalf("failed to initialize mailer: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		log.Fatalf("failed to initialize token manager: %v", err)
	}

	// Repositories
	tx := postgres.NewTxManager(db)
	users := postgres.NewUserPostgres(db)
	restaurants := postgres.NewRestaurantPostgres(db)
	tables := postgres.NewTablePostgres(db)
	blocks := postgres.NewTableBlockPostgres(db)
	bookings := postgres.NewBookingPostgres(db)
	menu := postgres.NewMenuPostgres(db)
	carts := postgres.NewCartPostgres(db)
	orders := postgres.NewOrderPostgres(db)
	invoices := postgres.NewInvoicePostgres(db)
	feedback := postgres.NewFeedbackPostgres(db)

	// Services
	svcLog := logger.Component(appLog, "service")
	bookingSvc := service.NewBookingService(tx, bookings, tables, restaurants, blocks, mailer, svcLog,
		service.BookingOptions{Location: loc, NoShowGrace: cfg.Sweeper.Grace})

	svc := handlers.Services{
		Auth:         service.NewAuthService(users, tokens, mailer, cfg.SMTP.ResetURL, svcLog),
		Restaurants:  service.NewRestaurantService(restaurants),
		Tables:       service.NewTableService(tables, restaurants, bookings),
		Availability: service.NewAvailabilityService(restaurants, tables, bookings, blocks),
		Bookings:     bookingSvc,
		TableBlocks:  service.NewTableBlockService(blocks, tables),
		Menu:         service.NewMenuService(menu),
		Cart:         service.NewCartService(carts, menu),
		Orders:       service.NewOrderService(tx, orders, carts, restaurants, svcLog),
		Invoices:     service.NewInvoiceService(invoices, orders, invoice.NewRenderer(loc), mailer, svcLog, loc),
		Feedback:     service.NewFeedbackService(feedback, bookings, orders),
		Reports:      service.NewReportService(orders, bookings, feedback, loc),
		Images:       service.NewImageService(objStore, cfg.MinIO.MaxUploadBytes),
	}

	metrics, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Multipart overhead on top of the largest accepted image.
		BodyLimit: int(cfg.MinIO.MaxUploadBytes) + 1<<20,
	})

	// Register global middleware
	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.CORS(cfg.CORSOrigins))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger(loc))
	app.Use(metrics.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, tokens, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	if cfg.Sweeper.Enabled {
		w := worker.NewNoShowWorker(bookingSvc, cfg.Sweeper.Interval, logger.Component(appLog, "no_show_worker"))
		go w.Run(ctx)
	}

	go func() {
		<-ctx.Done()
		appLog.Info("server_shutdown", "status", "starting")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLog.Error("server_shutdown", "status", "error", "error_message", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	appLog.Info("server_start", "addr", addr, "timezone", loc.String())

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
