package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/georgemunganga/gastrotech-backend/internal/config"
	"github.com/georgemunganga/gastrotech-backend/internal/fixtures"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/assistant"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/auth"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/floor"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/inventory"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/menu"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/order"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/purchase"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/report"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/settings"
	"github.com/georgemunganga/gastrotech-backend/internal/modules/staff"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/database"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/events"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/health"
	"github.com/georgemunganga/gastrotech-backend/internal/platform/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, envFound := config.Load()
	port := flag.String("port", cfg.Port, "HTTP port")
	flag.Parse()
	cfg.Port = *port

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Environment: cfg.Env})
	if !envFound {
		log.Info("no .env file found, using process environment")
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Storage ─────────────────────────────────────────────
	stores, settingsRepo, db, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error("storage setup failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	// ── Settings & Events ───────────────────────────────────
	settingsService := settings.NewService(settingsRepo, log)

	readiness := map[string]health.Check{}
	if db != nil {
		readiness["postgres"] = db.PingContext
	}

	var sink events.Publisher = events.NewLogPublisher(log)
	if cfg.RabbitMQURL != "" {
		amqpPub, err := events.DialAMQP(cfg.RabbitMQURL, cfg.EventsExchange)
		if err != nil {
			log.Error("rabbitmq unavailable, events will only be logged", "error", err)
		} else {
			defer amqpPub.Close()
			sink = amqpPub
			readiness["rabbitmq"] = amqpPub.Ping
			log.Info("publishing events to rabbitmq", "exchange", cfg.EventsExchange)
		}
	}
	pub := events.Filter(sink, settingsService.AllowEvent)

	// ── Services ────────────────────────────────────────────
	orderService := order.NewService(stores.Orders, pub, log)
	floorService := floor.NewService(stores.Floor, orderService, pub, log)
	inventoryService := inventory.NewService(stores.Inventory, pub, log)
	staffService := staff.NewService(stores.Staff, log)
	purchaseService := purchase.NewService(stores.Purchases, pub, log)

	var generator assistant.Generator
	if cfg.AI.APIKey != "" {
		generator, err = assistant.NewGoogleAIGenerator(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Error("text generator unavailable", "error", err)
			generator = nil
		}
	} else {
		log.Warn("AI_API_KEY not set, assistant answers with the not-configured message")
	}
	assistantService := assistant.NewService(generator, orderService, stores.Menu, log)
	menuService := menu.NewService(stores.Menu, assistantService, log)
	reportService := report.NewService(orderService, menuService, inventoryService, floorService)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(log.HTTPMiddleware)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Get("/readyz", health.Ready(readiness, log))

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Auth.Secret != "" {
		authService := auth.NewService(cfg.Auth.Secret, auth.Operator{
			Email:        cfg.Auth.AdminEmail,
			PasswordHash: cfg.Auth.PasswordHash,
		}, log)
		auth.NewHandler(authService).RegisterRoutes(router)
		authMiddleware = auth.Middleware(authService)
	} else {
		log.Warn("AUTH_SECRET not set, API is open")
	}

	router.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		order.NewHandler(orderService).RegisterRoutes(r)
		floor.NewHandler(floorService).RegisterRoutes(r)
		inventory.NewHandler(inventoryService).RegisterRoutes(r)
		staff.NewHandler(staffService).RegisterRoutes(r)
		purchase.NewHandler(purchaseService).RegisterRoutes(r)
		menu.NewHandler(menuService).RegisterRoutes(r)
		assistant.NewHandler(assistantService).RegisterRoutes(r)
		report.NewHandler(reportService).RegisterRoutes(r)
		settings.NewHandler(settingsService).RegisterRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("GastroTech API server starting", "port", cfg.Port, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// openStores builds the repositories for the configured driver and seeds
// the demo data when the store starts empty.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (fixtures.Stores, settings.Repository, *sql.DB, error) {
	if cfg.StorageDriver == config.DriverMemory {
		if !cfg.SeedFixtures {
			return fixtures.NewMemoryStores(), settings.NewMemoryRepository(), nil, nil
		}
		stores, err := fixtures.Memory(ctx, time.Now())
		if err != nil {
			return fixtures.Stores{}, nil, nil, err
		}
		log.Info("demo data loaded")
		return stores, settings.NewMemoryRepository(), nil, nil
	}

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return fixtures.Stores{}, nil, nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return fixtures.Stores{}, nil, nil, err
	}
	log.Info("connected to postgres")

	stores := fixtures.Stores{
		Menu:      menu.NewPostgresRepository(db),
		Orders:    order.NewPostgresRepository(db),
		Floor:     floor.NewPostgresRepository(db),
		Inventory: inventory.NewPostgresRepository(db),
		Staff:     staff.NewPostgresRepository(db),
		Purchases: purchase.NewPostgresRepository(db),
	}
	if cfg.SeedFixtures {
		empty, err := database.IsEmpty(ctx, db, "menu_items")
		if err != nil {
			db.Close()
			return fixtures.Stores{}, nil, nil, err
		}
		if empty {
			if err := fixtures.Seed(ctx, stores, time.Now()); err != nil {
				db.Close()
				return fixtures.Stores{}, nil, nil, err
			}
			log.Info("demo data loaded")
		}
	}
	return stores, settings.NewPostgresRepository(db), db, nil
}
