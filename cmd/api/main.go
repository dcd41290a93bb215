package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/api/handlers"
	"github.com/furyfist/WellNest/internal/cache/redis"
	"github.com/furyfist/WellNest/internal/metrics"
	"github.com/furyfist/WellNest/internal/middleware/ratelimit"
	"github.com/furyfist/WellNest/internal/middleware/security"
	"github.com/furyfist/WellNest/internal/middleware/validation"
	"github.com/furyfist/WellNest/internal/resources"
	"github.com/furyfist/WellNest/internal/responder"
	"github.com/furyfist/WellNest/internal/triage"
	"github.com/furyfist/WellNest/internal/vector/milvus"
	"github.com/furyfist/WellNest/pkg/config"
	appLogger "github.com/furyfist/WellNest/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting WellNest triage API server")

	metrics.Init()

	// An unusable safety configuration is fatal. The detector must never
	// start in a silently-disabled state.
	detector, err := triage.NewDetector(cfg.Triage.CrisisPhrases)
	if err != nil {
		appLogger.Fatal("Failed to configure crisis detector", zap.Error(err))
	}

	scorer, err := triage.NewScorer(cfg.Triage.ScreeningCrisisItem, cfg.Triage.ScreeningCrisisLevel)
	if err != nil {
		appLogger.Fatal("Failed to configure severity scorer", zap.Error(err))
	}

	engine := triage.NewEngine(detector, scorer)

	store, err := resources.NewStore(cfg.Resources.SQLitePath)
	if err != nil {
		appLogger.Fatal("Failed to create resource store", zap.Error(err))
	}
	defer store.Close()

	if err := store.InitSchema(); err != nil {
		appLogger.Fatal("Failed to initialize resource schema", zap.Error(err))
	}

	var retriever responder.Retriever
	var vectorDB *milvus.Client
	if cfg.Milvus.Enabled {
		vectorDB, err = milvus.NewClient(cfg.Milvus.Endpoint, cfg.Milvus.CollectionName, cfg.Milvus.VectorDim)
		if err != nil {
			appLogger.Fatal("Failed to create milvus client", zap.Error(err))
		}
		defer vectorDB.Close()

		if err := vectorDB.EnsureCollection(context.Background()); err != nil {
			appLogger.Fatal("Failed to prepare milvus collection", zap.Error(err))
		}
		retriever = vectorDB
	}

	responderClient := responder.NewClient(cfg.Responder, retriever)
	ingestor := resources.NewIngestor(store, vectorDB, responderClient)

	var resourceCache handlers.ResourceCache
	if cfg.Redis.Enabled {
		cache, err := redis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Resources.CacheTTL)*time.Second,
		)
		if err != nil {
			appLogger.Fatal("Failed to create redis client", zap.Error(err))
		}
		defer cache.Close()
		resourceCache = cache
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.MaxRequestsPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))
	app.Use(limiter.Middleware())
	app.Use(validation.Middleware(validation.Config{
		Logger: appLogger.GetLogger(),
	}))

	chatHandler := handlers.NewChatHandler(engine, responderClient)
	wsHandler := handlers.NewWebSocketHandler(engine, responderClient)
	assessmentHandler := handlers.NewAssessmentHandler(engine)
	resourceHandler := handlers.NewResourceHandler(store, ingestor, resourceCache)

	api := app.Group("/api/v1")

	api.Post("/chat/message", chatHandler.HandleMessage)
	api.Get("/chat/ws", websocket.New(wsHandler.HandleConnection))

	api.Post("/assessment", assessmentHandler.HandleSubmit)
	api.Get("/assessment/catalog", assessmentHandler.HandleCatalog)

	api.Get("/resources", resourceHandler.HandleList)
	api.Get("/resources/:id", resourceHandler.HandleGet)
	api.Post("/resources", resourceHandler.HandleIngest)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.Handler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
