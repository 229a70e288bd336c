package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizwhiz/internal/adapter"
	"quizwhiz/internal/adapter/gateway"
	"quizwhiz/internal/adapter/quizgen"
	"quizwhiz/internal/adapter/remedy"
	"quizwhiz/internal/cache"
	"quizwhiz/internal/config"
	"quizwhiz/internal/database"
	"quizwhiz/internal/handler"
	"quizwhiz/internal/logger"
	"quizwhiz/internal/middleware"
	"quizwhiz/internal/repository"
	"quizwhiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// LLM gateway client
	llmClient, err := gateway.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM gateway initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	// Generators
	quizGenerator := quizgen.NewGenerator(llmClient, cfg.Quiz.BatchSize)
	remedyGenerator := remedy.NewGenerator(llmClient)

	// Redis for session snapshots
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	sessionStore := service.NewSessionStore(cacheAdapter, cfg.Quiz.SessionTTL)

	// SQLite for attempt history
	db, err := database.NewSQLXSQLiteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	// Session tokens
	tokenService, err := service.NewSessionTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		appLogger.Fatal("Failed to create token service", zap.Error(err))
	}

	// Initialize services and handlers
	quizService := service.NewQuizSessionService(quizGenerator, remedyGenerator, sessionStore, attemptRepository, tokenService)
	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(cacheAdapter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/healthz", healthHandler.Check)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/quizzes", quizHandler.StartQuiz)
	apiGroup.Get("/attempts", quizHandler.ListAttempts)

	// Per-session routes require the token issued at quiz start
	sessionGroup := apiGroup.Group("/quizzes/:id", middleware.SessionGuard(tokenService))
	sessionGroup.Get("/", quizHandler.GetSession)
	sessionGroup.Post("/answers", quizHandler.SubmitAnswer)
	sessionGroup.Post("/remediation", quizHandler.RetryRemediation)
	sessionGroup.Post("/follow-up", quizHandler.SubmitFollowUp)
	sessionGroup.Post("/resume", quizHandler.Resume)
	sessionGroup.Delete("/", quizHandler.AbandonQuiz)
	sessionGroup.Get("/report", quizHandler.GetReport)

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		appLogger.Info("Starting server", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-shutdown
	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped cleanly")
}
