package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/talentsift/screening/pkg/auth"
	"github.com/talentsift/screening/pkg/errx"
	"github.com/talentsift/screening/pkg/logx"
	"github.com/talentsift/screening/screening/candidate/candidateapi"
	"github.com/talentsift/screening/screening/email/emailapi"
	"github.com/talentsift/screening/screening/job/jobapi"
	"github.com/talentsift/screening/screening/match/matchapi"
)

func main() {
	// 1. Environment & Logger
	if err := godotenv.Load(); err != nil {
		logx.Debugf("No .env file loaded: %v", err)
	}
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting TalentSift API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "TalentSift Screening API",
		BodyLimit:             20 * 1024 * 1024, // resume uploads
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
		})
	})

	// 6. Register Routes
	api := app.Group("/api", auth.Middleware(container.TokenService, apiKeyValidator()))

	jobapi.RegisterRoutes(api, container.JobHandlers)
	candidateapi.RegisterRoutes(api, container.CandidateHandlers)
	matchapi.RegisterRoutes(api, container.MatchHandlers)
	emailapi.RegisterRoutes(api, container.EmailHandlers)

	// 7. Background Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.IntakeWorker.Start(workerCtx)

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	logx.Info("Shutting down server...")

	stopWorkers()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// apiKeyValidator accepts the service API key configured via
// SERVICE_API_KEY_HASH (a bcrypt hash produced by auth.HashAPIKey).
// With no hash configured, API-key auth is disabled and only bearer
// tokens are accepted.
func apiKeyValidator() auth.KeyValidator {
	hash := os.Getenv("SERVICE_API_KEY_HASH")
	if hash == "" {
		return nil
	}
	return func(key string) (string, bool) {
		if auth.VerifyAPIKey(hash, key) {
			return "service", true
		}
		return "", false
	}
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// Fiber's own errors (e.g. route not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
