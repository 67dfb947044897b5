// server.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Abraxas-365/stagetrack/pkg/config"
	"github.com/Abraxas-365/stagetrack/pkg/fiberx"
	"github.com/Abraxas-365/stagetrack/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logx.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger with config
	logx.SetOutput(os.Stdout, cfg.Server.LogJSON || cfg.IsProd())
	logx.SetLevel(logx.ParseLevel(cfg.Server.LogLevel))

	logx.Info("🚀 Starting Stage Tracker API Server...")
	logx.Infof("Environment: %s", cfg.Environment)

	// 3. Initialize Dependency Container
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	container := NewContainer(ctx, cfg)
	cancel()
	defer container.Cleanup()

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Stage Tracker API",
		DisableStartupMessage: true,
		ErrorHandler:          fiberx.ErrorHandler(cfg.IsDevelopment()),
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
	})

	// 5. Global Middleware
	setupMiddleware(app, cfg)

	// 6. Health Check, Metrics & Info Endpoints
	app.Get("/health", healthCheckHandler(container))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/", infoHandler(container))
	app.Get("/api/v1/docs", apiDocsHandler(cfg))

	// 7. Register Routes
	registerRoutes(app, container)

	// 8. 404 Handler
	app.Use(fiberx.NotFoundHandler)

	// 9. Print Route Summary
	printRouteSummary()

	// 10. Start Server with Graceful Shutdown
	startServer(app, cfg)
}

// ============================================================================
// Setup Functions
// ============================================================================

func setupMiddleware(app *fiber.App, cfg *config.Config) {
	// Panic recovery
	app.Use(recover.New(recover.Config{
		EnableStackTrace: cfg.IsDevelopment(),
	}))

	// Request ID
	app.Use(requestid.New(requestid.Config{
		Header:    fiberx.RequestIDHeader,
		Generator: generateRequestID,
	}))

	// CORS
	corsOrigins := "*"
	if len(cfg.Server.CORSOrigins) > 0 {
		corsOrigins = strings.Join(cfg.Server.CORSOrigins, ",")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:  corsOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, HEAD, OPTIONS",
		ExposeHeaders: fiberx.RequestIDHeader,
	}))

	// Request logger
	logFormat := "${time} | ${status} | ${latency} | ${method} ${path}"
	if cfg.IsDevelopment() {
		logFormat += " | ${ip} | ${respHeader:X-Request-ID}\n"
	} else {
		logFormat += "\n"
	}

	app.Use(logger.New(logger.Config{
		Format:     logFormat,
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))
}

func registerRoutes(app *fiber.App, container *Container) {
	logx.Info("📝 Registering routes...")

	// API Routes Group
	api := app.Group("/api/v1")

	// Pipeline & candidate stages: /api/v1/pipeline/*, /api/v1/candidates/*
	container.PipelineHandlers.RegisterRoutes(api)
	logx.Info("✓ Pipeline routes registered")

	logx.Info("✅ All routes registered")
}

// ============================================================================
// Handler Functions
// ============================================================================

// healthCheckHandler returns a health check handler
func healthCheckHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := fiber.Map{
			"status":      "healthy",
			"service":     "stagetrack-api",
			"environment": container.Config.Environment,
			"pipeline":    container.Config.Pipeline.Name,
			"stages":      container.Pipeline.Len(),
			"timestamp":   fmt.Sprintf("%d", c.Context().Time().Unix()),
		}

		// Check database
		if container.DB != nil {
			if err := container.DB.PingContext(c.Context()); err != nil {
				health["db"] = "unhealthy"
				health["db_error"] = err.Error()
				health["status"] = "degraded"
			} else {
				health["db"] = "healthy"
			}
		}

		// Check Redis (cache only: never degrades the service)
		if container.Redis != nil {
			if _, err := container.Redis.Ping(c.Context()).Result(); err != nil {
				health["redis"] = "unhealthy"
				health["redis_error"] = err.Error()
			} else {
				health["redis"] = "healthy"
			}
		}

		// Check storage (optional - can be slow)
		if c.QueryBool("check_storage", false) && container.Config.Pipeline.DefinitionPath != "" {
			if exists, err := container.FileSystem.Exists(c.Context(), container.Config.Pipeline.DefinitionPath); err != nil {
				health["storage"] = "unhealthy"
				health["storage_error"] = err.Error()
			} else {
				health["storage"] = "healthy"
				health["definition_present"] = exists
			}
		}

		status := fiber.StatusOK
		if health["status"] == "degraded" {
			status = fiber.StatusServiceUnavailable
		}

		return c.Status(status).JSON(health)
	}
}

// infoHandler returns basic API information
func infoHandler(container *Container) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service":     "Stage Tracker API",
			"version":     "1.0.0",
			"description": "Hiring pipeline stage classification",
			"environment": container.Config.Environment,
			"pipeline": fiber.Map{
				"name":              container.Config.Pipeline.Name,
				"stages":            container.Pipeline.Len(),
				"strict_membership": container.Config.Pipeline.StrictMembership,
			},
			"candidate_source": string(container.Config.Candidates.Mode),
			"endpoints": fiber.Map{
				"docs":    "/api/v1/docs",
				"health":  "/health",
				"metrics": "/metrics",
			},
		})
	}
}

// apiDocsHandler returns API documentation
func apiDocsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"api_version": "v1",
			"base_url":    cfg.Server.BaseURL,
			"endpoints": fiber.Map{
				"pipeline": fiber.Map{
					"definition":     "GET /api/v1/pipeline",
					"statuses":       "GET /api/v1/pipeline/statuses",
					"classify":       "POST /api/v1/pipeline/classify {status}",
					"classify_batch": "POST /api/v1/pipeline/classify/batch {statuses}",
					"funnel":         "GET /api/v1/pipeline/funnel?job_id=...",
				},
				"candidates": fiber.Map{
					"stages":       "GET /api/v1/candidates/:id/stages",
					"stages_batch": "POST /api/v1/candidates/stages {candidate_ids}",
				},
			},
			"states": []string{"completed", "in-progress", "rejected", "skipped", "pending"},
		})
	}
}

// ============================================================================
// Utility Functions
// ============================================================================

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return "req-" + uuid.NewString()
}

// printRouteSummary prints a summary of registered routes
func printRouteSummary() {
	logx.Info("📋 Route Summary:")
	logx.Info("   ├─ Health: /health")
	logx.Info("   ├─ Metrics: /metrics")
	logx.Info("   ├─ Info: /")
	logx.Info("   ├─ Docs: /api/v1/docs")
	logx.Info("   ├─ Pipeline: /api/v1/pipeline/*")
	logx.Info("   └─ Candidates: /api/v1/candidates/*")
}

// startServer starts the server with graceful shutdown
func startServer(app *fiber.App, cfg *config.Config) {
	port := fmt.Sprintf("%d", cfg.Server.Port)

	// Run server in a goroutine
	go func() {
		logx.Info("=" + strings.Repeat("=", 70))
		logx.Infof("🚀 Server listening on port %s", port)
		logx.Infof("📚 API Docs: http://localhost:%s/api/v1/docs", port)
		logx.Infof("💚 Health Check: http://localhost:%s/health", port)
		logx.Infof("🔒 Environment: %s", cfg.Environment)
		logx.Info("=" + strings.Repeat("=", 70))

		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	gracefulShutdown(app, cfg.Server.ShutdownTimeout)
}

// gracefulShutdown handles graceful server shutdown
func gracefulShutdown(app *fiber.App, timeout time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for interrupt signal
	sig := <-sigChan
	logx.Infof("🛑 Received signal: %v", sig)
	logx.Info("Shutting down gracefully...")

	if err := app.ShutdownWithTimeout(timeout); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("✅ Server exited successfully")
}
