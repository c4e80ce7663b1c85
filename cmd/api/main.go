package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valhq/flowscope/internal/adapters/docker"
	api "github.com/valhq/flowscope/internal/adapters/http"
	"github.com/valhq/flowscope/internal/config"
	"github.com/valhq/flowscope/internal/core/discovery"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// 1. Initialize Adapters (Infrastructure)
	dockerAdapter, err := docker.NewAdapter(cfg.DockerHost)
	if err != nil {
		logger.Error("failed to initialize Docker adapter", "error", err)
		os.Exit(1)
	}

	// 2. Initialize Core Service and HTTP Handlers
	service := discovery.NewService(dockerAdapter, logger)
	handler := api.NewHandler(service)
	wsHandler := api.NewWsHandler(service, cfg.BroadcastInterval, logger)

	// 3. Setup Framework (Fiber)
	app := fiber.New()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(api.MetricsMiddleware())

	// 4. Define Routes
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiGroup := app.Group("/api")
	apiGroup.Get("/topology", handler.Topology)
	apiGroup.Get("/containers", handler.ListContainers)
	apiGroup.Get("/networks", handler.ListNetworks)
	apiGroup.Get("/images/sizes", handler.ImageSizes)
	apiGroup.Get("/flowchart/:id", handler.Flowchart)

	containerGroup := apiGroup.Group("/container/:id")
	containerGroup.Get("/", handler.GetContainer)
	containerGroup.Get("/detail", handler.ContainerDetail)
	containerGroup.Get("/logs", handler.ContainerLogs)
	containerGroup.Get("/stats", handler.ContainerStats)
	containerGroup.Post("/restart", handler.RestartContainer)
	containerGroup.Post("/stop", handler.StopContainer)
	containerGroup.Post("/start", handler.StartContainer)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(wsHandler.Serve))

	// 5. Start Server
	logger.Info("flowscope backend listening", "addr", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
