package main

import (
	"os"
	"os/signal"
	"pipeline_monitor/bootstrap"
	"pipeline_monitor/config"
	"pipeline_monitor/middleware"
	"pipeline_monitor/pkg/logging"
	"pipeline_monitor/routes"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// a missing .env is fine when the environment is set directly
	if err := godotenv.Load(); err != nil {
		logging.Logger.Info("no .env file loaded", "error", err)
	}
	logging.Init()

	cfg := config.LoadConfig()
	application, err := bootstrap.NewApp(cfg)
	if err != nil {
		logging.Logger.Error("fail starting pipeline monitor", "error", err)
		os.Exit(1)
	}

	app := fiber.New(fiber.Config{
		AppName:      "pipeline_monitor",
		ErrorHandler: middleware.ErrorHandler,
		ReadTimeout:  30 * time.Second,
	})
	app.Use(middleware.Logger(cfg.AppEnv))
	app.Use(middleware.CORS(cfg.AllowOrigins))

	routes.SetupProcessRoutes(app, application.Handlers.ProcessHandler)
	routes.SetupWebSocketRoutes(app, application.Handlers.WSHandler)

	go func() {
		logging.Logger.Info("Server running", "addr", "http://localhost:"+cfg.HttpPort, "source", cfg.SourceType)
		if err := app.Listen(":" + cfg.HttpPort); err != nil {
			logging.Logger.Error("fail listening", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logging.Logger.Error("fail shutting down http server", "error", err)
	}
	if err := application.Shutdown(); err != nil {
		logging.Logger.Error("fail shutting down", "error", err)
		os.Exit(1)
	}
}
