package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/quest_academy/internal/devproxy"
	"github.com/Skotchmaster/quest_academy/pkg/config"
	"github.com/Skotchmaster/quest_academy/pkg/logging"
)

func main() {
	cfg := config.LoadProxy()

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", "devproxy")
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 60 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	if err := devproxy.Register(e, &devproxy.Deps{
		BackendURL: cfg.BackendURL,
		StaticDir:  cfg.StaticDir,
		Logger:     logger,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("devproxy listening", "addr", cfg.ListenAddr, "backend", cfg.BackendURL, "static_dir", cfg.StaticDir)
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
