package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linemk/travel-insurance/internal/app"
	"github.com/linemk/travel-insurance/internal/config"
	"github.com/linemk/travel-insurance/internal/lib/logger"
	"github.com/linemk/travel-insurance/internal/lib/logger/sl"
	"github.com/linemk/travel-insurance/internal/service"
	"github.com/linemk/travel-insurance/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting offers api", slog.String("env", cfg.Env))

	// объект приложения с конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", sl.Err(err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	offerRepo := storage.NewOfferRepository(application.DB)
	offerService := service.NewOfferService(application.Logger, offerRepo)

	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set, offer write endpoints are open")
	}

	router := app.NewRouter(application.Logger, offerService, app.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AdminSecret:    cfg.JWT.Secret,
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", sl.Err(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", sl.Err(err))
	}
	log.Info("server gracefully stopped")
}
