package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linemk/travel-insurance/internal/client"
	"github.com/linemk/travel-insurance/internal/config"
	"github.com/linemk/travel-insurance/internal/lib/logger"
	"github.com/linemk/travel-insurance/internal/lib/logger/sl"
	"github.com/linemk/travel-insurance/internal/web"
	"github.com/pkg/errors"
)

func main() {
	cfg := config.MustLoadWeb()

	log := logger.SetupLogger(cfg.Env)
	log.Info("starting shop frontend",
		slog.String("env", cfg.Env),
		slog.String("api", cfg.API.BaseURL),
	)

	// admin-токен уходит только с изменяющими запросами
	offers := client.New(cfg.API.BaseURL, cfg.API.Timeout, client.WithToken(cfg.API.AdminToken))

	handler, err := web.NewHandler(log, offers, web.ParseDefaultTag(cfg.DefaultLang))
	if err != nil {
		log.Error("failed to initialize pages", sl.Err(err))
		panic(errors.Wrap(err, "failed to initialize pages"))
	}

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler.Routes(),
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
