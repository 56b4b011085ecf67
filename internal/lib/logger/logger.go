package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/linemk/travel-insurance/internal/lib/logger/handlers/slogpretty"
)

// switching logger
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// SetupLogger инициализирует логгер в зависимости от переданного окружения
// для локальной разработки используется цветной вывод (pretty), а для dev/prod – JSON
func SetupLogger(env string) *slog.Logger {
	return setupLogger(env, os.Stdout)
}

func setupLogger(env string, out io.Writer) *slog.Logger {
	switch env {
	case EnvLocal:
		return setupPrettySlog(out)
	case EnvDev:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

func setupPrettySlog(out io.Writer) *slog.Logger {
	color.NoColor = false

	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(out)
	return slog.New(handler)
}
