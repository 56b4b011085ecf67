package app

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	"github.com/linemk/travel-insurance/internal/config"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *sql.DB
}

// BuildDSN собирает строку подключения к postgres
func BuildDSN(dbCfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)
}

// NewApp создаёт новый экземпляр App
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := sql.Open("postgres", BuildDSN(cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: log,
		DB:     db,
	}

	return app, nil
}
