package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/linemk/travel-insurance/internal/app"
	"github.com/linemk/travel-insurance/internal/config"
)

// buildMigrateDSN - DSN приложения с таблицей версий golang-migrate
func buildMigrateDSN(dbCfg config.DatabaseConfig, migrationTable string) string {
	return app.BuildDSN(dbCfg) + "&x-migrations-table=" + migrationTable
}

func main() {
	var (
		migrationsPathFlag string
		migrationTable     string
		down               bool
	)
	// флаги объявляются до MustLoad, флаг -config он добавит сам
	flag.StringVar(&migrationsPathFlag, "migrations-path", "", "path to migration files")
	flag.StringVar(&migrationTable, "migrations-table", "migrations", "name of migrations table")
	flag.BoolVar(&down, "down", false, "roll back all migrations")

	cfg := config.MustLoad()

	migrationsPath := cfg.Migrations.Path
	if migrationsPathFlag != "" {
		migrationsPath = migrationsPathFlag
	}

	m, err := migrate.New("file://"+migrationsPath, buildMigrateDSN(cfg.Database, migrationTable))
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	apply := m.Up
	if down {
		apply = m.Down
	}
	if err := apply(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
		} else {
			log.Fatalf("migration failed: %v", err)
		}
	} else {
		log.Println("Migrations applied successfully")
	}

	db, err := sql.Open("postgres", app.BuildDSN(cfg.Database))
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var offers int
	if err := db.QueryRow(`SELECT count(*) FROM insurance_offers`).Scan(&offers); err != nil {
		if !down {
			log.Fatalf("failed to count offers: %v", err)
		}
		return
	}
	fmt.Println("Offers in the database:", offers)

	rows, err := db.Query(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		log.Fatalf("failed to query tables: %v", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			log.Fatalf("failed to scan row: %v", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("error reading rows: %v", err)
	}
	fmt.Println("Current tables in the database:", strings.Join(tables, ", "))
}
