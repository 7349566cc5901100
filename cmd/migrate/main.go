// cmd/migrate/main.go
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"tap-order-pay/internal/config"
)

func main() {
	dir := flag.String("dir", "migrations", "migrations directory")
	command := flag.String("command", "up", "goose command: up, down, status, reset")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	if err := run(cfg.DBConn, *dir, *command); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Migrations done")
}

func run(dbConn, dir, command string) error {
	db, err := sql.Open("pgx", dbConn)
	if err != nil {
		return fmt.Errorf("open DB: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	slog.Info("Running migrations", "dir", dir, "command", command)
	return goose.Run(command, db, dir)
}
