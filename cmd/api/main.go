package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/farxc/oplog/internal/db"
	"github.com/farxc/oplog/internal/env"
	"github.com/farxc/oplog/internal/logger"
	"github.com/farxc/oplog/internal/store"
)

func main() {
	if err := env.Load(); err != nil {
		logger.New(logger.LevelWarn, nil).Warn("Config", "load .env: %v", err)
	}

	serviceLevel, ok := env.GetLevel("SERVICE_LOG_LEVEL")
	if !ok {
		serviceLevel = logger.LevelInfo
	}
	l := logger.New(serviceLevel, nil)

	cfg := config{
		addr: env.GetString("ADDR", ":3000"),
		db: dbConfig{
			addr:         env.GetString("DB_ADDR", ""),
			maxOpenConns: env.GetInt("DB_MAX_OPEN_CONNS", 25),
			maxIdleConns: env.GetInt("DB_MAX_IDLE_CONNS", 25),
			maxIdleTime:  env.GetString("DB_MAX_IDLE_TIME", "15m"),
		},
	}
	if level, ok := env.GetLevel("LOG_LEVEL"); ok {
		cfg.logLevel = &level
	}

	app := newApplication(cfg, l, nil, os.Stdout)
	if cfg.logLevel == nil {
		app.logLevel(logger.LevelInfo)
	}

	if cfg.db.addr != "" {
		conn, err := db.New(
			"postgres",
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime)
		if err != nil {
			l.Fatal("Database", "%v", err)
		}
		defer conn.Close()
		l.Info("Database", "connection pool established")

		storage := store.NewStorage(conn)
		if err := storage.Invocations.Migrate(context.Background()); err != nil {
			l.Fatal("Database", "%v", err)
		}
		app.useStore(storage)
	}

	mux, err := app.mount()
	if err != nil {
		l.Fatal("Server", "mount routes: %v", err)
	}
	l.Info("Server", "application info: %v", app.info())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.run(ctx, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("Server", "%v", err)
		os.Exit(1)
	}
}
