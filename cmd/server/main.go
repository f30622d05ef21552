package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gobanking/bankingapp/infra"
	infrarepo "github.com/gobanking/bankingapp/infra/repository"
	"github.com/gobanking/bankingapp/pkg/config"
	accountsvc "github.com/gobanking/bankingapp/pkg/service/account"
	holdersvc "github.com/gobanking/bankingapp/pkg/service/holder"
	"github.com/gobanking/bankingapp/webapi"
)

func setupLogger(cfg *config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func run() error {
	cfg, err := config.Load(slog.Default())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	uowFactory := infrarepo.Factory(db, logger)
	holderService := holdersvc.New(uowFactory, logger)
	accountService := accountsvc.New(uowFactory, logger)

	app := webapi.NewApp(holderService, accountService, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Env)
	return app.Listen(addr)
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}
