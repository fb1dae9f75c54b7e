package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"

	"Estimator/internal/auth"
	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/tools"
	"Estimator/internal/config"
	"Estimator/internal/logger"
	"Estimator/internal/repo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_ = logger.Initialize(false, "info")
	cfg, err := config.Load(os.Getenv("ESTIMATOR_CONFIG"))
	if err != nil {
		logger.Logger.Fatalw("loading config", "error", err)
	}
	if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Level); err != nil {
		logger.Logger.Fatalw("initializing logger", "error", err)
	}
	defer logger.Sync()
	if err := cfg.ValidateBot(); err != nil {
		logger.Logger.Fatalw("bot config", "error", err, "hints", errors.FlattenHints(err))
	}

	var catalog microgreens.Catalog = microgreens.FileCatalog{Path: cfg.Catalog.Path}
	if cfg.Database.URL != "" {
		db, err := auth.InitDB(cfg.Database.URL)
		if err != nil {
			logger.Logger.Fatalw("database", "error", err)
		}
		defer db.Close()
		catalog = repo.NewPostgresCatalogDB(db)
	}

	bot := &Bot{
		Token:   cfg.Bot.Token,
		AdminID: cfg.Bot.AdminPeerID,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Sources: tools.Sources(tools.Microgreens(cfg.Microgreens, catalog)),
		Log:     logger.Named("tgbot"),
	}
	bot.Log.Infow("bot started", "admin", cfg.Bot.AdminPeerID)
	if err := bot.Run(ctx); err != nil {
		logger.Logger.Fatalw("bot stopped", "error", err)
	}
}
