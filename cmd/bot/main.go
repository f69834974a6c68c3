package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/moneo-bot/internal/bot"
	"github.com/Spok95/moneo-bot/internal/config"
	"github.com/Spok95/moneo-bot/internal/dialog"
	"github.com/Spok95/moneo-bot/internal/domain/budget"
	"github.com/Spok95/moneo-bot/internal/domain/ledger"
	"github.com/Spok95/moneo-bot/internal/domain/profile"
	"github.com/Spok95/moneo-bot/internal/domain/reconcile"
	"github.com/Spok95/moneo-bot/internal/domain/reflection"
	"github.com/Spok95/moneo-bot/internal/domain/subscriptions"
	"github.com/Spok95/moneo-bot/internal/domain/users"
	"github.com/Spok95/moneo-bot/internal/infra/db"
	httpx "github.com/Spok95/moneo-bot/internal/infra/http"
	"github.com/Spok95/moneo-bot/internal/infra/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

func runMigrations(dsn string, log *slog.Logger) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if err := runMigrations(cfg.Postgres.DSN, log); err != nil {
		log.Error("migrations failed", "err", err)
		return
	}
	log.Info("migrations applied")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return
	}
	defer pool.Close()
	log.Info("db connected")

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, pool)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram init failed", "err", err)
		return
	}
	log.Info("telegram authorized", "username", api.Self.UserName)

	usersRepo := users.NewRepo(pool)
	statesRepo := dialog.NewRepo(pool)
	profilesRepo := profile.NewRepo(pool)
	ledgerRepo := ledger.NewRepo(pool)
	subsRepo := subscriptions.NewRepo(pool)
	reflectionsRepo := reflection.NewRepo(pool)

	rec := reconcile.New(subsRepo, ledgerRepo, log)
	budgetSvc := budget.NewService(log, profilesRepo, ledgerRepo, rec)

	b := bot.New(api, log,
		usersRepo, statesRepo,
		profilesRepo, ledgerRepo,
		subsRepo, reflectionsRepo,
		budgetSvc, rec,
		cfg.Reflect.TickInterval)

	go func() {
		if err := b.Run(ctx, cfg.Telegram.UpdateTimeoutSec); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
			stop()
		}
	}()
	go b.RunReflectWatcher(ctx, cfg.Reflect.PollInterval)
	log.Info("bot started")

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
