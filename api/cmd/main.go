package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/grabticket/bot/internal/application/tracker"
	"github.com/grabticket/bot/internal/config"
	redcache "github.com/grabticket/bot/internal/infrastructure/caching/redis"
	"github.com/grabticket/bot/internal/infrastructure/sheets"
	"github.com/grabticket/bot/internal/logger"
	"github.com/grabticket/bot/internal/transport/discord"
	"github.com/grabticket/bot/internal/transport/http/handlers"
	"github.com/grabticket/bot/internal/transport/http/router"
)

// sysClock implements the Clock interfaces using system time
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

// App holds all dependencies for the bot process
type App struct {
	Config *config.Config
	Server *http.Server
	Bot    *discord.Bot
	Cache  *redcache.SnapshotCache
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// 1) Record store
	store, err := newStore(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("sheets store init failed")
	}

	app, err := NewApp(cfg, store)
	if err != nil {
		zlog.Fatal().Err(err).Msg("app init failed")
	}
	defer func() {
		if app.Cache != nil {
			_ = app.Cache.Close()
		}
	}()

	if err := app.Bot.Start(); err != nil {
		zlog.Fatal().Err(err).Msg("discord bot start failed")
	}
	defer func() { _ = app.Bot.Close() }()

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("liveness server listening")
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal().Err(err).Msg("liveness server crashed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.Server.Shutdown(shutdownCtx)
}

func newStore(cfg *config.Config) (*sheets.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := sheets.New(ctx, sheets.Config{
		SpreadsheetID:       cfg.SpreadsheetID,
		SheetName:           cfg.SheetName,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		PrivateKey:          cfg.PrivateKey,
	}, sysClock{})
	if err != nil {
		return nil, err
	}

	if err := store.EnsureHeader(ctx); err != nil {
		// Header creation failing is not fatal; the store may be reachable
		// later and every read path degrades gracefully.
		zlog.Warn().Err(err).Msg("header row check failed")
	}
	return store, nil
}

func NewApp(cfg *config.Config, store *sheets.Store) (*App, error) {
	// 2) Snapshot cache (optional)
	var cache *redcache.SnapshotCache
	var cachePort tracker.SnapshotCache
	if cfg.RedisURL != "" {
		c, err := redcache.New(cfg.RedisURL, "")
		if err != nil {
			return nil, err
		}
		cache = c
		cachePort = c
		zlog.Info().Msg("snapshot cache ready")
	} else {
		zlog.Warn().Msg("REDIS_URL empty: every stats read hits the sheet")
	}

	// 3) Application
	svc := tracker.New(store, sysClock{}, cachePort, cfg.SnapshotTTL)

	// 4) Transports
	bot, err := discord.New(cfg.BotToken, svc, cfg.CelebrateImagePath)
	if err != nil {
		return nil, err
	}

	httpHandler := router.New(handlers.NewHealthHandler(), cfg)
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config: cfg,
		Server: srv,
		Bot:    bot,
		Cache:  cache,
	}, nil
}
