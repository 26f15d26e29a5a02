// cmd/lookup-relay/app.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"lookup-relay/internal/common/cache"
	"lookup-relay/internal/common/config"
	"lookup-relay/internal/common/logger"
	"lookup-relay/internal/common/observability"
	"lookup-relay/internal/common/pool"
	"lookup-relay/internal/common/retry"
	"lookup-relay/internal/models"
	parsecommand "lookup-relay/internal/workers/command/parse-command"
	sendnotification "lookup-relay/internal/workers/communication/send-notification"
	dispatchlookup "lookup-relay/internal/workers/lookup/dispatch-lookup"
)

// app holds the wired components shared by serve and exec.
type app struct {
	cfg        *config.Config
	zapLog     *zap.Logger
	log        logger.Logger
	obs        *observability.Observability
	pool       *pool.Pool
	cache      *cache.RedisCache
	service    *models.ServiceConfig
	parser     *parsecommand.Handler
	dispatcher *dispatchlookup.Handler
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.NewZapAdapter(zapLog).With(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	a := &app{
		cfg:     cfg,
		zapLog:  zapLog,
		log:     log,
		obs:     observability.New(cfg.App.Name, log),
		pool:    pool.New("notifications", cfg.Pool.Workers, cfg.Pool.QueueSize, log),
		service: models.NewServiceConfig(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.LicenseKey),
		parser:  parsecommand.NewHandler(&parsecommand.Config{Prefix: cfg.Command.Prefix}),
	}

	notifyCfg := sendnotification.FromAppConfig(cfg.Notification)
	sink, err := sendnotification.NewSink(ctx, notifyCfg)
	if err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("notification sink: %w", err)
	}
	notifier := sendnotification.NewHandler(notifyCfg, sink, a.pool, log)

	opts := []dispatchlookup.Option{dispatchlookup.WithObservability(a.obs)}
	if cfg.Cache.Enabled {
		a.cache, err = connectCache(ctx, cfg.Cache, log)
		if err != nil {
			a.close(ctx)
			return nil, err
		}
		opts = append(opts, dispatchlookup.WithCache(a.cache))
	}

	a.dispatcher = dispatchlookup.NewHandler(dispatchlookup.FromAppConfig(cfg), a.service, notifier, log, opts...)
	log.Info("lookup relay initialized", map[string]interface{}{
		"sink":   notifyCfg.Sink,
		"cache":  cfg.Cache.Enabled,
		"prefix": cfg.Command.Prefix,
	})
	return a, nil
}

// connectCache pings Redis a few times before giving up.
func connectCache(ctx context.Context, cfg config.CacheConfig, log logger.Logger) (*cache.RedisCache, error) {
	rc := cache.NewRedis(cfg)
	policy := retry.Policy{MaxAttempts: 5, Delay: 2 * time.Second, Sleep: retry.Sleep}

	_, err := policy.Do(ctx, func(ctx context.Context, attempt int) error {
		return rc.Ping(ctx)
	}, func(attempt int, err error) {
		log.Warn("redis connection failed, retrying...", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
		})
	})
	if err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis connection: %w", err)
	}
	log.Info("Redis connected successfully", nil)
	return rc, nil
}

// close drains pending notifications and releases connections.
func (a *app) close(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.GetDuration(a.cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := a.pool.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("notification pool did not drain", map[string]interface{}{"error": err.Error()})
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	a.obs.Shutdown(shutdownCtx)
	_ = a.zapLog.Sync()
}
