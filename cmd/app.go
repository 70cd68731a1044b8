package cmd

import (
	"context"
	"fmt"
	"time"

	"untis-notifier/core/config"
	"untis-notifier/core/logger"
	"untis-notifier/core/reconcile"
	"untis-notifier/core/scheduler"
	"untis-notifier/core/snapshot"
	"untis-notifier/core/untis"
	"untis-notifier/feature/discord"
	"untis-notifier/feature/feeds"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// services bundles the wired components shared by the commands.
type services struct {
	cfg        *config.Config
	logger     *zap.Logger
	store      reconcile.Store
	closeStore func() error
	registry   *prometheus.Registry
	reconciler *reconcile.Reconciler
	scheduler  *scheduler.Scheduler
}

// bootstrap loads the configuration, builds the logger and opens the
// snapshot store.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	store, closeStore, err := snapshot.Open(ctx, cfg.Snapshot, snapshot.Dependencies{
		Database: cfg.Database,
		Storage:  cfg.Storage,
		Redis:    cfg.Redis,
	}, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	return &services{
		cfg:        cfg,
		logger:     logg,
		store:      store,
		closeStore: closeStore,
	}, nil
}

// wirePolling builds the provider client, feed adapters, notifier,
// reconciler and scheduler on top of the bootstrapped services.
func (r *services) wirePolling() error {
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	rangeStart, err := r.cfg.Untis.RangeStartDate(time.Now())
	if err != nil {
		return err
	}

	client := untis.NewClient(r.cfg.Untis, r.logger)
	adapters := feeds.NewAdapters(client, feeds.Window{RangeStart: rangeStart})
	notifier := discord.NewNotifier(r.cfg.Discord, r.logger)

	r.registry = prometheus.NewRegistry()
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.reconciler = reconcile.NewReconciler(r.store, notifier, r.logger, reconcile.NewMetrics(r.registry))
	r.scheduler = scheduler.New(r.reconciler, adapters, r.cfg.Poll, r.logger)

	r.logger.Info("Polling wired",
		zap.String("school", r.cfg.Untis.School),
		zap.String("range_start", rangeStart.Format("2006-01-02")),
		zap.Bool("discord", r.cfg.Discord.WebhookURL != ""))
	return nil
}

// close releases the snapshot store and flushes the logger.
func (r *services) close() {
	if err := r.closeStore(); err != nil {
		r.logger.Warn("Failed to close snapshot store", zap.Error(err))
	}
	_ = r.logger.Sync()
}
