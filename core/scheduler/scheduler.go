package scheduler

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"untis-notifier/core/reconcile"

	"go.uber.org/zap"
)

var (
	ErrAlreadyRunning = errors.New("scheduler already running")
	ErrNotRunning     = errors.New("scheduler not running")
	ErrUnknownKind    = errors.New("no adapter for feed kind")
)

// Runner executes reconciliation cycles. *reconcile.Reconciler implements it.
type Runner interface {
	Reconcile(ctx context.Context, a reconcile.Adapter) *reconcile.Outcome
	LastOutcome(kind reconcile.Kind) *reconcile.Outcome
}

// FeedStatus describes one feed for status output.
type FeedStatus struct {
	Kind    reconcile.Kind     `json:"kind"`
	Enabled bool               `json:"enabled"`
	Last    *reconcile.Summary `json:"last,omitempty"`
}

// Scheduler fires a reconciliation cycle for every enabled feed once at
// start and then on a fixed interval, and accepts on-demand triggers.
// Overlapping cycles of the same feed are collapsed by the Runner.
type Scheduler struct {
	runner   Runner
	adapters map[reconcile.Kind]reconcile.Adapter
	enabled  []reconcile.Kind
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler. Feeds without an adapter are ignored.
func New(runner Runner, adapters map[reconcile.Kind]reconcile.Adapter, cfg Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	var enabled []reconcile.Kind
	for _, k := range cfg.Enabled() {
		if _, ok := adapters[k]; ok {
			enabled = append(enabled, k)
		}
	}

	return &Scheduler{
		runner:   runner,
		adapters: adapters,
		enabled:  enabled,
		interval: cfg.Interval,
		logger:   logger,
	}
}

// Start launches one polling loop per enabled feed.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid poll interval %s", s.interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.stopped = false
	s.mu.Unlock()

	for _, kind := range s.enabled {
		s.wg.Add(1)
		go s.loop(kind)
	}

	s.logger.Info("Scheduler started",
		zap.Duration("interval", s.interval),
		zap.Int("feeds", len(s.enabled)))
	return nil
}

// Stop cancels the loops and waits for in-flight cycles to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return ErrNotRunning
	}
	s.running = false
	s.stopped = true
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) loop(kind reconcile.Kind) {
	defer s.wg.Done()

	adapter := s.adapters[kind]
	s.runner.Reconcile(s.ctx, adapter)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runner.Reconcile(s.ctx, adapter)
		}
	}
}

// Trigger starts one cycle for kind in the background and returns immediately.
// The outcome is only visible through logs and Status. Before Start, the cycle
// runs detached from any scheduler context; after Stop, ErrNotRunning is returned.
func (s *Scheduler) Trigger(kind reconcile.Kind) error {
	adapter, ok := s.adapters[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrNotRunning
	}
	ctx := s.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("On-demand cycle requested", zap.String("kind", string(kind)))

	go func() {
		defer s.wg.Done()
		s.runner.Reconcile(ctx, adapter)
	}()
	return nil
}

// RunOnce runs one cycle for kind synchronously and returns its outcome.
func (s *Scheduler) RunOnce(ctx context.Context, kind reconcile.Kind) (*reconcile.Outcome, error) {
	adapter, ok := s.adapters[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return s.runner.Reconcile(ctx, adapter), nil
}

// Enabled returns the feeds polled on the interval.
func (s *Scheduler) Enabled() []reconcile.Kind {
	return slices.Clone(s.enabled)
}

// Status reports every known feed with its last outcome.
func (s *Scheduler) Status() []FeedStatus {
	var out []FeedStatus
	for _, kind := range reconcile.Kinds() {
		if _, ok := s.adapters[kind]; !ok {
			continue
		}
		st := FeedStatus{Kind: kind, Enabled: slices.Contains(s.enabled, kind)}
		if last := s.runner.LastOutcome(kind); last != nil {
			summary := last.Summary()
			st.Last = &summary
		}
		out = append(out, st)
	}
	return out
}
