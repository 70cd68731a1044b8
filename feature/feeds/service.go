package feeds

import (
	"context"
	"errors"

	"untis-notifier/core/reconcile"
	"untis-notifier/core/scheduler"

	"go.uber.org/zap"
)

var (
	ErrUnknownVerb = errors.New("unknown command")
	ErrUnknownKind = errors.New("unknown feed kind")
)

// Scheduler is the part of the poll scheduler the HTTP routes drive.
type Scheduler interface {
	Trigger(kind reconcile.Kind) error
	Status() []scheduler.FeedStatus
}

// Service backs the feed routes.
type Service struct {
	scheduler Scheduler
	store     reconcile.Store
	logger    *zap.Logger
}

// NewService creates a new feed service.
func NewService(s Scheduler, store reconcile.Store, logger *zap.Logger) *Service {
	return &Service{scheduler: s, store: store, logger: logger}
}

// Check starts a background cycle for the feed named by an operator verb.
func (s *Service) Check(verb string) (reconcile.Kind, error) {
	kind, ok := reconcile.ParseVerb(verb)
	if !ok {
		return "", ErrUnknownVerb
	}
	return kind, s.scheduler.Trigger(kind)
}

// Status returns every feed with its last outcome.
func (s *Service) Status() []scheduler.FeedStatus {
	return s.scheduler.Status()
}

// Snapshot returns the stored snapshot for a kind or verb.
func (s *Service) Snapshot(ctx context.Context, name string) (*reconcile.Snapshot, error) {
	kind, ok := reconcile.ParseKind(name)
	if !ok {
		return nil, ErrUnknownKind
	}
	return s.store.Load(ctx, kind)
}
