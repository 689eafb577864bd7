package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ControllerFactory builds the controller for a new client.
type ControllerFactory func(clientID string) *SearchController

type registryEntry struct {
	controller *SearchController
	lastUsed   time.Time
}

// ControllerRegistry keeps one SearchController per client and evicts the
// ones that have been idle longer than the TTL.
type ControllerRegistry struct {
	mu          sync.Mutex
	controllers map[string]*registryEntry
	factory     ControllerFactory
	idleTTL     time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewControllerRegistry constructs an empty registry.
func NewControllerRegistry(factory ControllerFactory, idleTTL time.Duration, log *slog.Logger) *ControllerRegistry {
	if log == nil {
		log = slog.Default()
	}
	return &ControllerRegistry{
		controllers: make(map[string]*registryEntry),
		factory:     factory,
		idleTTL:     idleTTL,
		now:         time.Now,
		logger:      log,
	}
}

// Get returns the client's controller, creating it on first use.
func (r *ControllerRegistry) Get(clientID string) *SearchController {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.controllers[clientID]
	if !ok {
		entry = &registryEntry{controller: r.factory(clientID)}
		r.controllers[clientID] = entry
	}
	entry.lastUsed = r.now()
	return entry.controller
}

// Len returns the number of live controllers.
func (r *ControllerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// EvictIdle drops controllers unused for longer than the idle TTL.
func (r *ControllerRegistry) EvictIdle() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	evicted := 0
	for id, entry := range r.controllers {
		if entry.lastUsed.Before(cutoff) {
			entry.controller.Close()
			delete(r.controllers, id)
			evicted++
		}
	}
	return evicted
}

// StartJanitor launches the background eviction loop at the given interval.
func (r *ControllerRegistry) StartJanitor(ctx context.Context, interval time.Duration) {
	go r.startJanitor(ctx, interval)
}

func (r *ControllerRegistry) startJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.EvictIdle(); n > 0 {
				r.logger.Info("evicted idle controllers", slog.Int("count", n), slog.Int("remaining", r.Len()))
			}
		}
	}
}
