package db

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStateClient keeps state in process memory. It is the default store
// and the one used by tests.
type MemoryStateClient struct {
	data map[string]memoryEntry
	mu   sync.RWMutex
	now  func() time.Time
}

// NewMemoryStateClient initializes a new MemoryStateClient.
func NewMemoryStateClient() *MemoryStateClient {
	return NewMemoryStateClientWithClock(time.Now)
}

// NewMemoryStateClientWithClock initializes a MemoryStateClient with a custom clock.
func NewMemoryStateClientWithClock(now func() time.Time) *MemoryStateClient {
	return &MemoryStateClient{
		data: make(map[string]memoryEntry),
		now:  now,
	}
}

// Set stores a key-value pair. A ttl of zero keeps the key forever.
func (m *MemoryStateClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Get retrieves the value for a given key.
func (m *MemoryStateClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, exists := m.data[key]
	m.mu.RUnlock()

	if exists && !entry.expired(m.now()) {
		return entry.value, nil
	}
	if exists {
		m.mu.Lock()
		// A Set may have replaced the entry since the read lock was released.
		if current, ok := m.data[key]; ok && current.expired(m.now()) {
			delete(m.data, key)
		}
		m.mu.Unlock()
	}
	return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
}

// Update runs fn under the write lock.
func (m *MemoryStateClient) Update(ctx context.Context, key string, ttl time.Duration, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry, exists := m.data[key]
	if exists && entry.expired(now) {
		exists = false
	}

	value, err := fn(entry.value, exists)
	if err != nil {
		return err
	}

	next := memoryEntry{value: value}
	if ttl > 0 {
		next.expiresAt = now.Add(ttl)
	}
	m.data[key] = next
	return nil
}

// Sweep removes expired entries and returns how many were removed.
func (m *MemoryStateClient) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, expired or not.
func (m *MemoryStateClient) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// StartSweeper removes expired entries at the given interval until ctx is done.
func (m *MemoryStateClient) StartSweeper(ctx context.Context, interval time.Duration, log *slog.Logger) {
	if log == nil {
		log = slog.Default()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					log.Info("swept expired client state", slog.Int("count", n))
				}
			}
		}
	}()
}

// Ping always succeeds.
func (m *MemoryStateClient) Ping(ctx context.Context) error {
	return nil
}
