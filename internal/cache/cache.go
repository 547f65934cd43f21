// Package cache keeps uploaded CSV files in process memory so a report can
// be recomputed with different parameters without uploading again.
package cache

import (
	"context"
	"sync"
	"time"

	"spending/internal/log"
)

// Cache is the store the HTTP layer depends on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Len() int
}

// Cleaner interface for caches that support cleanup
type Cleaner interface {
	CleanExpired() int
}

// Manager periodically drops expired entries from registered caches.
type Manager struct {
	mu       sync.Mutex
	cleaners []Cleaner
	logger   *log.Logger
}

// NewManager creates a new cache manager
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger.WithComponent(log.ComponentCache)}
}

// Register adds a cache to the manager for cleanup
func (m *Manager) Register(c Cleaner) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleaners = append(m.cleaners, c)
}

// CleanOnce runs one cleanup pass and returns the number of entries removed.
func (m *Manager) CleanOnce() int {
	m.mu.Lock()
	cleaners := append([]Cleaner(nil), m.cleaners...)
	m.mu.Unlock()

	total := 0
	for _, c := range cleaners {
		total += c.CleanExpired()
	}
	return total
}

// Run cleans every interval until ctx is cancelled. It always returns nil so
// it can sit in an errgroup next to the HTTP server.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := m.CleanOnce(); removed > 0 {
				m.logger.Debug("Cache cleanup completed", "entries_removed", removed)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
