package cache

import (
	"context"
	"sync"
	"time"

	reportapp "github.com/demandcast/backend/internal/application/report"
)

// Ensure MemoryDispatchGuard implements the orchestrator's DispatchGuard
var _ reportapp.DispatchGuard = (*MemoryDispatchGuard)(nil)

// MemoryDispatchGuard implements DispatchGuard in process memory for
// single-instance deployments and tests.
type MemoryDispatchGuard struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryDispatchGuard creates an empty MemoryDispatchGuard
func NewMemoryDispatchGuard() *MemoryDispatchGuard {
	return &MemoryDispatchGuard{entries: make(map[string]time.Time)}
}

// Acquire claims the key until its TTL passes. Returns true if this caller
// claimed it first.
func (g *MemoryDispatchGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if expiry, ok := g.entries[key]; ok && now.Before(expiry) {
		return false, nil
	}
	g.entries[key] = now.Add(ttl)

	// Drop expired entries opportunistically to bound memory.
	for k, expiry := range g.entries {
		if now.After(expiry) {
			delete(g.entries, k)
		}
	}
	return true, nil
}
