package storage

import (
	"context"
	"fmt"
	"sync"

	reportapp "github.com/demandcast/backend/internal/application/report"
)

// Ensure MemoryBlobStore implements the orchestrator's BlobStore
var _ reportapp.BlobStore = (*MemoryBlobStore)(nil)

// MemoryBlobStore keeps artifacts in process memory. It backs development
// setups and tests; production uses S3BlobStore.
type MemoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryBlobStore creates an empty MemoryBlobStore
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: make(map[string][]byte)}
}

// Upload stores a copy of the artifact bytes under the given key.
func (s *MemoryBlobStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	return nil
}

// Download reads the artifact bytes stored under the given key.
func (s *MemoryBlobStore) Download(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Exists reports whether an object is stored under the given key.
func (s *MemoryBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}
