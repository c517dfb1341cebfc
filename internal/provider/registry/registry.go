package registry

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Claisenn/codemind/internal/domain"
)

// Registry implements the domain.ProviderRegistry interface. The zero value
// is an empty registry ready for use.
//
// Reads go through an atomically swapped immutable map, so Resolve never
// takes a lock. Register copies the map under a mutex; it is expected only
// during startup.
type Registry struct {
	mu      sync.Mutex
	clients atomic.Pointer[map[string]domain.ChatClient]
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register stores client under the lower-cased id. An existing entry with
// the same id is replaced.
func (r *Registry) Register(_ context.Context, id string, client domain.ChatClient) error {
	if client == nil {
		return errors.New("provider cannot be nil")
	}

	key := normalize(id)
	if key == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := maps.Clone(r.snapshot())
	if next == nil {
		next = make(map[string]domain.ChatClient, 1)
	}
	next[key] = client
	r.clients.Store(&next)

	return nil
}

// Resolve retrieves a client by case-insensitive id.
func (r *Registry) Resolve(_ context.Context, id string) (domain.ChatClient, error) {
	client, exists := r.snapshot()[normalize(id)]
	if !exists {
		return nil, &domain.UnknownProviderError{ProviderID: id}
	}

	return client, nil
}

// List returns a snapshot of the registered ids.
func (r *Registry) List(_ context.Context) []string {
	clients := r.snapshot()

	names := make([]string, 0, len(clients))
	for name := range clients {
		names = append(names, name)
	}

	return names
}

// snapshot returns the current map; nil before the first Register.
func (r *Registry) snapshot() map[string]domain.ChatClient {
	if clients := r.clients.Load(); clients != nil {
		return *clients
	}
	return nil
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
