// Package services contains the domain operations of the admin server.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// Resolver returns the backend for the current request.
type Resolver interface {
	Resolve(ctx context.Context) (ports.Backend, error)
}

type cachedBackend struct {
	backend ports.Backend
	apiKey  string
}

// ConnectionRegistry caches one backend connection per destination URL.
// A changed credential for a cached URL closes and replaces the connection.
type ConnectionRegistry struct {
	connector ports.Connector
	defaults  ports.Destination

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	clients map[string]cachedBackend
}

// NewConnectionRegistry creates an empty registry that falls back to defaults
// when a request carries no destination override.
func NewConnectionRegistry(connector ports.Connector, defaults ports.Destination) *ConnectionRegistry {
	return &ConnectionRegistry{
		connector: connector,
		defaults:  defaults,
		locks:     make(map[string]*sync.Mutex),
		clients:   make(map[string]cachedBackend),
	}
}

// keyLock returns the mutex serializing get-or-create for url.
func (r *ConnectionRegistry) keyLock(url string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.locks[url]
	if !ok {
		l = &sync.Mutex{}
		r.locks[url] = l
	}
	return l
}

// Resolve returns the connection for the request's effective destination.
func (r *ConnectionRegistry) Resolve(ctx context.Context) (ports.Backend, error) {
	dest := effectiveDestination(ctx, r.defaults)
	if dest.URL == "" {
		return nil, errors.New("no backend url configured")
	}

	l := r.keyLock(dest.URL)
	l.Lock()
	defer l.Unlock()

	r.mu.Lock()
	cached, ok := r.clients[dest.URL]
	r.mu.Unlock()

	if ok && cached.apiKey == dest.APIKey {
		return cached.backend, nil
	}

	backend, err := r.connector.Connect(dest)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", dest.URL, err)
	}

	r.mu.Lock()
	r.clients[dest.URL] = cachedBackend{backend: backend, apiKey: dest.APIKey}
	size := len(r.clients)
	r.mu.Unlock()

	if ok {
		log.Info().Str("url", dest.URL).Msg("credential changed, replacing backend connection")
		if err := cached.backend.Close(); err != nil {
			log.Warn().Err(err).Str("url", dest.URL).Msg("closing stale backend connection")
		}
	}
	backendConnections.Set(float64(size))

	return backend, nil
}

// Len returns the number of cached connections.
func (r *ConnectionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Close closes every cached connection. It is called on process shutdown.
func (r *ConnectionRegistry) Close() error {
	r.mu.Lock()
	clients := r.clients
	r.clients = make(map[string]cachedBackend)
	r.mu.Unlock()

	var errs []error
	for url, c := range clients {
		if err := c.backend.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", url, err))
		}
	}
	backendConnections.Set(0)
	return errors.Join(errs...)
}
