package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

// EmbeddingProvider lazily loads embedding models and caches them by name for
// the process lifetime. Models are never evicted.
type EmbeddingProvider struct {
	factory      ports.EmbedderFactory
	defaultModel string

	group  singleflight.Group
	mu     sync.RWMutex
	models map[string]ports.Embedder
}

// NewEmbeddingProvider creates an empty provider. defaultModel is used when a
// caller passes an empty model name.
func NewEmbeddingProvider(factory ports.EmbedderFactory, defaultModel string) *EmbeddingProvider {
	return &EmbeddingProvider{
		factory:      factory,
		defaultModel: defaultModel,
		models:       make(map[string]ports.Embedder),
	}
}

// DefaultModel returns the model used for empty names.
func (p *EmbeddingProvider) DefaultModel() string {
	return p.defaultModel
}

// GetModel returns the cached model for name, loading it on first use.
// Concurrent first calls for one name share a single load.
func (p *EmbeddingProvider) GetModel(name string) (ports.Embedder, error) {
	if name == "" {
		name = p.defaultModel
	}

	p.mu.RLock()
	m, ok := p.models[name]
	p.mu.RUnlock()
	if ok {
		return m, nil
	}

	v, err, _ := p.group.Do(name, func() (any, error) {
		p.mu.RLock()
		m, ok := p.models[name]
		p.mu.RUnlock()
		if ok {
			return m, nil
		}

		loaded, err := p.factory.Load(name)
		if err != nil {
			return nil, fmt.Errorf("loading embedding model %s: %w", name, err)
		}

		p.mu.Lock()
		p.models[name] = loaded
		size := len(p.models)
		p.mu.Unlock()

		embeddingModels.Set(float64(size))
		log.Info().Str("model", name).Msg("embedding model loaded")
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(ports.Embedder), nil
}

// Embed embeds texts with the named model, one vector per text in input order.
func (p *EmbeddingProvider) Embed(ctx context.Context, model string, texts []string) ([][]float32, error) {
	if model == "" {
		model = p.defaultModel
	}
	m, err := p.GetModel(model)
	if err != nil {
		return nil, err
	}
	vectors, err := m.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("generating embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding model %s returned %d vectors for %d texts", model, len(vectors), len(texts))
	}
	return vectors, nil
}
