package services

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/qdrant-admin/internal/domain/mocks"
	"github.com/ersonp/qdrant-admin/internal/domain/ports"
)

func countingFactory(loads *atomic.Int32) ports.EmbedderFactory {
	return ports.EmbedderFactoryFunc(func(model string) (ports.Embedder, error) {
		loads.Add(1)
		return &mocks.Embedder{EmbeddingResult: []float32{float32(len(model))}}, nil
	})
}

func TestEmbeddingProvider_GetModel(t *testing.T) {
	var loads atomic.Int32
	p := NewEmbeddingProvider(countingFactory(&loads), "default-model")

	m1, err := p.GetModel("m")
	require.NoError(t, err)
	m2, err := p.GetModel("m")
	require.NoError(t, err)
	other, err := p.GetModel("other")
	require.NoError(t, err)

	assert.Same(t, m1, m2)
	assert.NotSame(t, m1, other)
	assert.Equal(t, int32(2), loads.Load())
}

func TestEmbeddingProvider_GetModel_DefaultName(t *testing.T) {
	var loads atomic.Int32
	p := NewEmbeddingProvider(countingFactory(&loads), "default-model")

	byEmpty, err := p.GetModel("")
	require.NoError(t, err)
	byName, err := p.GetModel("default-model")
	require.NoError(t, err)

	assert.Same(t, byEmpty, byName)
	assert.Equal(t, "default-model", p.DefaultModel())
}

func TestEmbeddingProvider_GetModel_Concurrent(t *testing.T) {
	var loads atomic.Int32
	p := NewEmbeddingProvider(countingFactory(&loads), "m")

	const workers = 32
	got := make([]ports.Embedder, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = p.GetModel("m")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, m := range got {
		assert.Same(t, got[0], m)
	}
}

func TestEmbeddingProvider_GetModel_LoadError(t *testing.T) {
	var loads atomic.Int32
	p := NewEmbeddingProvider(ports.EmbedderFactoryFunc(func(model string) (ports.Embedder, error) {
		loads.Add(1)
		return nil, errors.New("unknown model")
	}), "m")

	_, err := p.GetModel("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")

	// Failures are not cached.
	_, err = p.GetModel("bad")
	require.Error(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestEmbeddingProvider_Embed(t *testing.T) {
	emb := &mocks.Embedder{EmbedFunc: func(text string) []float32 { return []float32{float32(len(text))} }}
	p := NewEmbeddingProvider(ports.EmbedderFactoryFunc(func(string) (ports.Embedder, error) { return emb, nil }), "m")

	vectors, err := p.Embed(t.Context(), "", []string{"a", "bbb"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {3}}, vectors)
	assert.Equal(t, 1, emb.BatchCallCount)
}
