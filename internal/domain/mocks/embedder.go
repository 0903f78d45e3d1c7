package mocks

import (
	"context"
	"sync"
)

// Embedder is a mock implementation of ports.Embedder.
// When EmbedFunc is nil every text maps to EmbeddingResult.
type Embedder struct {
	mu sync.Mutex

	EmbeddingResult []float32
	EmbedFunc       func(text string) []float32
	Err             error

	BatchCallCount int
	BatchCalls     [][]string
}

// Embed returns the configured embedding or error.
func (m *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// EmbedBatch returns embeddings for multiple texts and records the call.
func (m *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.BatchCallCount++
	m.BatchCalls = append(m.BatchCalls, append([]string(nil), texts...))
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		if m.EmbedFunc != nil {
			result[i] = m.EmbedFunc(text)
		} else {
			result[i] = m.EmbeddingResult
		}
	}
	return result, nil
}
