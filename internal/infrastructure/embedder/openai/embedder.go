// Package openai provides an Embedder implementation using OpenAI or any
// OpenAI-compatible embeddings endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/qdrant-admin/internal/domain/ports"
	"github.com/ersonp/qdrant-admin/internal/infrastructure/config"
)

// Embedder implements the Embedder interface for one model.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedder creates a new embedder for the named model. The API key may be
// empty only when a custom base URL is configured.
func NewEmbedder(cfg config.EmbedderConfig, model string) (*Embedder, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Embedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(model),
	}, nil
}

// NewFactory returns a ports.EmbedderFactory that builds one Embedder per
// requested model name.
func NewFactory(cfg config.EmbedderConfig) ports.EmbedderFactory {
	return ports.EmbedderFactoryFunc(func(model string) (ports.Embedder, error) {
		return NewEmbedder(cfg, model)
	})
}

// Model returns the model name this embedder sends.
func (e *Embedder) Model() string {
	return string(e.model)
}

// Embed generates a vector embedding for the given text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, errors.New("no embeddings returned")
	}

	return embeddings[0], nil
}

// EmbedBatch generates vector embeddings for multiple texts in one request.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: e.model,
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embeddings: %w", err)
	}

	// Results carry their input index; keep input order regardless of response order.
	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	embeddings := make([][]float32, len(data))
	for i, d := range data {
		embeddings[i] = d.Embedding
	}

	return embeddings, nil
}
