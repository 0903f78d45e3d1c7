package ports

import "context"

// Embedder defines the interface for generating vector embeddings with one model.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates one embedding per text, in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbedderFactory loads the embedding model with the given name.
type EmbedderFactory interface {
	Load(model string) (Embedder, error)
}

// EmbedderFactoryFunc adapts a function to EmbedderFactory.
type EmbedderFactoryFunc func(model string) (Embedder, error)

// Load calls f(model).
func (f EmbedderFactoryFunc) Load(model string) (Embedder, error) {
	return f(model)
}
