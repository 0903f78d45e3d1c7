package a

import "context"

type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

type Backend interface {
	Upsert(ctx context.Context, collection string, points []string) error
	DeletePoints(ctx context.Context, collection string, ids []uint64) error
}

func bad(ctx context.Context, texts []string, ids []uint64, e Embedder, b Backend) {
	for _, text := range texts {
		e.EmbedBatch(ctx, []string{text})     // want "potential N\\+1: EmbedBatch called inside loop"
		b.Upsert(ctx, "docs", []string{text}) // want "potential N\\+1: Upsert called inside loop"
	}
	for i := 0; i < len(ids); i++ {
		b.DeletePoints(ctx, "docs", ids[i:i+1]) // want "potential N\\+1: DeletePoints called inside loop"
	}
}

func good(ctx context.Context, texts []string, e Embedder, b Backend) {
	_, _ = e.EmbedBatch(ctx, texts)
	_ = b.Upsert(ctx, "docs", texts)

	var deferred []func()
	for _, text := range texts {
		_ = len(text)
		deferred = append(deferred, func() { _ = b.Upsert(ctx, "docs", texts) })
	}
	_ = deferred
}
