package embeddings

import "context"

// Embedder maps text to fixed-length numeric vectors. Implementations
// must be safe for concurrent use and deterministic for a fixed model.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}
