package vector

import (
	"context"

	"docchat/llm"
)

// Index is one searchable collection of (chunk, vector) pairs. An Index is
// built once per document analysis and replaced wholesale on the next one.
type Index interface {
	// Add writes chunk records with their vectors into the collection
	Add(ctx context.Context, docs []llm.Document, vectors [][]float32) error

	// Search returns the topK most similar chunks in descending score order.
	// A topK larger than the collection returns everything it holds.
	Search(ctx context.Context, vector []float32, topK int) ([]llm.SearchResult, error)

	// Count returns the number of chunk records in the collection
	Count(ctx context.Context) (int64, error)

	// Drop deletes the collection from the backend
	Drop(ctx context.Context) error

	// Close releases any connections or resources
	Close() error
}

// Provider opens named collections on a storage backend. Each document
// analysis opens a fresh collection so a failed rebuild never damages the
// index currently in use.
type Provider interface {
	Open(ctx context.Context, collection string, dim int) (Index, error)
}

// StoreConfig holds configuration shared by index backends
type StoreConfig struct {
	// Embedding dimension (must match the embedding model)
	EmbeddingDim int

	// Collection name for the vector index
	Collection string

	// Key prefix for stored records
	KeyPrefix string
}
