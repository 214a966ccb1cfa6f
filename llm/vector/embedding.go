package vector

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cloudwego/eino/components/embedding"
)

// EmbeddingService wraps an embedding model for vector generation.
// The same service instance must be used for both index build and query
// embedding; mixing embedders across the two breaks the similarity space.
type EmbeddingService struct {
	embedder embedding.Embedder
	dim      int
	mu       sync.RWMutex
}

// NewEmbeddingService creates a new embedding service. A zero dim is learned
// from the first vector the model returns.
func NewEmbeddingService(embedder embedding.Embedder, dim int) *EmbeddingService {
	return &EmbeddingService{
		embedder: embedder,
		dim:      dim,
	}
}

// Embed generates an embedding vector for a single text
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	vectors, err := s.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("empty embedding returned")
	}

	result := toFloat32(vectors[0])
	s.learnDimension(len(result))
	return result, nil
}

// EmbedBatch generates embedding vectors for multiple texts, order-preserving.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	vectors, err := s.embedder.EmbedStrings(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	result := make([][]float32, len(vectors))
	for i, vec := range vectors {
		if len(vec) == 0 {
			return nil, fmt.Errorf("empty embedding returned for text %d", i)
		}
		result[i] = toFloat32(vec)
	}
	s.learnDimension(len(result[0]))

	return result, nil
}

// Dimension returns the embedding dimension (0 until the first embed when
// the service was created without a fixed dim).
func (s *EmbeddingService) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dim
}

func (s *EmbeddingService) learnDimension(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dim == 0 {
		s.dim = n
	}
}

func toFloat32(vec []float64) []float32 {
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(v)
	}
	return out
}

// GetEmbeddingDimFromEnv reads embedding dimension from environment variable
func GetEmbeddingDimFromEnv() int {
	dim := 1536 // Default for text-embedding-3-small
	if val := os.Getenv("VECTOR_DIM"); val != "" {
		if n := getEnvInt("VECTOR_DIM", dim); n > 0 {
			dim = n
		}
	}
	return dim
}
