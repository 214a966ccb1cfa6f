package vector

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"docchat/llm"
)

// MemoryProvider keeps collections in process memory. It is the default
// backend for a single interactive session and the one used in tests.
type MemoryProvider struct{}

// NewMemoryProvider creates a new in-memory index provider
func NewMemoryProvider() *MemoryProvider { return &MemoryProvider{} }

// Open returns a fresh empty collection
func (p *MemoryProvider) Open(ctx context.Context, collection string, dim int) (Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	return &memoryIndex{collection: collection, dimension: dim}, nil
}

// memoryIndex is a brute-force cosine similarity index.
type memoryIndex struct {
	mu         sync.RWMutex
	collection string
	dimension  int
	docs       []llm.Document
	vectors    [][]float32
}

func (s *memoryIndex) Add(ctx context.Context, docs []llm.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("docs and vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}
	for _, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(v))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, docs...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *memoryIndex) Search(ctx context.Context, vector []float32, topK int) ([]llm.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]llm.SearchResult, 0, len(s.docs))
	for i := range s.vectors {
		results = append(results, llm.SearchResult{
			Document: s.docs[i],
			Score:    cosineSimilarity(s.vectors[i], vector),
		})
	}

	// Descending score; equal scores keep original chunk order
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ChunkIndex < results[j].Document.ChunkIndex
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func (s *memoryIndex) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func (s *memoryIndex) Drop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = nil
	s.vectors = nil
	return nil
}

func (s *memoryIndex) Close() error { return nil }

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return float32(dotProduct / (math.Sqrt(normA) * math.Sqrt(normB)))
}
