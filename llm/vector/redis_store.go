package vector

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"docchat/llm"

	"github.com/redis/go-redis/v9"
)

const (
	// Default HNSW index parameters
	defaultEFConstruction = 200
	defaultM              = 16

	// Field names in Redis hash
	fieldContent    = "content"
	fieldVector     = "vector"
	fieldSource     = "source"
	fieldFileType   = "file_type"
	fieldTitle      = "title"
	fieldChunkIndex = "chunk_index"
	fieldPage       = "page"
	fieldMetadata   = "metadata"
	fieldScore      = "score"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	PoolSize       int
	EFConstruction int
	M              int
}

// DefaultRedisConfig returns default Redis configuration from environment
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           getEnvString("REDIS_ADDR", "localhost:6379"),
		Password:       getEnvString("REDIS_PASSWORD", ""),
		DB:             getEnvInt("REDIS_DB", 0),
		PoolSize:       getEnvInt("REDIS_POOL_SIZE", 10),
		EFConstruction: getEnvInt("HNSW_EF_CONSTRUCTION", defaultEFConstruction),
		M:              getEnvInt("HNSW_M", defaultM),
	}
}

// getEnvString reads a string from environment variable
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// RedisProvider opens RediSearch-backed vector collections.
type RedisProvider struct {
	client *redis.Client
	cfg    RedisConfig
}

// NewRedisProvider connects to Redis and verifies the connection.
func NewRedisProvider(ctx context.Context, cfg RedisConfig) (*RedisProvider, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProvider{client: client, cfg: cfg}, nil
}

// Open creates the HNSW vector index for the collection if it does not exist.
func (p *RedisProvider) Open(ctx context.Context, collection string, dim int) (Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}

	idx := &redisIndex{
		client: p.client,
		config: StoreConfig{
			EmbeddingDim: dim,
			Collection:   collection,
			KeyPrefix:    collection + ":",
		},
		efConstruction: p.cfg.EFConstruction,
		m:              p.cfg.M,
	}
	if err := idx.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to create vector index: %w", err)
	}
	return idx, nil
}

// Close closes the shared Redis connection.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

// redisIndex implements Index on one RediSearch collection
type redisIndex struct {
	client         *redis.Client
	config         StoreConfig
	efConstruction int
	m              int
}

// ensureIndex creates the HNSW vector index if it doesn't exist
func (s *redisIndex) ensureIndex(ctx context.Context) error {
	if _, err := s.client.Do(ctx, "FT.INFO", s.config.Collection).Result(); err == nil {
		return nil
	}

	// FT.CREATE <collection>
	//   ON HASH PREFIX 1 "<collection>:"
	//   SCHEMA vector VECTOR HNSW 6 TYPE FLOAT32 DIM <dim> DISTANCE_METRIC COSINE
	//          content TEXT title TEXT source TAG file_type TAG
	//          chunk_index NUMERIC page NUMERIC
	_, err := s.client.Do(ctx, "FT.CREATE", s.config.Collection,
		"ON", "HASH",
		"PREFIX", "1", s.config.KeyPrefix,
		"SCHEMA",
		fieldVector, "VECTOR", "HNSW", "10",
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(s.config.EmbeddingDim),
		"DISTANCE_METRIC", "COSINE",
		"EF_CONSTRUCTION", strconv.Itoa(s.efConstruction),
		"M", strconv.Itoa(s.m),
		fieldContent, "TEXT",
		fieldTitle, "TEXT",
		fieldSource, "TAG",
		fieldFileType, "TAG",
		fieldChunkIndex, "NUMERIC",
		fieldPage, "NUMERIC",
	).Result()
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// Add writes chunk records with their vectors using a single pipeline
func (s *redisIndex) Add(ctx context.Context, docs []llm.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return fmt.Errorf("docs and vectors length mismatch: %d vs %d", len(docs), len(vectors))
	}

	pipe := s.client.Pipeline()
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%s:%d", s.config.Collection, doc.ChunkIndex)
		}
		key := s.config.KeyPrefix + doc.ID

		metadataJSON, _ := json.Marshal(doc.Metadata)

		pipe.HSet(ctx, key,
			fieldContent, doc.Content,
			fieldVector, encodeVector(vectors[i]),
			fieldSource, doc.Source,
			fieldFileType, doc.FileType,
			fieldTitle, doc.Title,
			fieldChunkIndex, doc.ChunkIndex,
			fieldPage, doc.Page,
			fieldMetadata, metadataJSON,
		)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	return nil
}

// encodeVector encodes a float32 vector as little-endian bytes, the layout
// RediSearch expects for a FLOAT32 BLOB field.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, 4*len(vector))
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Search performs KNN search over the collection
func (s *redisIndex) Search(ctx context.Context, vector []float32, topK int) ([]llm.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	if topK > 100 {
		topK = 100
	}

	// FT.SEARCH <collection> "*=>[KNN k @vector $query_vector AS score]"
	queryStr := fmt.Sprintf("*=>[KNN %d @%s $query_vector AS %s]", topK, fieldVector, fieldScore)

	result, err := s.client.Do(ctx, "FT.SEARCH", s.config.Collection, queryStr,
		"PARAMS", "2", "query_vector", encodeVector(vector),
		"RETURN", "7", fieldContent, fieldSource, fieldFileType, fieldTitle, fieldChunkIndex, fieldPage, fieldScore,
		"SORTBY", fieldScore,
		"DIALECT", "2",
		"LIMIT", "0", strconv.Itoa(topK),
	).Result()
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	results, err := s.parseSearchResults(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}
	sortResults(results)
	return results, nil
}

// sortResults orders by descending similarity; equal scores fall back to
// the original chunk order so ties are not left to the backend.
func sortResults(results []llm.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Document.ChunkIndex < results[j].Document.ChunkIndex
	})
}

// parseSearchResults parses the FT.SEARCH reply: a count followed by
// alternating (id, field list) pairs.
func (s *redisIndex) parseSearchResults(result interface{}) ([]llm.SearchResult, error) {
	values, ok := result.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected result format")
	}
	if len(values) < 2 {
		return []llm.SearchResult{}, nil
	}

	var results []llm.SearchResult
	for i := 1; i < len(values); i += 2 {
		if i+1 >= len(values) {
			break
		}

		docID, ok := values[i].(string)
		if !ok {
			continue
		}
		fields, ok := values[i+1].([]interface{})
		if !ok {
			continue
		}

		doc, score := s.parseDocumentFields(docID, fields)
		results = append(results, llm.SearchResult{Document: doc, Score: score})
	}

	return results, nil
}

// parseDocumentFields decodes one hash's returned fields. The score field
// holds the cosine distance; similarity is 1 - distance.
func (s *redisIndex) parseDocumentFields(id string, fields []interface{}) (llm.Document, float32) {
	doc := llm.Document{ID: id}
	var score float32

	for i := 0; i+1 < len(fields); i += 2 {
		name, ok := fields[i].(string)
		if !ok {
			continue
		}
		val, ok := fields[i+1].(string)
		if !ok {
			continue
		}

		switch name {
		case fieldContent:
			doc.Content = val
		case fieldSource:
			doc.Source = val
		case fieldFileType:
			doc.FileType = val
		case fieldTitle:
			doc.Title = val
		case fieldChunkIndex:
			if n, err := strconv.Atoi(val); err == nil {
				doc.ChunkIndex = n
			}
		case fieldPage:
			if n, err := strconv.Atoi(val); err == nil {
				doc.Page = n
			}
		case fieldScore:
			if dist, err := strconv.ParseFloat(val, 32); err == nil {
				score = 1 - float32(dist)
			}
		}
	}

	return doc, score
}

// Count returns the number of records in the collection
func (s *redisIndex) Count(ctx context.Context) (int64, error) {
	info, err := s.client.Do(ctx, "FT.INFO", s.config.Collection).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get index info: %w", err)
	}

	values, ok := info.([]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected info format")
	}

	for i := 0; i < len(values)-1; i += 2 {
		if key, ok := values[i].(string); ok && key == "num_docs" {
			switch v := values[i+1].(type) {
			case int64:
				return v, nil
			case string:
				if n, err := strconv.ParseInt(v, 10, 64); err == nil {
					return n, nil
				}
			}
		}
	}

	return 0, nil
}

// Drop deletes the index together with its hash records
func (s *redisIndex) Drop(ctx context.Context) error {
	if err := s.client.Do(ctx, "FT.DROPINDEX", s.config.Collection, "DD").Err(); err != nil {
		return fmt.Errorf("failed to drop index: %w", err)
	}
	return nil
}

// Close is a no-op; the connection belongs to the provider.
func (s *redisIndex) Close() error { return nil }
