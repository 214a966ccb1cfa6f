package engine

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"docchat/llm/parser"
	"docchat/llm/providers"
	"docchat/llm/vector"
	"docchat/pubsub"

	"github.com/cloudwego/eino/components/model"
)

// Stage is one step of the ingestion lifecycle.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageExtracting Stage = "extracting"
	StageChunking   Stage = "chunking"
	StageIndexing   Stage = "indexing"
	StageReady      Stage = "ready"
	StageFailed     Stage = "failed"
)

// Update is the payload published on every lifecycle event.
type Update struct {
	Stage  Stage
	Source string
	Chunks int
	Err    error
}

// maxEmbedBatch bounds how many chunks go into one embedding request.
const maxEmbedBatch = 64

// Config carries the tunables for an Engine.
type Config struct {
	ChunkConfig      vector.ChunkConfig
	TopK             int
	CollectionPrefix string
}

// DefaultConfig reads engine configuration from environment variables.
func DefaultConfig() Config {
	topK := 3
	if val := os.Getenv("TOP_K"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			topK = n
		}
	}
	prefix := os.Getenv("VECTOR_INDEX_NAME")
	if prefix == "" {
		prefix = "docchat"
	}
	return Config{
		ChunkConfig:      vector.DefaultChunkConfig(),
		TopK:             topK,
		CollectionPrefix: prefix,
	}
}

// Engine ties the document pipeline together: parse, chunk, embed, index,
// retrieve and answer. One Engine serves one chat session.
type Engine struct {
	parsers  *parser.Registry
	embedder *vector.EmbeddingService
	provider vector.Provider
	chat     model.BaseChatModel
	broker   *pubsub.Broker[Update]
	session  *Session
	config   Config
}

// New assembles an Engine from its parts.
func New(parsers *parser.Registry, embedder *vector.EmbeddingService, provider vector.Provider, chat model.BaseChatModel, config Config) *Engine {
	if config.TopK <= 0 {
		config.TopK = 3
	}
	if config.CollectionPrefix == "" {
		config.CollectionPrefix = "docchat"
	}
	return &Engine{
		parsers:  parsers,
		embedder: embedder,
		provider: provider,
		chat:     chat,
		broker:   pubsub.NewBroker[Update](),
		session:  NewSession(),
		config:   config,
	}
}

// Setup builds a fully wired Engine from the environment: chat model and
// embedder from the configured provider, vector store per VECTOR_STORE.
func Setup(ctx context.Context) (*Engine, error) {
	chatModel, err := providers.CreateChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	embedModel, err := providers.CreateEmbeddingModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding model: %w", err)
	}
	embedder := vector.NewEmbeddingService(embedModel, vector.GetEmbeddingDimFromEnv())

	var provider vector.Provider
	switch os.Getenv("VECTOR_STORE") {
	case "redis":
		provider, err = vector.NewRedisProvider(ctx, vector.DefaultRedisConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect vector store: %w", err)
		}
	default:
		provider = vector.NewMemoryProvider()
	}

	return New(parser.DefaultRegistry(), embedder, provider, chatModel, DefaultConfig()), nil
}

// Broker exposes the lifecycle event broker for subscribers such as the TUI.
func (e *Engine) Broker() *pubsub.Broker[Update] {
	return e.broker
}

// Session exposes the active document slot.
func (e *Engine) Session() *Session {
	return e.session
}

// Stage reports the current lifecycle stage. Outside an ingestion it is
// Ready when a document is indexed and Idle otherwise.
func (e *Engine) Stage() Stage {
	if e.session.Active() != nil {
		return StageReady
	}
	return StageIdle
}

// Close shuts down the broker and drops the active index.
func (e *Engine) Close(ctx context.Context) error {
	e.broker.Shutdown()
	return e.session.Close(ctx)
}
