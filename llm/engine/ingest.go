package engine

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"docchat/llm"
	"docchat/llm/parser"
	"docchat/llm/vector"
	"docchat/pubsub"

	"github.com/google/uuid"
)

// IngestResult summarizes a completed ingestion.
type IngestResult struct {
	Source   string
	Title    string
	Pages    int
	Chunks   int
	Duration time.Duration
}

// Ingest parses the file at path, chunks and embeds it, builds a fresh
// vector index and makes it the active document. The previous document
// stays queryable until the new index is complete; on any failure it is
// kept untouched.
func (e *Engine) Ingest(ctx context.Context, path string) (*IngestResult, error) {
	return e.ingest(ctx, path, func(ctx context.Context) (*parser.Document, error) {
		return e.parsers.ParseFile(ctx, path)
	})
}

// IngestReader ingests a document from a byte stream. The name selects
// the parser and labels the document.
func (e *Engine) IngestReader(ctx context.Context, in io.Reader, name string) (*IngestResult, error) {
	return e.ingest(ctx, name, func(ctx context.Context) (*parser.Document, error) {
		return e.parsers.Parse(ctx, in, name)
	})
}

func (e *Engine) ingest(ctx context.Context, source string, parse func(context.Context) (*parser.Document, error)) (*IngestResult, error) {
	if err := e.session.BeginIngest(); err != nil {
		return nil, err
	}
	defer e.session.EndIngest()

	start := time.Now()
	e.broker.Publish(pubsub.IngestStartedEvent, Update{Stage: StageExtracting, Source: source})

	doc, err := e.extract(ctx, source, parse)
	if err != nil {
		return nil, e.fail(source, err)
	}

	e.broker.Publish(pubsub.IngestProgressEvent, Update{Stage: StageChunking, Source: source})
	chunks := vector.ChunkPages(doc.Pages, e.config.ChunkConfig)
	if len(chunks) == 0 {
		return nil, e.fail(source, &ExtractionError{Source: source, Err: ErrNoContent})
	}

	e.broker.Publish(pubsub.IngestProgressEvent, Update{Stage: StageIndexing, Source: source, Chunks: len(chunks)})
	active, err := e.buildIndex(ctx, source, doc, chunks)
	if err != nil {
		return nil, e.fail(source, err)
	}

	// The new index is complete; swap it in and release the old one.
	if old := e.session.Swap(active); old != nil {
		dropCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_ = old.Index.Drop(dropCtx)
		_ = old.Index.Close()
		cancel()
	}

	result := &IngestResult{
		Source:   source,
		Title:    active.Title,
		Pages:    len(doc.Pages),
		Chunks:   len(chunks),
		Duration: time.Since(start),
	}
	e.broker.Publish(pubsub.IngestFinishedEvent, Update{Stage: StageReady, Source: source, Chunks: len(chunks)})
	return result, nil
}

func (e *Engine) extract(ctx context.Context, source string, parse func(context.Context) (*parser.Document, error)) (*parser.Document, error) {
	doc, err := parse(ctx)
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: err}
	}
	if strings.TrimSpace(doc.Content) == "" {
		return nil, &ExtractionError{Source: source, Err: ErrNoContent}
	}
	return doc, nil
}

// buildIndex embeds the chunks and writes them into a fresh collection.
// The collection is named per ingestion so a failed build never touches
// the active index.
func (e *Engine) buildIndex(ctx context.Context, source string, doc *parser.Document, chunks []vector.Chunk) (*ActiveDocument, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors := make([][]float32, 0, len(chunks))
	for lo := 0; lo < len(texts); lo += maxEmbedBatch {
		hi := lo + maxEmbedBatch
		if hi > len(texts) {
			hi = len(texts)
		}
		batch, err := e.embedder.EmbedBatch(ctx, texts[lo:hi])
		if err != nil {
			return nil, &IndexingError{Source: source, Err: err}
		}
		vectors = append(vectors, batch...)
	}

	collection := e.config.CollectionPrefix + "-" + uuid.NewString()
	index, err := e.provider.Open(ctx, collection, e.embedder.Dimension())
	if err != nil {
		return nil, &IndexingError{Source: source, Err: err}
	}

	title := doc.Title
	if title == "" {
		title = parser.ExtractTitle(doc.Content, source)
	}
	fileType := parser.FileTypeFromExt(strings.TrimPrefix(filepath.Ext(source), ".")).String()

	docs := make([]llm.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = llm.Document{
			ID:         fmt.Sprintf("chunk-%d", c.ChunkIndex),
			Content:    c.Content,
			Source:     source,
			FileType:   fileType,
			Title:      title,
			ChunkIndex: c.ChunkIndex,
			Page:       c.Page,
			CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		}
	}

	if err := index.Add(ctx, docs, vectors); err != nil {
		dropCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_ = index.Drop(dropCtx)
		_ = index.Close()
		cancel()
		return nil, &IndexingError{Source: source, Err: err}
	}

	return &ActiveDocument{
		Index:      index,
		Collection: collection,
		Source:     source,
		Title:      title,
		Chunks:     len(chunks),
	}, nil
}

func (e *Engine) fail(source string, err error) error {
	e.broker.Publish(pubsub.IngestFailedEvent, Update{Stage: StageFailed, Source: source, Err: err})
	return err
}
