package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDocumentIndexed is returned by Query when no document has
	// completed ingestion yet.
	ErrNoDocumentIndexed = errors.New("no document indexed; ingest a document first")

	// ErrIngestInProgress is returned when an ingestion is started while
	// another one is still running.
	ErrIngestInProgress = errors.New("another ingestion is already in progress")

	// ErrNoContent is returned when a document yields no extractable text.
	ErrNoContent = errors.New("document contains no extractable text")
)

// ExtractionError wraps failures while reading or parsing a document.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// IndexingError wraps failures while embedding chunks or building the
// vector index.
type IndexingError struct {
	Source string
	Err    error
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing failed for %s: %v", e.Source, e.Err)
}

func (e *IndexingError) Unwrap() error { return e.Err }

// RetrievalError wraps failures while embedding the question or searching
// the vector index.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// GenerationError wraps failures from the chat model call.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }
