package engine

import (
	"context"
	"sync"

	"docchat/llm/vector"
)

// ActiveDocument is the currently queryable document together with the
// index built from it.
type ActiveDocument struct {
	Index      vector.Index
	Collection string
	Source     string
	Title      string
	Chunks     int
}

// Session holds the single active document slot. A new ingestion builds
// its index off to the side and swaps it in only once fully ready, so
// queries always see either the complete previous index or the complete
// new one.
type Session struct {
	mu        sync.RWMutex
	active    *ActiveDocument
	ingesting bool
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Active returns the current document, or nil when nothing is indexed.
func (s *Session) Active() *ActiveDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Swap installs doc as the active document and returns the previous one
// so the caller can release its resources.
func (s *Session) Swap(doc *ActiveDocument) *ActiveDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.active
	s.active = doc
	return old
}

// BeginIngest claims the ingestion slot. Only one ingestion may run at a
// time; a second caller gets ErrIngestInProgress.
func (s *Session) BeginIngest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ingesting {
		return ErrIngestInProgress
	}
	s.ingesting = true
	return nil
}

// EndIngest releases the ingestion slot.
func (s *Session) EndIngest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingesting = false
}

// Close drops the active index and clears the session.
func (s *Session) Close(ctx context.Context) error {
	old := s.Swap(nil)
	if old == nil {
		return nil
	}
	err := old.Index.Drop(ctx)
	if cerr := old.Index.Close(); err == nil {
		err = cerr
	}
	return err
}
