package pubsub

import "context"

const (
	// IngestStartedEvent fires when a document starts ingestion.
	IngestStartedEvent EventType = "ingest_started"
	// IngestProgressEvent fires on each ingestion stage change.
	IngestProgressEvent EventType = "ingest_progress"
	// IngestFinishedEvent fires when a document becomes queryable.
	IngestFinishedEvent EventType = "ingest_finished"
	// IngestFailedEvent fires when ingestion fails.
	IngestFailedEvent EventType = "ingest_failed"
)

// Subscriber receives lifecycle events over a channel.
type Subscriber[T any] interface {
	// Subscribe returns a read-only event channel that closes when the
	// context is done.
	Subscribe(context.Context) <-chan Event[T]
}

type (
	// EventType identifies the kind of event.
	EventType string

	// Event is one occurrence in a resource lifecycle.
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher delivers events to all subscribers.
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)
