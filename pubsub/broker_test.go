package pubsub

import (
	"context"
	"testing"
	"time"
)

func TestBrokerFlow(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := broker.Subscribe(ctx)

	received := make(chan string, 1)
	go func() {
		for event := range events {
			if event.Type == IngestStartedEvent {
				received <- event.Payload
			}
		}
	}()

	const testMsg = "report.pdf"
	broker.Publish(IngestStartedEvent, testMsg)

	select {
	case msg := <-received:
		if msg != testMsg {
			t.Errorf("expected %s, got %s", testMsg, msg)
		}
	case <-time.After(1 * time.Second):
		t.Error("timed out waiting for event")
	}
}

func TestAutoUnsubscribe(t *testing.T) {
	broker := NewBroker[int]()

	ctx, cancel := context.WithCancel(context.Background())

	_ = broker.Subscribe(ctx)
	if broker.GetSubscriberCount() != 1 {
		t.Errorf("expected 1 subscriber, got %d", broker.GetSubscriberCount())
	}

	cancel()

	// give the cleanup goroutine a moment to run
	time.Sleep(10 * time.Millisecond)

	if broker.GetSubscriberCount() != 0 {
		t.Errorf("subscriber not cleaned up after context cancel, count: %d", broker.GetSubscriberCount())
	}
}

// A slow subscriber must not block Publish; overflowing events are dropped.
func TestNonBlockingPublish(t *testing.T) {
	broker := NewBroker[int]()

	ctx := context.Background()
	_ = broker.Subscribe(ctx)

	// more events than the channel buffer holds
	for i := 0; i < 100; i++ {
		broker.Publish(IngestProgressEvent, i)
	}
}

func TestBrokerShutdown(t *testing.T) {
	broker := NewBroker[string]()
	ctx := context.Background()

	events := broker.Subscribe(ctx)

	broker.Shutdown()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("subscriber channel still open after shutdown")
		}
	case <-time.After(1 * time.Second):
		t.Error("timed out waiting for channel close after shutdown")
	}
}

func TestSubscribeAfterShutdown(t *testing.T) {
	broker := NewBroker[string]()
	broker.Shutdown()

	events := broker.Subscribe(context.Background())
	select {
	case _, ok := <-events:
		if ok {
			t.Error("expected closed channel from a shut-down broker")
		}
	case <-time.After(1 * time.Second):
		t.Error("timed out reading from post-shutdown subscription")
	}
}
