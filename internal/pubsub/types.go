package pubsub

import (
	"context"
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// Handler receives the raw payload of a delivered event.
type Handler func(ctx context.Context, data []byte) error

// LocalClient delivers events in-process. It stands in for Cloud Pub/Sub
// when no GCP project is configured.
type LocalClient struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
	wg       sync.WaitGroup
	closed   bool
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventMatchRecorded EventType = "match-recorded"
)
