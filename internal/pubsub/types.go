package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventScoreSubmitted        EventType = "score-submitted"
	EventScoreVerified         EventType = "score-verified"
	EventClassificationChanged EventType = "classification-changed"
)
