package processor

import (
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/pubsub"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// Processor advances score records through the post-submission pipeline.
type Processor struct {
	scores       scores.ScoreStore
	competitors  competitors.Store
	competitions competition.Store
	classifier   Classifier
	notifier     Notifier
	metrics      metrics.Metrics
	pubsub       pubsub.PubSubClient
}
