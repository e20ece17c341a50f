package processor

import (
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/notifier"
)

// Classifier computes a competitor's current classification from their history.
type Classifier interface {
	ClassifyCompetitor(competitorID string) (classify.Result, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
