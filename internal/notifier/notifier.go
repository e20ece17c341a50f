package notifier

import (
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/leaderboard"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For newly approved cards
	SendResultNotification(rec *scores.Record, meta *competition.Meta, dryRun bool) error
	// For classification tier changes
	SendTierChange(name, oldTier, newTier string, dryRun bool) error
	// For pushing a full leaderboard to the channel
	SendLeaderboard(scope string, rows []leaderboard.Row, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(scope string, rows []leaderboard.Row) (any, error)
	FormatClassificationResponse(name string, result classify.Result) (any, error)
	FormatCompetitorNotFoundResponse(query string) (any, error)
}
