// Package slack implements the Notifier interface on top of Slack Block Kit.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/leaderboard"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/notifier"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendResultNotification posts a newly approved card to the channel.
func (s *Notifier) SendResultNotification(rec *scores.Record, meta *competition.Meta, dryRun bool) error {
	msg := s.formatResultNotification(rec, meta)
	return s.sendMessage(msg, dryRun)
}

// SendTierChange announces a competitor's new classification tier.
func (s *Notifier) SendTierChange(name, oldTier, newTier string, dryRun bool) error {
	msg := s.formatTierChange(name, oldTier, newTier)
	return s.sendMessage(msg, dryRun)
}

// SendLeaderboard posts a full leaderboard to the channel.
func (s *Notifier) SendLeaderboard(scope string, rows []leaderboard.Row, dryRun bool) error {
	msg, err := s.formatLeaderboard(scope, rows)
	if err != nil {
		return err
	}
	return s.sendMessage(msg, dryRun)
}

// FormatLeaderboardResponse formats a leaderboard for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(scope string, rows []leaderboard.Row) (any, error) {
	return s.formatLeaderboard(scope, rows)
}

// FormatClassificationResponse formats a classification result for a slash command response.
func (s *Notifier) FormatClassificationResponse(name string, result classify.Result) (any, error) {
	return s.formatClassification(name, result), nil
}

// FormatCompetitorNotFoundResponse formats the "no such competitor" slash command response.
func (s *Notifier) FormatCompetitorNotFoundResponse(query string) (any, error) {
	text := slack.NewTextBlockObject("plain_text", fmt.Sprintf("No competitor found matching '%s'.", query), true, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil)), nil
}
