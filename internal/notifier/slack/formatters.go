package slack

import (
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/leaderboard"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// formatResultNotification creates the Slack message for an approved card using Block Kit.
func (s *Notifier) formatResultNotification(rec *scores.Record, meta *competition.Meta) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎯 Card approved! 🎯", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	competitionName := rec.CompetitionID
	if meta != nil && meta.Name != "" {
		competitionName = meta.Name
	}
	detailsText := fmt.Sprintf("Competition: %s\nSubmitted: %s", competitionName, time.UnixMilli(rec.SubmittedAt).Format("Monday 02 Jan, 15:04"))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	scoreText := fmt.Sprintf("Score: %d points (%d shots, %dX)", rec.Points, len(rec.Shots), rec.Tiebreaker.XCount)
	if rec.Tiebreaker.TotalTime > 0 {
		scoreText += fmt.Sprintf(" in %.1fs", rec.Tiebreaker.TotalTime)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", scoreText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatTierChange creates the Slack message announcing a new classification tier.
func (s *Notifier) formatTierChange(name, oldTier, newTier string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏅 Classification update! 🏅", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var body string
	if oldTier == "" {
		body = fmt.Sprintf("%s is now classified %s.", name, newTier)
	} else {
		body = fmt.Sprintf("%s moved from %s to %s.", name, oldTier, newTier)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates the Slack message for a ranked leaderboard using Block Kit.
func (s *Notifier) formatLeaderboard(scope string, rows []leaderboard.Row) (slack.Message, error) {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎯 Leaderboard 🎯", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	scopeText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Scope: %s", scope), true, false)
	blocks = append(blocks, slack.NewContextBlock("", scopeText))

	if len(rows) == 0 {
		empty := slack.NewTextBlockObject("plain_text", "No approved cards in this scope yet.", true, false)
		blocks = append(blocks, slack.NewSectionBlock(empty, nil, nil))
		return slack.NewBlockMessage(blocks...), nil
	}

	var lines []string
	for _, row := range rows {
		medal := ""
		switch row.Rank {
		case 1:
			medal = " 🥇"
		case 2:
			medal = " 🥈"
		case 3:
			medal = " 🥉"
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %d pts (%dX) | %s%s",
			row.Rank, row.Name, row.Points, row.Tiebreaker.XCount, row.Classification.Label, medal))
	}
	body := slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false)
	blocks = append(blocks, slack.NewSectionBlock(body, nil, nil))

	return slack.NewBlockMessage(blocks...), nil
}

// formatClassification creates the Slack message for one competitor's classification.
func (s *Notifier) formatClassification(name string, result classify.Result) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🎯 %s 🎯", name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	details := fmt.Sprintf("Classification: %s\nCards considered: %d\nAvg points (of 250): %.1f\nAvg X-count: %.1f",
		result.Label, result.SampleCount, result.AvgCardPoints250, result.AvgXCount)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, true, false), nil, nil))

	if result.Provisional {
		note := slack.NewTextBlockObject("plain_text", "Provisional: not enough recent cards for a full classification.", true, false)
		blocks = append(blocks, slack.NewContextBlock("", note))
	}

	return slack.NewBlockMessage(blocks...)
}
