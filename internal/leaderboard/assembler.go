// Package leaderboard assembles the published leaderboard views: ranked
// entries per scope, enriched with whole-history aggregates, display
// identity and classification.
package leaderboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/ranking"
	"github.com/tenring-club/steady-aim/internal/scores"
	"github.com/tenring-club/steady-aim/internal/scoring"
)

// New creates a new Assembler.
func New(scoreStore scores.ScoreStore, competitionStore competition.Store, competitorStore competitors.Store, metricsSvc metrics.Metrics) *Assembler {
	return &Assembler{
		scores:       scoreStore,
		competitions: competitionStore,
		competitors:  competitorStore,
		metrics:      metricsSvc,
		classifyOpts: classify.DefaultOptions(),
	}
}

// Assemble builds the leaderboard for a scope selector (competition:<id>,
// format:<f>, type:<t> or global). Competition metadata is memoized in a
// cache that lives only for this call, so repeated lookups of the same
// competition are cheap and nothing stale survives into the next call.
func (a *Assembler) Assemble(selector string) ([]Row, error) {
	scope, err := ranking.Parse(selector)
	if err != nil {
		return nil, err
	}
	return a.AssembleScope(scope)
}

// AssembleScope is Assemble for an already-parsed scope.
func (a *Assembler) AssembleScope(scope ranking.Scope) ([]Row, error) {
	start := time.Now()
	a.metrics.IncLeaderboardRequests()

	cache := competition.NewCache(a.competitions)

	// Format and type scopes need the full metadata mapping for their
	// predicate; fetching it once also primes the cache.
	if scope.Kind == ranking.KindFormat || scope.Kind == ranking.KindType {
		metas, err := a.competitions.All()
		if err != nil {
			return nil, fmt.Errorf("failed to load competition metadata: %w", err)
		}
		cache.Prime(metas)
		metaByID := make(map[string]*competition.Meta, len(metas))
		for i := range metas {
			metaByID[metas[i].ID] = &metas[i]
		}
		scope = scope.WithMeta(metaByID)
	}

	var records []*scores.Record
	var err error
	if scope.Kind == ranking.KindCompetition {
		records, err = a.scores.ByCompetition(scope.Value)
	} else {
		records, err = a.scores.All()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	return a.assemble(records, scope, cache, start)
}

func (a *Assembler) assemble(records []*scores.Record, scope ranking.Scope, cache *competition.Cache, start time.Time) ([]Row, error) {
	entries := ranking.Rank(records, scope)

	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		history, err := a.scores.ByCompetitor(entry.CompetitorID)
		if err != nil {
			log.Error("Failed to load competitor history", "competitorID", entry.CompetitorID, "error", err)
			history = nil
		}

		row := Row{
			Rank:          entry.Rank,
			CompetitorID:  entry.CompetitorID,
			CompetitionID: entry.CompetitionID,
			Points:        entry.Points,
			Tiebreaker:    entry.Tiebreaker,
		}
		row.AverageScore, row.BestScore, row.CompetitionsCount = aggregates(history, cache)

		opts := a.classifyOpts
		row.Classification = classify.Classify(history, cache, opts)

		profile, err := a.competitors.Get(entry.CompetitorID)
		if err != nil {
			log.Error("Failed to load competitor profile", "competitorID", entry.CompetitorID, "error", err)
		}
		if profile != nil {
			row.Name = profile.Name
			// A manually assigned classification always wins over the
			// computed one, verbatim.
			if profile.ManualClass != "" {
				row.Classification.Tier = profile.ManualClass
				row.Classification.Label = profile.ManualClass
				row.Classification.Provisional = false
			}
		}
		if row.Name == "" {
			row.Name = entry.CompetitorID
		}

		rows = append(rows, row)
	}

	a.metrics.ObserveRankingDuration(time.Since(start).Seconds())
	return rows, nil
}

// aggregates computes whole-history statistics on the 250 scale. Cards
// that cannot be normalized are excluded from the average, not zeroed.
func aggregates(history []*scores.Record, cache *competition.Cache) (avg float64, best float64, competitions int) {
	var sum float64
	var n int
	seen := make(map[string]bool)

	for _, rec := range history {
		if rec == nil {
			continue
		}
		if !seen[rec.CompetitionID] {
			seen[rec.CompetitionID] = true
			competitions++
		}

		meta, err := cache.ByID(rec.CompetitionID)
		if err != nil {
			log.Debug("Competition lookup failed during aggregation", "competitionID", rec.CompetitionID, "error", err)
			meta = nil
		}
		points250, ok := scoring.NormalizeRecord(rec, meta)
		if !ok {
			continue
		}
		sum += points250
		n++
		if points250 > best {
			best = points250
		}
	}

	if n > 0 {
		avg = sum / float64(n)
	}
	return avg, best, competitions
}

// ClassifyCompetitor computes a competitor's classification over their
// whole history, honoring a manual override on the profile.
func (a *Assembler) ClassifyCompetitor(competitorID string) (classify.Result, error) {
	history, err := a.scores.ByCompetitor(competitorID)
	if err != nil {
		return classify.Result{}, fmt.Errorf("failed to load competitor history: %w", err)
	}

	cache := competition.NewCache(a.competitions)
	result := classify.Classify(history, cache, a.classifyOpts)

	profile, err := a.competitors.Get(competitorID)
	if err != nil {
		log.Error("Failed to load competitor profile", "competitorID", competitorID, "error", err)
		return result, nil
	}
	if profile != nil && profile.ManualClass != "" {
		result.Tier = profile.ManualClass
		result.Label = profile.ManualClass
		result.Provisional = false
	}
	return result, nil
}
