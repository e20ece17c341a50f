package leaderboard

import (
	"github.com/tenring-club/steady-aim/internal/classify"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/competitors"
	"github.com/tenring-club/steady-aim/internal/metrics"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// Assembler composes ranked entries with per-competitor aggregates and
// classification. It is the only component that calls both the ranking
// and classification engines and reaches into competitor profiles.
type Assembler struct {
	scores       scores.ScoreStore
	competitions competition.Store
	competitors  competitors.Store
	metrics      metrics.Metrics
	classifyOpts classify.Options
}

// Row is one assembled leaderboard row. The aggregates cover the
// competitor's entire history, not just the ranked scope, and live on
// the 250-point reference scale.
type Row struct {
	Rank              int               `json:"rank"`
	CompetitorID      string            `json:"competitor_id"`
	Name              string            `json:"name"`
	CompetitionID     string            `json:"competition_id,omitempty"`
	Points            int               `json:"points"`
	Tiebreaker        scores.Tiebreaker `json:"tiebreaker"`
	AverageScore      float64           `json:"average_score"`
	BestScore         float64           `json:"best_score"`
	CompetitionsCount int               `json:"competitions_count"`
	Classification    classify.Result   `json:"classification"`
}
