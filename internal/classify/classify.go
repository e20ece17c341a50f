// Package classify derives a skill tier from a competitor's rolling score
// history. It selects the best recent cards inside a recency window and
// maps the aggregate onto fixed tier thresholds, flagging the result as
// provisional when too few cards exist to trust the aggregate.
package classify

import (
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/scores"
	"github.com/tenring-club/steady-aim/internal/scoring"
)

// MetaLookup resolves competition metadata for score normalization.
// Both the competition store and its call-scoped cache satisfy it.
type MetaLookup interface {
	ByID(id string) (*competition.Meta, error)
}

// Options tune the classification window.
type Options struct {
	// WindowDays is the recency window for considered cards.
	WindowDays int
	// ConsiderN caps how many of the most recent in-window cards are considered.
	ConsiderN int
	// BestK picks the best-performing subset of the considered cards.
	BestK int
	// MinFull is the card count below which the result is provisional.
	MinFull int
	// Now overrides the clock, for tests. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns the production classification window.
func DefaultOptions() Options {
	return Options{
		WindowDays: 365,
		ConsiderN:  10,
		BestK:      6,
		MinFull:    6,
	}
}

// Result is a computed classification.
type Result struct {
	Tier             string  `json:"tier"`
	Label            string  `json:"label"`
	Provisional      bool    `json:"provisional"`
	SampleCount      int     `json:"sample_count"`
	AvgCardPoints250 float64 `json:"avg_card_points_250"`
	AvgXCount        float64 `json:"avg_x_count"`
}

const (
	TierRookie = "Rookie"
	TierBronze = "Bronze"
)

// tier thresholds on the (avg points of 250, avg X-count) pair,
// evaluated top down, first match wins.
var tiers = []struct {
	name      string
	minPoints float64
	minXCount float64
}{
	{"Grand Master", 249.0, 15},
	{"Master", 247.0, 10},
	{"Diamond", 245.0, 8},
	{"Platinum", 242.0, 6},
	{"Gold", 238.0, 4},
}

type sample struct {
	points250 float64
	valid     bool
	xCount    int
	ts        int64
}

// Classify maps a competitor's history to a tier. It never returns an
// error: history is third-party data of uncertain shape, so missing
// metadata and absent timestamps degrade to documented fallbacks instead
// of aborting.
func Classify(history []*scores.Record, lookup MetaLookup, opts Options) Result {
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}
	nowMillis := now.UnixMilli()
	windowMillis := int64(opts.WindowDays) * 24 * int64(time.Hour/time.Millisecond)

	// Normalize and window. Cards with an absent timestamp are treated as
	// age zero and never excluded by the window.
	considered := make([]sample, 0, len(history))
	for _, rec := range history {
		if rec == nil {
			continue
		}
		var meta *competition.Meta
		if lookup != nil {
			m, err := lookup.ByID(rec.CompetitionID)
			if err != nil {
				log.Debug("Competition lookup failed during classification", "competitionID", rec.CompetitionID, "error", err)
			} else {
				meta = m
			}
		}
		points250, valid := scoring.NormalizeRecord(rec, meta)

		ts := rec.SubmittedAt
		if ts > 0 && nowMillis-ts > windowMillis {
			continue
		}
		effective := ts
		if effective <= 0 {
			effective = nowMillis
		}
		considered = append(considered, sample{
			points250: points250,
			valid:     valid,
			xCount:    rec.Tiebreaker.XCount,
			ts:        effective,
		})
	}

	// Most recent first, then cap at ConsiderN.
	sort.SliceStable(considered, func(i, j int) bool {
		return considered[i].ts > considered[j].ts
	})
	if opts.ConsiderN > 0 && len(considered) > opts.ConsiderN {
		considered = considered[:opts.ConsiderN]
	}

	provisional := len(considered) < opts.MinFull
	if len(considered) == 0 {
		return Result{
			Tier:        TierRookie,
			Label:       TierRookie,
			Provisional: true,
		}
	}

	// The competitor's best recent performances, not simply the most
	// recent ones.
	selected := make([]sample, len(considered))
	copy(selected, considered)
	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].points250 != selected[j].points250 {
			return selected[i].points250 > selected[j].points250
		}
		return selected[i].xCount > selected[j].xCount
	})
	if opts.BestK > 0 && len(selected) > opts.BestK {
		selected = selected[:opts.BestK]
	}

	var pointsSum float64
	var pointsN int
	var xSum float64
	for _, s := range selected {
		// Cards without a valid denominator are excluded from the points
		// aggregate, not counted as zero.
		if s.valid {
			pointsSum += s.points250
			pointsN++
		}
		xSum += float64(s.xCount)
	}

	var avgPoints float64
	if pointsN > 0 {
		avgPoints = pointsSum / float64(pointsN)
	}
	avgX := xSum / float64(len(selected))

	tierName := TierBronze
	for _, t := range tiers {
		if avgPoints >= t.minPoints && avgX >= t.minXCount {
			tierName = t.name
			break
		}
	}

	label := tierName
	if provisional {
		label = "Provisional " + tierName
	}

	return Result{
		Tier:             tierName,
		Label:            label,
		Provisional:      provisional,
		SampleCount:      len(considered),
		AvgCardPoints250: avgPoints,
		AvgXCount:        avgX,
	}
}
