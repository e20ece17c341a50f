package ranking

import (
	"fmt"
	"strings"

	"github.com/tenring-club/steady-aim/internal/competition"
	"github.com/tenring-club/steady-aim/internal/scores"
)

// ScopeKind is the grouping dimension of a leaderboard.
type ScopeKind string

const (
	KindGlobal      ScopeKind = "global"
	KindCompetition ScopeKind = "competition"
	KindFormat      ScopeKind = "format"
	KindType        ScopeKind = "type"
)

// Scope selects which records participate in a ranking. Format and type
// scopes need the competition id to metadata mapping to evaluate their
// predicate; the caller supplies it via WithMeta so the engine itself
// never fetches anything.
type Scope struct {
	Kind  ScopeKind
	Value string
	meta  map[string]*competition.Meta
}

// Global ranks every eligible record across all competitions.
func Global() Scope {
	return Scope{Kind: KindGlobal}
}

// ForCompetition ranks records of a single competition.
func ForCompetition(id string) Scope {
	return Scope{Kind: KindCompetition, Value: id}
}

// ForFormat ranks records across all competitions of one discipline format.
func ForFormat(format competition.Format) Scope {
	return Scope{Kind: KindFormat, Value: string(format)}
}

// ForType ranks records across all indoor or all outdoor competitions.
func ForType(ctype competition.Type) Scope {
	return Scope{Kind: KindType, Value: string(ctype)}
}

// WithMeta attaches the competition metadata mapping needed by format and
// type scopes. Records whose competition is absent from the mapping are
// excluded from those scopes.
func (s Scope) WithMeta(meta map[string]*competition.Meta) Scope {
	s.meta = meta
	return s
}

// String renders the scope in its published selector form.
func (s Scope) String() string {
	if s.Kind == KindGlobal {
		return string(KindGlobal)
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.Value)
}

// Parse turns a selector string (competition:<id>, format:<f>, type:<t>,
// global) into a Scope. An empty selector means global.
func Parse(selector string) (Scope, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" || selector == string(KindGlobal) {
		return Global(), nil
	}

	kind, value, found := strings.Cut(selector, ":")
	if !found || value == "" {
		return Scope{}, fmt.Errorf("invalid scope selector %q", selector)
	}

	switch ScopeKind(kind) {
	case KindCompetition:
		return ForCompetition(value), nil
	case KindFormat:
		if !competition.ValidFormat(competition.Format(value)) {
			return Scope{}, fmt.Errorf("unknown format %q", value)
		}
		return ForFormat(competition.Format(value)), nil
	case KindType:
		if !competition.ValidType(competition.Type(value)) {
			return Scope{}, fmt.Errorf("unknown competition type %q", value)
		}
		return ForType(competition.Type(value)), nil
	}
	return Scope{}, fmt.Errorf("invalid scope selector %q", selector)
}

func (s Scope) matches(rec *scores.Record) bool {
	switch s.Kind {
	case KindCompetition:
		return rec.CompetitionID == s.Value
	case KindFormat:
		meta := s.meta[rec.CompetitionID]
		return meta != nil && string(meta.Format) == s.Value
	case KindType:
		meta := s.meta[rec.CompetitionID]
		return meta != nil && string(meta.Type) == s.Value
	}
	return true
}
