package competition

import (
	"database/sql"
	"sync"
)

// store handles database operations for competition metadata.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Format is the shooting discipline of a competition.
type Format string

const (
	FormatProne     Format = "prone"
	FormatStanding  Format = "standing"
	FormatBenchrest Format = "benchrest"
)

// Type distinguishes indoor from outdoor competitions.
type Type string

const (
	TypeIndoor  Type = "indoor"
	TypeOutdoor Type = "outdoor"
)

// Meta is the competition metadata the core reads. ShotsPerCard 0 means
// the competition does not mandate a card size; the score normalizer
// falls back to the record's own shot count, then to the default of 10.
type Meta struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ShotsPerCard int    `json:"shots_per_card"`
	Format       Format `json:"format"`
	Type         Type   `json:"competition_type"`
}

// ValidFormat reports whether f is a known discipline format.
func ValidFormat(f Format) bool {
	switch f {
	case FormatProne, FormatStanding, FormatBenchrest:
		return true
	}
	return false
}

// ValidType reports whether t is a known competition type.
func ValidType(t Type) bool {
	switch t {
	case TypeIndoor, TypeOutdoor:
		return true
	}
	return false
}
