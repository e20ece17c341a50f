package scores

// ScoreStore defines the interface for persisting and querying score records.
type ScoreStore interface {
	Insert(rec *Record) error
	Get(id string) (*Record, error)
	ByCompetitor(competitorID string) ([]*Record, error)
	ByCompetition(competitionID string) ([]*Record, error)
	All() ([]*Record, error)
	ForProcessing() ([]*Record, error)
	UpdateVerificationStatus(id string, status VerificationStatus, verifiedBy string) error
	UpdateProcessingStatus(id string, status ProcessingStatus) error
	Clear()
	ClearCompetition(competitionID string)
}
