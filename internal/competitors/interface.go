package competitors

// Store defines the interface for competitor profile data.
type Store interface {
	Upsert(profiles []Profile) error
	Get(id string) (*Profile, error)
	GetByName(name string) (*Profile, error)
	All() ([]Profile, error)
	IsKnown(id string) bool
	SetManualClass(id, tier string) error
	SetLastTier(id, tier string) error
}
