package competition

// Store defines the interface for competition metadata lookups.
type Store interface {
	ByID(id string) (*Meta, error)
	All() ([]Meta, error)
	Upsert(meta Meta) error
}
