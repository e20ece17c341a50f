package competition

// Cache memoizes metadata lookups for the duration of one assembly or
// classification call. It is created fresh per call and discarded at the
// end, so stale metadata can never leak across calls. Not safe for
// concurrent use; each call owns its own cache.
type Cache struct {
	store Store
	seen  map[string]*Meta
}

// NewCache wraps a Store with call-scoped memoization.
func NewCache(store Store) *Cache {
	return &Cache{
		store: store,
		seen:  make(map[string]*Meta),
	}
}

// ByID returns the cached metadata for id, fetching it at most once.
// Absent competitions (nil, nil) are cached too.
func (c *Cache) ByID(id string) (*Meta, error) {
	if meta, ok := c.seen[id]; ok {
		return meta, nil
	}
	meta, err := c.store.ByID(id)
	if err != nil {
		return nil, err
	}
	c.seen[id] = meta
	return meta, nil
}

// Prime seeds the cache with already-fetched metadata.
func (c *Cache) Prime(metas []Meta) {
	for i := range metas {
		m := metas[i]
		c.seen[m.ID] = &m
	}
}
