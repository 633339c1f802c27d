package content

// SavedCollection is the user-curated set of book summaries.
// Entries are keyed by ID and keep insertion order. Not safe for concurrent
// use; the controller owns the only instance.
type SavedCollection struct {
	order []string
	byID  map[string]BookSummary
}

// NewSavedCollection builds a collection from a stored list.
// Later duplicates of an ID are ignored; entries without an ID are skipped.
func NewSavedCollection(books []BookSummary) *SavedCollection {
	c := &SavedCollection{byID: make(map[string]BookSummary, len(books))}
	for _, b := range books {
		c.Add(b)
	}
	return c
}

// Add inserts b unless its ID is already present. Returns whether it was added.
func (c *SavedCollection) Add(b BookSummary) bool {
	if b.ID == "" {
		return false
	}
	if c.byID == nil {
		c.byID = make(map[string]BookSummary)
	}
	if _, ok := c.byID[b.ID]; ok {
		return false
	}
	c.byID[b.ID] = b
	c.order = append(c.order, b.ID)
	return true
}

// Remove deletes the entry with the given ID. Returns whether anything changed.
func (c *SavedCollection) Remove(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	delete(c.byID, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle adds b if absent, removes it otherwise. Returns true if b is now saved.
func (c *SavedCollection) Toggle(b BookSummary) bool {
	if c.Contains(b.ID) {
		c.Remove(b.ID)
		return false
	}
	return c.Add(b)
}

// Contains reports whether an entry with id is saved.
func (c *SavedCollection) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns the saved entry for id.
func (c *SavedCollection) Get(id string) (BookSummary, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// Len returns the number of saved entries.
func (c *SavedCollection) Len() int {
	return len(c.order)
}

// List returns the entries in insertion order. The slice is a copy.
func (c *SavedCollection) List() []BookSummary {
	out := make([]BookSummary, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
