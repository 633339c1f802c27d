package store

import (
	"encoding/json"
	"fmt"

	"github.com/abelbrown/headstart/internal/content"
)

// SavedBooksKey is the slot holding the saved-books list.
const SavedBooksKey = "headstart_saved"

// SavedBooks reads and writes the saved-books slot as a JSON array of
// BookSummary. Every Save is a full overwrite.
type SavedBooks struct {
	st  *Store
	key string
}

// NewSavedBooks binds the saved-books slot of st.
func NewSavedBooks(st *Store) *SavedBooks {
	return &SavedBooks{st: st, key: SavedBooksKey}
}

// Load returns the stored list. An absent slot yields an empty list.
func (s *SavedBooks) Load() ([]content.BookSummary, error) {
	raw, ok, err := s.st.Get(s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []content.BookSummary{}, nil
	}
	var books []content.BookSummary
	if err := json.Unmarshal([]byte(raw), &books); err != nil {
		return nil, fmt.Errorf("decode saved books: %w", err)
	}
	if books == nil {
		books = []content.BookSummary{}
	}
	return books, nil
}

// Save replaces the stored list with books.
func (s *SavedBooks) Save(books []content.BookSummary) error {
	if books == nil {
		books = []content.BookSummary{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("encode saved books: %w", err)
	}
	return s.st.Put(s.key, string(data))
}
