package catalog

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultIndexSize bounds how many books an Index remembers.
const DefaultIndexSize = 512

// Index remembers recently seen books by id so pages that only receive an
// id (the detail route) can render them without another lookup.
type Index struct {
	cache *lru.Cache[int, Book]
}

// NewIndex creates an index holding at most size books; size <= 0 uses
// DefaultIndexSize.
func NewIndex(size int) *Index {
	if size <= 0 {
		size = DefaultIndexSize
	}
	cache, err := lru.New[int, Book](size)
	if err != nil {
		// lru.New only fails for non-positive sizes, which are excluded above.
		panic(err)
	}
	return &Index{cache: cache}
}

// Remember stores every book, replacing older entries with the same id.
func (ix *Index) Remember(books ...Book) {
	for _, b := range books {
		ix.cache.Add(b.ID, b)
	}
}

// Lookup returns the book with the given id, if it has been seen.
func (ix *Index) Lookup(id int) (Book, bool) {
	return ix.cache.Get(id)
}

// Len returns the number of books currently held.
func (ix *Index) Len() int {
	return ix.cache.Len()
}
