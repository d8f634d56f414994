package memstore

import (
	"sort"
	"strings"
	"sync"

	authormodel "book-catalog/internal/domains/author/model"
	bookmodel "book-catalog/internal/domains/book/model"
	"book-catalog/internal/shared/pagination"
)

// Store is a process-local catalog enforcing the same constraints as the
// PostgreSQL schema: unique lower(email), unique isbn, author links that
// restrict author deletion and cascade with their book.
type Store struct {
	mu sync.RWMutex

	authors      map[int64]authormodel.Author
	books        map[int64]bookmodel.Book
	links        map[int64][]int64 // book id -> author ids in link order
	nextAuthorID int64
	nextBookID   int64
}

func New() *Store {
	return &Store{
		authors: make(map[int64]authormodel.Author),
		books:   make(map[int64]bookmodel.Book),
		links:   make(map[int64][]int64),
	}
}

// Authors returns the author repository backed by s
func (s *Store) Authors() *AuthorRepository {
	return &AuthorRepository{store: s}
}

// Books returns the book repository backed by s
func (s *Store) Books() *BookRepository {
	return &BookRepository{store: s}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func paginate[T any](items []T, page pagination.PageRequest) pagination.Page[T] {
	total := int64(len(items))
	start := page.Offset()
	// a wrapped offset is past any real end
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := start + page.Limit()
	if end > len(items) {
		end = len(items)
	}
	return pagination.NewPage(append([]T{}, items[start:end]...), page, total)
}
