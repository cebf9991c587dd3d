package catalog

import (
	"strings"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"golang.org/x/text/cases"
)

// FilterOptions tunes the search predicate
type FilterOptions struct {
	// MatchAuthor also matches the query against Book.Author
	MatchAuthor bool
}

// Filter returns the books whose title contains query, ignoring case.
// The result keeps the input order and never aliases the input slice.
// An empty query returns every book.
func Filter(books []domain.Book, query string, opts FilterOptions) []domain.Book {
	out := make([]domain.Book, 0, len(books))
	if query == "" {
		return append(out, books...)
	}

	// Casers carry state and are not safe for concurrent use
	fold := cases.Fold()
	needle := fold.String(query)

	for _, b := range books {
		if strings.Contains(fold.String(b.Title), needle) {
			out = append(out, b)
			continue
		}
		if opts.MatchAuthor && b.Author != "" && strings.Contains(fold.String(b.Author), needle) {
			out = append(out, b)
		}
	}
	return out
}
