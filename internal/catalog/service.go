package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/cloudlibrary/cloudlib/internal/domain"
	"golang.org/x/sync/singleflight"
)

const (
	listBooksKey = "books"

	// DefaultFetchTimeout bounds a shared fetch once it no longer follows
	// any single caller's context
	DefaultFetchTimeout = 30 * time.Second
)

// Service fronts the book-listing provider.
// Concurrent ListBooks calls share one provider round-trip.
type Service struct {
	lister  domain.BookLister
	logger  *slog.Logger
	group   singleflight.Group
	timeout time.Duration
}

// NewService creates a new catalog service
func NewService(lister domain.BookLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{lister: lister, logger: logger, timeout: DefaultFetchTimeout}
}

// WithFetchTimeout sets the bound on a shared fetch
func (s *Service) WithFetchTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// ListBooks fetches the whole catalog.
// The shared fetch is detached from ctx so that a caller giving up does not
// fail the others waiting on it; each caller still returns on its own ctx.
func (s *Service) ListBooks(ctx context.Context) ([]domain.Book, error) {
	start := time.Now()

	ch := s.group.DoChan(listBooksKey, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.lister.ListBooks(fetchCtx)
	})

	select {
	case <-ctx.Done():
		s.logger.Debug("list books abandoned", "error", ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("failed to list books", "error", res.Err, "elapsed", time.Since(start))
			return nil, res.Err
		}
		books, _ := res.Val.([]domain.Book)
		s.logger.Debug("listed books", "count", len(books), "shared", res.Shared, "elapsed", time.Since(start))
		return books, nil
	}
}
