package catalog

import (
	"context"
	"errors"

	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// ErrRetryNotAllowed is returned by Retry outside the Failed state
var ErrRetryNotAllowed = errors.New("retry is only allowed after a failed load")

// Status is the phase of a fetch cycle
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

// String returns a human-readable representation of the status
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusLoading:
		return "Loading"
	case StatusLoaded:
		return "Loaded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Request identifies one issued fetch. Ctx is cancelled when the request
// is superseded or the loader is unmounted.
type Request struct {
	ID  uint64
	Ctx context.Context
}

// Loader tracks the load state of the catalog for one screen lifetime.
//
// Every fetch is tagged with a generation number. Results are committed
// only for the latest generation while the loader is mounted and
// Loading; anything else is a stale response and is dropped.
//
// Loader is not safe for concurrent use. It is owned by the bubbletea
// Update loop; async fetches only report back through Resolve/Fail.
type Loader struct {
	status  Status
	books   []domain.Book
	err     error
	gen     uint64
	mounted bool
	cancel  context.CancelFunc
}

// NewLoader creates a mounted loader in the Idle state
func NewLoader() *Loader {
	return &Loader{status: StatusIdle, mounted: true}
}

// Status returns the current phase
func (l *Loader) Status() Status { return l.status }

// Books returns the loaded collection (nil unless Loaded)
func (l *Loader) Books() []domain.Book { return l.books }

// Err returns the failure reason (nil unless Failed)
func (l *Loader) Err() error { return l.err }

// Mounted reports whether results may still be committed
func (l *Loader) Mounted() bool { return l.mounted }

// Generation returns the ID of the most recently issued request
func (l *Loader) Generation() uint64 { return l.gen }

// Start begins the first fetch cycle (Idle -> Loading).
// It returns false if a fetch was already started or the loader is unmounted.
func (l *Loader) Start(parent context.Context) (Request, bool) {
	if !l.mounted || l.status != StatusIdle {
		return Request{}, false
	}
	return l.begin(parent), true
}

// Retry re-enters Loading after a failure (Failed -> Loading).
func (l *Loader) Retry(parent context.Context) (Request, error) {
	if !l.mounted || l.status != StatusFailed {
		return Request{}, ErrRetryNotAllowed
	}
	return l.begin(parent), nil
}

func (l *Loader) begin(parent context.Context) Request {
	if parent == nil {
		parent = context.Background()
	}
	l.release()

	ctx, cancel := context.WithCancel(parent)
	l.gen++
	l.cancel = cancel
	l.status = StatusLoading
	l.books = nil
	l.err = nil
	return Request{ID: l.gen, Ctx: ctx}
}

// Resolve commits a successful result (Loading -> Loaded).
// It returns false when the result is stale and was discarded.
func (l *Loader) Resolve(id uint64, books []domain.Book) bool {
	if !l.accepts(id) {
		return false
	}
	l.release()
	if books == nil {
		books = []domain.Book{}
	}
	l.status = StatusLoaded
	l.books = books
	return true
}

// Fail commits a failed result (Loading -> Failed).
// It returns false when the result is stale and was discarded.
func (l *Loader) Fail(id uint64, err error) bool {
	if !l.accepts(id) {
		return false
	}
	l.release()
	l.status = StatusFailed
	l.err = err
	return true
}

// Unmount stops the loader from committing any further results and
// cancels the in-flight request, if any.
func (l *Loader) Unmount() {
	l.mounted = false
	l.release()
}

func (l *Loader) accepts(id uint64) bool {
	return l.mounted && l.status == StatusLoading && id == l.gen
}

func (l *Loader) release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
