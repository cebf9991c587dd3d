package catalog

import "context"

// RatingRequest identifies one issued average-rating fetch. Ctx is
// cancelled when the selection moves on or the tracker is unmounted.
type RatingRequest struct {
	ID     uint64
	BookID int64
	Ctx    context.Context
}

// Ratings tracks the average rating of the selected book.
//
// Each selection change issues a new generation; a reply is committed only
// if it carries the latest generation and the book it was asked for is
// still selected. Averages are remembered per book for the screen's
// lifetime, so moving back to a book does not fetch it again.
//
// Like Loader, Ratings belongs to the Update loop and is not safe for
// concurrent use.
type Ratings struct {
	gen      uint64
	selected int64
	pending  bool
	mounted  bool
	cancel   context.CancelFunc
	averages map[int64]float64
	failed   map[int64]error
}

// NewRatings creates a mounted tracker with nothing selected
func NewRatings() *Ratings {
	return &Ratings{
		mounted:  true,
		averages: make(map[int64]float64),
		failed:   make(map[int64]error),
	}
}

// Selected returns the book whose rating is wanted, or 0
func (r *Ratings) Selected() int64 { return r.selected }

// Pending reports whether the selected book's rating is in flight
func (r *Ratings) Pending() bool { return r.pending }

// Generation returns the ID of the most recently issued request
func (r *Ratings) Generation() uint64 { return r.gen }

// Average returns the known average of bookID
func (r *Ratings) Average(bookID int64) (float64, bool) {
	avg, ok := r.averages[bookID]
	return avg, ok
}

// Err returns the failure of the last fetch for bookID, if any
func (r *Ratings) Err(bookID int64) error { return r.failed[bookID] }

// Select makes bookID the selected book. It returns a request when the
// rating must be fetched; ok is false when bookID is already selected,
// already known, or the tracker is unmounted.
func (r *Ratings) Select(parent context.Context, bookID int64) (RatingRequest, bool) {
	if !r.mounted || bookID == r.selected {
		return RatingRequest{}, false
	}
	r.release()
	r.selected = bookID

	if _, known := r.averages[bookID]; known {
		return RatingRequest{}, false
	}
	if parent == nil {
		parent = context.Background()
	}

	ctx, cancel := context.WithCancel(parent)
	r.gen++
	r.cancel = cancel
	r.pending = true
	delete(r.failed, bookID)
	return RatingRequest{ID: r.gen, BookID: bookID, Ctx: ctx}, true
}

// Clear drops the selection and cancels any fetch in flight
func (r *Ratings) Clear() {
	r.release()
	r.selected = 0
}

// Resolve records the average for a request.
// It returns false when the reply is stale and was discarded.
func (r *Ratings) Resolve(id uint64, bookID int64, avg float64) bool {
	if !r.accepts(id, bookID) {
		return false
	}
	r.release()
	r.averages[bookID] = avg
	return true
}

// Fail records a failed fetch for a request.
// It returns false when the reply is stale and was discarded.
func (r *Ratings) Fail(id uint64, bookID int64, err error) bool {
	if !r.accepts(id, bookID) {
		return false
	}
	r.release()
	r.failed[bookID] = err
	return true
}

// Unmount stops the tracker from committing further replies
func (r *Ratings) Unmount() {
	r.mounted = false
	r.release()
}

func (r *Ratings) accepts(id uint64, bookID int64) bool {
	return r.mounted && r.pending && id == r.gen && bookID == r.selected
}

func (r *Ratings) release() {
	r.pending = false
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
