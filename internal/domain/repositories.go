package domain

import "context"

// BookLister provides the whole catalog in one call.
// Implementations must be idempotent and safe to retry.
type BookLister interface {
	// ListBooks returns every book in the catalog (no pagination)
	ListBooks(ctx context.Context) ([]Book, error)
}

// Authenticator hands login and registration off to the auth backend.
// Callers only observe success (a User) or failure (an error).
type Authenticator interface {
	// Login verifies credentials and returns the signed-in user
	Login(ctx context.Context, creds Credentials) (User, error)

	// Register creates an account and returns it, already signed in
	Register(ctx context.Context, reg Registration) (User, error)
}

// RatingReader reads aggregate reader ratings for a book
type RatingReader interface {
	// AverageRating returns the mean rating of bookID, or 0 when unrated
	AverageRating(ctx context.Context, bookID int64) (float64, error)
}
