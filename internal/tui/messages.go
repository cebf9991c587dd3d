package tui

import (
	"github.com/cloudlibrary/cloudlib/internal/auth"
	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// Message types for the TUI

// BooksLoadedMsg signals that a catalog fetch succeeded
type BooksLoadedMsg struct {
	RequestID uint64
	Books     []domain.Book
}

// BooksFailedMsg signals that a catalog fetch failed
type BooksFailedMsg struct {
	RequestID uint64
	Err       error
}

// RatingLoadedMsg carries the average rating of one book
type RatingLoadedMsg struct {
	RequestID uint64
	BookID    int64
	Average   float64
}

// RatingFailedMsg signals that a rating fetch failed
type RatingFailedMsg struct {
	RequestID uint64
	BookID    int64
	Err       error
}

// AuthSucceededMsg signals that a login or registration was accepted
type AuthSucceededMsg struct {
	AttemptID uint64
	Intent    auth.Intent
	User      domain.User
}

// AuthFailedMsg signals that a login or registration was rejected
type AuthFailedMsg struct {
	AttemptID uint64
	Intent    auth.Intent
	Err       error
}

// ClearStatusMsg signals to clear the status message
type ClearStatusMsg struct{}
