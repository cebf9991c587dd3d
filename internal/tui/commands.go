package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudlibrary/cloudlib/internal/auth"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/domain"
)

// Command factories for async operations. They only call the provider
// and report back; model state is touched in Update alone.

// LoadBooksCmd fetches the catalog for one loader request
func LoadBooksCmd(svc domain.BookLister, req catalog.Request, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(req.Ctx, timeout)
		defer cancel()

		books, err := svc.ListBooks(ctx)
		if err != nil {
			return BooksFailedMsg{RequestID: req.ID, Err: err}
		}
		return BooksLoadedMsg{RequestID: req.ID, Books: books}
	}
}

// LoadRatingCmd fetches the average rating of the selected book
func LoadRatingCmd(svc domain.RatingReader, req catalog.RatingRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(req.Ctx, timeout)
		defer cancel()

		avg, err := svc.AverageRating(ctx, req.BookID)
		if err != nil {
			return RatingFailedMsg{RequestID: req.ID, BookID: req.BookID, Err: err}
		}
		return RatingLoadedMsg{RequestID: req.ID, BookID: req.BookID, Average: avg}
	}
}

// LoginCmd submits credentials for one auth attempt
func LoginCmd(svc domain.Authenticator, attemptID uint64, creds domain.Credentials, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := svc.Login(ctx, creds)
		if err != nil {
			return AuthFailedMsg{AttemptID: attemptID, Intent: auth.IntentLogin, Err: err}
		}
		return AuthSucceededMsg{AttemptID: attemptID, Intent: auth.IntentLogin, User: user}
	}
}

// RegisterCmd submits a registration for one auth attempt
func RegisterCmd(svc domain.Authenticator, attemptID uint64, reg domain.Registration, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := svc.Register(ctx, reg)
		if err != nil {
			return AuthFailedMsg{AttemptID: attemptID, Intent: auth.IntentRegister, Err: err}
		}
		return AuthSucceededMsg{AttemptID: attemptID, Intent: auth.IntentRegister, User: user}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
