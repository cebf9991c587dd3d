package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudlibrary/cloudlib/internal/auth"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/cloudlibrary/cloudlib/internal/tui/components"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Focus identifies the control that receives enter and typed keys
type Focus int

const (
	FocusList Focus = iota
	FocusSearch
	FocusLogin
	FocusRegister
	FocusRetry
)

const (
	defaultTimeout  = 30 * time.Second
	suggestionLimit = 3
	statusDuration  = 3 * time.Second
)

// Options configures the catalog screen
type Options struct {
	Language      string        // "es" (default) or "en"
	SearchAuthors bool          // Match the query against authors as well as titles
	Timeout       time.Duration // Per-request timeout for provider calls
}

// Model is the main Bubble Tea model for the catalog screen
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Focus Focus

	// Providers
	Books   domain.BookLister
	Auth    domain.Authenticator
	Ratings domain.RatingReader // optional; nil hides ratings
	Logger  *slog.Logger

	Options Options
	Labels  Labels

	// Screen state machines
	Loader  *catalog.Loader
	Session *auth.Controls
	Rating  *catalog.Ratings

	// UI Components
	Search  components.SearchBar
	List    components.BookList
	Form    components.AuthForm
	Spinner spinner.Model

	// Derived from Loader.Books() and the query on every change
	Visible     []domain.Book
	Suggestions []string

	// Dimensions
	Width  int
	Height int

	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model. ratings may be nil.
func NewModel(books domain.BookLister, authn domain.Authenticator, ratings domain.RatingReader, opts Options, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	labels := LabelsFor(opts.Language)

	list := components.NewBookList()
	list.SetFocused(true)

	return Model{
		State:   StateBrowsing,
		Focus:   FocusList,
		Books:   books,
		Auth:    authn,
		Ratings: ratings,
		Logger:  logger,
		Options: opts,
		Labels:  labels,
		Loader:  catalog.NewLoader(),
		Session: auth.NewControls(),
		Rating:  catalog.NewRatings(),
		Search:  components.NewSearchBar(labels.Search, labels.SearchPlaceholder),
		List:    list,
		Form:    components.NewAuthForm(labels.Form),
		Spinner: newSpinner(),
	}
}

// newSpinner returns a spinner with a fresh ID. Ticks addressed to an
// earlier spinner are ignored by the new one.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.SpinnerStyle
	return sp
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Mount(), m.Spinner.Tick)
}

// Mount starts the one catalog fetch of this screen's lifetime.
// Calling it again after the first time returns nil.
func (m Model) Mount() tea.Cmd {
	req, ok := m.Loader.Start(context.Background())
	if !ok {
		return nil
	}
	m.Logger.Info("loading catalog", "requestID", req.ID)
	return LoadBooksCmd(m.Books, req, m.Options.Timeout)
}

// Unmount stops the screen from accepting any pending results
func (m Model) Unmount() {
	m.Loader.Unmount()
	m.Rating.Unmount()
	m.Logger.Debug("catalog screen unmounted", "status", m.Loader.Status())
}

// Update handles all messages. Whenever the selected book changes, its
// average rating is requested.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.route(msg)
	nm, ok := next.(Model)
	if !ok {
		return next, cmd
	}
	if rating := nm.syncRating(); rating != nil {
		cmd = tea.Batch(cmd, rating)
	}
	return nm, cmd
}

func (m Model) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		// Let the tick chain die outside Loading; retry restarts it
		if m.Loader.Status() != catalog.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case BooksLoadedMsg:
		if !m.Loader.Resolve(msg.RequestID, msg.Books) {
			m.Logger.Debug("discarding stale catalog response",
				"requestID", msg.RequestID,
				"generation", m.Loader.Generation(),
				"mounted", m.Loader.Mounted(),
			)
			return m, nil
		}
		m.Logger.Info("catalog loaded", "requestID", msg.RequestID, "books", len(m.Loader.Books()))
		m.refilter()
		return m, nil

	case BooksFailedMsg:
		if !m.Loader.Fail(msg.RequestID, msg.Err) {
			m.Logger.Debug("discarding stale catalog failure",
				"requestID", msg.RequestID,
				"generation", m.Loader.Generation(),
				"error", msg.Err,
			)
			return m, nil
		}
		m.Logger.Warn("catalog load failed", "requestID", msg.RequestID, "error", msg.Err)
		m.refilter()
		return m, nil

	case RatingLoadedMsg:
		if !m.Rating.Resolve(msg.RequestID, msg.BookID, msg.Average) {
			m.Logger.Debug("discarding stale rating", "requestID", msg.RequestID, "book", msg.BookID)
		}
		return m, nil

	case RatingFailedMsg:
		if !m.Rating.Fail(msg.RequestID, msg.BookID, msg.Err) {
			m.Logger.Debug("discarding stale rating failure", "requestID", msg.RequestID, "book", msg.BookID)
			return m, nil
		}
		m.Logger.Warn("rating load failed", "book", msg.BookID, "error", msg.Err)
		return m, nil

	case AuthSucceededMsg:
		if !m.Session.Succeed(msg.AttemptID, msg.User) {
			m.Logger.Debug("discarding stale auth result", "attempt", msg.AttemptID)
			return m, nil
		}
		m.Form.Hide()
		if m.Focus == FocusLogin || m.Focus == FocusRegister {
			m.setFocus(FocusList)
		}
		m.StatusMsg = fmt.Sprintf(m.Labels.WelcomeFmt, msg.User.Handle())
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDuration)

	case AuthFailedMsg:
		if !m.Session.Fail(msg.AttemptID, msg.Err) {
			m.Logger.Debug("discarding stale auth failure", "attempt", msg.AttemptID)
			return m, nil
		}
		m.Form.SetBusy(false)
		m.Form.SetError(m.Labels.DescribeError(msg.Err))
		return m, nil

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Anything else (cursor blinks) belongs to whichever input is focused
	var cmd tea.Cmd
	switch {
	case m.Form.IsVisible():
		m.Form, cmd, _ = m.Form.Update(msg)
	case m.Search.Focused():
		m.Search, cmd, _ = m.Search.Update(msg)
	}
	return m, cmd
}

// refilter recomputes the visible books from the loaded catalog and the
// current query. It never touches the loaded slice.
func (m *Model) refilter() {
	m.Suggestions = nil
	if m.Loader.Status() != catalog.StatusLoaded {
		m.Visible = nil
		m.List.SetBooks(nil)
		return
	}

	query := m.Search.Value()
	all := m.Loader.Books()
	m.Visible = catalog.Filter(all, query, catalog.FilterOptions{MatchAuthor: m.Options.SearchAuthors})
	if len(m.Visible) == 0 && query != "" {
		m.Suggestions = catalog.Suggest(all, query, suggestionLimit)
	}
	m.List.SetBooks(m.Visible)
}

// syncRating follows the list selection, fetching the rating of a newly
// selected book that has not been seen yet
func (m Model) syncRating() tea.Cmd {
	if m.Ratings == nil {
		return nil
	}
	book := m.List.Selected()
	if book == nil {
		m.Rating.Clear()
		return nil
	}
	req, ok := m.Rating.Select(context.Background(), book.ID)
	if !ok {
		return nil
	}
	return LoadRatingCmd(m.Ratings, req, m.Options.Timeout)
}

// Query returns the current search text
func (m Model) Query() string {
	return m.Search.Value()
}

// retry re-issues the catalog fetch after a failure
func (m Model) retry() (tea.Model, tea.Cmd) {
	req, err := m.Loader.Retry(context.Background())
	if err != nil {
		m.Logger.Debug("retry ignored", "status", m.Loader.Status(), "error", err)
		return m, nil
	}
	m.Logger.Info("retrying catalog load", "requestID", req.ID)
	m.refilter()
	if m.Focus == FocusRetry {
		m.setFocus(FocusList)
	}
	// A tick from the previous Loading phase may still be queued; a new
	// spinner ID makes it a no-op so only one tick chain runs
	m.Spinner = newSpinner()
	return m, tea.Batch(LoadBooksCmd(m.Books, req, m.Options.Timeout), m.Spinner.Tick)
}

// openForm shows the credential form for intent while the controls are enabled
func (m Model) openForm(intent auth.Intent) (tea.Model, tea.Cmd) {
	if !m.Session.Enabled() {
		return m, nil
	}
	m.Session.ClearError()
	m.Search.Blur()

	title := m.Labels.Login
	if intent == auth.IntentRegister {
		title = m.Labels.Register
	}
	cmd := m.Form.Show(title, intent == auth.IntentRegister)
	return m, cmd
}

// submitAuth hands the form input to the auth provider. At most one
// attempt is outstanding; repeated submits while Authenticating are dropped.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	intent := auth.IntentLogin
	if m.Form.IsRegister() {
		intent = auth.IntentRegister
	}

	id, ok := m.Session.Begin(intent)
	if !ok {
		m.Logger.Debug("auth submit ignored", "status", m.Session.Status(), "intent", intent)
		return m, nil
	}
	m.Form.SetError("")
	m.Form.SetBusy(true)

	if intent == auth.IntentRegister {
		return m, RegisterCmd(m.Auth, id, m.Form.Registration(), m.Options.Timeout)
	}
	return m, LoginCmd(m.Auth, id, m.Form.Credentials(), m.Options.Timeout)
}

// signOut forgets the in-memory session
func (m Model) signOut() (tea.Model, tea.Cmd) {
	if !m.Session.SignedIn() {
		return m, nil
	}
	m.Logger.Info("signed out", "email", m.Session.User().Email)
	m.Session.SignOut()
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Unmount()
	return m, tea.Quit
}
