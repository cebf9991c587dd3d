package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBooks(n int) []domain.Book {
	books := make([]domain.Book, n)
	for i := range books {
		books[i] = domain.Book{ID: int64(i + 1), Title: fmt.Sprintf("Book %02d", i+1)}
	}
	return books
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBookListScrolling(t *testing.T) {
	l := NewBookList()
	l.SetFocused(true)
	l.SetSize(40, 5) // three rows plus scroll indicators
	l.SetBooks(makeBooks(10))

	view := l.View()
	assert.Contains(t, view, "Book 01")
	assert.Contains(t, view, "Book 03")
	assert.NotContains(t, view, "Book 04")
	assert.Contains(t, view, "↓ more")

	l, _ = l.Update(keyRunes("G"))
	assert.Equal(t, 9, l.Cursor())
	view = l.View()
	assert.Contains(t, view, "Book 10")
	assert.Contains(t, view, "↑ more")
	assert.NotContains(t, view, "↓ more")

	l, _ = l.Update(keyRunes("g"))
	assert.Equal(t, 0, l.Cursor())

	// Cursor never leaves the list
	l, _ = l.Update(keyRunes("k"))
	assert.Equal(t, 0, l.Cursor())
}

func TestBookListSetBooksClampsCursor(t *testing.T) {
	l := NewBookList()
	l.SetBooks(makeBooks(5))
	l, _ = l.Update(keyRunes("G"))
	require.Equal(t, 4, l.Cursor())

	l.SetBooks(makeBooks(2))
	assert.Equal(t, 1, l.Cursor())
	assert.Equal(t, "Book 02", l.Selected().Title)

	l.SetBooks(nil)
	assert.Nil(t, l.Selected())
	assert.Equal(t, "", l.View())
}

func TestBookListTruncatesWideTitles(t *testing.T) {
	l := NewBookList()
	l.SetSize(20, 5)
	l.SetBooks([]domain.Book{{ID: 1, Title: strings.Repeat("世界", 20)}})

	for _, line := range strings.Split(l.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 20)
	}
	assert.Contains(t, l.View(), "...")
}

func TestBookListKeepsTitleWholeOnNarrowRows(t *testing.T) {
	l := NewBookList()
	l.SetSize(30, 5)
	l.SetBooks([]domain.Book{
		{ID: 1, Title: "The Pragmatic Programmer", Author: "Andrew Hunt"},
		{ID: 2, Title: "Refactoring", Author: "Martin Fowler"},
	})

	view := l.View()
	assert.Contains(t, view, "The Pragmatic Programmer")
	assert.Contains(t, view, "Refactoring")
	assert.NotContains(t, view, "Andrew", "the author is dropped before the title is cut")

	// With room to spare both columns are shown in full
	l.SetSize(60, 5)
	view = l.View()
	assert.Contains(t, view, "The Pragmatic Programmer")
	assert.Contains(t, view, "Andrew Hunt")
	assert.Contains(t, view, "Martin Fowler")
	assert.NotContains(t, view, "...")
}

func TestBookListCutsAuthorBeforeTitle(t *testing.T) {
	l := NewBookList()
	l.SetSize(32, 5)
	l.SetBooks([]domain.Book{{ID: 1, Title: "Clean Code", Author: "Robert Cecil Martin the Younger"}})

	view := l.View()
	assert.Contains(t, view, "Clean Code")
	assert.Contains(t, view, "Robert")
	assert.Contains(t, view, "...")
	assert.NotContains(t, view, "Younger")
}

func TestSearchBarKeepsLongQueries(t *testing.T) {
	s := NewSearchBar("Buscar libro", "")
	s.Focus()

	query := strings.Repeat("clean code ", 20)
	s, _, changed := s.Update(keyRunes(query))
	assert.True(t, changed)
	assert.Equal(t, query, s.Value())
}

func TestSearchBarReportsChanges(t *testing.T) {
	s := NewSearchBar("Buscar libro", "")
	assert.Contains(t, s.View(), "Buscar libro")

	// Unfocused input ignores keys
	s, _, changed := s.Update(keyRunes("x"))
	assert.False(t, changed)

	s.Focus()
	s, _, changed = s.Update(keyRunes("  clean "))
	assert.True(t, changed)
	assert.Equal(t, "  clean ", s.Value(), "the query is not trimmed")
}

func TestAuthFormLogin(t *testing.T) {
	f := NewAuthForm(FormLabels{Email: "Email", Password: "Password", Busy: "Busy"})
	f.Show("Login", false)
	require.True(t, f.IsVisible())

	f, _, _ = f.Update(keyRunes("ana@example.com"))
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(keyRunes("secret"))

	assert.Equal(t, domain.Credentials{Email: "ana@example.com", Password: "secret"}, f.Credentials())
	assert.NotContains(t, f.View(), "secret", "password is masked")

	_, _, action := f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, FormSubmit, action)

	_, _, action = f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, FormCancel, action)

	f.SetBusy(true)
	assert.Contains(t, f.View(), "Busy")
}

func TestAuthFormRegisterHasNameField(t *testing.T) {
	f := NewAuthForm(FormLabels{Name: "Name", Email: "Email", Password: "Password"})
	f.Show("Register", true)

	assert.Contains(t, f.View(), "Name")

	f, _, _ = f.Update(keyRunes("Ana"))
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(keyRunes("ana@example.com"))
	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f, _, _ = f.Update(keyRunes("pa55word"))

	assert.Equal(t, domain.Registration{Name: "Ana", Email: "ana@example.com", Password: "pa55word"}, f.Registration())

	// Reopening clears the fields
	f.Show("Login", false)
	assert.Equal(t, domain.Credentials{}, f.Credentials())
}
