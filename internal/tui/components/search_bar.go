package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

// SearchBar is the labelled, controlled query input above the book list.
// The query is the raw input value; nothing is trimmed.
type SearchBar struct {
	label string
	input textinput.Model
	width int
}

// NewSearchBar creates a search bar with a visible label
func NewSearchBar(label, placeholder string) SearchBar {
	ti := textinput.New()
	ti.Placeholder = placeholder
	// No limit: the filter must see exactly what was typed
	ti.CharLimit = 0
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{label: label, input: ti}
}

// Label returns the accessible label of the input
func (s SearchBar) Label() string { return s.label }

// Value returns the current query
func (s SearchBar) Value() string { return s.input.Value() }

// SetValue replaces the query
func (s *SearchBar) SetValue(v string) { s.input.SetValue(v) }

// Focus starts capturing keystrokes
func (s *SearchBar) Focus() tea.Cmd { return s.input.Focus() }

// Blur stops capturing keystrokes
func (s *SearchBar) Blur() { s.input.Blur() }

// Focused reports whether keystrokes go to the input
func (s SearchBar) Focused() bool { return s.input.Focused() }

// SetWidth sets the total rendered width, label included
func (s *SearchBar) SetWidth(width int) {
	s.width = width
	inputWidth := width - lipgloss.Width(s.label) - 4
	if inputWidth < 10 {
		inputWidth = 10
	}
	s.input.Width = inputWidth
}

// Update forwards input events. The bool reports whether the query changed.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, s.input.Value() != before
}

// View renders "<label>: <input>"
func (s SearchBar) View() string {
	labelStyle := styles.LabelStyle
	if s.input.Focused() {
		labelStyle = labelStyle.Foreground(styles.Teal)
	}
	return labelStyle.Render(s.label+":") + " " + s.input.View()
}
