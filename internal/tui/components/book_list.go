package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cloudlibrary/cloudlib/internal/domain"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

const (
	// Rows shown before the first WindowSizeMsg arrives
	defaultVisibleRows = 10
	defaultListWidth   = 80

	// "↑ more" / "↓ more" lines
	ScrollIndicatorLines = 2

	authorGap      = 3
	minAuthorWidth = 4
)

// BookList renders the filtered catalog as a scrollable list of titles.
// It never filters or reorders: the caller hands it the visible books.
type BookList struct {
	books   []domain.Book
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
	keys    BookListKeyMap
}

// NewBookList creates an empty book list
func NewBookList() BookList {
	return BookList{keys: DefaultBookListKeyMap()}
}

// SetBooks replaces the visible books, keeping the cursor in range
func (l *BookList) SetBooks(books []domain.Book) {
	l.books = books
	if l.cursor >= len(books) {
		l.cursor = max(len(books)-1, 0)
	}
	l.ensureVisible()
}

// Books returns the books currently displayed
func (l BookList) Books() []domain.Book { return l.books }

// Len returns the number of displayed books
func (l BookList) Len() int { return len(l.books) }

// SetSize sets the rendered width and height
func (l *BookList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.ensureVisible()
}

// SetFocused toggles cursor highlighting
func (l *BookList) SetFocused(focused bool) { l.focused = focused }

// Focused reports whether the list owns the cursor
func (l BookList) Focused() bool { return l.focused }

// Cursor returns the selected row index
func (l BookList) Cursor() int { return l.cursor }

// Selected returns the book under the cursor, or nil if the list is empty
func (l BookList) Selected() *domain.Book {
	if l.cursor < 0 || l.cursor >= len(l.books) {
		return nil
	}
	return &l.books[l.cursor]
}

// Update handles navigation keys
func (l BookList) Update(msg tea.Msg) (BookList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(l.books) == 0 {
		return l, nil
	}

	half := max(l.maxVisible()/2, 1)
	switch {
	case key.Matches(keyMsg, l.keys.Up):
		l.cursor--
	case key.Matches(keyMsg, l.keys.Down):
		l.cursor++
	case key.Matches(keyMsg, l.keys.Home):
		l.cursor = 0
	case key.Matches(keyMsg, l.keys.End):
		l.cursor = len(l.books) - 1
	case key.Matches(keyMsg, l.keys.HalfUp):
		l.cursor -= half
	case key.Matches(keyMsg, l.keys.HalfDown):
		l.cursor += half
	case key.Matches(keyMsg, l.keys.PageUp):
		l.cursor -= l.maxVisible()
	case key.Matches(keyMsg, l.keys.PageDown):
		l.cursor += l.maxVisible()
	default:
		return l, nil
	}

	l.cursor = min(max(l.cursor, 0), len(l.books)-1)
	l.ensureVisible()
	return l, nil
}

func (l BookList) maxVisible() int {
	if l.height <= 0 {
		return defaultVisibleRows
	}
	return max(l.height-ScrollIndicatorLines, 1)
}

func (l BookList) itemWidth() int {
	if l.width <= 0 {
		return defaultListWidth
	}
	return max(l.width, 10)
}

func (l *BookList) ensureVisible() {
	visible := l.maxVisible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	if l.offset > max(len(l.books)-visible, 0) {
		l.offset = max(len(l.books)-visible, 0)
	}
}

// View renders one row per visible book: title, then the author dimmed
// in a column after the widest visible title
func (l BookList) View() string {
	count := len(l.books)
	if count == 0 {
		return ""
	}

	width := l.itemWidth()
	end := min(l.offset+l.maxVisible(), count)

	lines := make([]string, 0, end-l.offset+ScrollIndicatorLines)

	// Reserve header and footer lines to avoid layout shifts while scrolling
	header := " "
	if l.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	lines = append(lines, header)

	titleCol := l.titleColumn(l.offset, end, width-2)
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(l.books[i], l.focused && i == l.cursor, width, titleCol))
	}

	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}
	lines = append(lines, footer)

	return strings.Join(lines, "\n")
}

// renderRow keeps the title whole whenever it fits the row. The author is
// cut first, and dropped once fewer than minAuthorWidth cells remain.
func (l BookList) renderRow(book domain.Book, selected bool, width, titleCol int) string {
	inner := width - 2
	title := styles.Truncate(book.Title, inner)
	parts := []styles.RowPart{{Text: title}}

	start := max(titleCol, lipgloss.Width(title)) + authorGap
	if room := inner - start; book.Author != "" && room >= minAuthorWidth {
		dim := styles.DimGray
		pad := strings.Repeat(" ", start-lipgloss.Width(title))
		parts = append(parts, styles.RowPart{Text: pad + styles.Truncate(book.Author, room), Foreground: &dim})
	}

	return styles.RenderListRow(parts, selected, width)
}

// titleColumn is the width of the widest title in rows [from, to), capped
// so it never pushes every author off the row
func (l BookList) titleColumn(from, to, inner int) int {
	col := 0
	for i := from; i < to; i++ {
		col = max(col, lipgloss.Width(l.books[i].Title))
	}
	return min(col, max(inner-authorGap-minAuthorWidth, 0))
}
