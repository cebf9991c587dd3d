package tui

const (
	// Used until the first WindowSizeMsg arrives
	defaultWidth = 80

	// Outer horizontal padding (left + right)
	framePadding = 2

	// Headline, auth row, blank, search bar, blank
	headerHeight = 5
	// Count line above the list, detail line below it, blank, footer
	chromeHeight = 4

	MinListHeight = 3
)

// contentWidth is the usable width inside the outer padding
func (m Model) contentWidth() int {
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	return max(width-framePadding, 20)
}

// listHeight is the number of lines given to the book list
func (m Model) listHeight() int {
	if m.Height <= 0 {
		return 0
	}
	return max(m.Height-headerHeight-chromeHeight, MinListHeight)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	width := m.contentWidth()
	m.Search.SetWidth(width)
	m.List.SetSize(width, m.listHeight())
}
