package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/tui/styles"
)

// View renders the catalog screen. The headline is always present, even
// before the terminal size is known.
func (m Model) View() string {
	width := m.contentWidth()

	var body string
	switch {
	case m.Form.IsVisible():
		body = m.Form.View()
		if h := m.listHeight(); h > 0 {
			body = lipgloss.Place(width, h+2, lipgloss.Center, lipgloss.Center, body)
		}
	case m.State == StateHelp:
		body = m.renderHelp()
	default:
		body = m.renderCatalog(width)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeadline(width),
		m.renderAuthControls(),
		"",
		m.Search.View(),
		"",
		body,
		"",
		m.renderFooter(width),
	)
	return lipgloss.NewStyle().Padding(0, framePadding/2).Render(content)
}

func (m Model) renderHeadline(width int) string {
	return styles.HeadlineStyle.Render(styles.Truncate(m.Labels.Headline, width))
}

// renderButton renders a button label; disabled buttons stay visible but greyed out
func renderButton(label string, focused, enabled bool) string {
	switch {
	case !enabled:
		return styles.DisabledButtonStyle.Render(label)
	case focused:
		return styles.FocusedButtonStyle.Render(label)
	default:
		return styles.ButtonStyle.Render(label)
	}
}

// renderAuthControls renders the login/register buttons, or the signed-in
// indicator once authenticated
func (m Model) renderAuthControls() string {
	if m.Session.SignedIn() {
		user := m.Session.User()
		return styles.SuccessStyle.Render("✓ "+m.Labels.SignedInAs+" "+user.Handle()) +
			styles.DimStyle.Render("   L "+m.Labels.SignOut)
	}

	enabled := m.Session.Enabled()
	row := renderButton(m.Labels.Login, m.Focus == FocusLogin, enabled) + " " +
		renderButton(m.Labels.Register, m.Focus == FocusRegister, enabled)

	if err := m.Session.Err(); err != nil && !m.Form.IsVisible() {
		row += "  " + styles.ErrorStyle.Render(m.Labels.DescribeError(err))
	}
	return row
}

// renderCatalog renders the list region for the current load phase
func (m Model) renderCatalog(width int) string {
	switch m.Loader.Status() {
	case catalog.StatusLoading:
		return m.Spinner.View() + " " + styles.DimStyle.Render(m.Labels.Loading)

	case catalog.StatusFailed:
		reason := m.Labels.DescribeError(m.Loader.Err())
		msg := styles.ErrorStyle.Render(styles.Truncate(m.Labels.LoadFailed+": "+reason, width))
		return msg + "\n\n" + renderButton(m.Labels.Retry, m.Focus == FocusRetry, true) +
			styles.DimStyle.Render("  r")

	case catalog.StatusLoaded:
		total := len(m.Loader.Books())
		if total == 0 {
			return styles.DimStyle.Render(m.Labels.Empty)
		}
		if len(m.Visible) == 0 {
			return m.renderNoMatches(width)
		}
		count := styles.DimStyle.Render(fmt.Sprintf(m.Labels.CountFmt, len(m.Visible), total))
		return count + "\n" + m.List.View() + "\n" + m.renderDetail(width)
	}
	return ""
}

func (m Model) renderNoMatches(width int) string {
	lines := []string{
		styles.DimStyle.Render(styles.Truncate(fmt.Sprintf(m.Labels.NoMatchesFmt, m.Search.Value()), width)),
	}
	if len(m.Suggestions) > 0 {
		lines = append(lines, "", styles.LabelStyle.Render(m.Labels.DidYouMean))
		for _, s := range m.Suggestions {
			lines = append(lines, "  "+styles.AccentStyle.Render(styles.Truncate(s, width-2)))
		}
	}
	return strings.Join(lines, "\n")
}

// renderDetail renders author, category and average rating of the
// selected book
func (m Model) renderDetail(width int) string {
	book := m.List.Selected()
	if book == nil {
		return " "
	}
	detail := book.DisplayAuthor()
	if name := book.CategoryName(); name != "" {
		detail += " · " + name
	}
	if rating := m.ratingText(book.ID); rating != "" {
		detail += " · " + rating
	}
	return styles.DimStyle.Render(styles.Truncate(detail, width))
}

// ratingText describes the rating of bookID; empty when unknown or failed
func (m Model) ratingText(bookID int64) string {
	if m.Ratings == nil {
		return ""
	}
	if avg, ok := m.Rating.Average(bookID); ok {
		if avg == 0 {
			return m.Labels.Unrated
		}
		return fmt.Sprintf(m.Labels.RatingFmt, avg)
	}
	if m.Rating.Pending() && m.Rating.Selected() == bookID {
		return m.Labels.RatingLoading
	}
	return ""
}

func (m Model) renderFooter(width int) string {
	var left string
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.StatusMsg)
		}
	}

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" "+m.Labels.Help)

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the key reference
func (m Model) renderHelp() string {
	bindings := []struct{ keys, desc string }{
		{Keys.Filter.Help().Key, Keys.Filter.Help().Desc},
		{"j/k", "move"},
		{"g/G", "top/bottom"},
		{Keys.NextFocus.Help().Key, Keys.NextFocus.Help().Desc},
		{Keys.Enter.Help().Key, Keys.Enter.Help().Desc},
		{Keys.Login.Help().Key, m.Labels.Login},
		{Keys.Register.Help().Key, m.Labels.Register},
		{Keys.Retry.Help().Key, m.Labels.Retry},
		{Keys.Logout.Help().Key, m.Labels.SignOut},
		{Keys.Escape.Help().Key, Keys.Escape.Help().Desc},
		{Keys.Quit.Help().Key, Keys.Quit.Help().Desc},
	}

	var b strings.Builder
	for _, kb := range bindings {
		b.WriteString(styles.HelpKeyStyle.Render(styles.Pad(kb.keys, 8)))
		b.WriteString(styles.HelpDescStyle.Render(kb.desc))
		b.WriteString("\n")
	}
	return styles.ModalStyle.Render(strings.TrimRight(b.String(), "\n"))
}
