package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloudlibrary/cloudlib/internal/auth"
	"github.com/cloudlibrary/cloudlib/internal/catalog"
	"github.com/cloudlibrary/cloudlib/internal/tui/components"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m.quit()
	}

	// The form and the search input capture typed keys
	if m.Form.IsVisible() {
		return m.handleFormKey(msg)
	}
	if m.Search.Focused() {
		return m.handleSearchKey(msg)
	}

	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Filter):
		cmd := m.setFocus(FocusSearch)
		return m, cmd

	case key.Matches(msg, Keys.Escape):
		if m.Search.Value() != "" {
			m.Search.SetValue("")
			m.refilter()
		}
		return m, nil

	case key.Matches(msg, Keys.Login):
		return m.openForm(auth.IntentLogin)

	case key.Matches(msg, Keys.Register):
		return m.openForm(auth.IntentRegister)

	case key.Matches(msg, Keys.Retry):
		return m.retry()

	case key.Matches(msg, Keys.Logout):
		return m.signOut()

	case key.Matches(msg, Keys.NextFocus):
		cmd := m.cycleFocus(1)
		return m, cmd

	case key.Matches(msg, Keys.PrevFocus):
		cmd := m.cycleFocus(-1)
		return m, cmd

	case key.Matches(msg, Keys.Enter):
		return m.activate()
	}

	if m.Focus != FocusList {
		return m, nil
	}
	var cmd tea.Cmd
	m.List, cmd = m.List.Update(msg)
	return m, cmd
}

// handleSearchKey routes keys while the search input is focused.
// Every change to the query re-filters synchronously.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Escape, Keys.Enter):
		cmd := m.setFocus(FocusList)
		return m, cmd
	case key.Matches(msg, Keys.NextFocus):
		cmd := m.cycleFocus(1)
		return m, cmd
	case key.Matches(msg, Keys.PrevFocus):
		cmd := m.cycleFocus(-1)
		return m, cmd
	}

	var cmd tea.Cmd
	var changed bool
	m.Search, cmd, changed = m.Search.Update(msg)
	if changed {
		m.refilter()
	}
	return m, cmd
}

// handleFormKey routes keys to the credential form
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Session.Busy() {
		// Controls are disabled; a repeated submit still goes through the guard
		if key.Matches(msg, Keys.Enter) {
			return m.submitAuth()
		}
		return m, nil
	}

	var cmd tea.Cmd
	var action components.FormAction
	m.Form, cmd, action = m.Form.Update(msg)

	switch action {
	case components.FormSubmit:
		return m.submitAuth()
	case components.FormCancel:
		m.Form.Hide()
		m.Session.ClearError()
		return m, nil
	}
	return m, cmd
}

// activate presses the focused button
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.Focus {
	case FocusLogin:
		return m.openForm(auth.IntentLogin)
	case FocusRegister:
		return m.openForm(auth.IntentRegister)
	case FocusRetry:
		return m.retry()
	}
	return m, nil
}

// focusables lists the controls currently on screen, in tab order
func (m Model) focusables() []Focus {
	f := []Focus{FocusList, FocusSearch}
	if m.Session.ShowsButtons() {
		f = append(f, FocusLogin, FocusRegister)
	}
	if m.Loader.Status() == catalog.StatusFailed {
		f = append(f, FocusRetry)
	}
	return f
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	order := m.focusables()
	idx := 0
	for i, f := range order {
		if f == m.Focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	return m.setFocus(order[idx])
}

func (m *Model) setFocus(f Focus) tea.Cmd {
	m.Focus = f
	m.List.SetFocused(f == FocusList)
	if f == FocusSearch {
		return m.Search.Focus()
	}
	m.Search.Blur()
	return nil
}
