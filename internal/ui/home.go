package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/model"
)

// handleHomeKey processes keyboard input for the user picker.
func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.users)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.userCursor < count-1 {
			m.userCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.userCursor > 0 {
			m.userCursor--
		}
	case key.Matches(msg, m.keys.Top):
		m.userCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.userCursor = count - 1
	case key.Matches(msg, m.keys.Toggle):
		user := m.users[m.userCursor]
		m.currentView = ViewDashboard
		m.session = dashboard.Session{User: user, Platform: model.Instagram}
		m.sections = nil
		m.passwords = nil
		m.selectedRow = 0
		if m.leaving {
			// Selecting now would race the reset still in progress.
			m.pendingUser = user
			return m, nil
		}
		return m, selectUserCmd(m.ctx, m.ctrl, user)
	}
	return m, nil
}

// renderHome renders the user picker.
func (m Model) renderHome(height int) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Who's reviewing?"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 24)))
	b.WriteString("\n\n")

	if len(m.users) == 0 {
		b.WriteString(styles.MutedText.Render("No users configured. Add users to config.toml."))
	}
	for i, user := range m.users {
		line := "  " + user
		if i == m.userCursor {
			line = styles.Selected.Render("› " + user)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, b.String())
}
