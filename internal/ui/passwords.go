package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handlePasswordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.passwords)

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Passwords):
		m.currentView = ViewDashboard
	case key.Matches(msg, m.keys.Down):
		if m.passwordRow < count-1 {
			m.passwordRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.passwordRow > 0 {
			m.passwordRow--
		}
	case key.Matches(msg, m.keys.Copy), key.Matches(msg, m.keys.Confirm):
		if m.passwordRow < count {
			return m, copyCmd(m.ctrl, m.passwords[m.passwordRow].Password, "Password")
		}
	case key.Matches(msg, m.keys.PlatformNext):
		m.passwordRow = 0
		return m, selectPlatformCmd(m.ctrl, m.session.Platform.Next())
	}
	return m, nil
}

// renderPasswords lists the reference passwords for the session. Values are
// masked; copying puts the real value on the clipboard.
func (m Model) renderPasswords(height int) string {
	styles := m.theme.Styles()

	var lines []string
	lines = append(lines, styles.Text.Bold(true).Render(
		fmt.Sprintf("Passwords: %s / %s", m.session.User, m.session.Platform)))
	lines = append(lines, styles.FaintText.Render(strings.Repeat("─", 40)))

	if len(m.passwords) == 0 {
		lines = append(lines, styles.MutedText.Render("No passwords stored for this platform."))
		return strings.Join(lines, "\n")
	}

	for i, entry := range m.passwords {
		text := padRight(truncate(entry.Profile, 12), 13) +
			padRight(truncate(entry.Name, 24), 25) +
			maskSecret(entry.Password)
		if i == m.passwordRow {
			lines = append(lines, "› "+styles.Selected.Render(text))
		} else {
			lines = append(lines, "  "+styles.Text.Render(text))
		}
	}
	return strings.Join(window(lines, m.passwordRow+2, height), "\n")
}
