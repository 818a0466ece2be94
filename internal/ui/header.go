package ui

import (
	"strings"

	"github.com/five82/mamba/internal/model"
)

// renderHeader renders the title bar: logo, user, platform tabs and the
// busy spinner.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("mamba", styles.Logo)}

	if m.currentView != ViewHome && m.session.User != "" {
		parts = append(parts, bg.Render(strings.ToUpper(m.session.User), styles.Text.Bold(true)))

		tabs := make([]string, 0, len(model.Platforms()))
		for _, p := range model.Platforms() {
			if p == m.session.Platform {
				tabs = append(tabs, bg.Render("["+string(p)+"]", styles.AccentText.Bold(true)))
			} else {
				tabs = append(tabs, bg.Render(string(p), styles.MutedText))
			}
		}
		parts = append(parts, strings.Join(tabs, bg.Spaces(1)))
	}

	if m.busy {
		parts = append(parts, bg.Render(m.spinner.View()+" Loading...", styles.WarningText))
	}
	if m.offline {
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDashboard:
		commands = []cmd{
			{"space", "Toggle"},
			{"a", "Add"},
			{"d", "Delete"},
			{"c", "Copy link"},
			{"n", "Names"},
			{"p", "Passwords"},
			{"tab", "Platform"},
			{"r", "Refresh"},
			{"esc", "Home"},
			{"?", "More"},
		}
	case ViewPasswords:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"c", "Copy password"},
			{"tab", "Platform"},
			{"esc", "Videos"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"e", "Quit"},
			{"?", "More"},
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter shows the current notice, if any.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	text := bg.Render("Ready", styles.FaintText)
	if m.notice.text != "" {
		text = bg.Render(m.notice.text, styles.NoticeStyle(m.notice.severity))
	}
	return styles.Header.Width(m.width).Render(text)
}
