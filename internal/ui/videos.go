package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mamba/internal/model"
)

// rowRef addresses one video row across the projected sections.
type rowRef struct {
	section int
	index   int
}

func (m Model) rows() []rowRef {
	var out []rowRef
	for s, sec := range m.sections {
		for i := range sec.Videos {
			out = append(out, rowRef{section: s, index: i})
		}
	}
	return out
}

// selectedVideo returns the video under the cursor.
func (m Model) selectedVideo() (model.Video, bool) {
	rows := m.rows()
	if m.selectedRow < 0 || m.selectedRow >= len(rows) {
		return model.Video{}, false
	}
	r := rows[m.selectedRow]
	return m.sections[r.section].Videos[r.index], true
}

func (m *Model) clampSelection() {
	if n := len(m.rows()); m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
	if n := len(m.passwords); m.passwordRow >= n {
		m.passwordRow = n - 1
	}
	if m.passwordRow < 0 {
		m.passwordRow = 0
	}
}

// handleDashboardKey processes keyboard input for the video sections.
func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.rows())

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.currentView = ViewHome
		m.sections = nil
		m.passwords = nil
		m.selectedRow = 0
		m.offline = false
		m.addDraft = nil
		cmd := goHomeCmd(m.ctrl)
		m.leaving = cmd != nil
		return m, cmd

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		if count > 0 {
			m.selectedRow = count - 1
		}

	case key.Matches(msg, m.keys.Toggle):
		if v, ok := m.selectedVideo(); ok {
			return m, toggleCmd(m.ctrl, v.ID)
		}

	case key.Matches(msg, m.keys.Add):
		slot := model.Slot1
		if v, ok := m.selectedVideo(); ok {
			slot = v.Profile
		}
		if m.addDraft != nil {
			m.addDraft.labels = m.labels
			m.addDraft.focusField(1)
			m.modal = m.addDraft
		} else {
			m.modal = newAddModal(m.labels, slot)
		}

	case key.Matches(msg, m.keys.Delete):
		if v, ok := m.selectedVideo(); ok {
			m.modal = newConfirmModal(v)
		}

	case key.Matches(msg, m.keys.Copy):
		if v, ok := m.selectedVideo(); ok {
			return m, copyCmd(m.ctrl, v.Link, "Link")
		}

	case key.Matches(msg, m.keys.ProfileNames):
		m.modal = newNamesModal(m.session, m.labels)

	case key.Matches(msg, m.keys.Passwords):
		m.currentView = ViewPasswords
		m.passwordRow = 0

	case key.Matches(msg, m.keys.PlatformNext):
		m.selectedRow = 0
		return m, selectPlatformCmd(m.ctrl, m.session.Platform.Next())

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCmd(m.ctx, m.ctrl)

	case key.Matches(msg, m.keys.ToggleLinks):
		m.hideLinks = !m.hideLinks
		m.savePrefs()
	}
	return m, nil
}

// renderDashboard renders the three profile sections, scrolled so the
// selected row stays visible.
func (m Model) renderDashboard(height int) string {
	styles := m.theme.Styles()

	if len(m.sections) == 0 {
		if m.busy {
			return styles.MutedText.Render("Fetching videos...")
		}
		return styles.MutedText.Render("No data loaded. Press r to retry.")
	}

	showLinks := !m.hideLinks && m.width >= LayoutCompactWidth
	rowWidth := m.width - 2
	titleWidth := rowWidth - 16
	linkWidth := 0
	if showLinks {
		linkWidth = titleWidth / 2
		titleWidth -= linkWidth + 2
	}
	if titleWidth < 8 {
		titleWidth = 8
	}

	var lines []string
	selectedLine := 0
	row := 0
	for s, sec := range m.sections {
		if s > 0 {
			lines = append(lines, "")
		}
		heading := styles.AccentText.Bold(true).Render(sec.Label) + "  " +
			styles.Text.Render(sec.CountLabel()) + "  " +
			styles.MutedText.Render(sec.PercentLabel())
		lines = append(lines, heading)
		lines = append(lines, renderProgressBar(sec.Progress, ProgressBarWidth, styles))

		if len(sec.Videos) == 0 {
			lines = append(lines, styles.FaintText.Render("  No videos"))
			continue
		}
		for _, v := range sec.Videos {
			badge := styles.StatusStyle(v.Status).Render(padRight(string(v.Status), 8))
			text := padRight(truncate(v.Title, titleWidth), titleWidth)
			if showLinks {
				text += "  " + truncate(v.Link, linkWidth)
			}
			line := "  " + badge + " " + styles.Text.Render(text)
			if row == m.selectedRow && m.currentView == ViewDashboard {
				line = "› " + badge + " " + styles.Selected.Render(padRight(text, titleWidth+linkWidth+2))
				selectedLine = len(lines)
			}
			lines = append(lines, line)
			row++
		}
	}

	return strings.Join(window(lines, selectedLine, height), "\n")
}

// window returns at most height lines, centred on focus where possible.
func window(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := focus - height/2
	if start < 0 {
		start = 0
	}
	if start > len(lines)-height {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// renderProgressBar renders a text progress bar for a 0..1 fraction.
func renderProgressBar(progress float64, width int, styles Styles) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := min(int(float64(width)*progress+0.5), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return styles.SuccessText.Render(bar) + " " + styles.FaintText.Render(fmt.Sprintf("%3.0f%%", progress*100))
}
