package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/model"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

const modalWidth = 56

func renderModal(theme Theme, width, height int, title, body, hint string) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", modalWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(body)
	if hint != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedText.Render(hint))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(modalWidth).
		Render(b.String())

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

func fieldLabel(styles Styles, label string, focused bool) string {
	label = padRight(label, 10)
	if focused {
		return styles.AccentText.Render(label)
	}
	return styles.MutedText.Render(label)
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = modalWidth - 18
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// addModal collects a new video. Field 0 is the profile selector, 1 the
// title and 2 the link.
type addModal struct {
	labels [3]string
	slot   int
	title  textinput.Model
	link   textinput.Model
	focus  int
}

func newAddModal(labels [3]string, slot model.Slot) *addModal {
	m := &addModal{
		labels: labels,
		slot:   max(slot.Index(), 0),
		title:  newInput("Video title", 200),
		link:   newInput("https://...", 500),
	}
	m.focusField(1)
	return m
}

func (m *addModal) focusField(i int) {
	m.focus = (i + 3) % 3
	m.title.Blur()
	m.link.Blur()
	switch m.focus {
	case 1:
		m.title.Focus()
	case 2:
		m.link.Focus()
	}
}

func (m *addModal) cycleSlot(delta int) {
	m.slot = (m.slot + delta + 3) % 3
}

func (m *addModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return m, nil, true

	case key.Matches(km, keys.Confirm):
		submit := submitVideoMsg{
			slot:  model.Slots()[m.slot],
			title: m.title.Value(),
			link:  m.link.Value(),
		}
		return m, func() tea.Msg { return submit }, false

	case key.Matches(km, keys.CycleSlot):
		m.cycleSlot(1)
		return m, nil, false

	case key.Matches(km, keys.NextField):
		m.focusField(m.focus + 1)
		return m, nil, false

	case key.Matches(km, keys.PrevField):
		m.focusField(m.focus - 1)
		return m, nil, false
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		switch km.String() {
		case "left", "h":
			m.cycleSlot(-1)
		case "right", "l", " ":
			m.cycleSlot(1)
		}
	case 1:
		m.title, cmd = m.title.Update(km)
	case 2:
		m.link, cmd = m.link.Update(km)
	}
	return m, cmd, false
}

func (m *addModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var slots []string
	for i, label := range m.labels {
		if i == m.slot {
			slots = append(slots, styles.Selected.Render(" "+label+" "))
		} else {
			slots = append(slots, styles.MutedText.Render(" "+label+" "))
		}
	}

	var b strings.Builder
	b.WriteString(fieldLabel(styles, "Profile", m.focus == 0))
	b.WriteString(strings.Join(slots, " "))
	b.WriteString("\n\n")
	b.WriteString(fieldLabel(styles, "Title", m.focus == 1))
	b.WriteString(m.title.View())
	b.WriteString("\n\n")
	b.WriteString(fieldLabel(styles, "Link", m.focus == 2))
	b.WriteString(m.link.View())

	return renderModal(theme, width, height, "Add Video", b.String(),
		"tab: next field  ←/→: profile  enter: save  esc: cancel")
}

// namesModal edits the three slot labels of the current user and platform.
type namesModal struct {
	session dashboard.Session
	inputs  [3]textinput.Model
	focus   int
}

func newNamesModal(session dashboard.Session, labels [3]string) *namesModal {
	m := &namesModal{session: session}
	for i := range m.inputs {
		m.inputs[i] = newInput(string(model.Slots()[i]), 60)
		m.inputs[i].SetValue(labels[i])
	}
	m.inputs[0].Focus()
	return m
}

func (m *namesModal) focusField(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *namesModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}

	switch {
	case key.Matches(km, keys.Escape):
		return m, nil, true
	case key.Matches(km, keys.Confirm):
		submit := submitNamesMsg{}
		for i, in := range m.inputs {
			submit.names[i] = in.Value()
		}
		return m, func() tea.Msg { return submit }, false
	case key.Matches(km, keys.NextField):
		m.focusField(m.focus + 1)
		return m, nil, false
	case key.Matches(km, keys.PrevField):
		m.focusField(m.focus - 1)
		return m, nil, false
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(km)
	return m, cmd, false
}

func (m *namesModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(m.session.User + " / " + string(m.session.Platform)))
	b.WriteString("\n\n")
	for i, in := range m.inputs {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fieldLabel(styles, string(model.Slots()[i]), m.focus == i))
		b.WriteString(in.View())
	}

	return renderModal(theme, width, height, "Profile Names", b.String(),
		"tab: next field  enter: save  esc: cancel")
}

// confirmModal asks before deleting a video.
type confirmModal struct {
	video model.Video
}

func newConfirmModal(v model.Video) *confirmModal {
	return &confirmModal{video: v}
}

func (m *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil, false
	}
	switch {
	case km.String() == "y", key.Matches(km, keys.Confirm):
		id := m.video.ID
		return m, func() tea.Msg { return confirmDeleteMsg{id: id} }, true
	case km.String() == "n", key.Matches(km, keys.Escape):
		return m, nil, true
	}
	return m, nil, false
}

func (m *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render("Delete this video?") + "\n\n" +
		styles.AccentText.Render(truncate(m.video.Title, modalWidth-8)) + "\n" +
		styles.FaintText.Render(truncate(m.video.Link, modalWidth-8))
	return renderModal(theme, width, height, "Confirm Delete", body, "y/enter: delete  n/esc: cancel")
}
