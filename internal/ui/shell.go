package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/view"
)

// programShell forwards controller output into the running program as
// messages.
type programShell struct {
	program *tea.Program
}

var _ dashboard.Shell = programShell{}

func (s programShell) Render(sections []view.Section) {
	s.program.Send(renderMsg(sections))
}

func (s programShell) ShowNotice(message string, severity dashboard.Severity) {
	s.program.Send(noticeMsg{text: message, severity: severity})
}

func (s programShell) SetBusy(busy bool) {
	s.program.Send(busyMsg(busy))
}
