package dashboard

import (
	"github.com/atotto/clipboard"

	"github.com/five82/mamba/internal/view"
)

// Severity classifies a notice.
type Severity int

const (
	Info Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Shell is the presentation layer the controller drives.
type Shell interface {
	Render(sections []view.Section)
	ShowNotice(message string, severity Severity)
	SetBusy(busy bool)
}

type nopShell struct{}

func (nopShell) Render([]view.Section)      {}
func (nopShell) ShowNotice(string, Severity) {}
func (nopShell) SetBusy(bool)               {}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard uses the platform clipboard (xclip/xsel/wl-copy, pbcopy,
// or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// ClipboardError wraps a failed copy.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string { return "copy to clipboard: " + e.Err.Error() }

func (e *ClipboardError) Unwrap() error { return e.Err }
