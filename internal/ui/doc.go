// Package ui is the mamba terminal interface, built on Bubble Tea.
//
// # Views
//
//   - Home: pick who is reviewing
//   - Dashboard: three profile sections for the selected user and platform,
//     each with its videos, an "n/m Uploaded" count and a progress bar
//   - Passwords: stored credentials for the selected user and platform,
//     masked on screen and copied in full
//
// Add, profile-name and delete-confirmation dialogs render as modals over
// the dashboard.
//
// # Data flow
//
// The Model never touches the mirror or the network directly. Key handlers
// return tea.Cmds that call into the dashboard.Controller off the update
// goroutine. The controller reports back through programShell, which turns
// Render, ShowNotice and SetBusy into renderMsg, noticeMsg and busyMsg.
// Calling the controller synchronously from Update would deadlock, because
// tea.Program.Send blocks until Update returns.
//
// # Files
//
//   - app.go: Model, Update, command builders and Run
//   - shell.go: the dashboard.Shell adapter
//   - home.go, videos.go, passwords.go: per-view key handling and rendering
//   - modal.go: add, names and confirm dialogs
//   - header.go, help.go: chrome and the help overlay
//   - keys.go, theme.go, style_helpers.go, strings.go: bindings and styling
package ui
