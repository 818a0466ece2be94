// Package app is the composition root for mamba.
//
// Run loads the config, opens the log file, builds the remote client,
// mirror and dashboard controller, then hands control to the TUI until the
// user quits or the context is cancelled. Toggles still waiting on the
// debounce delay are sent before Run returns.
//
// Summary and Add drive the same controller without a terminal UI. They log
// to the writer they are given instead of the log file, which keeps them
// usable from scripts:
//
//	mamba summary --user Dikshansh --platform TikTok
//	mamba add --user Dikshansh --profile 2 --title "Clip" --link https://...
//
// Errors from config loading, the initial fetch and user selection are
// returned to the caller. Errors from individual mutations surface as
// notices in the TUI and are logged.
package app
