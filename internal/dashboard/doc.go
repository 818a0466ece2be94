// Package dashboard owns the application state of a mamba session and turns
// user intents into fetches and optimistic mutations.
//
// A Controller holds the current user and platform, the local mirror, the
// optimistic mutator and the debounce gate. Every intent the presentation
// layer can raise (select a user, toggle a status, add or delete a video,
// rename profiles, copy text) is a method on it. The presentation layer in
// turn implements Shell and receives re-rendered sections, notices and the
// busy flag.
//
// Status toggles go through the debounce gate; everything else runs
// immediately on the calling goroutine and blocks until the remote endpoint
// answers. Callers that must stay responsive (the TUI) invoke these methods
// from background commands.
package dashboard
