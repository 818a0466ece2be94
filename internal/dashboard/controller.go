package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/mamba/internal/debounce"
	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/optimistic"
	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
	"github.com/five82/mamba/internal/view"
)

// ErrUnknownUser is returned when selecting a user outside the configured set.
var ErrUnknownUser = errors.New("unknown user")

// Session is the transient selection. It is never persisted.
type Session struct {
	User     string
	Platform model.Platform
}

// Active reports whether a user has been selected.
func (s Session) Active() bool { return s.User != "" }

// Options configure a Controller.
type Options struct {
	Remote       remote.Store
	Store        *state.Store
	Shell        Shell
	Clipboard    Clipboard
	Users        []string
	Debounce     time.Duration
	DebounceMode debounce.Mode
	Logger       *log.Logger
	// Now generates ids for new videos; defaults to time.Now.
	Now func() time.Time
}

// Controller is the single owner of a session's state.
type Controller struct {
	ctx       context.Context
	remote    remote.Store
	store     *state.Store
	mutator   *optimistic.Mutator
	gate      *debounce.Gate
	clipboard Clipboard
	logger    *log.Logger
	users     []string
	now       func() time.Time

	mu      sync.RWMutex
	session Session
	shell   Shell

	// nav orders GoHome against SelectUser. epoch advances on every user
	// selection so a slow GoHome never resets a session opened after it began.
	nav   sync.Mutex
	epoch uint64
}

// New builds a Controller. ctx bounds the debounced calls it schedules.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Remote == nil {
		return nil, fmt.Errorf("dashboard requires a remote store")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	shell := opts.Shell
	if shell == nil {
		shell = nopShell{}
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = SystemClipboard{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	c := &Controller{
		ctx:       ctx,
		remote:    opts.Remote,
		store:     store,
		gate:      debounce.New(opts.Debounce, opts.DebounceMode),
		clipboard: clip,
		logger:    logger,
		users:     normalizeUsers(opts.Users),
		now:       now,
		session:   Session{Platform: model.Instagram},
		shell:     shell,
	}
	c.mutator = optimistic.New(store, opts.Remote, optimistic.ObserverFunc(c.mutationChanged), logger)
	return c, nil
}

// SetShell swaps the presentation layer. The TUI attaches itself once its
// program exists.
func (c *Controller) SetShell(shell Shell) {
	if shell == nil {
		shell = nopShell{}
	}
	c.mu.Lock()
	c.shell = shell
	c.mu.Unlock()
}

// Users returns the configured user names.
func (c *Controller) Users() []string {
	return slices.Clone(c.users)
}

// Session returns the current selection.
func (c *Controller) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Mirror returns a copy of the local mirror.
func (c *Controller) Mirror() state.Snapshot {
	return c.store.Snapshot()
}

// Sections projects the mirror for the current session.
func (c *Controller) Sections() []view.Section {
	s := c.Session()
	snap := c.store.Snapshot()
	return view.Project(snap.Videos, s.User, s.Platform, snap.ProfileConfig)
}

// Passwords returns the password entries for the current session.
func (c *Controller) Passwords() []model.PasswordEntry {
	s := c.Session()
	return view.Passwords(c.store.Snapshot().Passwords, s.User, s.Platform)
}

// SlotLabels returns the display labels of the three slots.
func (c *Controller) SlotLabels() [3]string {
	s := c.Session()
	return view.SlotLabels(c.store.Snapshot().ProfileConfig, s.User, s.Platform)
}

// SelectUser opens the dashboard for user and fetches a fresh snapshot.
func (c *Controller) SelectUser(ctx context.Context, user string) error {
	user = strings.TrimSpace(user)
	if user == "" {
		return &model.ValidationError{Field: "user"}
	}
	if len(c.users) > 0 && !slices.Contains(c.users, user) {
		return fmt.Errorf("%w: %q", ErrUnknownUser, user)
	}
	c.nav.Lock()
	c.epoch++
	c.mu.Lock()
	c.session.User = user
	c.mu.Unlock()
	c.nav.Unlock()
	c.logger.Info("user selected", "user", user)

	return c.Refresh(ctx)
}

// SelectPlatform switches the platform tab and re-renders.
func (c *Controller) SelectPlatform(platform model.Platform) error {
	if _, err := model.ParsePlatform(string(platform)); err != nil {
		return err
	}
	c.mu.Lock()
	c.session.Platform = platform
	c.mu.Unlock()
	c.render()
	return nil
}

// GoHome leaves the dashboard: pending toggles are sent, then the session and
// mirror are cleared. If a user is selected while the toggles are in flight,
// the new session is kept.
func (c *Controller) GoHome() {
	c.nav.Lock()
	epoch := c.epoch
	c.nav.Unlock()

	c.gate.Flush()

	c.nav.Lock()
	defer c.nav.Unlock()
	if c.epoch != epoch {
		c.logger.Debug("home skipped, user selected meanwhile")
		return
	}
	c.mu.Lock()
	c.session = Session{Platform: model.Instagram}
	c.mu.Unlock()
	c.store.Clear()
}

// Refresh fetches the full snapshot and replaces the mirror. On failure the
// mirror is left as it was.
func (c *Controller) Refresh(ctx context.Context) error {
	shell := c.currentShell()
	shell.SetBusy(true)
	snap, err := c.remote.FetchSnapshot(ctx)
	shell.SetBusy(false)
	if err != nil {
		c.store.RecordError(err)
		c.logger.Error("fetch failed", "err", err)
		shell.ShowNotice("Error loading data. Check internet connection.", Error)
		return err
	}
	c.store.ReplaceAll(snap)
	c.logger.Info("snapshot fetched", "videos", len(snap.Videos))
	c.render()
	shell.ShowNotice("Data loaded successfully", Success)
	return nil
}

// ToggleStatus flips the status of video id after the debounce delay. The
// status is read now, at the time of the click.
func (c *Controller) ToggleStatus(id model.ID) error {
	v, ok := c.store.Snapshot().Find(id)
	if !ok {
		return fmt.Errorf("toggle %s: %w", id, state.ErrNotFound)
	}
	current := v.Status
	c.gate.Call(string(id), func() {
		c.mutator.Do(c.ctx, optimistic.NewUpdateStatus(id, current.Toggle()))
	})
	return nil
}

// FlushToggles sends any debounced toggles immediately.
func (c *Controller) FlushToggles() {
	c.gate.Flush()
}

// SubmitNew validates and creates a video in slot for the current session.
func (c *Controller) SubmitNew(ctx context.Context, slot model.Slot, title, link string) (model.Video, error) {
	s := c.Session()
	draft, err := model.Draft{
		Person:   s.User,
		Platform: s.Platform,
		Profile:  slot,
		Title:    title,
		Link:     link,
	}.Validate()
	if err != nil {
		c.currentShell().ShowNotice("Please fill all fields", Error)
		return model.Video{}, err
	}

	v := draft.Video(model.NewID(c.now()))
	shell := c.currentShell()
	shell.SetBusy(true)
	out := c.mutator.Do(ctx, optimistic.NewCreateVideo(v))
	shell.SetBusy(false)
	if out.Err != nil {
		return model.Video{}, out.Err
	}
	return v, nil
}

// Delete removes video id. Confirmation is the caller's job.
func (c *Controller) Delete(ctx context.Context, id model.ID) error {
	out := c.mutator.Do(ctx, optimistic.NewDeleteVideo(id))
	if out.Phase == optimistic.Idle && out.Err != nil {
		c.currentShell().ShowNotice("Video not found", Error)
	}
	return out.Err
}

// SaveProfileNames stores new slot labels for the current user and platform.
func (c *Controller) SaveProfileNames(ctx context.Context, profile1, profile2, profile3 string) error {
	s := c.Session()
	if !s.Active() {
		return &model.ValidationError{Field: "user"}
	}
	names, err := model.ProfileNames{Profile1: profile1, Profile2: profile2, Profile3: profile3}.Validate()
	if err != nil {
		c.currentShell().ShowNotice("Please fill all fields", Error)
		return err
	}
	out := c.mutator.Do(ctx, optimistic.NewUpdateProfileNames(s.User, s.Platform, names))
	return out.Err
}

// Copy places text on the clipboard. what names the value in notices
// ("Link", "Password").
func (c *Controller) Copy(text, what string) error {
	if what == "" {
		what = "Text"
	}
	shell := c.currentShell()
	if err := c.clipboard.WriteAll(text); err != nil {
		c.logger.Warn("clipboard write failed", "err", err)
		shell.ShowNotice("Failed to copy "+strings.ToLower(what), Error)
		return &ClipboardError{Err: err}
	}
	shell.ShowNotice(what+" copied to clipboard!", Success)
	return nil
}

// Close cancels debounced calls that have not fired yet.
func (c *Controller) Close() {
	c.gate.Stop()
}

func (c *Controller) mutationChanged(ev optimistic.Event) {
	c.render()

	shell := c.currentShell()
	switch m := ev.Mutation.(type) {
	case *optimistic.UpdateStatus:
		switch ev.Phase {
		case optimistic.Pending:
			shell.ShowNotice("Status changed to "+string(m.Status), Success)
		case optimistic.Reverted:
			shell.ShowNotice("Failed to update status", Error)
		}
	case *optimistic.CreateVideo:
		switch ev.Phase {
		case optimistic.Confirmed:
			shell.ShowNotice("Video added successfully!", Success)
		case optimistic.Reverted:
			shell.ShowNotice("Failed to save video", Error)
		}
	case *optimistic.DeleteVideo:
		switch ev.Phase {
		case optimistic.Confirmed:
			shell.ShowNotice("Video deleted", Success)
		case optimistic.Reverted:
			shell.ShowNotice("Failed to delete video", Error)
		}
	case *optimistic.UpdateProfileNames:
		switch ev.Phase {
		case optimistic.Confirmed:
			shell.ShowNotice("Profile names saved", Success)
		case optimistic.Reverted:
			shell.ShowNotice("Failed to save profile names", Error)
		}
	}
}

func (c *Controller) render() {
	c.currentShell().Render(c.Sections())
}

func (c *Controller) currentShell() Shell {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.shell
}

func normalizeUsers(users []string) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		u = strings.TrimSpace(u)
		if u == "" || slices.Contains(out, u) {
			continue
		}
		out = append(out, u)
	}
	return out
}
