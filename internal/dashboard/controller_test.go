package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mamba/internal/debounce"
	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
	"github.com/five82/mamba/internal/view"
)

type notice struct {
	msg string
	sev Severity
}

type fakeShell struct {
	mu      sync.Mutex
	renders [][]view.Section
	notices []notice
	busy    []bool
}

func (f *fakeShell) Render(sections []view.Section) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders = append(f.renders, sections)
}

func (f *fakeShell) ShowNotice(msg string, sev Severity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, notice{msg, sev})
}

func (f *fakeShell) SetBusy(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = append(f.busy, b)
}

func (f *fakeShell) lastNotice() notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notices) == 0 {
		return notice{}
	}
	return f.notices[len(f.notices)-1]
}

func (f *fakeShell) renderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.renders)
}

// endpoint fakes the spreadsheet web app.
type endpoint struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	failGet  bool
	failPost bool
	commands []map[string]any

	// When set, a POST signals held and then waits for hold to close.
	hold chan struct{}
	held chan struct{}
}

func (e *endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		e.mu.Lock()
		hold, held := e.hold, e.held
		e.mu.Unlock()
		if hold != nil {
			held <- struct{}{}
			<-hold
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	switch r.Method {
	case http.MethodGet:
		if e.failGet {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(e.snapshot)
	case http.MethodPost:
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		e.commands = append(e.commands, body)
		if e.failPost {
			http.Error(w, "nope", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

func (e *endpoint) sent() []map[string]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]map[string]any(nil), e.commands...)
}

func (e *endpoint) set(fn func(*endpoint)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
}

type fakeClipboard struct {
	err  error
	text string
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type fixture struct {
	ctrl  *Controller
	shell *fakeShell
	ep    *endpoint
	clip  *fakeClipboard
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithDelay(t, 20*time.Millisecond)
}

func newFixtureWithDelay(t *testing.T, delay time.Duration) fixture {
	t.Helper()

	ep := &endpoint{snapshot: model.Snapshot{
		Videos: []model.Video{
			{ID: "1", Person: "Dikshansh", Platform: model.Instagram, Profile: model.Slot1, Title: "a", Link: "https://a", Status: model.Uploaded},
			{ID: "2", Person: "Dikshansh", Platform: model.Instagram, Profile: model.Slot1, Title: "b", Link: "https://b", Status: model.Uploaded},
			{ID: "3", Person: "Dikshansh", Platform: model.Instagram, Profile: model.Slot1, Title: "c", Link: "https://c", Status: model.Reviewed},
			{ID: "4", Person: "Dikshansh", Platform: model.TikTok, Profile: model.Slot2, Title: "d", Link: "https://d", Status: model.Reviewed},
		},
		ProfileConfig: model.ProfileConfig{"Dikshansh": {model.Instagram: {Profile1: "main", Profile2: "second", Profile3: "third"}}},
		Passwords:     model.Passwords{"Dikshansh": {model.Instagram: {{Profile: "Profile 1", Name: "main", Password: "pw1"}}}},
	}}
	server := httptest.NewServer(ep)
	t.Cleanup(server.Close)

	client, err := remote.NewClient(server.URL, remote.WithRateLimit(0))
	require.NoError(t, err)

	shell := &fakeShell{}
	clip := &fakeClipboard{}
	ctrl, err := New(context.Background(), Options{
		Remote:       client,
		Store:        &state.Store{},
		Shell:        shell,
		Clipboard:    clip,
		Users:        []string{"Dikshansh", " Dikshansh ", "Guest"},
		Debounce:     delay,
		DebounceMode: debounce.Shared,
		Now:          func() time.Time { return time.UnixMilli(1712345678901) },
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	return fixture{ctrl: ctrl, shell: shell, ep: ep, clip: clip}
}

func TestNew_RequiresRemote(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestSelectUser_FetchesAndRenders(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"Dikshansh", "Guest"}, f.ctrl.Users())
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	assert.Equal(t, Session{User: "Dikshansh", Platform: model.Instagram}, f.ctrl.Session())
	assert.Equal(t, []bool{true, false}, f.shell.busy)
	assert.Equal(t, notice{"Data loaded successfully", Success}, f.shell.lastNotice())

	require.Equal(t, 1, f.shell.renderCount())
	sections := f.shell.renders[0]
	require.Len(t, sections, 3)
	assert.Equal(t, "main", sections[0].Label)
	assert.Equal(t, "2/3 Uploaded", sections[0].CountLabel())
	assert.Equal(t, "66.67%", sections[0].PercentLabel())

	assert.Equal(t, [3]string{"main", "second", "third"}, f.ctrl.SlotLabels())
	require.Len(t, f.ctrl.Passwords(), 1)
	assert.Equal(t, "pw1", f.ctrl.Passwords()[0].Password)
}

func TestSelectUser_RejectsUnknown(t *testing.T) {
	f := newFixture(t)
	err := f.ctrl.SelectUser(context.Background(), "Mallory")
	assert.ErrorIs(t, err, ErrUnknownUser)

	var verr *model.ValidationError
	assert.ErrorAs(t, f.ctrl.SelectUser(context.Background(), "  "), &verr)
}

func TestRefresh_FailureKeepsMirror(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	f.ep.set(func(e *endpoint) { e.failGet = true })
	err := f.ctrl.Refresh(context.Background())
	assert.True(t, remote.IsNetworkError(err))

	assert.Len(t, f.ctrl.Mirror().Videos, 4)
	assert.NotNil(t, f.ctrl.Mirror().LastError)
	assert.Equal(t, notice{"Error loading data. Check internet connection.", Error}, f.shell.lastNotice())
}

func TestSelectPlatform(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	require.NoError(t, f.ctrl.SelectPlatform(model.TikTok))
	sections := f.ctrl.Sections()
	assert.Equal(t, 1, sections[1].Total)
	assert.Equal(t, "Profile 1", sections[0].Label)

	assert.ErrorIs(t, f.ctrl.SelectPlatform("YouTube"), model.ErrUnknownPlatform)
}

func TestSubmitNew_EmptyTitleIsValidationError(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))
	renders := f.shell.renderCount()

	_, err := f.ctrl.SubmitNew(context.Background(), model.Slot1, "   ", "https://x")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)

	assert.Len(t, f.ctrl.Mirror().Videos, 4, "no record appended")
	assert.Empty(t, f.ep.sent(), "no network call issued")
	assert.Equal(t, renders, f.shell.renderCount())
	assert.Equal(t, notice{"Please fill all fields", Error}, f.shell.lastNotice())
}

func TestSubmitNew_Confirmed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	v, err := f.ctrl.SubmitNew(context.Background(), model.Slot2, " New clip ", " https://n ")
	require.NoError(t, err)
	assert.Equal(t, model.ID("1712345678901"), v.ID)
	assert.Equal(t, model.Reviewed, v.Status)

	got, ok := f.ctrl.Mirror().Find(v.ID)
	require.True(t, ok)
	assert.Equal(t, "New clip", got.Title)

	sent := f.ep.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "create", sent[0]["action"])
	assert.Equal(t, "1712345678901", sent[0]["id"])
	assert.Equal(t, "Profile 2", sent[0]["profile"])
	assert.Equal(t, notice{"Video added successfully!", Success}, f.shell.lastNotice())
}

func TestSubmitNew_FailureRollsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))
	f.ep.set(func(e *endpoint) { e.failPost = true })

	before := f.shell.renderCount()
	_, err := f.ctrl.SubmitNew(context.Background(), model.Slot1, "t", "l")
	require.Error(t, err)

	_, ok := f.ctrl.Mirror().Find("1712345678901")
	assert.False(t, ok)
	assert.Equal(t, before+2, f.shell.renderCount(), "one render after apply, one after revert")
	assert.Equal(t, notice{"Failed to save video", Error}, f.shell.lastNotice())
}

func TestDelete_SuccessAndFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	require.NoError(t, f.ctrl.Delete(context.Background(), "1"))
	_, ok := f.ctrl.Mirror().Find("1")
	assert.False(t, ok)
	assert.Equal(t, notice{"Video deleted", Success}, f.shell.lastNotice())

	original, _ := f.ctrl.Mirror().Find("3")
	f.ep.set(func(e *endpoint) { e.failPost = true })
	require.Error(t, f.ctrl.Delete(context.Background(), "3"))
	restored, ok := f.ctrl.Mirror().Find("3")
	require.True(t, ok)
	assert.Equal(t, original, restored)
	assert.Equal(t, notice{"Failed to delete video", Error}, f.shell.lastNotice())

	assert.ErrorIs(t, f.ctrl.Delete(context.Background(), "404"), state.ErrNotFound)
}

func TestToggleStatus_Debounced(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	// Two rapid clicks on the same record collapse into one flip.
	require.NoError(t, f.ctrl.ToggleStatus("3"))
	require.NoError(t, f.ctrl.ToggleStatus("3"))

	require.Eventually(t, func() bool { return len(f.ep.sent()) == 1 }, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return f.shell.lastNotice() == notice{"Status changed to Uploaded", Success}
	}, 2*time.Second, 5*time.Millisecond)

	sent := f.ep.sent()
	assert.Equal(t, map[string]any{"action": "updateStatus", "id": "3", "newStatus": "Uploaded"}, sent[0])
	v, _ := f.ctrl.Mirror().Find("3")
	assert.Equal(t, model.Uploaded, v.Status)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, f.ep.sent(), 1)
}

func TestToggleStatus_SharedGateKeepsLastRecordOnly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	require.NoError(t, f.ctrl.ToggleStatus("1"))
	require.NoError(t, f.ctrl.ToggleStatus("2"))
	f.ctrl.FlushToggles()

	sent := f.ep.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "2", sent[0]["id"])
	assert.Equal(t, "Reviewed", sent[0]["newStatus"])
}

func TestToggleStatus_FailureRestores(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))
	f.ep.set(func(e *endpoint) { e.failPost = true })

	require.NoError(t, f.ctrl.ToggleStatus("1"))
	f.ctrl.FlushToggles()

	v, _ := f.ctrl.Mirror().Find("1")
	assert.Equal(t, model.Uploaded, v.Status)
	assert.Equal(t, notice{"Failed to update status", Error}, f.shell.lastNotice())

	assert.ErrorIs(t, f.ctrl.ToggleStatus("404"), state.ErrNotFound)
}

func TestSaveProfileNames(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))

	var verr *model.ValidationError
	require.ErrorAs(t, f.ctrl.SaveProfileNames(context.Background(), "a", "", "c"), &verr)
	assert.Empty(t, f.ep.sent())

	require.NoError(t, f.ctrl.SaveProfileNames(context.Background(), "A", "B", "C"))
	assert.Equal(t, [3]string{"A", "B", "C"}, f.ctrl.SlotLabels())
	assert.Equal(t, notice{"Profile names saved", Success}, f.shell.lastNotice())

	f.ep.set(func(e *endpoint) { e.failPost = true })
	require.Error(t, f.ctrl.SaveProfileNames(context.Background(), "X", "Y", "Z"))
	assert.Equal(t, [3]string{"A", "B", "C"}, f.ctrl.SlotLabels())
}

func TestCopy(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Copy("https://a", "Link"))
	assert.Equal(t, "https://a", f.clip.text)
	assert.Equal(t, notice{"Link copied to clipboard!", Success}, f.shell.lastNotice())

	f.clip.err = errors.New("no xclip")
	err := f.ctrl.Copy("x", "Link")
	var cerr *ClipboardError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, notice{"Failed to copy link", Error}, f.shell.lastNotice())
}

func TestGoHome_ClearsSessionAndMirror(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectUser(context.Background(), "Dikshansh"))
	require.NoError(t, f.ctrl.SelectPlatform(model.TikTok))
	require.NoError(t, f.ctrl.ToggleStatus("4"))

	f.ctrl.GoHome()

	assert.Equal(t, Session{Platform: model.Instagram}, f.ctrl.Session())
	assert.Empty(t, f.ctrl.Mirror().Videos)
	require.Len(t, f.ep.sent(), 1, "pending toggle is sent before leaving")
}

func TestGoHome_KeepsUserSelectedWhileFlushing(t *testing.T) {
	f := newFixtureWithDelay(t, time.Hour)
	ctx := context.Background()
	require.NoError(t, f.ctrl.SelectUser(ctx, "Dikshansh"))

	hold := make(chan struct{})
	held := make(chan struct{}, 1)
	f.ep.set(func(e *endpoint) {
		e.hold = hold
		e.held = held
	})
	require.NoError(t, f.ctrl.ToggleStatus("1"))

	done := make(chan struct{})
	go func() {
		f.ctrl.GoHome()
		close(done)
	}()

	select {
	case <-held:
	case <-time.After(2 * time.Second):
		t.Fatal("pending toggle was not flushed")
	}

	// The user picks someone again before the flushed toggle has returned.
	require.NoError(t, f.ctrl.SelectUser(ctx, "Dikshansh"))
	close(hold)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("GoHome did not return")
	}

	assert.Equal(t, Session{User: "Dikshansh", Platform: model.Instagram}, f.ctrl.Session())
	assert.Len(t, f.ctrl.Mirror().Videos, 4)
	assert.Len(t, f.ctrl.Sections()[0].Videos, 3)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "info", Info.String())
}
