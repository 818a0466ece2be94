package ui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/mamba/internal/dashboard"
	"github.com/five82/mamba/internal/model"
	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
	"github.com/five82/mamba/internal/view"
)

type fakeRemote struct {
	mu      sync.Mutex
	snap    model.Snapshot
	fetches int
	sent    []remote.Command
}

func (f *fakeRemote) FetchSnapshot(context.Context) (model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	return f.snap, nil
}

func (f *fakeRemote) SendCommand(_ context.Context, cmd remote.Command) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	return nil
}

func (f *fakeRemote) commands() []remote.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remote.Command(nil), f.sent...)
}

type nopClipboard struct{ text string }

func (c *nopClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func newTestModel(t *testing.T) (Model, *dashboard.Controller, *fakeRemote) {
	t.Helper()

	fr := &fakeRemote{snap: model.Snapshot{
		Videos: []model.Video{
			{ID: "1", Person: "Bob", Platform: model.Instagram, Profile: model.Slot1, Title: "one", Link: "https://1", Status: model.Uploaded},
			{ID: "2", Person: "Bob", Platform: model.Instagram, Profile: model.Slot1, Title: "two", Link: "https://2", Status: model.Uploaded},
			{ID: "3", Person: "Bob", Platform: model.Instagram, Profile: model.Slot1, Title: "three", Link: "https://3", Status: model.Reviewed},
		},
		Passwords: model.Passwords{"Bob": {model.Instagram: {{Profile: "Profile 1", Name: "main", Password: "hunter22"}}}},
	}}
	ctrl, err := dashboard.New(context.Background(), dashboard.Options{
		Remote:    fr,
		Store:     &state.Store{},
		Clipboard: &nopClipboard{},
		Users:     []string{"Alice", "Bob"},
		Debounce:  time.Hour,
		Now:       func() time.Time { return time.UnixMilli(42) },
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)

	m := New(Options{Controller: ctrl})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, ctrl, fr
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run feeds msg to the model and keeps feeding back the messages its
// commands produce until none are left.
func run(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next, cmd := m.Update(queue[0])
		m = next.(Model)
		queue = queue[1:]
		if cmd == nil {
			continue
		}
		switch out := cmd().(type) {
		case nil, noticeExpiredMsg:
		case tea.BatchMsg:
		default:
			queue = append(queue, out)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func openDashboard(t *testing.T, m Model, ctrl *dashboard.Controller) Model {
	t.Helper()
	m = run(t, m, keyRunes("j"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return update(t, m, renderMsg(ctrl.Sections()))
}

func TestHomeSelectsUserAndFetches(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	require.Equal(t, ViewHome, m.currentView)

	m = openDashboard(t, m, ctrl)

	assert.Equal(t, ViewDashboard, m.currentView)
	assert.Equal(t, "Bob", m.session.User)
	assert.Equal(t, 1, fr.fetches)
	require.Len(t, m.sections, 3)
	assert.Len(t, m.passwords, 1)

	out := m.View()
	assert.Contains(t, out, "2/3 Uploaded")
	assert.Contains(t, out, "66.67%")
	assert.Contains(t, out, "BOB")
}

func TestToggleKeySchedulesStatusFlip(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("j"))
	m = run(t, m, keyRunes("j"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Empty(t, fr.commands(), "toggle waits for the debounce delay")

	ctrl.FlushToggles()
	cmds := fr.commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, remote.UpdateStatusCommand{ID: "3", NewStatus: model.Uploaded}, cmds[0])
}

func TestAddVideoClearsFormOnlyAfterSuccess(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("a"))
	require.IsType(t, &addModal{}, m.modal)

	m = run(t, m, keyRunes("New clip"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Nil(t, m.modal)
	require.NotNil(t, m.addDraft)

	m = run(t, m, keyRunes("a"))
	draft := m.modal.(*addModal)
	assert.Equal(t, "New clip", draft.title.Value(), "cancelled form keeps its fields")

	m = run(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = run(t, m, keyRunes("https://n"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, m.modal)
	assert.Nil(t, m.addDraft)
	cmds := fr.commands()
	require.Len(t, cmds, 1)
	create, ok := cmds[0].(remote.CreateCommand)
	require.True(t, ok)
	assert.Equal(t, "New clip", create.Title)
	assert.Equal(t, model.Slot1, create.Profile)
}

func TestAddVideoValidationKeepsModalOpen(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("a"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.IsType(t, &addModal{}, m.modal)
	assert.Empty(t, fr.commands())
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("d"))
	require.IsType(t, &confirmModal{}, m.modal)
	m = run(t, m, keyRunes("n"))
	assert.Nil(t, m.modal)
	assert.Empty(t, fr.commands())

	m = run(t, m, keyRunes("d"))
	m = run(t, m, keyRunes("y"))
	assert.Nil(t, m.modal)
	require.Len(t, fr.commands(), 1)
	assert.Equal(t, remote.DeleteCommand{ID: "1"}, fr.commands()[0])
	_, found := ctrl.Mirror().Find("1")
	assert.False(t, found)
}

func TestProfileNamesModalSaves(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("n"))
	names := m.modal.(*namesModal)
	assert.Equal(t, "Profile 1", names.inputs[0].Value())

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.modal)
	require.Len(t, fr.commands(), 1)
	assert.IsType(t, remote.UpdateProfileNamesCommand{}, fr.commands()[0])
}

func TestPasswordsViewCopies(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, keyRunes("p"))
	require.Equal(t, ViewPasswords, m.currentView)
	out := m.View()
	assert.Contains(t, out, "main")
	assert.NotContains(t, out, "hunter22")

	m = run(t, m, keyRunes("c"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestEscapeGoesHomeAndClears(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	m = openDashboard(t, m, ctrl)

	m = run(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewHome, m.currentView)
	assert.Nil(t, m.sections)
	assert.Empty(t, ctrl.Mirror().Videos)
	assert.False(t, ctrl.Session().Active())
}

func TestSelectWaitsForGoHome(t *testing.T) {
	m, ctrl, fr := newTestModel(t)
	m = openDashboard(t, m, ctrl)
	require.Equal(t, 1, fr.fetches)

	next, homeCmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	require.NotNil(t, homeCmd)
	assert.True(t, m.leaving)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, cmd, "selection is held until home is reached")
	assert.Equal(t, "Bob", m.pendingUser)
	assert.Equal(t, ViewDashboard, m.currentView)

	m = run(t, m, homeCmd())
	assert.False(t, m.leaving)
	assert.Empty(t, m.pendingUser)
	assert.Equal(t, 2, fr.fetches)
	assert.Equal(t, "Bob", ctrl.Session().User)
	assert.NotEmpty(t, ctrl.Mirror().Videos)
}

func TestNoticeExpiresOnlyForLatest(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = update(t, m, noticeMsg{text: "first", severity: dashboard.Success})
	first := m.notice.seq
	m = update(t, m, noticeMsg{text: "second", severity: dashboard.Error})

	m = update(t, m, noticeExpiredMsg(first))
	assert.Equal(t, "second", m.notice.text)
	assert.Contains(t, m.View(), "second")

	m = update(t, m, noticeExpiredMsg(m.notice.seq))
	assert.Empty(t, m.notice.text)
}

func TestBusyTogglesSpinner(t *testing.T) {
	m, _, _ := newTestModel(t)

	next, cmd := m.Update(busyMsg(true))
	m = next.(Model)
	assert.True(t, m.busy)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading...")

	m = update(t, m, busyMsg(false))
	assert.False(t, m.busy)
}

func TestRenderClampsSelection(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.selectedRow = 9
	m = update(t, m, renderMsg([]view.Section{{Slot: model.Slot1, Videos: []model.Video{{ID: "1"}}}}))
	assert.Equal(t, 0, m.selectedRow)
}

func TestHelpClosesOnAnyKey(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = update(t, m, keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	m = update(t, m, keyRunes("x"))
	assert.False(t, m.showHelp)
}

func TestThemeCycleSavesPrefs(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.prefsPath = t.TempDir() + "/prefs.toml"

	m = update(t, m, keyRunes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)
}

func TestStringHelpers(t *testing.T) {
	assert.Equal(t, "abc", truncate(" abc ", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "••22", maskSecret("ab22"))
	assert.Equal(t, "••", maskSecret("ab"))

	lines := strings.Split("a b c d e f", " ")
	assert.Equal(t, []string{"c", "d", "e"}, window(lines, 3, 3))
	assert.Equal(t, []string{"d", "e", "f"}, window(lines, 5, 3))
	assert.Equal(t, lines, window(lines, 0, 10))
}
