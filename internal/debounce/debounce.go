// Package debounce coalesces bursts of calls into one execution after a
// quiet period.
//
// A Gate runs in one of two modes. In Shared mode every call, whatever its
// key, replaces the single pending call: two different videos toggled within
// the window collapse into the later one. Keyed mode keeps one pending call
// per key so distinct records debounce independently.
//
// Only scheduled calls are cancelled. Once fn has started it runs to
// completion.
package debounce

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the quiet period used by the dashboard.
const DefaultDelay = 300 * time.Millisecond

// Mode selects how keys share timers.
type Mode int

const (
	Shared Mode = iota
	Keyed
)

func (m Mode) String() string {
	if m == Keyed {
		return "keyed"
	}
	return "shared"
}

// ParseMode converts a config value into a Mode. Empty means Shared.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "shared":
		return Shared, nil
	case "keyed", "per-record":
		return Keyed, nil
	}
	return Shared, fmt.Errorf("unknown debounce mode %q", s)
}

type timer interface {
	Stop() bool
}

type afterFunc func(time.Duration, func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

type pending struct {
	timer timer
	fn    func()
}

// Gate schedules debounced calls. The zero value is not usable; use New.
type Gate struct {
	mu        sync.Mutex
	delay     time.Duration
	mode      Mode
	pending   map[string]*pending
	afterFunc afterFunc
}

// New returns a Gate. A non-positive delay uses DefaultDelay.
func New(delay time.Duration, mode Mode) *Gate {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Gate{
		delay:     delay,
		mode:      mode,
		pending:   make(map[string]*pending),
		afterFunc: realAfterFunc,
	}
}

// Delay returns the configured quiet period.
func (g *Gate) Delay() time.Duration { return g.delay }

// Mode returns the configured mode.
func (g *Gate) Mode() Mode { return g.mode }

// Call cancels the pending call for key (or the only pending call in Shared
// mode) and schedules fn after the delay.
func (g *Gate) Call(key string, fn func()) {
	if fn == nil {
		return
	}
	slot := g.slot(key)

	g.mu.Lock()
	defer g.mu.Unlock()

	if prev, ok := g.pending[slot]; ok {
		prev.timer.Stop()
	}
	p := &pending{fn: fn}
	p.timer = g.afterFunc(g.delay, func() { g.fire(slot, p) })
	g.pending[slot] = p
}

// Pending reports how many calls are scheduled and not yet fired.
func (g *Gate) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Stop cancels every scheduled call.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for slot, p := range g.pending {
		p.timer.Stop()
		delete(g.pending, slot)
	}
}

// Flush runs every scheduled call now, on the caller's goroutine.
func (g *Gate) Flush() {
	g.mu.Lock()
	fns := make([]func(), 0, len(g.pending))
	for slot, p := range g.pending {
		p.timer.Stop()
		fns = append(fns, p.fn)
		delete(g.pending, slot)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (g *Gate) fire(slot string, p *pending) {
	g.mu.Lock()
	// A newer Call may have replaced p after its timer already fired.
	if g.pending[slot] != p {
		g.mu.Unlock()
		return
	}
	delete(g.pending, slot)
	g.mu.Unlock()

	p.fn()
}

func (g *Gate) slot(key string) string {
	if g.mode == Shared {
		return ""
	}
	return key
}

// Func wraps fn so that each invocation goes through g, keyed by key(arg).
// Only the latest arguments within a quiet period reach fn.
func Func[T any](g *Gate, key func(T) string, fn func(T)) func(T) {
	return func(arg T) {
		k := ""
		if key != nil {
			k = key(arg)
		}
		g.Call(k, func() { fn(arg) })
	}
}
