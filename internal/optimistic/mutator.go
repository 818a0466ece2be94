package optimistic

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/five82/mamba/internal/remote"
	"github.com/five82/mamba/internal/state"
)

// Phase is the position of a mutation in its lifecycle.
type Phase int

const (
	Idle Phase = iota
	Pending
	Confirmed
	Reverted
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Confirmed:
		return "confirmed"
	case Reverted:
		return "reverted"
	default:
		return "idle"
	}
}

// Event is delivered to the Observer on every phase change.
type Event struct {
	Mutation Mutation
	Phase    Phase
	Err      error
}

// Observer is told about phase changes, typically to re-render.
type Observer interface {
	MutationChanged(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) MutationChanged(ev Event) { f(ev) }

// Sender delivers commands to the remote store.
type Sender interface {
	SendCommand(ctx context.Context, cmd remote.Command) error
}

// Outcome is the terminal result of Do.
type Outcome struct {
	Phase Phase
	Err   error
}

// Mutator runs mutations against a Store.
type Mutator struct {
	store    *state.Store
	sender   Sender
	observer Observer
	logger   *log.Logger
	locks    keyedLocks
}

// New returns a Mutator. observer and logger may be nil.
func New(store *state.Store, sender Sender, observer Observer, logger *log.Logger) *Mutator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Mutator{
		store:    store,
		sender:   sender,
		observer: observer,
		logger:   logger,
	}
}

// Apply performs the local half of m.
func (mu *Mutator) Apply(m Mutation) error {
	if m == nil {
		return errors.New("mutation is nil")
	}
	return m.apply(mu.store)
}

// Revert undoes a previously applied m.
func (mu *Mutator) Revert(m Mutation) {
	if m == nil {
		return
	}
	m.revert(mu.store)
}

// Do applies m, sends its command and then confirms or reverts it. When the
// local apply fails nothing is sent and the outcome stays Idle.
func (mu *Mutator) Do(ctx context.Context, m Mutation) Outcome {
	if m == nil {
		return Outcome{Phase: Idle, Err: errors.New("mutation is nil")}
	}
	unlock, err := mu.locks.lock(ctx, m.Key())
	if err != nil {
		return Outcome{Phase: Idle, Err: err}
	}
	defer unlock()

	if err := mu.Apply(m); err != nil {
		mu.logger.Debug("mutation not applied", "key", m.Key(), "err", err)
		return Outcome{Phase: Idle, Err: err}
	}
	mu.notify(Event{Mutation: m, Phase: Pending})

	cmd := m.Command()
	if err := mu.sender.SendCommand(ctx, cmd); err != nil {
		mu.Revert(m)
		mu.logger.Warn("mutation reverted", "action", cmd.Action(), "key", m.Key(), "err", err)
		mu.notify(Event{Mutation: m, Phase: Reverted, Err: err})
		return Outcome{Phase: Reverted, Err: err}
	}

	m.confirm(mu.store)
	mu.logger.Info("mutation confirmed", "action", cmd.Action(), "key", m.Key())
	mu.notify(Event{Mutation: m, Phase: Confirmed})
	return Outcome{Phase: Confirmed}
}

func (mu *Mutator) notify(ev Event) {
	if mu.observer != nil {
		mu.observer.MutationChanged(ev)
	}
}
