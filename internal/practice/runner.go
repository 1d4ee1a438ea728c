package practice

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/progress"
)

// Trigger calls a function periodically once armed.
type Trigger interface {
	Arm(fn func()) error
	// Disarm stops further calls. It may wait for an in-flight call.
	Disarm()
}

// schedulerTrigger fires through a gocron scheduler.
type schedulerTrigger struct {
	interval time.Duration
	sched    *gocron.Scheduler
}

// NewSchedulerTrigger returns a Trigger that fires every interval.
func NewSchedulerTrigger(interval time.Duration) Trigger {
	return &schedulerTrigger{interval: interval}
}

func (t *schedulerTrigger) Arm(fn func()) error {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if _, err := s.Every(t.interval).WaitForSchedule().Do(fn); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	s.StartAsync()
	t.sched = s
	return nil
}

func (t *schedulerTrigger) Disarm() {
	if t.sched != nil {
		t.sched.Stop()
	}
}

// Snapshot is a consistent read of a running session.
type Snapshot struct {
	Active  bool
	Pointer int
	Seconds int
	Total   int
	Card    deck.Card
	HasCard bool
}

// Runner drives a Session from a Trigger for surfaces without their own
// event loop. All session access goes through mu.
type Runner struct {
	mu         sync.Mutex
	session    *Session
	newTrigger func() Trigger
	trigger    Trigger
	done       chan struct{}
	onTick     func(Snapshot)
}

// NewRunner wraps session. newTrigger builds one Trigger per Start; nil
// uses a one-second scheduler trigger. onTick, if set, is called after
// every tick that changed state.
func NewRunner(session *Session, newTrigger func() Trigger, onTick func(Snapshot)) *Runner {
	if newTrigger == nil {
		newTrigger = func() Trigger { return NewSchedulerTrigger(time.Second) }
	}
	return &Runner{
		session:    session,
		newTrigger: newTrigger,
		onTick:     onTick,
	}
}

// Start (re)starts the session and arms exactly one trigger. A previous
// trigger is disarmed. The session stops when ctx is cancelled.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	old, oldDone := r.trigger, r.done

	r.session.Start(ctx)
	gen := r.session.Generation()
	trig := r.newTrigger()
	if err := trig.Arm(func() { r.tick(gen) }); err != nil {
		r.session.Stop(ctx)
		r.trigger, r.done = nil, nil
		r.mu.Unlock()
		r.release(old, oldDone)
		return err
	}
	done := make(chan struct{})
	r.trigger, r.done = trig, done
	r.mu.Unlock()

	r.release(old, oldDone)

	go func() {
		select {
		case <-ctx.Done():
			r.stopGeneration(context.WithoutCancel(ctx), gen)
		case <-done:
		}
	}()
	return nil
}

// Stop returns the session to Idle. Once Stop returns no tick can change
// session state until the next Start.
func (r *Runner) Stop(ctx context.Context) {
	r.mu.Lock()
	old, oldDone := r.trigger, r.done
	r.trigger, r.done = nil, nil
	r.session.Stop(ctx)
	r.mu.Unlock()

	r.release(old, oldDone)
}

func (r *Runner) stopGeneration(ctx context.Context, gen uint64) {
	r.mu.Lock()
	if r.session.Generation() != gen {
		r.mu.Unlock()
		return
	}
	old, oldDone := r.trigger, r.done
	r.trigger, r.done = nil, nil
	r.session.Stop(ctx)
	r.mu.Unlock()

	r.release(old, oldDone)
}

// release disarms a trigger outside mu, since Disarm may wait on a tick
// that is itself waiting for mu.
func (r *Runner) release(trig Trigger, done chan struct{}) {
	if done != nil {
		close(done)
	}
	if trig != nil {
		trig.Disarm()
	}
}

func (r *Runner) tick(gen uint64) {
	r.mu.Lock()
	changed := r.session.Tick(gen)
	snap := r.snapshot()
	r.mu.Unlock()

	if changed && r.onTick != nil {
		r.onTick(snap)
	}
}

// Mark records status for the current card and advances.
func (r *Runner) Mark(ctx context.Context, status progress.Status) (deck.Card, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session.Mark(ctx, status)
}

// Snapshot returns the current session state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

func (r *Runner) snapshot() Snapshot {
	card, ok := r.session.Current()
	return Snapshot{
		Active:  r.session.Active(),
		Pointer: r.session.Pointer(),
		Seconds: r.session.Seconds(),
		Total:   len(r.session.Cards()),
		Card:    card,
		HasCard: ok,
	}
}
