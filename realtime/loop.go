package realtime

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/pushfsm"
)

const defaultTickRate = 16667 * time.Microsecond // 60 ticks per second

// Entity is one simulated actor: an identity, the stack holding its state,
// and an opaque payload handed to its behaviors as Context.Data each tick.
type Entity struct {
	// ID names the entity; Spawn assigns a UUID when empty.
	ID string
	// Stack holds the entity's position in the machine; Spawn creates a
	// fresh one when nil. A fresh stack enters state 0 on the entity's
	// first tick.
	Stack *pushfsm.StateStack
	// Data is passed through to behavior hooks untouched.
	Data any
}

// TickRecorder observes completed ticks. The metrics package implements it
// for Prometheus; tests implement it inline.
type TickRecorder interface {
	RecordTick(seq uint64, entities int, took time.Duration)
}

// Config configures a Loop.
type Config struct {
	// TickRate is the fixed interval between ticks driven by Run.
	// Defaults to 16.667ms, 60 ticks per second.
	TickRate time.Duration
	// Logger receives loop lifecycle and entity events. Nil disables
	// logging.
	Logger *zap.SugaredLogger
	// Recorder, when set, is called once per completed tick.
	Recorder TickRecorder
}

// Loop drives a population of entities against one shared handler by
// serial rebinding: per tick, each entity's stack is bound, updated and
// unbound in turn. Entities may be spawned and removed at any time, also
// from behavior hooks mid-tick; changes take effect on the next tick.
//
// Ticks are strictly serial. Run drives them from one goroutine; callers
// of Step must not overlap it with a concurrent Run or Step.
type Loop struct {
	handler  *pushfsm.Handler
	tickRate time.Duration
	logger   *zap.SugaredLogger
	recorder TickRecorder

	mu       sync.Mutex
	entities []*Entity
	byID     map[string]*Entity
	seq      uint64
}

// NewLoop creates a loop around handler. A nil handler is a programming
// error and panics.
func NewLoop(handler *pushfsm.Handler, cfg Config) *Loop {
	if handler == nil {
		panic("realtime: NewLoop with nil handler")
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaultTickRate
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Loop{
		handler:  handler,
		tickRate: cfg.TickRate,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		byID:     make(map[string]*Entity),
	}
}

// Spawn adds an entity to the population, filling in a UUID and a fresh
// stack as needed. The entity first ticks, and so first enters state 0,
// on the next Step. Spawning an ID twice is an error.
func (l *Loop) Spawn(e Entity) (*Entity, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Stack == nil {
		e.Stack = l.handler.NewStack()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[e.ID]; ok {
		return nil, fmt.Errorf("realtime: entity %q already spawned", e.ID)
	}
	ent := &e
	l.byID[e.ID] = ent
	l.entities = append(l.entities, ent)
	l.logger.Debugw("entity spawned", "entity", e.ID)
	return ent, nil
}

// Remove drops the entity with the given ID, reporting whether it existed.
// An entity removed mid-tick still finishes that tick.
func (l *Loop) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.byID[id]; !ok {
		return false
	}
	delete(l.byID, id)
	for i, e := range l.entities {
		if e.ID == id {
			l.entities = append(l.entities[:i], l.entities[i+1:]...)
			break
		}
	}
	l.logger.Debugw("entity removed", "entity", id)
	return true
}

// Get returns the entity with the given ID.
func (l *Loop) Get(id string) (*Entity, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.byID[id]
	return e, ok
}

// Len returns the population size.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entities)
}

// Seq returns the number of completed ticks.
func (l *Loop) Seq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}

// Entities returns a snapshot of the population.
func (l *Loop) Entities() []*Entity {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Entity, len(l.entities))
	copy(out, l.entities)
	return out
}

// Step runs one tick across the whole population with the given delta.
// Behaviors see a Context carrying the tick sequence number, delta, and
// their entity's Data.
func (l *Loop) Step(delta time.Duration) {
	start := time.Now()

	l.mu.Lock()
	l.seq++
	seq := l.seq
	entities := make([]*Entity, len(l.entities))
	copy(entities, l.entities)
	l.mu.Unlock()

	for _, e := range entities {
		l.drive(e, pushfsm.Context{Seq: seq, Delta: delta, Data: e.Data})
	}

	if l.recorder != nil {
		l.recorder.RecordTick(seq, len(entities), time.Since(start))
	}
}

// drive runs one entity's tick. A panicking behavior costs that entity the
// rest of its tick, is logged, and leaves the handler unbound for the next
// entity.
func (l *Loop) drive(e *Entity, ctx pushfsm.Context) {
	defer func() {
		if r := recover(); r != nil {
			if l.handler.Bound() {
				l.handler.Unbind()
			}
			l.logger.Errorw("behavior panicked, entity skipped",
				"entity", e.ID, "seq", ctx.Seq, "panic", r)
		}
	}()
	l.handler.Bind(e.Stack, ctx)
	l.handler.Update(ctx)
	l.handler.Unbind()
}

// Run ticks the population at the configured rate until ctx is canceled,
// measuring each tick's delta from the ticker's clock. It blocks; drive it
// from its own goroutine when the caller has other work. Returns nil after
// a clean shutdown.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()

	l.logger.Infow("loop started", "tick_rate", l.tickRate)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Infow("loop stopped", "ticks", l.Seq())
			return nil
		case now := <-ticker.C:
			l.Step(now.Sub(last))
			last = now
		}
	}
}
