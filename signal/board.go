// Package signal provides a double-buffered, in-process signal board for
// tick-driven machines. Emits land in a hidden write buffer; Flip publishes
// them as the visible frame for the next round of polling. Behaviors
// typically connect during OnSetup and poll from BeforeUpdate, so every
// signal is seen at a deterministic point of the tick, never mid-update.
//
// Within one frame a signal either fired or did not; emitting the same
// signal twice before a Flip keeps the latest payload. Polling does not
// consume: every connection sees the full visible frame, and polling twice
// in one frame sees it twice.
package signal

import (
	"strings"
	"sync"
)

type slot struct {
	fired bool
	data  any
}

// Board owns the signals and the two frame buffers. Safe for concurrent
// use; Flip is typically called once per tick by the driving loop.
type Board struct {
	mu    sync.Mutex
	names []string // registration order, which is also delivery order
	index map[string]int
	front []slot // visible frame, read by Poll
	back  []slot // receiving frame, written by Emit
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{index: make(map[string]int)}
}

// Signal returns the signal with the given name, registering it on first
// use. Registration order fixes delivery order.
func (b *Board) Signal(name string) *Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i, ok := b.index[name]; ok {
		return &Signal{board: b, name: name, idx: i}
	}
	i := len(b.names)
	b.index[name] = i
	b.names = append(b.names, name)
	b.front = append(b.front, slot{})
	b.back = append(b.back, slot{})
	return &Signal{board: b, name: name, idx: i}
}

// Flip publishes the signals emitted since the previous Flip as the new
// visible frame and clears the write buffer.
func (b *Board) Flip() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.front, b.back = b.back, b.front
	for i := range b.back {
		b.back[i] = slot{}
	}
}

// Connect subscribes to the signals matching the given patterns. A pattern
// is an exact name, or a prefix wildcard with a trailing '*' such as
// "sensor.*". No patterns means no deliveries.
func (b *Board) Connect(patterns ...string) *Connection {
	return &Connection{board: b, patterns: patterns}
}

// Signal is a named emitter registered on a board.
type Signal struct {
	board *Board
	name  string
	idx   int
}

// Name returns the signal's registered name.
func (s *Signal) Name() string { return s.name }

// Emit marks the signal fired in the frame under construction, carrying
// data. It stays invisible until the next Flip; a repeat Emit in the same
// frame keeps the latest data.
func (s *Signal) Emit(data any) {
	s.board.mu.Lock()
	s.board.back[s.idx] = slot{fired: true, data: data}
	s.board.mu.Unlock()
}

// Connection is one subscriber's view of a board.
type Connection struct {
	board    *Board
	patterns []string
}

type delivery struct {
	name string
	data any
}

// Poll calls fn for every subscribed signal fired in the visible frame, in
// registration order. fn runs outside the board lock, so it may emit
// signals; those land in the next frame.
func (c *Connection) Poll(fn func(name string, data any)) {
	c.board.mu.Lock()
	var fired []delivery
	for i, s := range c.board.front {
		if !s.fired {
			continue
		}
		name := c.board.names[i]
		if c.matches(name) {
			fired = append(fired, delivery{name: name, data: s.data})
		}
	}
	c.board.mu.Unlock()

	for _, d := range fired {
		fn(d.name, d.data)
	}
}

func (c *Connection) matches(name string) bool {
	for _, p := range c.patterns {
		if rest, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(name, rest) {
				return true
			}
		} else if p == name {
			return true
		}
	}
	return false
}
