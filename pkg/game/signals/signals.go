// Package signals carries room commands to a handler one at a time
package signals

import (
	"strings"
	"sync"

	"roomgen/pkg/engine/input"
)

// Signal is a command understood by the room generator
type Signal int

// Signals
const (
	Generate Signal = iota
	Clear
	DoorsDown
	DoorsUp
	DoorsToggle
)

var names = []string{"generate", "clear", "doors_down", "doors_up", "doors_toggle"}

// String returns the signal name
func (s Signal) String() string {
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ParseSignal parses a signal name case-insensitively
func ParseSignal(v string) (Signal, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for i, n := range names {
		if n == v {
			return Signal(i), true
		}
	}
	return Generate, false
}

// All returns every signal in declaration order
func All() []Signal {
	return []Signal{Generate, Clear, DoorsDown, DoorsUp, DoorsToggle}
}

// ForAction maps an operator action to its signal. Quit and unbound
// actions have none.
func ForAction(a input.Action) (Signal, bool) {
	switch a {
	case input.ActionGenerate:
		return Generate, true
	case input.ActionClear:
		return Clear, true
	case input.ActionDoorsDown:
		return DoorsDown, true
	case input.ActionDoorsUp:
		return DoorsUp, true
	case input.ActionDoorsToggle:
		return DoorsToggle, true
	}
	return Generate, false
}

// Handler reacts to signals
type Handler interface {
	Handle(s Signal)
}

// HandlerFunc adapts a function to Handler
type HandlerFunc func(s Signal)

// Handle calls f(s)
func (f HandlerFunc) Handle(s Signal) {
	f(s)
}

// Bus serialises delivery to a Handler. A Send arriving while another is
// being handled is queued and delivered by the goroutine already inside
// the bus, so the handler never runs concurrently or reentrantly.
// A Generate already waiting in the queue absorbs further Generates.
type Bus struct {
	mu      sync.Mutex
	handler Handler
	busy    bool
	pending []Signal
	handled int
}

// NewBus creates a bus delivering to h
func NewBus(h Handler) *Bus {
	return &Bus{handler: h}
}

// Send delivers s, or queues it if a delivery is in progress
func (b *Bus) Send(s Signal) {
	b.mu.Lock()
	if b.busy {
		b.enqueue(s)
		b.mu.Unlock()
		return
	}
	b.busy = true
	b.mu.Unlock()

	for {
		b.handler.Handle(s)

		b.mu.Lock()
		b.handled++
		if len(b.pending) == 0 {
			b.busy = false
			b.mu.Unlock()
			return
		}
		s = b.pending[0]
		b.pending = b.pending[1:]
		b.mu.Unlock()
	}
}

// enqueue must be called with mu held. A Generate directly behind another
// pending Generate is dropped.
func (b *Bus) enqueue(s Signal) {
	if s == Generate && len(b.pending) > 0 && b.pending[len(b.pending)-1] == Generate {
		return
	}
	b.pending = append(b.pending, s)
}

// Handled returns how many signals have been delivered
func (b *Bus) Handled() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handled
}
