package signals

import (
	"sync"
	"testing"

	"roomgen/pkg/engine/input"
)

func TestParseSignal(t *testing.T) {
	for _, s := range All() {
		got, ok := ParseSignal(s.String())
		if !ok || got != s {
			t.Errorf("ParseSignal(%q) = (%v, %v), want (%v, true)", s.String(), got, ok, s)
		}
	}
	if _, ok := ParseSignal("explode"); ok {
		t.Error("ParseSignal(explode) ok = true")
	}
	if got, ok := ParseSignal(" Doors_Toggle "); !ok || got != DoorsToggle {
		t.Errorf("ParseSignal is not case-insensitive: (%v, %v)", got, ok)
	}
}

func TestForAction(t *testing.T) {
	if s, ok := ForAction(input.ActionDoorsToggle); !ok || s != DoorsToggle {
		t.Errorf("ForAction(toggle) = (%v, %v)", s, ok)
	}
	if _, ok := ForAction(input.ActionQuit); ok {
		t.Error("ForAction(quit) ok = true")
	}
}

func TestBus_DeliversInOrder(t *testing.T) {
	var got []Signal
	bus := NewBus(HandlerFunc(func(s Signal) { got = append(got, s) }))
	for _, s := range []Signal{Generate, DoorsDown, Clear} {
		bus.Send(s)
	}
	if len(got) != 3 || got[0] != Generate || got[1] != DoorsDown || got[2] != Clear {
		t.Errorf("delivered %v", got)
	}
	if bus.Handled() != 3 {
		t.Errorf("Handled = %d, want 3", bus.Handled())
	}
}

func TestBus_QueuesReentrantSends(t *testing.T) {
	var bus *Bus
	var got []Signal
	depth := 0
	bus = NewBus(HandlerFunc(func(s Signal) {
		depth++
		if depth > 1 {
			t.Errorf("handler reentered while handling %v", s)
		}
		got = append(got, s)
		if s == Generate && len(got) == 1 {
			bus.Send(DoorsDown)
			bus.Send(Generate)
			bus.Send(Generate)
		}
		depth--
	}))

	bus.Send(Generate)

	want := []Signal{Generate, DoorsDown, Generate}
	if len(got) != len(want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivered %v, want %v", got, want)
		}
	}
}

func TestBus_GenerateAfterClearKept(t *testing.T) {
	var bus *Bus
	var got []Signal
	bus = NewBus(HandlerFunc(func(s Signal) {
		got = append(got, s)
		if len(got) == 1 {
			bus.Send(Generate)
			bus.Send(Clear)
			bus.Send(Generate)
		}
	}))

	bus.Send(DoorsDown)

	want := []Signal{DoorsDown, Generate, Clear, Generate}
	if len(got) != len(want) {
		t.Fatalf("delivered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivered %v, want %v", got, want)
		}
	}
}

func TestBus_ConcurrentSendsNeverOverlap(t *testing.T) {
	var mu sync.Mutex
	inside := 0
	overlap := false
	bus := NewBus(HandlerFunc(func(Signal) {
		mu.Lock()
		inside++
		if inside > 1 {
			overlap = true
		}
		mu.Unlock()

		mu.Lock()
		inside--
		mu.Unlock()
	}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Send(DoorsToggle)
		}()
	}
	wg.Wait()

	if overlap {
		t.Error("handler ran concurrently")
	}
	if bus.Handled() != 50 {
		t.Errorf("Handled = %d, want 50", bus.Handled())
	}
}
