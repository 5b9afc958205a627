package netsim

import (
	"testing"
	"time"

	"github.com/bassosimone/netsim/internal"
)

func TestSimulatorOrdering(t *testing.T) {
	t.Run("events fire in time order", func(t *testing.T) {
		sim := NewSimulator(&internal.NullLogger{})
		var order []int

		sim.AddEvent(EventFunc(func() { order = append(order, 3) }), 30*time.Millisecond)
		sim.AddEvent(EventFunc(func() { order = append(order, 1) }), 10*time.Millisecond)
		sim.AddEvent(EventFunc(func() { order = append(order, 2) }), 20*time.Millisecond)
		sim.Run()

		want := []int{1, 2, 3}
		for i, v := range want {
			if order[i] != v {
				t.Fatalf("order mismatch: got %v, want %v", order, want)
			}
		}
	})

	t.Run("same-time events fire in enqueue order", func(t *testing.T) {
		sim := NewSimulator(&internal.NullLogger{})
		var order []int

		for i := 0; i < 5; i++ {
			i := i
			sim.AddEvent(EventFunc(func() { order = append(order, i) }), 10*time.Millisecond)
		}
		sim.Run()

		for i := 0; i < 5; i++ {
			if order[i] != i {
				t.Fatalf("FIFO-on-ties violated: got %v", order)
			}
		}
	})

	t.Run("Now advances to each popped event's deadline", func(t *testing.T) {
		sim := NewSimulator(&internal.NullLogger{})
		var seen []time.Duration

		sim.AddEvent(EventFunc(func() { seen = append(seen, sim.Now()) }), 5*time.Millisecond)
		sim.AddEvent(EventFunc(func() { seen = append(seen, sim.Now()) }), 15*time.Millisecond)
		sim.Run()

		if seen[0] != 5*time.Millisecond || seen[1] != 15*time.Millisecond {
			t.Fatalf("unexpected virtual clock values: %v", seen)
		}
	})

	t.Run("negative dt is a programming error", func(t *testing.T) {
		sim := NewSimulator(&internal.NullLogger{})
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic for negative dt")
			}
		}()
		sim.AddEvent(EventFunc(func() {}), -time.Millisecond)
	})

	t.Run("an event can schedule further events", func(t *testing.T) {
		sim := NewSimulator(&internal.NullLogger{})
		count := 0
		var recur func()
		recur = func() {
			count++
			if count < 3 {
				sim.AddEvent(EventFunc(recur), time.Millisecond)
			}
		}
		sim.AddEvent(EventFunc(recur), 0)
		sim.Run()

		if count != 3 {
			t.Fatalf("expected 3 invocations, got %d", count)
		}
	})
}
