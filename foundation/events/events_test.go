package events_test

import (
	"testing"

	"github.com/powledger/ledger/foundation/events"
)

func Test_Events(t *testing.T) {
	evts := events.New()

	a := evts.Acquire("a")
	b := evts.Acquire("b")

	if evts.Acquire("a") != a {
		t.Fatalf("Should get back the same channel for the same id.")
	}

	evts.Send("state: MineBlock: MINING: started")

	for name, ch := range map[string]<-chan string{"a": a, "b": b} {
		if got := <-ch; got != "state: MineBlock: MINING: started" {
			t.Fatalf("Should receive the event on %s, got %q.", name, got)
		}
	}

	// Fill the buffer for b and then some.
	for range 105 {
		evts.Send("tick")
	}

	dropped, err := evts.Release("b")
	if err != nil {
		t.Fatalf("Should be able to release b: %v", err)
	}
	if dropped != 5 {
		t.Fatalf("Should report 5 dropped events, got %d.", dropped)
	}

	if _, err := evts.Release("b"); err == nil {
		t.Fatalf("Should fail to release b twice.")
	}

	evts.Shutdown()
	if evts.Count() != 0 {
		t.Fatalf("Should have no receivers after shutdown.")
	}

	// Ranging only ends once the channel is closed.
	for range a {
	}
}
