// Package events fans ledger events out to the websocket clients that
// registered to receive them.
package events

import (
	"fmt"
	"sync"
)

// messageBuffer is how many events a slow receiver can fall behind before
// events are dropped for it.
const messageBuffer = 100

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	mu      sync.RWMutex
	m       map[string]chan string
	dropped map[string]int
}

// New constructs an events value for registering and receiving events.
func New() *Events {
	return &Events{
		m:       make(map[string]chan string),
		dropped: make(map[string]int),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		delete(evt.dropped, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) <-chan string {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	if ch, exists := evt.m[id]; exists {
		return ch
	}

	ch := make(chan string, messageBuffer)
	evt.m[id] = ch

	return ch
}

// Release closes and removes the channel that was provided by
// the call to Acquire. It returns the number of events dropped for
// the receiver.
func (evt *Events) Release(id string) (int, error) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return 0, fmt.Errorf("id %q does not exist", id)
	}

	dropped := evt.dropped[id]

	delete(evt.m, id)
	delete(evt.dropped, id)
	close(ch)

	return dropped, nil
}

// Count returns the number of registered receivers.
func (evt *Events) Count() int {
	evt.mu.RLock()
	defer evt.mu.RUnlock()

	return len(evt.m)
}

// Send signals a message to every registered channel. Send will not block
// waiting for a receiver on any given channel.
func (evt *Events) Send(s string) {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		select {
		case ch <- s:
		default:
			evt.dropped[id]++
		}
	}
}
