// Package events carries the payload-free runtime signals that drive level
// escalation.
package events

// Signal identifies a runtime event.
type Signal int

const (
	// CountdownOver fires when the level timer runs out.
	CountdownOver Signal = iota
	// DoorHit fires when a blast reaches the revealed door.
	DoorHit
)

func (s Signal) String() string {
	switch s {
	case CountdownOver:
		return "CountdownOver"
	case DoorHit:
		return "DoorHit"
	default:
		return "Unknown"
	}
}

type subscription struct {
	id int
	fn func()
}

// Bus dispatches signals to subscribers.
//
// Architecture:
//   - Single-threaded, synchronous dispatch
//   - Handlers run in registration order
//   - Handlers may subscribe or unsubscribe while a signal is being dispatched;
//     changes take effect from the next Publish
type Bus struct {
	handlers map[Signal][]subscription
	nextID   int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Signal][]subscription)}
}

// Subscribe registers fn for sig and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(sig Signal, fn func()) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers[sig] = append(b.handlers[sig], subscription{id: id, fn: fn})

	return func() {
		subs := b.handlers[sig]
		for i, s := range subs {
			if s.id == id {
				// Copy so an in-flight Publish keeps its snapshot
				next := make([]subscription, 0, len(subs)-1)
				next = append(next, subs[:i]...)
				next = append(next, subs[i+1:]...)
				b.handlers[sig] = next
				return
			}
		}
	}
}

// Publish delivers sig to every current subscriber and returns how many ran.
func (b *Bus) Publish(sig Signal) int {
	subs := b.handlers[sig]
	for _, s := range subs {
		s.fn()
	}
	return len(subs)
}

// HandlerCount returns the number of subscribers for sig.
func (b *Bus) HandlerCount(sig Signal) int {
	return len(b.handlers[sig])
}
