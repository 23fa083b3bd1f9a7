package cartControllers

import "sync"

// Event describes one cart mutation. ItemCount is the number of cart rows the
// user has after the change, which is what badge counters render.
type Event struct {
	UserID    string `json:"user_id"`
	Action    string `json:"action"` // "added", "updated", "removed", "cleared"
	ItemCount int    `json:"item_count"`
}

// Notifier is an explicit observer registry for cart changes, replacing the
// untyped page-wide broadcast the storefront previously relied on.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a buffered channel receiving future cart events.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, 16)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	delete(n.subs, ch)
	n.mu.Unlock()
	close(ch)
}

// Publish delivers the event to every subscriber. A subscriber with a full
// buffer misses the event rather than blocking the mutation path.
func (n *Notifier) Publish(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
