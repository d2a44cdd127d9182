package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/calebmoore/people-api/internal/model/person"
)

// Type labels the store mutation an event describes.
type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
)

// Event is one store mutation as delivered to feed subscribers.
type Event struct {
	Type   Type          `json:"type"`
	Person person.Person `json:"person"`
	At     time.Time     `json:"at"`
}

// Broker fans store mutations out to subscribers. Delivery is best effort:
// a subscriber that stops draining its channel loses events instead of
// blocking the mutating request.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	buffer int
}

// NewBroker returns a Broker whose subscriber channels hold up to buffer
// undelivered events.
func NewBroker(buffer int) *Broker {
	if buffer < 1 {
		buffer = 1
	}
	return &Broker{
		subs:   make(map[string]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber and returns its id together with the
// channel events arrive on. The caller must Unsubscribe with the same id
// when done.
func (b *Broker) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	b.subs[id] = ch
	b.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers an event to every current subscriber without blocking.
func (b *Broker) Publish(t Type, p person.Person) {
	event := Event{Type: t, Person: p, At: time.Now().UTC()}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Subscriber is not keeping up; drop the event for it.
		}
	}
}

// SubscriberCount reports how many subscribers are registered.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
