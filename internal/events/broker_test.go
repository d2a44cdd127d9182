package events_test

import (
	"testing"

	"github.com/calebmoore/people-api/internal/events"
	"github.com/calebmoore/people-api/internal/model/person"
)

func TestPublishDeliversInOrder(t *testing.T) {
	broker := events.NewBroker(4)
	_, ch := broker.Subscribe()

	broker.Publish(events.TypeCreated, person.Person{ID: 1})
	broker.Publish(events.TypeUpdated, person.Person{ID: 1})
	broker.Publish(events.TypeDeleted, person.Person{ID: 1})

	want := []events.Type{events.TypeCreated, events.TypeUpdated, events.TypeDeleted}
	for i, wantType := range want {
		select {
		case event := <-ch:
			if event.Type != wantType {
				t.Fatalf("event %d: got %s want %s", i, event.Type, wantType)
			}
			if event.At.IsZero() {
				t.Fatalf("event %d: missing timestamp", i)
			}
		default:
			t.Fatalf("expected event %d to be buffered", i)
		}
	}
}

func TestPublishReachesEverySubscriber(t *testing.T) {
	broker := events.NewBroker(1)
	_, first := broker.Subscribe()
	_, second := broker.Subscribe()

	broker.Publish(events.TypeCreated, person.Person{ID: 7})

	for i, ch := range []<-chan events.Event{first, second} {
		select {
		case event := <-ch:
			if event.Person.ID != 7 {
				t.Fatalf("subscriber %d: unexpected record %+v", i, event.Person)
			}
		default:
			t.Fatalf("subscriber %d: expected an event", i)
		}
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	broker := events.NewBroker(2)
	_, ch := broker.Subscribe()

	for i := 0; i < 5; i++ {
		broker.Publish(events.TypeCreated, person.Person{ID: i + 1})
	}

	if got := len(ch); got != 2 {
		t.Fatalf("expected 2 buffered events, got %d", got)
	}

	// The retained events are the oldest ones; the rest were dropped.
	event := <-ch
	if event.Person.ID != 1 {
		t.Fatalf("expected first event retained, got id %d", event.Person.ID)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	broker := events.NewBroker(1)
	id, ch := broker.Subscribe()

	if broker.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", broker.SubscriberCount())
	}

	broker.Unsubscribe(id)

	if broker.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", broker.SubscriberCount())
	}
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}

	// A second unsubscribe with the same id is a no-op.
	broker.Unsubscribe(id)
}
