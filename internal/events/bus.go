/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package events

import "sync"

// EventType enumerates event categories.
type EventType string

const (
	// EventNowPlayingTrack fires when the metadata feed yields a new track.
	EventNowPlayingTrack EventType = "nowplaying.track"
	// EventScheduleUpdate fires when the live show identity changes.
	EventScheduleUpdate EventType = "schedule.update"
	// EventFavoritesChanged fires on any saved-item mutation so other open
	// views re-read their collections.
	EventFavoritesChanged EventType = "favorites.changed"
	// Auth state transitions, mirroring the session provider callbacks.
	EventSignedIn    EventType = "auth.signed_in"
	EventSignedOut   EventType = "auth.signed_out"
	EventUserUpdated EventType = "auth.user_updated"
)

// Payload generic event payload.
type Payload map[string]any

// Event is a published payload tagged with its type, so a subscriber
// listening on several types can tell deliveries apart.
type Event struct {
	Type    EventType
	Payload Payload
}

// Subscriber receives events. The bus never closes a subscriber channel;
// after Unsubscribe it simply stops receiving.
type Subscriber chan Event

// Bus implements a simple in-process pubsub.
type Bus struct {
	mu   sync.RWMutex
	subs map[EventType][]Subscriber
}

// NewBus creates an event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]Subscriber)}
}

// Subscribe returns a single channel registered for every given event
// type, so one consumer loop can block on one receive.
func (b *Bus) Subscribe(eventTypes ...EventType) Subscriber {
	ch := make(Subscriber, 8)
	b.mu.Lock()
	for _, eventType := range eventTypes {
		b.subs[eventType] = append(b.subs[eventType], ch)
	}
	b.mu.Unlock()
	return ch
}

// Publish sends payload to subscribers. Slow subscribers drop events rather
// than block the publisher. The read lock is held across the sends so a
// concurrent Unsubscribe cannot pull a channel out from under them.
func (b *Bus) Publish(eventType EventType, payload Payload) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs[eventType] {
		select {
		case sub <- Event{Type: eventType, Payload: payload}:
		default:
		}
	}
}

// Unsubscribe removes the subscriber from every event type it was
// registered for. The channel is left open: closing it here would race
// the non-blocking sends in Publish.
func (b *Bus) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for eventType, subs := range b.subs {
		for i, candidate := range subs {
			if candidate == sub {
				b.subs[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}
