/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package events

import (
	"sync"
	"testing"
	"time"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventFavoritesChanged)

	bus.Publish(EventFavoritesChanged, Payload{"user_id": "u1", "kind": "favorite_songs"})

	select {
	case ev := <-sub:
		if ev.Type != EventFavoritesChanged {
			t.Fatalf("got event type %q", ev.Type)
		}
		if ev.Payload["user_id"] != "u1" {
			t.Fatalf("unexpected payload: %+v", ev.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventScheduleUpdate)

	bus.Publish(EventNowPlayingTrack, Payload{"title": "x"})

	select {
	case ev := <-sub:
		t.Fatalf("unexpected delivery: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscribeMergesEventTypes(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventNowPlayingTrack, EventScheduleUpdate)

	bus.Publish(EventNowPlayingTrack, Payload{"title": "x"})
	bus.Publish(EventScheduleUpdate, Payload{"current_id": "y"})

	first := <-sub
	second := <-sub
	if first.Type != EventNowPlayingTrack || second.Type != EventScheduleUpdate {
		t.Fatalf("got types %q then %q", first.Type, second.Type)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventSignedIn, EventSignedOut)
	bus.Unsubscribe(sub)

	bus.Publish(EventSignedIn, Payload{"user_id": "u1"})
	bus.Publish(EventSignedOut, Payload{"user_id": "u1"})

	select {
	case ev := <-sub:
		t.Fatalf("delivery after unsubscribe: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	bus := NewBus()
	_ = bus.Subscribe(EventNowPlayingTrack) // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			bus.Publish(EventNowPlayingTrack, Payload{"seq": i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

// Subscribers come and go while publishers fire, the way websocket clients
// disconnect mid-broadcast. Run with -race; the old close-on-unsubscribe
// behavior panicked here with "send on closed channel".
func TestConcurrentPublishAndUnsubscribe(t *testing.T) {
	bus := NewBus()
	stop := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					bus.Publish(EventNowPlayingTrack, Payload{"title": "x"})
				}
			}
		}()
	}

	for i := 0; i < 2000; i++ {
		sub := bus.Subscribe(EventNowPlayingTrack)
		bus.Unsubscribe(sub)
	}

	close(stop)
	wg.Wait()
}
