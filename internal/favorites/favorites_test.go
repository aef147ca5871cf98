/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

func testRepos(t *testing.T) map[string]Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return map[string]Repository{
		"gorm":   NewGormRepository(db, events.NewBus()),
		"memory": NewMemoryRepository(events.NewBus()),
	}
}

func TestAddListRemove(t *testing.T) {
	for name, repo := range testRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			payload := json.RawMessage(`{"title":"Great Is Thy Faithfulness"}`)

			if err := repo.Add(ctx, "u1", models.KindFavoriteSong, "song-1", payload); err != nil {
				t.Fatalf("add: %v", err)
			}
			if err := repo.Add(ctx, "u1", models.KindFavoriteSong, "song-2", nil); err != nil {
				t.Fatalf("add second: %v", err)
			}

			items, err := repo.List(ctx, "u1", models.KindFavoriteSong)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(items) != 2 {
				t.Fatalf("got %d items, want 2", len(items))
			}

			if err := repo.Remove(ctx, "u1", models.KindFavoriteSong, "song-1"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			items, err = repo.List(ctx, "u1", models.KindFavoriteSong)
			if err != nil {
				t.Fatalf("list after remove: %v", err)
			}
			if len(items) != 1 || items[0].ItemID != "song-2" {
				t.Fatalf("unexpected items after remove: %+v", items)
			}
		})
	}
}

func TestAddIsIdempotentPerItem(t *testing.T) {
	for name, repo := range testRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := repo.Add(ctx, "u1", models.KindSavedShow, "show-1", json.RawMessage(`{"v":1}`)); err != nil {
				t.Fatalf("add: %v", err)
			}
			if err := repo.Add(ctx, "u1", models.KindSavedShow, "show-1", json.RawMessage(`{"v":2}`)); err != nil {
				t.Fatalf("re-add: %v", err)
			}

			items, err := repo.List(ctx, "u1", models.KindSavedShow)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(items) != 1 {
				t.Fatalf("got %d items, want 1", len(items))
			}
			if string(items[0].Payload) != `{"v":2}` {
				t.Fatalf("payload not refreshed: %s", items[0].Payload)
			}
		})
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	for name, repo := range testRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := repo.Add(ctx, "u1", models.KindFavoriteSong, "item-1", nil); err != nil {
				t.Fatalf("add song: %v", err)
			}
			if err := repo.Add(ctx, "u1", models.KindSavedDevotional, "item-1", nil); err != nil {
				t.Fatalf("add devotional: %v", err)
			}
			if err := repo.Add(ctx, "u2", models.KindFavoriteSong, "item-1", nil); err != nil {
				t.Fatalf("add for other user: %v", err)
			}

			items, err := repo.List(ctx, "u1", models.KindFavoriteSong)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(items) != 1 {
				t.Fatalf("collections bleed together: %+v", items)
			}
		})
	}
}

func TestRemoveMissing(t *testing.T) {
	for name, repo := range testRepos(t) {
		t.Run(name, func(t *testing.T) {
			err := repo.Remove(context.Background(), "u1", models.KindFavoriteSong, "never-saved")
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestUnknownKindRejected(t *testing.T) {
	for name, repo := range testRepos(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := repo.List(ctx, "u1", "playlists"); !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("list: got %v, want ErrUnknownKind", err)
			}
			if err := repo.Add(ctx, "u1", "playlists", "x", nil); !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("add: got %v, want ErrUnknownKind", err)
			}
			if err := repo.Remove(ctx, "u1", "playlists", "x"); !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("remove: got %v, want ErrUnknownKind", err)
			}
		})
	}
}

func TestMutationsPublishChange(t *testing.T) {
	bus := events.NewBus()
	sub := bus.Subscribe(events.EventFavoritesChanged)
	repo := NewMemoryRepository(bus)
	ctx := context.Background()

	if err := repo.Add(ctx, "u1", models.KindFavoriteSong, "song-1", nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	select {
	case ev := <-sub:
		if ev.Payload["user_id"] != "u1" || ev.Payload["kind"] != string(models.KindFavoriteSong) {
			t.Fatalf("unexpected payload: %v", ev.Payload)
		}
	default:
		t.Fatal("add published no change event")
	}

	if err := repo.Remove(ctx, "u1", models.KindFavoriteSong, "song-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	select {
	case <-sub:
	default:
		t.Fatal("remove published no change event")
	}
}
