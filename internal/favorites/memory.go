/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package favorites

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

type memoryKey struct {
	userID string
	kind   models.SavedItemKind
}

// MemoryRepository keeps saved items in process memory. Used alongside the
// mock session provider when no database is wired up.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[memoryKey][]Item
	bus   *events.Bus
	now   func() time.Time
}

// NewMemoryRepository builds the in-memory repository.
func NewMemoryRepository(bus *events.Bus) *MemoryRepository {
	return &MemoryRepository{
		items: make(map[memoryKey][]Item),
		bus:   bus,
		now:   time.Now,
	}
}

func (r *MemoryRepository) List(ctx context.Context, userID string, kind models.SavedItemKind) ([]Item, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.items[memoryKey{userID, kind}]
	out := make([]Item, len(stored))
	// newest first, matching the database ordering
	for i, item := range stored {
		out[len(stored)-1-i] = item
	}
	return out, nil
}

func (r *MemoryRepository) Add(ctx context.Context, userID string, kind models.SavedItemKind, itemID string, payload json.RawMessage) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	r.mu.Lock()
	key := memoryKey{userID, kind}
	stored := r.items[key]
	replaced := false
	for i := range stored {
		if stored[i].ItemID == itemID {
			stored[i].Payload = payload
			replaced = true
			break
		}
	}
	if !replaced {
		stored = append(stored, Item{ItemID: itemID, Payload: payload, SavedAt: r.now().Unix()})
	}
	r.items[key] = stored
	r.mu.Unlock()

	r.bus.Publish(events.EventFavoritesChanged, events.Payload{"user_id": userID, "kind": string(kind)})
	return nil
}

func (r *MemoryRepository) Remove(ctx context.Context, userID string, kind models.SavedItemKind, itemID string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	r.mu.Lock()
	key := memoryKey{userID, kind}
	stored := r.items[key]
	found := false
	for i := range stored {
		if stored[i].ItemID == itemID {
			stored = append(stored[:i], stored[i+1:]...)
			found = true
			break
		}
	}
	r.items[key] = stored
	r.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	r.bus.Publish(events.EventFavoritesChanged, events.Payload{"user_id": userID, "kind": string(kind)})
	return nil
}
