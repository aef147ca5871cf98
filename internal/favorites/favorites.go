/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package favorites stores per-user saved collections: favorite songs,
// saved shows and saved devotionals. Collections are keyed by (user, kind)
// and every mutation is announced on the event bus so open clients refresh.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

var (
	// ErrUnknownKind rejects collection names outside the known set.
	ErrUnknownKind = errors.New("unknown saved-item kind")
	// ErrNotFound is returned when removing an item the user never saved.
	ErrNotFound = errors.New("saved item not found")
)

// Item is the API-facing shape of one saved entry.
type Item struct {
	ItemID  string          `json:"item_id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	SavedAt int64           `json:"saved_at"`
}

// Repository is the saved-items store.
type Repository interface {
	List(ctx context.Context, userID string, kind models.SavedItemKind) ([]Item, error)
	Add(ctx context.Context, userID string, kind models.SavedItemKind, itemID string, payload json.RawMessage) error
	Remove(ctx context.Context, userID string, kind models.SavedItemKind, itemID string) error
}

// GormRepository persists saved items in the application database.
type GormRepository struct {
	db  *gorm.DB
	bus *events.Bus
}

// NewGormRepository builds the database-backed repository.
func NewGormRepository(db *gorm.DB, bus *events.Bus) *GormRepository {
	return &GormRepository{db: db, bus: bus}
}

// List returns the user's collection, most recently saved first.
func (r *GormRepository) List(ctx context.Context, userID string, kind models.SavedItemKind) ([]Item, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	var rows []models.SavedItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list saved items: %w", err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ItemID:  row.ItemID,
			Payload: json.RawMessage(row.Payload),
			SavedAt: row.CreatedAt.Unix(),
		})
	}
	return items, nil
}

// Add saves an item. Saving the same item twice refreshes its payload
// instead of duplicating it.
func (r *GormRepository) Add(ctx context.Context, userID string, kind models.SavedItemKind, itemID string, payload json.RawMessage) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if itemID == "" {
		return errors.New("item id required")
	}

	row := models.SavedItem{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     kind,
		ItemID:   itemID,
		UserKind: userID + "|" + string(kind),
		Payload:  []byte(payload),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "user_kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}

	r.publishChange(userID, kind)
	return nil
}

// Remove deletes an item from the collection.
func (r *GormRepository) Remove(ctx context.Context, userID string, kind models.SavedItemKind, itemID string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}

	res := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND item_id = ?", userID, kind, itemID).
		Delete(&models.SavedItem{})
	if res.Error != nil {
		return fmt.Errorf("remove saved item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	r.publishChange(userID, kind)
	return nil
}

func (r *GormRepository) publishChange(userID string, kind models.SavedItemKind) {
	r.bus.Publish(events.EventFavoritesChanged, events.Payload{
		"user_id": userID,
		"kind":    string(kind),
	})
}
