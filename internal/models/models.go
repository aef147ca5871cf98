/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import "time"

// User represents an authenticated listener account.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `gorm:"type:varchar(128)" json:"name"`
	AvatarURL    string    `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SavedItemKind discriminates the three saved-item collections.
type SavedItemKind string

const (
	KindFavoriteSong    SavedItemKind = "favorite_songs"
	KindSavedShow       SavedItemKind = "saved_shows"
	KindSavedDevotional SavedItemKind = "saved_devotionals"
)

// Valid reports whether the kind is one of the known collections.
func (k SavedItemKind) Valid() bool {
	switch k {
	case KindFavoriteSong, KindSavedShow, KindSavedDevotional:
		return true
	}
	return false
}

// SavedItem is one entry in a user's saved collection. Payload carries the
// JSON snapshot of the item as the client saved it (track metadata, show
// card, devotional text), opaque to the server.
type SavedItem struct {
	ID        string        `gorm:"type:uuid;primaryKey"`
	UserID    string        `gorm:"type:uuid;index:idx_saved_items_user_kind;not null"`
	Kind      SavedItemKind `gorm:"type:varchar(32);index:idx_saved_items_user_kind;not null"`
	ItemID    string        `gorm:"type:varchar(256);uniqueIndex:idx_saved_items_identity;not null"`
	UserKind  string        `gorm:"type:varchar(300);uniqueIndex:idx_saved_items_identity;not null"` // userID|kind, keeps (user, kind, item) unique
	Payload   []byte        `gorm:"type:blob"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (SavedItem) TableName() string {
	return "saved_items"
}

// PlayedTrack is one row of the recent-tracks history mirror.
type PlayedTrack struct {
	ID       string    `gorm:"type:uuid;primaryKey"`
	TrackID  string    `gorm:"type:varchar(256);index"`
	Title    string    `gorm:"type:varchar(256)"`
	Artist   string    `gorm:"type:varchar(256)"`
	Artwork  string    `gorm:"type:varchar(512)"`
	PlayedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM.
func (PlayedTrack) TableName() string {
	return "played_tracks"
}

// All lists every model for migration.
func All() []any {
	return []any{&User{}, &SavedItem{}, &PlayedTrack{}}
}
