/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/praisefmmedia/praisefm_companion/internal/auth"
	"github.com/praisefmmedia/praisefm_companion/internal/favorites"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

type favoriteAddRequest struct {
	ItemID  string          `json:"item_id"`
	Payload json.RawMessage `json:"payload"`
}

func (a *API) handleFavoritesList(w http.ResponseWriter, r *http.Request) {
	claims, kind, ok := a.favoritesScope(w, r)
	if !ok {
		return
	}

	items, err := a.favorites.List(r.Context(), claims.UserID, kind)
	if err != nil {
		a.logger.Error().Err(err).Str("kind", string(kind)).Msg("list favorites failed")
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if items == nil {
		items = []favorites.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"kind": kind, "items": items})
}

func (a *API) handleFavoritesAdd(w http.ResponseWriter, r *http.Request) {
	claims, kind, ok := a.favoritesScope(w, r)
	if !ok {
		return
	}

	var req favoriteAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "item_id required")
		return
	}

	if err := a.favorites.Add(r.Context(), claims.UserID, kind, req.ItemID, req.Payload); err != nil {
		a.logger.Error().Err(err).Str("kind", string(kind)).Msg("add favorite failed")
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

func (a *API) handleFavoritesRemove(w http.ResponseWriter, r *http.Request) {
	claims, kind, ok := a.favoritesScope(w, r)
	if !ok {
		return
	}

	itemID := chi.URLParam(r, "itemID")
	err := a.favorites.Remove(r.Context(), claims.UserID, kind, itemID)
	switch {
	case errors.Is(err, favorites.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not saved")
	case err != nil:
		a.logger.Error().Err(err).Str("kind", string(kind)).Msg("remove favorite failed")
		writeError(w, http.StatusInternalServerError, "remove failed")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
	}
}

// favoritesScope pulls the caller identity and the validated collection
// kind out of the request, writing the error response itself on failure.
func (a *API) favoritesScope(w http.ResponseWriter, r *http.Request) (*auth.Claims, models.SavedItemKind, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil, "", false
	}

	kind := models.SavedItemKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeError(w, http.StatusBadRequest, "unknown collection kind")
		return nil, "", false
	}
	return claims, kind, true
}
