/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/praisefmmedia/praisefm_companion/internal/auth"
)

const maxAvatarBytes = 5 << 20 // 5 MiB

var avatarContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// handleAvatarUpload accepts a multipart avatar image, stores it in the
// object store and records the public URL on the profile.
func (a *API) handleAvatarUpload(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if a.avatars == nil {
		writeError(w, http.StatusNotImplemented, "avatar storage not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar file missing or too large")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "avatar read failed")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])

	ext, ok := avatarContentTypes[contentType]
	if !ok {
		writeError(w, http.StatusUnsupportedMediaType, "avatar must be png, jpeg or webp")
		return
	}

	key := path.Join("avatars", claims.UserID, fmt.Sprintf("avatar%s", ext))
	if err := a.avatars.Put(r.Context(), key, contentType, data); err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("avatar upload failed")
		writeError(w, http.StatusInternalServerError, "avatar upload failed")
		return
	}

	avatarURL := a.avatars.PublicURL(key)
	user, err := a.sessions.UpdateUser(r.Context(), claims.UserID, auth.UserUpdate{AvatarURL: &avatarURL})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired or invalid")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
