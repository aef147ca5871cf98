/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/praisefmmedia/praisefm_companion/internal/auth"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := a.sessions.SignUpWithPassword(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusBadRequest, "email and password required")
	case err != nil:
		a.logger.Error().Err(err).Msg("sign up failed")
		writeError(w, http.StatusInternalServerError, "sign up failed")
	default:
		writeJSON(w, http.StatusCreated, sess)
	}
}

func (a *API) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := a.sessions.SignInWithPassword(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid email or password")
	case err != nil:
		a.logger.Error().Err(err).Msg("sign in failed")
		writeError(w, http.StatusInternalServerError, "sign in failed")
	default:
		writeJSON(w, http.StatusOK, sess)
	}
}

func (a *API) handleSignOut(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		if err := a.sessions.SignOut(r.Context(), token); err != nil {
			a.logger.Warn().Err(err).Msg("sign out failed")
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// handleSession resolves the bearer token into its user, so clients can
// restore state on launch.
func (a *API) handleSession(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	sess, err := a.sessions.GetSession(r.Context(), token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired or invalid")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (a *API) handleOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")
	redirectTo := r.URL.Query().Get("redirect_to")

	target, err := a.sessions.OAuthRedirectURL(provider, redirectTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unsupported oauth provider")
		return
	}
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

func (a *API) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var update auth.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := a.sessions.UpdateUser(r.Context(), claims.UserID, update)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired or invalid")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
