/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

// MockProvider is an in-memory session provider for development. It holds a
// single demo account, accepts any password for it, and hands out opaque
// tokens that stay valid until sign-out or process exit.
type MockProvider struct {
	mu       sync.Mutex
	user     models.User
	sessions map[string]struct{}
	bus      *events.Bus
}

// NewMockProvider seeds the demo account.
func NewMockProvider(bus *events.Bus) *MockProvider {
	return &MockProvider{
		user: models.User{
			ID:    uuid.NewString(),
			Email: "listener@praisefm.test",
			Name:  "Demo Listener",
		},
		sessions: make(map[string]struct{}),
		bus:      bus,
	}
}

func (p *MockProvider) SignUpWithPassword(ctx context.Context, email, password string) (Session, error) {
	return p.SignInWithPassword(ctx, email, password)
}

// SignInWithPassword opens a session for any non-empty credentials. The
// demo account keeps its identity; the email just renames it.
func (p *MockProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	p.mu.Lock()
	p.user.Email = email
	if p.user.Name == "" {
		p.user.Name = nameFromEmail(email)
	}
	token := "mock-" + uuid.NewString()
	p.sessions[token] = struct{}{}
	user := p.user
	p.mu.Unlock()

	p.bus.Publish(events.EventSignedIn, events.Payload{"user_id": user.ID})
	return Session{Token: token, User: user}, nil
}

func (p *MockProvider) GetSession(ctx context.Context, token string) (Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.sessions[token]; !ok {
		return Session{}, ErrNoSession
	}
	return Session{Token: token, User: p.user}, nil
}

func (p *MockProvider) SignOut(ctx context.Context, token string) error {
	p.mu.Lock()
	_, ok := p.sessions[token]
	delete(p.sessions, token)
	userID := p.user.ID
	p.mu.Unlock()

	if ok {
		p.bus.Publish(events.EventSignedOut, events.Payload{"user_id": userID})
	}
	return nil
}

func (p *MockProvider) UpdateUser(ctx context.Context, userID string, update UserUpdate) (models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if userID != p.user.ID {
		return models.User{}, ErrNoSession
	}
	if update.Name != nil {
		p.user.Name = *update.Name
	}
	if update.AvatarURL != nil {
		p.user.AvatarURL = *update.AvatarURL
	}
	p.bus.Publish(events.EventUserUpdated, events.Payload{"user_id": p.user.ID})
	return p.user, nil
}

func (p *MockProvider) OAuthRedirectURL(provider, redirectTo string) (string, error) {
	switch provider {
	case "google", "facebook", "apple":
	default:
		return "", fmt.Errorf("unsupported oauth provider %q", provider)
	}
	return "/auth/mock/callback?provider=" + provider + "&redirect_to=" + url.QueryEscape(strings.TrimSpace(redirectTo)), nil
}
