/*
Copyright (C) 2026 Praise FM Media

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/praisefmmedia/praisefm_companion/internal/events"
	"github.com/praisefmmedia/praisefm_companion/internal/models"
)

var (
	// ErrInvalidCredentials covers unknown email or wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned by sign-up for an existing account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrNoSession is returned when a token does not resolve to a user.
	ErrNoSession = errors.New("no active session")
)

// Session is an authenticated user plus the bearer token that proves it.
type Session struct {
	Token string      `json:"access_token"`
	User  models.User `json:"user"`
}

// UserUpdate carries profile metadata changes. Nil fields stay untouched.
type UserUpdate struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// SessionProvider is the auth boundary. The local implementation and the
// in-memory mock satisfy the same contract, so calling code never knows
// which one it talks to.
type SessionProvider interface {
	SignUpWithPassword(ctx context.Context, email, password string) (Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	GetSession(ctx context.Context, token string) (Session, error)
	SignOut(ctx context.Context, token string) error
	UpdateUser(ctx context.Context, userID string, update UserUpdate) (models.User, error)
	// OAuthRedirectURL builds the third-party sign-in initiation URL.
	OAuthRedirectURL(provider, redirectTo string) (string, error)
}

// LocalProvider stores accounts in the application database with bcrypt
// password hashes and JWT session tokens.
type LocalProvider struct {
	db         *gorm.DB
	bus        *events.Bus
	jwtSecret  []byte
	sessionTTL time.Duration
	baseURL    string
}

// NewLocalProvider builds the database-backed session provider.
func NewLocalProvider(db *gorm.DB, bus *events.Bus, jwtSecret []byte, sessionTTL time.Duration, baseURL string) *LocalProvider {
	return &LocalProvider{
		db:         db,
		bus:        bus,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		baseURL:    baseURL,
	}
}

// SignUpWithPassword registers a new account and opens a session.
func (p *LocalProvider) SignUpWithPassword(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	var existing models.User
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return Session{}, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, fmt.Errorf("lookup account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         nameFromEmail(email),
	}
	if err := p.db.WithContext(ctx).Create(&user).Error; err != nil {
		return Session{}, fmt.Errorf("create account: %w", err)
	}

	return p.openSession(user)
}

// SignInWithPassword authenticates an existing account.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)

	var user models.User
	err := p.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("lookup account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	return p.openSession(user)
}

// GetSession resolves a bearer token to its user.
func (p *LocalProvider) GetSession(ctx context.Context, token string) (Session, error) {
	claims, err := Parse(p.jwtSecret, token)
	if err != nil {
		return Session{}, ErrNoSession
	}

	var user models.User
	if err := p.db.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error; err != nil {
		return Session{}, ErrNoSession
	}
	return Session{Token: token, User: scrub(user)}, nil
}

// SignOut ends the session. Tokens are stateless, so the server side only
// announces the transition; clients discard the token.
func (p *LocalProvider) SignOut(ctx context.Context, token string) error {
	if claims, err := Parse(p.jwtSecret, token); err == nil {
		p.bus.Publish(events.EventSignedOut, events.Payload{"user_id": claims.UserID})
	}
	return nil
}

// UpdateUser applies profile metadata changes.
func (p *LocalProvider) UpdateUser(ctx context.Context, userID string, update UserUpdate) (models.User, error) {
	var user models.User
	if err := p.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return models.User{}, ErrNoSession
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.AvatarURL != nil {
		user.AvatarURL = *update.AvatarURL
	}
	if err := p.db.WithContext(ctx).Save(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("update account: %w", err)
	}

	p.bus.Publish(events.EventUserUpdated, events.Payload{"user_id": user.ID})
	return scrub(user), nil
}

// OAuthRedirectURL points the client at the hosted OAuth entry for provider.
func (p *LocalProvider) OAuthRedirectURL(provider, redirectTo string) (string, error) {
	switch provider {
	case "google", "facebook", "apple":
	default:
		return "", fmt.Errorf("unsupported oauth provider %q", provider)
	}
	base := strings.TrimSuffix(p.baseURL, "/")
	return fmt.Sprintf("%s/auth/oauth/%s/start?redirect_to=%s", base, provider, url.QueryEscape(redirectTo)), nil
}

func (p *LocalProvider) openSession(user models.User) (Session, error) {
	token, err := Issue(p.jwtSecret, Claims{UserID: user.ID, Email: user.Email}, p.sessionTTL)
	if err != nil {
		return Session{}, fmt.Errorf("issue session token: %w", err)
	}
	p.bus.Publish(events.EventSignedIn, events.Payload{"user_id": user.ID})
	return Session{Token: token, User: scrub(user)}, nil
}

// scrub drops the password hash before a user leaves the auth package.
func scrub(user models.User) models.User {
	user.PasswordHash = ""
	return user
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
