// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/nicocal/internal/platform/apperr"
)

var (
	// ErrUserNotFound is returned when no account has the requested ID.
	ErrUserNotFound = apperr.NotFound("User")

	// ErrUserExists is returned when creating an account whose ID is taken.
	ErrUserExists = apperr.Conflict("User already exists")
)

// UserRepository defines the data access contract for user accounts.
//
// # Implementations
//
// The only implementation is [MemoryUserStore]; accounts are seeded at startup.
type UserRepository interface {
	// FindByID returns the account with the given ID.
	//
	// Returns [ErrUserNotFound] if the account does not exist.
	FindByID(ctx context.Context, id string) (*User, error)

	// Create persists a brand-new account.
	//
	// Returns [ErrUserExists] if the ID is taken.
	Create(ctx context.Context, user *User) error
}

// RevocationList defines the contract for the server-side session denylist.
//
// Entries are keyed by the token ID (jti) and only need to live as long as
// the token itself would.
type RevocationList interface {
	// Revoke marks a token ID as unusable for ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	// IsRevoked reports whether a token ID has been revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
