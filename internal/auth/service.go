// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/nicocal/internal/platform/apperr"
	"github.com/taibuivan/nicocal/internal/platform/sec"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password alike.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")

// errRevoked marks a session token that was logged out server-side.
var errRevoked = errors.New("auth: session revoked")

// # Credential Verification

// CredentialVerifier decides whether a password belongs to a user.
//
// It answers false, not an error, for unknown users so callers cannot tell
// the two failure cases apart.
type CredentialVerifier interface {
	Verify(ctx context.Context, userID, password string) (bool, error)
}

// BcryptVerifier checks passwords against bcrypt hashes in a [UserRepository].
type BcryptVerifier struct {
	users UserRepository
}

// NewBcryptVerifier constructs a [BcryptVerifier].
func NewBcryptVerifier(users UserRepository) *BcryptVerifier {
	return &BcryptVerifier{users: users}
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// Verify implements [CredentialVerifier].
func (verifier *BcryptVerifier) Verify(ctx context.Context, userID, password string) (bool, error) {
	user, err := verifier.users.FindByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		// Spend a comparison anyway so response time does not reveal the miss
		dummyHashOnce.Do(func() {
			dummyHash, _ = sec.HashPassword("nico-cal-dummy-password")
		})
		sec.CheckPasswordHash(password, dummyHash)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("auth: find user: %w", err)
	}

	return sec.CheckPasswordHash(password, user.PasswordHash), nil
}

// # Session Service

// Service implements login, logout and session verification.
type Service struct {
	users       UserRepository
	verifier    CredentialVerifier
	tokens      *sec.TokenService
	revocations RevocationList
	sessionTTL  time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new [Service]. revocations may be nil, in which
// case logout only clears the client cookie.
func NewService(
	users UserRepository,
	verifier CredentialVerifier,
	tokens *sec.TokenService,
	revocations RevocationList,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:       users,
		verifier:    verifier,
		tokens:      tokens,
		revocations: revocations,
		sessionTTL:  sessionTTL,
		logger:      logger,
		now:         time.Now,
	}
}

// SessionTTL returns the lifetime of issued tokens.
func (service *Service) SessionTTL() time.Duration {
	return service.sessionTTL
}

/*
Login checks credentials and issues a signed session token.

Parameters:
  - context: context.Context
  - input: LoginInput (already validated)

Returns:
  - string: Signed session token
  - error: ErrInvalidCredentials for an unknown user or a wrong password
*/
func (service *Service) Login(context context.Context, input LoginInput) (string, error) {

	// ── 1. Credential Check ───────────────────────────────────────────────

	ok, err := service.verifier.Verify(context, input.UserID, input.Password)
	if err != nil {
		return "", err
	}
	if !ok {
		service.logger.InfoContext(context, "login_failed", slog.String("user_id", input.UserID))
		return "", ErrInvalidCredentials
	}

	// ── 2. Token Issuance ─────────────────────────────────────────────────

	token, err := service.tokens.GenerateSessionToken(input.UserID, service.sessionTTL)
	if err != nil {
		return "", fmt.Errorf("auth: issue session: %w", err)
	}

	service.logger.InfoContext(context, "login_succeeded", slog.String("user_id", input.UserID))
	return token, nil
}

// VerifySession validates a session token for the diary gate.
//
// Revocation lookups fail closed: if the denylist cannot be read, the
// session is rejected.
func (service *Service) VerifySession(context context.Context, token string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return nil, err
	}

	if service.revocations == nil {
		return claims, nil
	}

	revoked, err := service.revocations.IsRevoked(context, claims.ID)
	if err != nil {
		service.logger.ErrorContext(context, "session_revocation_lookup_failed", slog.Any("error", err))
		return nil, err
	}
	if revoked {
		return nil, errRevoked
	}

	return claims, nil
}

// Logout revokes token when a denylist is configured.
//
// Logout always succeeds from the caller's point of view: an absent, invalid
// or expired token has nothing left to revoke, and a denylist failure is
// only logged.
func (service *Service) Logout(context context.Context, token string) {
	if token == "" || service.revocations == nil {
		return
	}

	claims, err := service.tokens.VerifyToken(token)
	if err != nil {
		return
	}

	remaining := claims.ExpiresAt.Sub(service.now())
	if err := service.revocations.Revoke(context, claims.ID, remaining); err != nil {
		service.logger.WarnContext(context, "session_revoke_failed",
			slog.String("user_id", claims.UserID),
			slog.Any("error", err),
		)
		return
	}

	service.logger.InfoContext(context, "session_revoked", slog.String("user_id", claims.UserID))
}

// Register hashes password and stores a new account. Used by seeding.
func (service *Service) Register(context context.Context, userID, password string) error {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return err
	}

	return service.users.Create(context, &User{
		ID:           userID,
		PasswordHash: hash,
		CreatedAt:    service.now(),
	})
}
