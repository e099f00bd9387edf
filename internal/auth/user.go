// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements account credentials and cookie-based sessions.

# Architecture

  - User / UserRepository: pre-seeded accounts, stored in memory.
  - CredentialVerifier: the only place passwords are compared (bcrypt).
  - Service: login issues a signed session token; logout revokes it when a
    [RevocationList] is configured; VerifySession backs the diary gate.
  - Handler: POST /api/auth/login and POST /api/auth/logout.

Sessions are stateless HS256 tokens. Without a revocation list, logout only
clears the cookie and a captured token stays valid until it expires.
*/
package auth

import (
	"time"
)

// User is an account able to log in.
//
// # Rules
//   - ID is unique and is the login name.
//   - PasswordHash is a bcrypt hash; plaintext passwords are never stored.
type User struct {
	ID           string    `json:"userId"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
