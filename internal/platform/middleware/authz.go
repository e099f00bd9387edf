// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/taibuivan/nicocal/internal/platform/apperr"
	"github.com/taibuivan/nicocal/internal/platform/constants"
	"github.com/taibuivan/nicocal/internal/platform/ctxkey"
	"github.com/taibuivan/nicocal/internal/platform/ctxutil"
	"github.com/taibuivan/nicocal/internal/platform/respond"
	"github.com/taibuivan/nicocal/internal/platform/sec"
)

// Gate failure messages.
const (
	MessageAuthRequired = "Authentication required"
	MessageInvalidToken = "Invalid or expired token"
)

// SessionVerifier defines the interface needed to verify session tokens in middleware.
//
// Defining it here decouples the gate from the auth service implementation,
// allowing tests to inject fakes.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*sec.AuthClaims, error)
}

// RequireSession is the gate in front of every diary route.
//
// # Flow
//  1. Read the session token from the "token" cookie.
//  2. If absent, abort with 401 "Authentication required" without verifying anything.
//  3. Verify signature, expiry and revocation via [SessionVerifier].
//  4. On failure abort with 401 "Invalid or expired token".
//  5. Inject [*sec.AuthClaims] into the request context and continue.
func RequireSession(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				respond.Error(writer, request, apperr.Unauthorized(MessageAuthRequired))
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifySession(request.Context(), cookie.Value)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(), "session_rejected",
					slog.Any("error", err),
				)
				respond.Error(writer, request, apperr.Unauthorized(MessageInvalidToken))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			recordIdentity(request.Context(), claims.UserID)
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// # Access Log Identity

type identityHolder struct {
	userID string
}

func withIdentityHolder(ctx context.Context) (context.Context, *identityHolder) {
	holder := &identityHolder{}
	return context.WithValue(ctx, ctxkey.KeyIdentity, holder), holder
}

func recordIdentity(ctx context.Context, userID string) {
	if holder, ok := ctx.Value(ctxkey.KeyIdentity).(*identityHolder); ok {
		holder.userID = userID
	}
}
