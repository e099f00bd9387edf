// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nicocal/internal/platform/constants"
	"github.com/taibuivan/nicocal/internal/platform/ctxutil"
	"github.com/taibuivan/nicocal/internal/platform/middleware"
	"github.com/taibuivan/nicocal/internal/platform/sec"
)

type fakeVerifier struct {
	calls int
}

func (verifier *fakeVerifier) VerifySession(_ context.Context, token string) (*sec.AuthClaims, error) {
	verifier.calls++
	if token == "good-token" {
		return &sec.AuthClaims{UserID: "user1"}, nil
	}
	return nil, errors.New("bad token")
}

func echoUser(writer http.ResponseWriter, request *http.Request) {
	_, _ = writer.Write([]byte(ctxutil.GetUserID(request.Context())))
}

/*
TestRequireSession covers the two gate states and both failure messages.
*/
func TestRequireSession(t *testing.T) {
	tests := []struct {
		name          string
		cookie        *http.Cookie
		expectedCode  int
		expectedBody  string
		expectedCalls int
	}{
		{
			name:          "missing_cookie",
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  middleware.MessageAuthRequired,
			expectedCalls: 0,
		},
		{
			name:          "empty_cookie",
			cookie:        &http.Cookie{Name: constants.SessionCookieName, Value: ""},
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  middleware.MessageAuthRequired,
			expectedCalls: 0,
		},
		{
			name:          "invalid_token",
			cookie:        &http.Cookie{Name: constants.SessionCookieName, Value: "forged"},
			expectedCode:  http.StatusUnauthorized,
			expectedBody:  middleware.MessageInvalidToken,
			expectedCalls: 1,
		},
		{
			name:          "valid_token",
			cookie:        &http.Cookie{Name: constants.SessionCookieName, Value: "good-token"},
			expectedCode:  http.StatusOK,
			expectedBody:  "user1",
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{}
			handler := middleware.RequireSession(verifier)(http.HandlerFunc(echoUser))

			request := httptest.NewRequest(http.MethodGet, "/api/diaries", nil)
			if tt.cookie != nil {
				request.AddCookie(tt.cookie)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedCode, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.expectedBody)
			assert.Equal(t, tt.expectedCalls, verifier.calls)
		})
	}
}

/*
TestRequestID verifies that IDs are generated or propagated.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	// 1. Generated
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	// 2. Propagated
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "abc-123", seen)
}

/*
TestPanicRecovery verifies that a panicking handler yields a generic 500.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error","code":"INTERNAL_ERROR"}`, recorder.Body.String())
}

/*
TestRealIP checks proxy header precedence.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}
