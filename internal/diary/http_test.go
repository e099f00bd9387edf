// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nicocal/internal/diary"
	"github.com/taibuivan/nicocal/internal/platform/ctxutil"
	"github.com/taibuivan/nicocal/internal/platform/sec"
)

const testUserHeader = "X-Test-User"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// newRouter mounts the diary routes behind a stand-in for the session gate
// that trusts the X-Test-User header.
func newRouter(t *testing.T) (http.Handler, *diary.MemoryStore) {
	t.Helper()

	store := diary.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := diary.NewHandler(diary.NewService(store, logger))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if userID := request.Header.Get(testUserHeader); userID != "" {
				ctx := ctxutil.WithAuthUser(request.Context(), &sec.AuthClaims{UserID: userID})
				request = request.WithContext(ctx)
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/api/diaries", handler.Routes())

	return router, store
}

func do(t *testing.T, router http.Handler, method, target, userID, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		request.Header.Set(testUserHeader, userID)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return recorder.Code, payload
}

func decodeEntry(t *testing.T, raw json.RawMessage) diary.Entry {
	t.Helper()
	var entry diary.Entry
	require.NoError(t, json.Unmarshal(raw, &entry))
	return entry
}

func TestHandler_CreateThenConflict(t *testing.T) {
	router, _ := newRouter(t)
	body := `{"date":"2025-06-01","emotion":"good","content":"Great"}`

	code, payload := do(t, router, http.MethodPost, "/api/diaries", "user1", body)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, payload.Success)

	entry := decodeEntry(t, payload.Data)
	assert.Equal(t, "user1", entry.UserID)
	assert.Equal(t, "2025-06-01", entry.Date)
	assert.Equal(t, diary.EmotionGood, entry.Emotion)
	assert.Equal(t, "Great", entry.Content)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)

	code, payload = do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"2025-06-01","emotion":"bad","content":"x"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, payload.Success)
	assert.Equal(t, "A diary already exists for this date", payload.Message)
}

func TestHandler_CreateValidation(t *testing.T) {
	router, store := newRouter(t)

	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{name: "bad_date", body: `{"date":"2025/06/01","emotion":"good","content":"x"}`, fields: []string{"date"}},
		{name: "bad_emotion", body: `{"date":"2025-06-01","emotion":"happy","content":"x"}`, fields: []string{"emotion"}},
		{name: "missing_content", body: `{"date":"2025-06-01","emotion":"good"}`, fields: []string{"content"}},
		{name: "empty_body", body: "", fields: []string{"date", "emotion", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, payload := do(t, router, http.MethodPost, "/api/diaries", "user1", tt.body)
			require.Equal(t, http.StatusBadRequest, code)
			assert.False(t, payload.Success)
			assert.Equal(t, "Validation error", payload.Message)

			fields := make([]string, 0, len(payload.Errors))
			for _, fieldError := range payload.Errors {
				fields = append(fields, fieldError.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}

	entries, err := store.ListByUser(context.Background(), "user1", diary.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandler_CreateEmptyContent(t *testing.T) {
	router, _ := newRouter(t)

	code, payload := do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"2025-06-01","emotion":"normal","content":""}`)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "", decodeEntry(t, payload.Data).Content)
}

func TestHandler_InvalidJSON(t *testing.T) {
	router, _ := newRouter(t)

	code, payload := do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid JSON payload", payload.Message)
}

/*
TestHandler_Update verifies that an update keeps date and createdAt.
*/
func TestHandler_Update(t *testing.T) {
	router, _ := newRouter(t)

	code, payload := do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"2025-06-01","emotion":"good","content":"Great"}`)
	require.Equal(t, http.StatusCreated, code)
	created := decodeEntry(t, payload.Data)

	time.Sleep(2 * time.Millisecond)

	code, payload = do(t, router, http.MethodPut, "/api/diaries/2025-06-01", "user1", `{"emotion":"bad","content":"Actually bad"}`)
	require.Equal(t, http.StatusOK, code)

	updated := decodeEntry(t, payload.Data)
	assert.Equal(t, diary.EmotionBad, updated.Emotion)
	assert.Equal(t, "Actually bad", updated.Content)
	assert.Equal(t, created.Date, updated.Date)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	code, payload = do(t, router, http.MethodGet, "/api/diaries", "user1", "")
	require.Equal(t, http.StatusOK, code)

	var entries []diary.Entry
	require.NoError(t, json.Unmarshal(payload.Data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Actually bad", entries[0].Content)
}

func TestHandler_UpdateErrors(t *testing.T) {
	router, _ := newRouter(t)

	code, payload := do(t, router, http.MethodPut, "/api/diaries/2025-06-02", "user1", `{"emotion":"good","content":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Diary not found", payload.Message)

	code, _ = do(t, router, http.MethodPut, "/api/diaries/June-2", "user1", `{"emotion":"good","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, payload = do(t, router, http.MethodPut, "/api/diaries/2025-06-02", "user1", `{"emotion":"meh","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "emotion", payload.Errors[0].Field)
}

func TestHandler_Get(t *testing.T) {
	router, _ := newRouter(t)

	code, payload := do(t, router, http.MethodGet, "/api/diaries/2025-06-01", "user1", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Diary not found", payload.Message)

	code, _ = do(t, router, http.MethodGet, "/api/diaries/yesterday", "user1", "")
	assert.Equal(t, http.StatusBadRequest, code)

	_, _ = do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"2025-06-01","emotion":"good","content":"mine"}`)

	code, payload = do(t, router, http.MethodGet, "/api/diaries/2025-06-01", "user1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "mine", decodeEntry(t, payload.Data).Content)
}

func TestHandler_Isolation(t *testing.T) {
	router, _ := newRouter(t)

	code, _ := do(t, router, http.MethodPost, "/api/diaries", "userA", `{"date":"2025-06-01","emotion":"good","content":"A"}`)
	require.Equal(t, http.StatusCreated, code)

	code, payload := do(t, router, http.MethodGet, "/api/diaries", "userB", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(payload.Data))

	code, _ = do(t, router, http.MethodGet, "/api/diaries/2025-06-01", "userB", "")
	assert.Equal(t, http.StatusNotFound, code)

	// B may create its own entry on the same date
	code, _ = do(t, router, http.MethodPost, "/api/diaries", "userB", `{"date":"2025-06-01","emotion":"bad","content":"B"}`)
	assert.Equal(t, http.StatusCreated, code)
}

func TestHandler_ListRange(t *testing.T) {
	router, _ := newRouter(t)

	for _, date := range []string{"2025-05-31", "2025-06-01", "2025-06-15", "2025-06-30", "2025-07-01"} {
		code, _ := do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"`+date+`","emotion":"normal","content":""}`)
		require.Equal(t, http.StatusCreated, code)
	}

	code, payload := do(t, router, http.MethodGet, "/api/diaries?startDate=2025-06-01&endDate=2025-06-30", "user1", "")
	require.Equal(t, http.StatusOK, code)

	var entries []diary.Entry
	require.NoError(t, json.Unmarshal(payload.Data, &entries))

	dates := make([]string, 0, len(entries))
	for _, entry := range entries {
		dates = append(dates, entry.Date)
	}
	assert.Equal(t, []string{"2025-06-01", "2025-06-15", "2025-06-30"}, dates)
}

/*
TestHandler_NoSession verifies the defensive check behind a bypassed gate.
*/
func TestHandler_NoSession(t *testing.T) {
	router, store := newRouter(t)

	requests := []struct {
		method string
		target string
		body   string
	}{
		{method: http.MethodGet, target: "/api/diaries"},
		{method: http.MethodGet, target: "/api/diaries/calendar"},
		{method: http.MethodGet, target: "/api/diaries/2025-06-01"},
		{method: http.MethodPost, target: "/api/diaries", body: `{"date":"2025-06-01","emotion":"good","content":"x"}`},
		{method: http.MethodPut, target: "/api/diaries/2025-06-01", body: `{"emotion":"good","content":"x"}`},
	}

	for _, tt := range requests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			code, payload := do(t, router, tt.method, tt.target, "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.False(t, payload.Success)
			assert.Equal(t, "Unauthorized", payload.Message)
		})
	}

	entries, err := store.ListByUser(context.Background(), "", diary.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandler_Calendar(t *testing.T) {
	router, _ := newRouter(t)

	_, _ = do(t, router, http.MethodPost, "/api/diaries", "user1", `{"date":"2025-06-15","emotion":"bad","content":"x"}`)

	code, payload := do(t, router, http.MethodGet, "/api/diaries/calendar?year=2025&month=6", "user1", "")
	require.Equal(t, http.StatusOK, code)

	var calendar diary.CalendarMonth
	require.NoError(t, json.Unmarshal(payload.Data, &calendar))
	assert.Equal(t, 2025, calendar.Year)
	assert.Equal(t, 6, calendar.Month)
	assert.Equal(t, "June 2025", calendar.Label)
	require.Len(t, calendar.Weeks, 5)
	require.NotNil(t, calendar.Weeks[2][0])
	assert.Equal(t, diary.EmotionBad, calendar.Weeks[2][0].Emotion)

	code, payload = do(t, router, http.MethodGet, "/api/diaries/calendar?year=2025&month=13", "user1", "")
	assert.Equal(t, http.StatusBadRequest, code)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "month", payload.Errors[0].Field)

	code, _ = do(t, router, http.MethodGet, "/api/diaries/calendar?year=abc", "user1", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_CalendarJapaneseLabel(t *testing.T) {
	router, _ := newRouter(t)

	request := httptest.NewRequest(http.MethodGet, "/api/diaries/calendar?year=2025&month=6", nil)
	request.Header.Set(testUserHeader, "user1")
	request.Header.Set("Accept-Language", "ja-JP,ja;q=0.9")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	var payload struct {
		Data diary.CalendarMonth `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.Equal(t, "2025年6月", payload.Data.Label)
}
