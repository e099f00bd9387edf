// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the in-process, authoritative holder of all diary entries.
//
// # Concurrency
//
// A single RWMutex guards the whole map. Create and Update are
// check-then-write sequences and run entirely under the write lock, which is
// what keeps (user, date) unique under concurrent requests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry
	now     func() time.Time
}

// NewMemoryStore returns an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock returns an empty store reading time from now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]Entry),
		now:     now,
	}
}

// ListByUser implements [Repository].
func (store *MemoryStore) ListByUser(_ context.Context, userID string, filter ListFilter) ([]Entry, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	result := make([]Entry, 0, len(store.entries[userID]))
	for _, entry := range store.entries[userID] {
		if filter.matches(entry.Date) {
			result = append(result, entry)
		}
	}

	return result, nil
}

// GetByDate implements [Repository].
func (store *MemoryStore) GetByDate(_ context.Context, userID, date string) (*Entry, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	index := store.indexOf(userID, date)
	if index < 0 {
		return nil, ErrNotFound
	}

	entry := store.entries[userID][index]
	return &entry, nil
}

// Create implements [Repository].
func (store *MemoryStore) Create(_ context.Context, userID, date string, emotion Emotion, content string) (*Entry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.indexOf(userID, date) >= 0 {
		return nil, ErrConflict
	}

	now := store.now()
	entry := Entry{
		UserID:    userID,
		Date:      date,
		Emotion:   emotion,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.entries[userID] = append(store.entries[userID], entry)

	return &entry, nil
}

// Update implements [Repository].
func (store *MemoryStore) Update(_ context.Context, userID, date string, emotion Emotion, content string) (*Entry, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(userID, date)
	if index < 0 {
		return nil, ErrNotFound
	}

	entry := store.entries[userID][index]

	// Clocks can step backwards; UpdatedAt must not.
	updatedAt := store.now()
	if updatedAt.Before(entry.UpdatedAt) {
		updatedAt = entry.UpdatedAt
	}

	entry.Emotion = emotion
	entry.Content = content
	entry.UpdatedAt = updatedAt
	store.entries[userID][index] = entry

	return &entry, nil
}

// Insert implements [Repository].
func (store *MemoryStore) Insert(_ context.Context, entry Entry) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.indexOf(entry.UserID, entry.Date) >= 0 {
		return ErrConflict
	}

	if entry.UpdatedAt.Before(entry.CreatedAt) {
		entry.UpdatedAt = entry.CreatedAt
	}

	store.entries[entry.UserID] = append(store.entries[entry.UserID], entry)
	return nil
}

// indexOf returns the position of (userID, date) or -1. Callers hold the lock.
func (store *MemoryStore) indexOf(userID, date string) int {
	for index, entry := range store.entries[userID] {
		if entry.Date == date {
			return index
		}
	}
	return -1
}
