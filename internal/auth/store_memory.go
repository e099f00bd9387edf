// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
)

// MemoryUserStore keeps accounts in a map guarded by a RWMutex.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryUserStore returns an empty [MemoryUserStore].
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]User)}
}

// FindByID implements [UserRepository].
func (store *MemoryUserStore) FindByID(_ context.Context, id string) (*User, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, ok := store.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// Create implements [UserRepository].
func (store *MemoryUserStore) Create(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[user.ID]; ok {
		return ErrUserExists
	}
	store.users[user.ID] = *user
	return nil
}
