// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/nicocal/internal/platform/constants"
)

// RedisRevocationList implements [RevocationList] on top of Redis keys with a TTL.
type RedisRevocationList struct {
	client redis.Cmdable
}

// NewRedisRevocationList wraps an existing Redis client.
func NewRedisRevocationList(client redis.Cmdable) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

// Revoke implements [RevocationList].
func (list *RedisRevocationList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	// An already expired token needs no entry
	if ttl <= 0 {
		return nil
	}

	if err := list.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("auth: revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements [RevocationList].
func (list *RedisRevocationList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := list.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("auth: check revocation: %w", err)
	}
	return count > 0, nil
}

func revokedKey(tokenID string) string {
	return constants.RedisPrefixRevokedToken + tokenID
}
