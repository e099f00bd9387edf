// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, SeedDemo(ctx, store, "user1"))
	require.NoError(t, SeedDemo(ctx, store, "user1"))

	entries, err := store.ListByUser(ctx, "user1", ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-04-25", entries[0].Date)
	assert.Equal(t, EmotionGood, entries[0].Emotion)
	assert.Equal(t, "Had a great day!", entries[0].Content)
}

func TestSeedMonth(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	random := rand.New(rand.NewPCG(1, 2))

	// An existing entry is kept as is
	_, err := store.Create(ctx, "testuser", "2025-04-10", EmotionGood, "mine")
	require.NoError(t, err)

	inserted, err := SeedMonth(ctx, store, random, "testuser", 2025, time.April, time.UTC, logger)
	require.NoError(t, err)

	entries, err := store.ListByUser(ctx, "testuser", ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, inserted+1, len(entries))
	assert.LessOrEqual(t, len(entries), 30)

	for _, entry := range entries {
		assert.Equal(t, "testuser", entry.UserID)
		assert.Contains(t, Emotions(), entry.Emotion)
		assert.Regexp(t, `^2025-04-\d{2}$`, entry.Date)

		if entry.Date == "2025-04-10" && entry.Content == "mine" {
			continue
		}

		assert.True(t, slices.Contains(sampleContents[entry.Emotion], entry.Content))
		assert.Equal(t, entry.Date, entry.CreatedAt.Format(DateLayout))
		assert.GreaterOrEqual(t, entry.CreatedAt.Hour(), 12)
		assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	}
}
