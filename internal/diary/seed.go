// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// entryChance is the probability that a generated day receives an entry.
const entryChance = 0.8

// sampleContents holds the generated diary text per emotion.
var sampleContents = map[Emotion][]string{
	EmotionGood: {
		"今日はとても良い一日だった。仕事も順調に進み、天気も良かった。",
		"久しぶりに友人と会って楽しい時間を過ごした。気分がリフレッシュした。",
		"長い間取り組んでいたプロジェクトが完了した。達成感がある。",
	},
	EmotionNormal: {
		"普通の一日。特に変わったことはなかった。",
		"いつも通りの日常。少し疲れているが悪くはない。",
		"平凡な一日だったが、それはそれで良い。",
	},
	EmotionBad: {
		"今日はあまり調子が良くなかった。少し休息が必要かもしれない。",
		"予想外のトラブルが発生して対応に追われた。疲れた。",
		"体調がすぐれず、早めに休んだ。明日は回復するといいな。",
	},
}

// SeedDemo stores the single demo entry of the demo account.
// An already existing entry is left untouched.
func SeedDemo(ctx context.Context, repo Repository, userID string) error {
	_, err := repo.Create(ctx, userID, "2025-04-25", EmotionGood, "Had a great day!")
	if errors.Is(err, ErrConflict) {
		return nil
	}
	return err
}

/*
SeedMonth generates a month of entries for userID.

Each day gets an entry with probability 0.8, a random emotion and a matching
sample text. Timestamps fall on a random minute between 12:00 and 23:59 of
that day, in loc. Days that already have an entry are skipped.

Returns:
  - int: Number of entries inserted
  - error: First storage failure other than a duplicate
*/
func SeedMonth(ctx context.Context, repo Repository, random *rand.Rand, userID string, year int, month time.Month, loc *time.Location, logger *slog.Logger) (int, error) {
	emotions := Emotions()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	inserted := 0

	for day := 1; day <= daysInMonth; day++ {
		if random.Float64() >= entryChance {
			continue
		}

		emotion := emotions[random.IntN(len(emotions))]
		samples := sampleContents[emotion]
		timestamp := time.Date(year, month, day, 12+random.IntN(12), random.IntN(60), 0, 0, loc)

		err := repo.Insert(ctx, Entry{
			UserID:    userID,
			Date:      timestamp.Format(DateLayout),
			Emotion:   emotion,
			Content:   samples[random.IntN(len(samples))],
			CreatedAt: timestamp,
			UpdatedAt: timestamp,
		})
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}

	logger.InfoContext(ctx, "diary_month_seeded",
		slog.String("user_id", userID),
		slog.Int("year", year),
		slog.Int("month", int(month)),
		slog.Int("entries", inserted),
	)

	return inserted, nil
}
