// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package diary implements the per-user emotion diary.

Each user keeps at most one entry per calendar day. An entry records a coarse
emotion and free text; it is created once, may be edited afterwards, and is
never deleted.

# Architecture

  - Entry / Emotion: domain types shared by every layer.
  - Repository: storage contract, implemented in memory by [MemoryStore].
  - Service: use cases (list, get, create, update, calendar month view).
  - Handler: the /api/diaries HTTP surface, mounted behind the session gate.
*/
package diary

import "time"

// # Domain Entities

// Emotion is the closed set of moods an entry can carry.
type Emotion string

const (
	EmotionGood   Emotion = "good"
	EmotionNormal Emotion = "normal"
	EmotionBad    Emotion = "bad"
)

// Emotions lists every valid [Emotion] in display order.
func Emotions() []Emotion {
	return []Emotion{EmotionGood, EmotionNormal, EmotionBad}
}

// Entry is one user's record for one calendar day.
//
// Date is always YYYY-MM-DD, so entries order and filter correctly as plain
// strings. UpdatedAt is never earlier than CreatedAt.
type Entry struct {
	UserID    string    `json:"userId"`
	Date      string    `json:"date"`
	Emotion   Emotion   `json:"emotion"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilter bounds a listing to an inclusive date range. Empty means unbounded.
type ListFilter struct {
	StartDate string
	EndDate   string
}

// matches reports whether date falls inside the filter bounds.
func (filter ListFilter) matches(date string) bool {
	if filter.StartDate != "" && date < filter.StartDate {
		return false
	}
	if filter.EndDate != "" && date > filter.EndDate {
		return false
	}
	return true
}

// # Field Identifiers

const (
	FieldDate      = "date"
	FieldEmotion   = "emotion"
	FieldContent   = "content"
	FieldStartDate = "startDate"
	FieldEndDate   = "endDate"
	FieldYear      = "year"
	FieldMonth     = "month"
)

// DateLayout is the Go time layout of an entry date.
const DateLayout = "2006-01-02"
