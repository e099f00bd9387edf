// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"github.com/taibuivan/nicocal/internal/platform/validate"
)

// EntryInput is the diary payload accepted by create and update.
//
// Content is a pointer so that an absent field can be told apart from an
// intentionally empty diary.
type EntryInput struct {
	Date    string  `json:"date"`
	Emotion string  `json:"emotion"`
	Content *string `json:"content"`
}

// emotionValues returns the allowed emotions as strings for [validate.Validator.OneOf].
func emotionValues() []string {
	emotions := Emotions()
	values := make([]string, len(emotions))
	for i, emotion := range emotions {
		values[i] = string(emotion)
	}
	return values
}

// validateEntry applies the diary schema: date shape, emotion membership and
// the presence of content. Content has no length rule.
func validateEntry(input EntryInput) error {
	validator := &validate.Validator{}
	validator.Date(FieldDate, input.Date).
		OneOf(FieldEmotion, input.Emotion, emotionValues()...).
		Custom(FieldContent, input.Content == nil, "This field is required")

	return validator.Err()
}

// validateDateParam applies the date schema to a path parameter.
func validateDateParam(date string) error {
	validator := &validate.Validator{}
	validator.Date(FieldDate, date)
	return validator.Err()
}
