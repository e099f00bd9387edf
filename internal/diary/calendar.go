// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// daysPerWeek is the width of a calendar row. Rows start on Sunday.
const daysPerWeek = 7

// CalendarDay is one populated cell of the month grid.
type CalendarDay struct {
	Date    string  `json:"date"`
	Emotion Emotion `json:"emotion,omitempty"`
	IsToday bool    `json:"isToday"`
}

// CalendarMonth is a month laid out as Sunday-first weeks.
//
// Cells before the first and after the last day of the month are nil, so
// every week has exactly seven cells.
type CalendarMonth struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Label string           `json:"label"`
	Weeks [][]*CalendarDay `json:"weeks"`
}

// labelMatcher picks the label language from an Accept-Language header.
// The first supported tag is the fallback.
var labelMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Japanese,
})

// MatchLanguage resolves an Accept-Language header to a supported label language.
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return language.English
	}

	tag, _, _ := labelMatcher.Match(tags...)
	return tag
}

// MonthLabel renders the month heading in the requested language.
func MonthLabel(year int, month time.Month, tag language.Tag) string {
	if base, _ := tag.Base(); base.String() == "ja" {
		return fmt.Sprintf("%d年%d月", year, int(month))
	}
	return fmt.Sprintf("%s %d", month.String(), year)
}

// BuildCalendar lays out year/month and marks each day with the emotion of its entry.
//
// entries may contain dates outside the month; they are ignored. today is
// compared by calendar date in its own location.
func BuildCalendar(year int, month time.Month, entries []Entry, today time.Time, tag language.Tag) CalendarMonth {
	emotions := make(map[string]Emotion, len(entries))
	for _, entry := range entries {
		emotions[entry.Date] = entry.Emotion
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	todayString := today.Format(DateLayout)

	weeks := make([][]*CalendarDay, 0, 6)
	week := make([]*CalendarDay, int(first.Weekday()), daysPerWeek)

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
		week = append(week, &CalendarDay{
			Date:    date,
			Emotion: emotions[date],
			IsToday: date == todayString,
		})

		if len(week) == daysPerWeek || day == daysInMonth {
			for len(week) < daysPerWeek {
				week = append(week, nil)
			}
			weeks = append(weeks, week)
			week = make([]*CalendarDay, 0, daysPerWeek)
		}
	}

	return CalendarMonth{
		Year:  year,
		Month: int(month),
		Label: MonthLabel(year, month, tag),
		Weeks: weeks,
	}
}

// monthBounds returns the inclusive date range covering year/month.
func monthBounds(year int, month time.Month) ListFilter {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return ListFilter{
		StartDate: first.Format(DateLayout),
		EndDate:   last.Format(DateLayout),
	}
}
