// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"
)

// Service implements the diary use cases on top of a [Repository].
//
// Every method takes the owner's user ID explicitly; callers pass the ID
// carried by the verified session, never one taken from the request body.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the user's entries inside filter.
func (service *Service) List(context context.Context, userID string, filter ListFilter) ([]Entry, error) {
	return service.repo.ListByUser(context, userID, filter)
}

// Get returns the user's entry for date.
func (service *Service) Get(context context.Context, userID, date string) (*Entry, error) {
	return service.repo.GetByDate(context, userID, date)
}

/*
Create records a new entry for input.Date.

Parameters:
  - context: context.Context
  - userID: string (session owner)
  - input: EntryInput (already validated)

Returns:
  - *Entry: Created entity
  - error: ErrConflict if an entry already exists for that date
*/
func (service *Service) Create(context context.Context, userID string, input EntryInput) (*Entry, error) {
	entry, err := service.repo.Create(context, userID, input.Date, Emotion(input.Emotion), contentOf(input))
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "diary_created",
		slog.String("user_id", userID),
		slog.String("date", entry.Date),
	)

	return entry, nil
}

/*
Update rewrites emotion and content of the entry stored under date.

The date comes from the path; input.Date only takes part in validation.

Returns:
  - *Entry: Updated entity
  - error: ErrNotFound if no entry exists for that date
*/
func (service *Service) Update(context context.Context, userID, date string, input EntryInput) (*Entry, error) {
	entry, err := service.repo.Update(context, userID, date, Emotion(input.Emotion), contentOf(input))
	if err != nil {
		return nil, err
	}

	service.logger.DebugContext(context, "diary_updated",
		slog.String("user_id", userID),
		slog.String("date", entry.Date),
	)

	return entry, nil
}

// Calendar returns the month grid of year/month for the user.
func (service *Service) Calendar(context context.Context, userID string, year int, month time.Month, tag language.Tag) (*CalendarMonth, error) {
	entries, err := service.repo.ListByUser(context, userID, monthBounds(year, month))
	if err != nil {
		return nil, err
	}

	calendar := BuildCalendar(year, month, entries, service.now(), tag)
	return &calendar, nil
}

// Today returns the current date, used when a calendar request names no month.
func (service *Service) Today() time.Time {
	return service.now()
}

func contentOf(input EntryInput) string {
	if input.Content == nil {
		return ""
	}
	return *input.Content
}
