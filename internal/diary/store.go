// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"context"

	"github.com/taibuivan/nicocal/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when no entry exists for (user, date).
	ErrNotFound = apperr.NotFound("Diary")

	// ErrConflict is returned when creating a second entry for (user, date).
	ErrConflict = apperr.Conflict("A diary already exists for this date")
)

// # Diary Data Access

// Repository defines the data access contract for diary entries.
//
// Implementations are partitioned by user ID: no call made for one user can
// observe or modify another user's entries.
type Repository interface {

	/*
		ListByUser returns the user's entries whose date lies inside filter.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - filter: ListFilter (inclusive bounds, empty = unbounded)

		Returns:
		  - []Entry: Copies in insertion order; empty (never nil) for unknown users
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string, filter ListFilter) ([]Entry, error)

	/*
		GetByDate returns the user's entry for date.

		Returns:
		  - *Entry: A copy of the stored entry
		  - error: ErrNotFound if absent
	*/
	GetByDate(context context.Context, userID, date string) (*Entry, error)

	/*
		Create inserts a new entry stamped with the current time.

		Returns:
		  - *Entry: The created entry (CreatedAt == UpdatedAt)
		  - error: ErrConflict if (userID, date) already exists
	*/
	Create(context context.Context, userID, date string, emotion Emotion, content string) (*Entry, error)

	/*
		Update replaces emotion and content of an existing entry.

		Date, CreatedAt and UserID are preserved; UpdatedAt moves forward.

		Returns:
		  - *Entry: The updated entry
		  - error: ErrNotFound if (userID, date) does not exist
	*/
	Update(context context.Context, userID, date string, emotion Emotion, content string) (*Entry, error)

	/*
		Insert stores a fully-formed entry, keeping its timestamps. Used by seeding.

		Returns:
		  - error: ErrConflict if (entry.UserID, entry.Date) already exists
	*/
	Insert(context context.Context, entry Entry) error
}
