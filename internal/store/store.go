// Package store is the persistence boundary of habitboard. The service
// layer depends only on the Store interface; main wires in either the
// GORM/MySQL backend or the in-memory one.
package store

import (
	"context"
	"errors"
	"time"

	"habitboard/internal/model"
)

// ErrNotFound is returned when a habit or entry lookup matches nothing.
var ErrNotFound = errors.New("not found")

type Store interface {
	// EnsureUser upserts a user row, keeping an existing name.
	EnsureUser(ctx context.Context, id, name string) error

	CreateHabit(ctx context.Context, h *model.Habit) error

	// GetHabit is user-scoped: a habit owned by another user reports
	// ErrNotFound rather than leaking its existence.
	GetHabit(ctx context.Context, userID, habitID string) (*model.Habit, error)

	SetArchived(ctx context.Context, userID, habitID string, archived bool) error

	// ListActiveHabits returns the user's non-archived habits ordered by
	// creation time ascending, each loaded with its entries dated on or
	// after entriesSince.
	ListActiveHabits(ctx context.Context, userID string, entriesSince time.Time) ([]model.Habit, error)

	FindEntry(ctx context.Context, habitID string, date time.Time) (*model.HabitEntry, error)

	// ToggleEntry deletes the entry for (habitID, date) if one exists,
	// otherwise creates it. Returns true when an entry exists afterwards.
	// The check-and-act pair runs atomically against the backend; racing
	// toggles resolve last-write-wins with the unique index preventing
	// duplicate rows.
	ToggleEntry(ctx context.Context, habitID string, date time.Time) (bool, error)

	Ping(ctx context.Context) error
}
