package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"habitboard/internal/analytics"
	"habitboard/internal/logger"
	"habitboard/internal/model"
	"habitboard/internal/store"
)

// ErrHabitNotFound is returned when an operation references a habit that
// does not exist or belongs to another user.
var ErrHabitNotFound = errors.New("habit not found")

// ValidationError rejects malformed input; its message is safe to show
// to the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// HabitService implements habit CRUD plus dashboard computation. Every
// mutation returns a fresh whole-dashboard snapshot so callers never see
// a partially updated view.
type HabitService struct {
	store store.Store
	now   func() time.Time
}

func NewHabitService(st store.Store) *HabitService {
	return &HabitService{store: st, now: time.Now}
}

// today is always a UTC calendar date, never the raw wall clock.
func (s *HabitService) today() time.Time { return analytics.Day(s.now()) }

// Dashboard assembles the full dashboard for a user. Entries are fetched
// back to today-LookbackDays so the current-streak walk cannot run past
// the window; longest streak is still windowed (see analytics.Compute).
func (s *HabitService) Dashboard(ctx context.Context, userID string) (*model.DashboardData, error) {
	today := s.today()
	since := today.AddDate(0, 0, -analytics.LookbackDays)

	habits, err := s.store.ListActiveHabits(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}

	out := make([]model.HabitAnalytics, 0, len(habits))
	results := make([]analytics.Result, 0, len(habits))
	for _, h := range habits {
		dates := make([]time.Time, 0, len(h.Entries))
		for _, e := range h.Entries {
			dates = append(dates, e.EntryDate)
		}
		r := analytics.Compute(today, dates, analytics.HistoryDays)
		results = append(results, r)
		out = append(out, model.HabitAnalytics{
			ID:               h.ID,
			Name:             h.Name,
			Description:      h.Description,
			Color:            h.Color,
			Icon:             h.Icon,
			TargetCount:      h.TargetCount,
			Archived:         h.Archived,
			CreatedAt:        h.CreatedAt,
			UpdatedAt:        h.UpdatedAt,
			CurrentStreak:    r.CurrentStreak,
			LongestStreak:    r.LongestStreak,
			CompletionRate7d: r.CompletionRate7d,
			CompletionsToday: r.CompletionsToday,
			History:          r.History,
		})
	}

	return &model.DashboardData{
		Summary: analytics.Summarize(results),
		Habits:  out,
		History: analytics.DailyTotals(today, analytics.HistoryDays, results),
	}, nil
}

func (s *HabitService) CreateHabit(ctx context.Context, userID string, req model.CreateHabitRequest) (*model.DashboardData, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, &ValidationError{Msg: "habit name is required"}
	}

	targetCount := 1
	if req.TargetCount != nil && *req.TargetCount > 0 {
		targetCount = *req.TargetCount
	}
	var description *string
	if req.Description != nil {
		d := strings.TrimSpace(*req.Description)
		if d != "" {
			description = &d
		}
	}

	if err := s.store.EnsureUser(ctx, userID, "You"); err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	h := model.Habit{
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       req.Color,
		Icon:        req.Icon,
		TargetCount: targetCount,
	}
	if err := s.store.CreateHabit(ctx, &h); err != nil {
		return nil, fmt.Errorf("create habit: %w", err)
	}
	logger.Info("habit.created", "user", userID, "habit", h.ID, "name", name)

	return s.Dashboard(ctx, userID)
}

// ToggleEntry flips the completion state of one (habit, date) pair.
// dateISO is YYYY-MM-DD; empty means today.
func (s *HabitService) ToggleEntry(ctx context.Context, userID, habitID, dateISO string) (*model.DashboardData, error) {
	date := s.today()
	if dateISO != "" {
		parsed, err := analytics.ParseDay(dateISO)
		if err != nil {
			return nil, &ValidationError{Msg: "date must be YYYY-MM-DD"}
		}
		date = parsed
	}

	if _, err := s.store.GetHabit(ctx, userID, habitID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("lookup habit: %w", err)
	}

	completed, err := s.store.ToggleEntry(ctx, habitID, date)
	if err != nil {
		return nil, fmt.Errorf("toggle entry: %w", err)
	}
	logger.Info("habit.toggled", "user", userID, "habit", habitID,
		"date", analytics.FormatDay(date), "completed", completed)

	return s.Dashboard(ctx, userID)
}

// ArchiveHabit sets the archived flag. Entries are not touched; an
// archived habit drops out of the dashboard but keeps its history.
func (s *HabitService) ArchiveHabit(ctx context.Context, userID, habitID string, archived bool) (*model.DashboardData, error) {
	if err := s.store.SetArchived(ctx, userID, habitID, archived); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("archive habit: %w", err)
	}
	logger.Info("habit.archived", "user", userID, "habit", habitID, "archived", archived)

	return s.Dashboard(ctx, userID)
}
