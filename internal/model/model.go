package model

import (
	"time"

	"habitboard/internal/analytics"
)

type CreateHabitRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	TargetCount *int    `json:"targetCount,omitempty"`
}

type ToggleEntryRequest struct {
	Date string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

type ArchiveHabitRequest struct {
	Archived bool `json:"archived"`
}

// HabitAnalytics is one habit plus its computed analytics, as serialized
// to the dashboard. Dates are YYYY-MM-DD, timestamps RFC3339.
type HabitAnalytics struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Description      *string                  `json:"description"`
	Color            *string                  `json:"color"`
	Icon             *string                  `json:"icon"`
	TargetCount      int                      `json:"targetCount"`
	Archived         bool                     `json:"archived"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
	CurrentStreak    int                      `json:"currentStreak"`
	LongestStreak    int                      `json:"longestStreak"`
	CompletionRate7d float64                  `json:"completionRate7d"`
	CompletionsToday int                      `json:"completionsToday"`
	History          []analytics.HistoryPoint `json:"history"`
}

type DashboardData struct {
	Summary analytics.Summary      `json:"summary"`
	Habits  []HabitAnalytics       `json:"habits"`
	History []analytics.DailyCount `json:"history"`
}
