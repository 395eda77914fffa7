package model

import "time"

type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Habit struct {
	ID          string       `gorm:"primaryKey;size:64" json:"id"`
	UserID      string       `gorm:"size:64;index" json:"-"`
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Color       *string      `gorm:"size:32" json:"color"`
	Icon        *string      `gorm:"size:32" json:"icon"`
	TargetCount int          `gorm:"default:1" json:"targetCount"`
	Archived    bool         `json:"archived"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Entries     []HabitEntry `json:"-"`
}

// HabitEntry records one completed calendar day for a habit. The
// (habit_id, entry_date) unique index enforces at most one entry per day
// and is the backstop for concurrent toggles.
type HabitEntry struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	HabitID   string    `gorm:"size:64;uniqueIndex:uk_habit_entry_date" json:"habitId"`
	EntryDate time.Time `gorm:"type:date;uniqueIndex:uk_habit_entry_date" json:"entryDate"`
	CreatedAt time.Time `json:"createdAt"`
}

func (User) TableName() string       { return "users" }
func (Habit) TableName() string      { return "habits" }
func (HabitEntry) TableName() string { return "habit_entries" }
