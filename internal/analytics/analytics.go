// Package analytics derives streaks, completion rates and history series
// from a habit's completion dates. It is pure: "today" is always an
// explicit input so callers (and tests) control the clock, and every date
// is a UTC calendar date with the time of day discarded.
package analytics

import (
	"sort"
	"time"
)

const (
	// HistoryDays is the length of the rolling history series.
	HistoryDays = 14

	// LookbackDays is how far back entry queries must reach so that a
	// streak begun up to HistoryDays ago is not truncated by the window.
	LookbackDays = 2 * HistoryDays

	dayFormat = "2006-01-02"
)

// Day normalizes t to UTC midnight of its calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.UTC)
}

// FormatDay renders a date as YYYY-MM-DD.
func FormatDay(t time.Time) string { return t.UTC().Format(dayFormat) }

// HistoryPoint marks whether a habit was completed on one calendar day.
type HistoryPoint struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// DailyCount is one day of the dashboard-level history series.
type DailyCount struct {
	Date        string `json:"date"`
	Completions int    `json:"completions"`
}

// Result holds the computed analytics for a single habit.
type Result struct {
	CurrentStreak    int            `json:"currentStreak"`
	LongestStreak    int            `json:"longestStreak"`
	CompletionRate7d float64        `json:"completionRate7d"`
	CompletionsToday int            `json:"completionsToday"`
	History          []HistoryPoint `json:"history"`
}

// Summary aggregates per-habit results across a dashboard.
type Summary struct {
	TotalHabits      int     `json:"totalHabits"`
	ActiveStreaks    int     `json:"activeStreaks"`
	CompletionRate7d float64 `json:"completionRate7d"`
	CompletionsToday int     `json:"completionsToday"`
}

// Compute derives the analytics for one habit from its completion dates.
// today must be UTC-midnight-normalized and historyDays must be >= 7;
// entry dates are normalized and deduplicated before computing. Longest
// streak is measured only over the supplied dates, so a caller passing a
// bounded lookback window underreports streaks older than the window.
func Compute(today time.Time, entryDates []time.Time, historyDays int) Result {
	completed := make(map[string]struct{}, len(entryDates))
	for _, d := range entryDates {
		completed[FormatDay(Day(d))] = struct{}{}
	}

	current := 0
	for cursor := today; ; cursor = cursor.AddDate(0, 0, -1) {
		if _, ok := completed[FormatDay(cursor)]; !ok {
			break
		}
		current++
	}

	days := make([]string, 0, len(completed))
	for iso := range completed {
		days = append(days, iso)
	}
	sort.Strings(days)

	longest, run := 0, 0
	for i, iso := range days {
		if i > 0 && nextDay(days[i-1]) == iso {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	history := make([]HistoryPoint, 0, historyDays)
	for i := historyDays - 1; i >= 0; i-- {
		iso := FormatDay(today.AddDate(0, 0, -i))
		_, ok := completed[iso]
		history = append(history, HistoryPoint{Date: iso, Completed: ok})
	}

	rate7d := float64(completionsLast7(history)) / 7

	todayDone := 0
	if _, ok := completed[FormatDay(today)]; ok {
		todayDone = 1
	}

	return Result{
		CurrentStreak:    current,
		LongestStreak:    longest,
		CompletionRate7d: rate7d,
		CompletionsToday: todayDone,
		History:          history,
	}
}

// Summarize aggregates per-habit results into the dashboard summary.
// The rate denominator is floored at 1 so an empty dashboard reports a
// rate of 0 rather than dividing by zero.
func Summarize(results []Result) Summary {
	s := Summary{TotalHabits: len(results)}
	completions7d := 0
	for _, r := range results {
		if r.CurrentStreak > 0 {
			s.ActiveStreaks++
		}
		s.CompletionsToday += r.CompletionsToday
		completions7d += completionsLast7(r.History)
	}
	possible := s.TotalHabits * 7
	if possible < 1 {
		possible = 1
	}
	s.CompletionRate7d = float64(completions7d) / float64(possible)
	return s
}

// DailyTotals counts, for each of the last historyDays days ending at
// today, how many habits were completed that day. Output is chronological.
func DailyTotals(today time.Time, historyDays int, results []Result) []DailyCount {
	totals := make([]DailyCount, 0, historyDays)
	index := make(map[string]int, historyDays)
	for i := historyDays - 1; i >= 0; i-- {
		iso := FormatDay(today.AddDate(0, 0, -i))
		index[iso] = len(totals)
		totals = append(totals, DailyCount{Date: iso})
	}
	for _, r := range results {
		for _, p := range r.History {
			if !p.Completed {
				continue
			}
			if i, ok := index[p.Date]; ok {
				totals[i].Completions++
			}
		}
	}
	return totals
}

func completionsLast7(history []HistoryPoint) int {
	n := 0
	for _, p := range history[len(history)-7:] {
		if p.Completed {
			n++
		}
	}
	return n
}

func nextDay(iso string) string {
	d, err := ParseDay(iso)
	if err != nil {
		return ""
	}
	return FormatDay(d.AddDate(0, 0, 1))
}
