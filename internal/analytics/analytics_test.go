package analytics

import (
	"testing"
	"time"
)

var today = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

// daysAgo builds completion dates from day offsets relative to today.
func daysAgo(offsets ...int) []time.Time {
	dates := make([]time.Time, 0, len(offsets))
	for _, o := range offsets {
		dates = append(dates, today.AddDate(0, 0, -o))
	}
	return dates
}

func TestDayNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	in := time.Date(2026, 3, 15, 23, 45, 0, 0, loc) // 14:45 UTC
	got := Day(in)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no entries", nil, 0},
		{"today only", []int{0}, 1},
		{"today missing breaks streak", []int{1, 2, 3}, 0},
		{"three consecutive ending today", []int{0, 1, 2}, 3},
		{"gap ends the walk", []int{0, 1, 3, 4}, 2},
		{"old entries ignored", []int{0, 5, 6, 7}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(today, daysAgo(tt.offsets...), HistoryDays)
			if r.CurrentStreak != tt.want {
				t.Fatalf("currentStreak = %d, want %d", r.CurrentStreak, tt.want)
			}
		})
	}
}

func TestCurrentStreakZeroIffTodayMissing(t *testing.T) {
	sets := [][]int{nil, {0}, {1}, {0, 1}, {2, 3}, {0, 2}, {0, 1, 2, 3}, {1, 2, 3, 4}}
	for _, offsets := range sets {
		r := Compute(today, daysAgo(offsets...), HistoryDays)
		hasToday := false
		for _, o := range offsets {
			if o == 0 {
				hasToday = true
			}
		}
		if (r.CurrentStreak == 0) == hasToday {
			t.Fatalf("offsets %v: currentStreak = %d, today present = %v", offsets, r.CurrentStreak, hasToday)
		}
	}
}

func TestLongestStreak(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no entries", nil, 0},
		{"single day", []int{3}, 1},
		{"run not ending today", []int{3, 4, 5, 6}, 4},
		{"longest beats current", []int{0, 1, 5, 6, 7}, 3},
		{"two equal runs", []int{0, 1, 4, 5}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(today, daysAgo(tt.offsets...), HistoryDays)
			if r.LongestStreak != tt.want {
				t.Fatalf("longestStreak = %d, want %d", r.LongestStreak, tt.want)
			}
		})
	}
}

func TestLongestAtLeastCurrent(t *testing.T) {
	sets := [][]int{nil, {0}, {0, 1, 2}, {0, 1, 3, 4}, {0, 2, 4, 6}, {0, 1, 2, 3, 4, 5, 6}}
	for _, offsets := range sets {
		r := Compute(today, daysAgo(offsets...), HistoryDays)
		if r.LongestStreak < r.CurrentStreak {
			t.Fatalf("offsets %v: longest %d < current %d", offsets, r.LongestStreak, r.CurrentStreak)
		}
	}
}

func TestHistoryShape(t *testing.T) {
	r := Compute(today, daysAgo(0, 1, 3, 4), HistoryDays)
	if len(r.History) != HistoryDays {
		t.Fatalf("history length = %d, want %d", len(r.History), HistoryDays)
	}
	if r.History[len(r.History)-1].Date != FormatDay(today) {
		t.Fatalf("last history point = %s, want today %s", r.History[len(r.History)-1].Date, FormatDay(today))
	}
	for i := 1; i < len(r.History); i++ {
		prev, err := ParseDay(r.History[i-1].Date)
		if err != nil {
			t.Fatal(err)
		}
		if r.History[i].Date != FormatDay(prev.AddDate(0, 0, 1)) {
			t.Fatalf("history not consecutive at %d: %s after %s", i, r.History[i].Date, r.History[i-1].Date)
		}
	}
}

// Spec scenario: entries on offsets {0,1,3,4} mark exactly those days.
func TestHistoryMarksCompletedDays(t *testing.T) {
	r := Compute(today, daysAgo(0, 1, 3, 4), HistoryDays)
	want := map[int]bool{0: true, 1: true, 2: false, 3: true, 4: true, 5: false}
	for offset, completed := range want {
		p := r.History[len(r.History)-1-offset]
		if p.Completed != completed {
			t.Fatalf("day -%d (%s): completed = %v, want %v", offset, p.Date, p.Completed, completed)
		}
	}
	if r.CurrentStreak != 2 {
		t.Fatalf("currentStreak = %d, want 2", r.CurrentStreak)
	}
}

func TestCompletionRate7d(t *testing.T) {
	tests := []struct {
		name    string
		offsets []int
		want    float64
	}{
		{"empty", nil, 0},
		{"all seven days", []int{0, 1, 2, 3, 4, 5, 6}, 1},
		{"three of seven", []int{0, 2, 4}, 3.0 / 7},
		{"older entries excluded", []int{7, 8, 9}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(today, daysAgo(tt.offsets...), HistoryDays)
			if r.CompletionRate7d != tt.want {
				t.Fatalf("completionRate7d = %v, want %v", r.CompletionRate7d, tt.want)
			}
			if r.CompletionRate7d < 0 || r.CompletionRate7d > 1 {
				t.Fatalf("completionRate7d %v out of [0,1]", r.CompletionRate7d)
			}
		})
	}
}

func TestCompletionsToday(t *testing.T) {
	if r := Compute(today, daysAgo(0, 3), HistoryDays); r.CompletionsToday != 1 {
		t.Fatalf("completionsToday = %d, want 1", r.CompletionsToday)
	}
	if r := Compute(today, daysAgo(1, 3), HistoryDays); r.CompletionsToday != 0 {
		t.Fatalf("completionsToday = %d, want 0", r.CompletionsToday)
	}
}

func TestDuplicateAndUnnormalizedDatesCollapse(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	dates := []time.Time{
		today,
		today.Add(9 * time.Hour),
		time.Date(2026, 3, 15, 5, 30, 0, 0, loc), // 10:30 UTC same day
		today.AddDate(0, 0, -1),
	}
	r := Compute(today, dates, HistoryDays)
	if r.CurrentStreak != 2 {
		t.Fatalf("currentStreak = %d, want 2", r.CurrentStreak)
	}
	if r.CompletionsToday != 1 {
		t.Fatalf("completionsToday = %d, want 1", r.CompletionsToday)
	}
	if got := r.CompletionRate7d; got != 2.0/7 {
		t.Fatalf("completionRate7d = %v, want %v", got, 2.0/7)
	}
}

func TestSummarizeEmptyDashboard(t *testing.T) {
	s := Summarize(nil)
	if s.TotalHabits != 0 || s.ActiveStreaks != 0 || s.CompletionsToday != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
	if s.CompletionRate7d != 0 {
		t.Fatalf("completionRate7d = %v, want 0 for empty dashboard", s.CompletionRate7d)
	}
}

func TestSummarize(t *testing.T) {
	results := []Result{
		Compute(today, daysAgo(0, 1, 2), HistoryDays),  // streaking, 3 in last 7
		Compute(today, daysAgo(2, 3), HistoryDays),     // not streaking, 2 in last 7
		Compute(today, daysAgo(10, 11), HistoryDays),   // nothing recent
	}
	s := Summarize(results)
	if s.TotalHabits != 3 {
		t.Fatalf("totalHabits = %d", s.TotalHabits)
	}
	if s.ActiveStreaks != 1 {
		t.Fatalf("activeStreaks = %d, want 1", s.ActiveStreaks)
	}
	if s.CompletionsToday != 1 {
		t.Fatalf("completionsToday = %d, want 1", s.CompletionsToday)
	}
	if want := 5.0 / 21; s.CompletionRate7d != want {
		t.Fatalf("completionRate7d = %v, want %v", s.CompletionRate7d, want)
	}
}

func TestDailyTotals(t *testing.T) {
	results := []Result{
		Compute(today, daysAgo(0, 1), HistoryDays),
		Compute(today, daysAgo(0, 2), HistoryDays),
	}
	totals := DailyTotals(today, HistoryDays, results)
	if len(totals) != HistoryDays {
		t.Fatalf("totals length = %d, want %d", len(totals), HistoryDays)
	}
	last := totals[len(totals)-1]
	if last.Date != FormatDay(today) || last.Completions != 2 {
		t.Fatalf("today = %+v, want 2 completions on %s", last, FormatDay(today))
	}
	if got := totals[len(totals)-2].Completions; got != 1 {
		t.Fatalf("yesterday completions = %d, want 1", got)
	}
	if got := totals[len(totals)-3].Completions; got != 1 {
		t.Fatalf("two days ago completions = %d, want 1", got)
	}
	for i := 1; i < len(totals); i++ {
		if totals[i-1].Date >= totals[i].Date {
			t.Fatalf("totals not chronological at %d: %s then %s", i, totals[i-1].Date, totals[i].Date)
		}
	}
}

func TestParseFormatDay(t *testing.T) {
	d, err := ParseDay("2026-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(today) {
		t.Fatalf("ParseDay = %v, want %v", d, today)
	}
	if FormatDay(d) != "2026-03-15" {
		t.Fatalf("FormatDay = %s", FormatDay(d))
	}
	if _, err := ParseDay("15/03/2026"); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}
