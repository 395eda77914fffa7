package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"habitboard/internal/model"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store used by tests and the "memory" database
// driver. A single mutex gives it the same read-modify-write atomicity
// the SQL backend gets from transactions.
type MemStore struct {
	mu      sync.Mutex
	users   map[string]model.User
	habits  map[string]model.Habit
	entries map[string]map[string]model.HabitEntry // habitID -> YYYY-MM-DD -> entry
}

func NewMem() *MemStore {
	return &MemStore{
		users:   make(map[string]model.User),
		habits:  make(map[string]model.Habit),
		entries: make(map[string]map[string]model.HabitEntry),
	}
}

func (s *MemStore) EnsureUser(_ context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		s.users[id] = model.User{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	}
	return nil
}

func (s *MemStore) CreateHabit(_ context.Context, h *model.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = now
	}
	h.UpdatedAt = now
	s.habits[h.ID] = *h
	return nil
}

func (s *MemStore) GetHabit(_ context.Context, userID, habitID string) (*model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[habitID]
	if !ok || h.UserID != userID {
		return nil, ErrNotFound
	}
	return &h, nil
}

func (s *MemStore) SetArchived(_ context.Context, userID, habitID string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[habitID]
	if !ok || h.UserID != userID {
		return ErrNotFound
	}
	h.Archived = archived
	h.UpdatedAt = time.Now().UTC()
	s.habits[habitID] = h
	return nil
}

func (s *MemStore) ListActiveHabits(_ context.Context, userID string, entriesSince time.Time) ([]model.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var habits []model.Habit
	for _, h := range s.habits {
		if h.UserID != userID || h.Archived {
			continue
		}
		h.Entries = nil
		for _, e := range s.entries[h.ID] {
			if !e.EntryDate.Before(entriesSince) {
				h.Entries = append(h.Entries, e)
			}
		}
		sort.Slice(h.Entries, func(i, j int) bool {
			return h.Entries[i].EntryDate.Before(h.Entries[j].EntryDate)
		})
		habits = append(habits, h)
	}
	sort.Slice(habits, func(i, j int) bool {
		if habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].ID < habits[j].ID
		}
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})
	return habits, nil
}

func (s *MemStore) FindEntry(_ context.Context, habitID string, date time.Time) (*model.HabitEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[habitID][dayKey(date)]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (s *MemStore) ToggleEntry(_ context.Context, habitID string, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := dayKey(date)
	byDay := s.entries[habitID]
	if byDay == nil {
		byDay = make(map[string]model.HabitEntry)
		s.entries[habitID] = byDay
	}
	if _, ok := byDay[key]; ok {
		delete(byDay, key)
		return false, nil
	}
	byDay[key] = model.HabitEntry{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		EntryDate: date,
		CreatedAt: time.Now().UTC(),
	}
	return true, nil
}

func (s *MemStore) Ping(context.Context) error { return nil }

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }
