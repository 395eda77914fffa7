package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habitboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct{ db *gorm.DB }

// NewGorm wraps a gorm DB as a Store and migrates the schema.
func NewGorm(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&model.User{}, &model.Habit{}, &model.HabitEntry{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) EnsureUser(ctx context.Context, id, name string) error {
	user := model.User{ID: id, Name: name}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error
}

func (s *gormStore) CreateHabit(ctx context.Context, h *model.Habit) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return s.db.WithContext(ctx).Create(h).Error
}

func (s *gormStore) GetHabit(ctx context.Context, userID, habitID string) (*model.Habit, error) {
	var h model.Habit
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", habitID, userID).
		First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query habit: %w", err)
	}
	return &h, nil
}

func (s *gormStore) SetArchived(ctx context.Context, userID, habitID string, archived bool) error {
	// existence check first: an unchanged value reports zero rows
	// affected, which is indistinguishable from a missing habit
	h, err := s.GetHabit(ctx, userID, habitID)
	if err != nil {
		return err
	}
	if h.Archived == archived {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(h).Update("archived", archived).Error; err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	return nil
}

func (s *gormStore) ListActiveHabits(ctx context.Context, userID string, entriesSince time.Time) ([]model.Habit, error) {
	var habits []model.Habit
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND archived = ?", userID, false).
		Preload("Entries", "entry_date >= ?", entriesSince).
		Order("created_at ASC").
		Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	return habits, nil
}

func (s *gormStore) FindEntry(ctx context.Context, habitID string, date time.Time) (*model.HabitEntry, error) {
	var e model.HabitEntry
	err := s.db.WithContext(ctx).
		Where("habit_id = ? AND entry_date = ?", habitID, date).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query entry: %w", err)
	}
	return &e, nil
}

func (s *gormStore) ToggleEntry(ctx context.Context, habitID string, date time.Time) (bool, error) {
	completed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.HabitEntry
		err := tx.Where("habit_id = ? AND entry_date = ?", habitID, date).
			First(&existing).Error
		if err == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("query entry: %w", err)
		}
		completed = true
		return tx.Create(&model.HabitEntry{
			ID:        uuid.NewString(),
			HabitID:   habitID,
			EntryDate: date,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
