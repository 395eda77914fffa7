// Seeds a demo user with a few habits and recent completions so the
// dashboard has something to show on a fresh database.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"habitboard/internal/analytics"
	"habitboard/internal/config"
	"habitboard/internal/logger"
	"habitboard/internal/model"
	"habitboard/internal/store"

	"github.com/google/uuid"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	userID := flag.String("user", "", "user id to seed (default: new uuid)")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	db, err := cfg.OpenGormDB()
	if err != nil {
		log.Fatal("db connect failed: ", err)
	}
	st, err := store.NewGorm(db)
	if err != nil {
		log.Fatal("store init failed: ", err)
	}

	ctx := context.Background()
	uid := *userID
	if uid == "" {
		uid = uuid.NewString()
	}
	if err := st.EnsureUser(ctx, uid, "Demo User"); err != nil {
		log.Fatal("ensure user failed: ", err)
	}

	samples := []struct {
		name, description, color, icon string
		offsets                        []int
	}{
		{"Morning run", "Get outside for at least 20 minutes before work.", "#22c55e", "R", []int{0, 1, 3, 4}},
		{"Journal session", "Write three bullet points reflecting on the day.", "#2563eb", "J", []int{0, 2, 5}},
		{"Focus block", "Block out one hour for deep work.", "#f97316", "F", []int{1, 2, 3, 6}},
	}

	today := analytics.Day(time.Now())
	for _, sample := range samples {
		desc, color, icon := sample.description, sample.color, sample.icon
		h := model.Habit{
			UserID:      uid,
			Name:        sample.name,
			Description: &desc,
			Color:       &color,
			Icon:        &icon,
			TargetCount: 1,
		}
		if err := st.CreateHabit(ctx, &h); err != nil {
			log.Fatal("create habit failed: ", err)
		}
		for _, offset := range sample.offsets {
			if _, err := st.ToggleEntry(ctx, h.ID, today.AddDate(0, 0, -offset)); err != nil {
				log.Fatal("create entry failed: ", err)
			}
		}
		logger.Info("seeded habit", "habit", h.ID, "name", h.Name, "entries", len(sample.offsets))
	}

	logger.Info("seed done", "user", uid)
}
