// Package setup opens the resources every front-end needs: the question
// provider and the achievement tracker with its store.
package setup

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/config"
	"github.com/tomz197/wordblast/internal/loop"
	"github.com/tomz197/wordblast/internal/vocab"
)

// Resources are shared by all games a process runs.
type Resources struct {
	Provider *vocab.Provider
	Tracker  *achievement.Tracker
	Store    achievement.Store

	sqlite *achievement.SQLiteStore
}

// Open loads the word bank and opens the achievement store named by s.
// An empty AchievementsDB keeps achievements in memory.
func Open(ctx context.Context, s config.Settings, logger *log.Logger) (*Resources, error) {
	bank, err := vocab.LoadFile(s.VocabFile)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if bank.Len() == 0 {
		logger.Warn("word bank is empty", "file", s.VocabFile)
	}

	r := &Resources{
		Provider: vocab.NewProvider(bank, rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	if s.AchievementsDB == "" {
		r.Store = achievement.NewMemoryStore()
	} else {
		db, err := achievement.OpenSQLite(s.AchievementsDB)
		if err != nil {
			return nil, fmt.Errorf("open achievements: %w", err)
		}
		r.sqlite = db
		r.Store = db
	}
	r.Tracker = achievement.NewTracker(ctx, r.Store, logger)
	logger.Debug("resources ready", "words", bank.Len(), "db", s.AchievementsDB)
	return r, nil
}

// GameOptions returns controller options for one game. Each game gets its
// own random source.
func (r *Resources) GameOptions(logger *log.Logger) loop.Options {
	return loop.Options{
		Provider: r.Provider,
		Tracker:  r.Tracker,
		Logger:   logger,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Close releases the store.
func (r *Resources) Close() error {
	if r.sqlite == nil {
		return nil
	}
	return r.sqlite.Close()
}
