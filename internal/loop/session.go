package loop

import (
	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/question"
)

// Session is the mutable score state of one game.
type Session struct {
	Score           int
	Combo           int
	MaxCombo        int
	Lives           int
	Level           int
	LevelTimer      int // seconds left in the current level
	Paused          bool
	Over            bool
	Difficulty      question.Difficulty
	SpawnMultiplier float64
}

func newSession(d question.Difficulty) Session {
	return Session{
		Lives:           config.InitialLives,
		Level:           1,
		LevelTimer:      config.LevelSeconds,
		Difficulty:      d,
		SpawnMultiplier: 1,
	}
}

// Suspended reports whether the loop must not advance.
func (s *Session) Suspended() bool {
	return s.Paused || s.Over
}

func (s *Session) snapshot() achievement.Snapshot {
	return achievement.Snapshot{Score: s.Score, MaxCombo: s.MaxCombo, Level: s.Level}
}

func (s *Session) result() achievement.Result {
	return achievement.Result{
		Score:      s.Score,
		MaxCombo:   s.MaxCombo,
		Level:      s.Level,
		Difficulty: string(s.Difficulty),
	}
}
