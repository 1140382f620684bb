package loop

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/object"
)

var (
	// ErrNoActiveQuestion is returned when resolving with nothing presented.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrNoEnemy is returned when presenting a missing or removed enemy.
	ErrNoEnemy = errors.New("no enemy to question")
)

// OutcomeKind says how a question was resolved.
type OutcomeKind int

const (
	OutcomeAborted OutcomeKind = iota // nothing to resolve, play resumed unchanged
	OutcomeCorrect
	OutcomeWrong
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	default:
		return "aborted"
	}
}

// Outcome is the result of QuestionGate.Resolve.
type Outcome struct {
	Kind      OutcomeKind
	Points    int
	Destroyed bool // the enemy ran out of hit points
}

// QuestionGate pauses the session while an enemy's question is answered.
type QuestionGate struct {
	session *Session
	spawner object.Spawner
	active  *object.Enemy
}

// NewQuestionGate creates a gate that pauses session and spawns effects
// through spawner.
func NewQuestionGate(session *Session, spawner object.Spawner) *QuestionGate {
	return &QuestionGate{session: session, spawner: spawner}
}

// Present pauses play on e's question. An invalid enemy or question leaves
// the session untouched.
func (g *QuestionGate) Present(e *object.Enemy) error {
	if e == nil || e.IsDestroyed() {
		return ErrNoEnemy
	}
	if err := e.Question.Validate(); err != nil {
		return fmt.Errorf("present question: %w", err)
	}
	g.active = e
	g.session.Paused = true
	return nil
}

// Active returns the enemy whose question is on screen, or nil.
func (g *QuestionGate) Active() *object.Enemy {
	return g.active
}

// Clear drops the active question without resolving it.
func (g *QuestionGate) Clear() {
	g.active = nil
}

// Resolve scores answer against the active question and resumes play.
func (g *QuestionGate) Resolve(answer string) Outcome {
	e := g.active
	g.active = nil
	g.session.Paused = false

	if e == nil || e.IsDestroyed() || e.Question.Validate() != nil {
		return Outcome{Kind: OutcomeAborted}
	}

	if !e.Question.IsCorrect(answer) {
		g.session.Combo = 0
		object.SpawnBurst(e.X, e.Y, config.BurstParticles, draw.ColorRed, g.spawner)
		return Outcome{Kind: OutcomeWrong}
	}

	s := g.session
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
	points := config.PointsPerCombo * s.Combo
	s.Score += points

	out := Outcome{Kind: OutcomeCorrect, Points: points}
	if e.Damage() {
		e.MarkDestroyed()
		out.Destroyed = true
		object.SpawnBurst(e.X, e.Y, config.BurstParticles, object.StyleFor(e.Type).Color, g.spawner)
	}
	object.SpawnText(e.X, e.Y, "+"+strconv.Itoa(points), draw.ColorYellow, config.ScorePopupDecay, g.spawner)
	return out
}
