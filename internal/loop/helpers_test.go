package loop

import (
	"context"
	"image/color"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/question"
)

var testQuestion = question.Question{
	Text:          "Which word means happy?",
	Options:       []string{"glad", "sad", "tired"},
	CorrectAnswer: "glad",
	Type:          question.TypeSynonym,
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newTestController returns a controller whose spawner never rolls a spawn.
func newTestController(t *testing.T, tracker *achievement.Tracker) *Controller {
	t.Helper()
	c := NewController(Options{
		Provider: question.NewStaticProvider(testQuestion),
		Tracker:  tracker,
		Logger:   quietLogger(),
		Rand:     rand.New(rand.NewSource(1)),
	})
	c.Spawner().SetRoll(func() float64 { return 1 })
	return c
}

func startController(t *testing.T, c *Controller, d question.Difficulty) {
	t.Helper()
	if err := c.Start(context.Background(), d); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

// stillEnemy is an enemy that falls straight down without waving.
func stillEnemy(x, y float64, q question.Question) *object.Enemy {
	return &object.Enemy{
		X: x, Y: y, BaseX: x,
		Speed:        5,
		Radius:       3,
		Type:         q.Type,
		HitPoints:    1,
		MaxHitPoints: 1,
		Question:     q,
	}
}

// shootEnemy puts a bullet on top of a fresh enemy and ticks once.
func shootEnemy(t *testing.T, c *Controller, q question.Question) *object.Enemy {
	t.Helper()
	e := stillEnemy(60, 30, q)
	c.World().AddObject(e)
	c.World().AddObject(object.NewBullet(60, 30))
	c.Tick(10 * time.Millisecond)
	return e
}

// textSurface records the text drawn on it.
type textSurface struct {
	texts []string
}

func (s *textSurface) FillCircle(cx, cy, r float64, c color.Color) {}
func (s *textSurface) FillRect(x, y, w, h float64, c color.Color)  {}
func (s *textSurface) StrokeRect(x, y, w, h float64, c color.Color) {}
func (s *textSurface) Text(x, y float64, text string, c color.Color) {
	s.texts = append(s.texts, text)
}

func (s *textSurface) contains(sub string) bool {
	for _, t := range s.texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}
