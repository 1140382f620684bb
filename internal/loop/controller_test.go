package loop

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/question"
)

func TestStartWithoutContent(t *testing.T) {
	for name, p := range map[string]question.Provider{
		"empty": question.NewStaticProvider(),
		"nil":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			c := NewController(Options{Provider: p, Logger: quietLogger()})
			err := c.Start(context.Background(), question.Easy)
			if !errors.Is(err, question.ErrEmptyContent) {
				t.Fatalf("err = %v, want ErrEmptyContent", err)
			}
			if c.Phase() != PhaseIdle {
				t.Errorf("phase = %v, want idle", c.Phase())
			}
		})
	}
}

func TestStartRejectsUnknownDifficulty(t *testing.T) {
	c := newTestController(t, nil)
	if err := c.Start(context.Background(), "nightmare"); err == nil {
		t.Fatal("expected error")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v", c.Phase())
	}
}

func TestStartInitialState(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Hard)

	s := c.Session()
	if s.Lives != 3 || s.Level != 1 || s.LevelTimer != 60 || s.Score != 0 || s.SpawnMultiplier != 1 {
		t.Errorf("session = %+v", s)
	}
	if c.Phase() != PhaseRunning {
		t.Errorf("phase = %v", c.Phase())
	}
	if p := c.Player(); p == nil || p.X != c.World().Field.Width/2 {
		t.Errorf("player = %+v", p)
	}
}

func TestEscapesEndGame(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Medium)

	h := c.World().Field.Height
	for i := 0; i < 3; i++ {
		c.World().AddObject(stillEnemy(20+float64(i)*30, h-0.1, testQuestion))
	}
	c.Advance(100 * time.Millisecond)

	if c.Session().Lives != 0 {
		t.Errorf("lives = %d, want 0", c.Session().Lives)
	}
	if c.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want game over", c.Phase())
	}
	if c.scheduler.Running() {
		t.Error("scheduler still running after game over")
	}

	before := c.Session()
	objects := len(c.World().Objects)
	c.Tick(time.Second)
	c.OnSecond()
	c.Advance(time.Second)
	if c.Session() != before || len(c.World().Objects) != objects {
		t.Error("game changed after it ended")
	}
}

func TestLevelUp(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Easy)

	for i := 0; i < 61*4; i++ {
		c.Advance(250 * time.Millisecond)
	}
	s := c.Session()
	if s.Level != 2 || s.LevelTimer != 59 {
		t.Errorf("level=%d timer=%d, want 2/59", s.Level, s.LevelTimer)
	}
	if math.Abs(s.SpawnMultiplier-1.2) > 1e-9 {
		t.Errorf("multiplier = %v", s.SpawnMultiplier)
	}
}

func TestPauseStopsClock(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Easy)

	c.SetInput(input.Input{Pause: true})
	if c.Phase() != PhasePaused {
		t.Fatalf("phase = %v", c.Phase())
	}
	c.Advance(5 * time.Second)
	if c.Session().LevelTimer != 60 {
		t.Error("level timer ran while paused")
	}
	c.SetInput(input.Input{Enter: true})
	if c.Phase() != PhaseRunning {
		t.Errorf("phase = %v after resume", c.Phase())
	}
}

func TestCollisionAsksQuestion(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Medium)

	e := shootEnemy(t, c, testQuestion)
	if c.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("phase = %v, want awaiting answer", c.Phase())
	}
	if q, ok := c.ActiveQuestion(); !ok || q.Text != testQuestion.Text {
		t.Errorf("active question = %+v, %v", q, ok)
	}

	y := e.Y
	c.Advance(time.Second)
	if e.Y != y || c.Session().LevelTimer != 60 {
		t.Error("world moved while a question was open")
	}

	// Option 1 is "glad".
	c.SetInput(input.Input{Number: 1})
	if c.Phase() != PhaseRunning {
		t.Fatalf("phase = %v after answering", c.Phase())
	}
	s := c.Session()
	if s.Score != 10 || s.Combo != 1 {
		t.Errorf("score=%d combo=%d", s.Score, s.Combo)
	}
	if !e.IsDestroyed() {
		t.Error("enemy not destroyed")
	}
	if _, err := c.Answer(context.Background(), 1); !errors.Is(err, ErrNoActiveQuestion) {
		t.Errorf("second answer: %v", err)
	}
}

func TestCollisionWithInvalidQuestionKeepsRunning(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Medium)

	bad := testQuestion
	bad.Options = []string{"glad"}
	shootEnemy(t, c, bad)
	if c.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want running", c.Phase())
	}
}

func TestSpawnCapNeverExceeded(t *testing.T) {
	c := NewController(Options{
		Provider: question.NewStaticProvider(testQuestion),
		Logger:   quietLogger(),
		Rand:     rand.New(rand.NewSource(7)),
	})
	c.Spawner().SetRoll(func() float64 { return 0 })
	startController(t, c, question.Easy)

	limit := object.EnemyCap(question.Easy)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.Advance(10 * time.Millisecond)
		n := c.World().EnemyCount()
		if n+c.Spawner().InFlight() > limit {
			t.Fatalf("%d live + %d in flight exceeds cap %d", n, c.Spawner().InFlight(), limit)
		}
		if n == limit {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Errorf("never reached the cap, %d enemies", c.World().EnemyCount())
}

func TestAchievementUnlockedOnce(t *testing.T) {
	ctx := context.Background()
	store := achievement.NewMemoryStore()
	tracker := achievement.NewTracker(ctx, store, quietLogger())

	c := newTestController(t, tracker)
	startController(t, c, question.Medium)
	c.session.Score = 995
	shootEnemy(t, c, testQuestion)
	if _, err := c.Resolve(ctx, "glad"); err != nil {
		t.Fatal(err)
	}
	if !slices.Contains(c.Unlocked(), achievement.Score1000) {
		t.Fatalf("unlocked = %v", c.Unlocked())
	}
	c.End(ctx)
	if best, ok := c.Best(); !ok || best.Score != 1005 {
		t.Errorf("best = %+v, %v", best, ok)
	}

	// A new game, and a new tracker over the same store, must not fire it again.
	again := newTestController(t, achievement.NewTracker(ctx, store, quietLogger()))
	startController(t, again, question.Medium)
	again.session.Score = 995
	shootEnemy(t, again, testQuestion)
	if _, err := again.Resolve(ctx, "glad"); err != nil {
		t.Fatal(err)
	}
	if slices.Contains(again.Unlocked(), achievement.Score1000) {
		t.Error("score1000 unlocked twice")
	}
}

func TestEndRecordsResult(t *testing.T) {
	ctx := context.Background()
	tracker := achievement.NewTracker(ctx, achievement.NewMemoryStore(), quietLogger())
	c := newTestController(t, tracker)
	startController(t, c, question.Hard)
	c.session.Score = 40

	c.End(ctx)
	if c.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v", c.Phase())
	}
	best, ok := c.Best()
	if !ok || best.Score != 40 || best.Difficulty != "hard" {
		t.Errorf("best = %+v, %v", best, ok)
	}

	c.Reset()
	if c.Phase() != PhaseIdle || c.Player() != nil || len(c.World().Objects) != 0 {
		t.Error("reset left state behind")
	}
}

type panicObject struct{}

func (panicObject) Update(object.UpdateContext) (bool, error) { panic("boom") }
func (panicObject) Draw(object.DrawContext) error             { return nil }

func TestTickRecoversFromPanic(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Medium)
	c.World().AddObject(panicObject{})

	c.Tick(10 * time.Millisecond)
	if c.Phase() != PhaseRunning {
		t.Errorf("phase = %v", c.Phase())
	}
}

func TestPanickingObjectKeepsWorldIntact(t *testing.T) {
	c := newTestController(t, nil)
	startController(t, c, question.Medium)
	lives := c.Session().Lives

	gone := stillEnemy(40, 20, testQuestion)
	gone.MarkDestroyed()
	h := c.World().Field.Height
	c.World().AddObject(gone)
	c.World().AddObject(stillEnemy(10, h-0.01, testQuestion))
	c.World().AddObject(panicObject{})

	c.Tick(time.Microsecond)
	if n := c.World().EnemyCount(); n != 1 {
		t.Fatalf("enemies = %d, want 1", n)
	}
	seen := map[object.Object]bool{}
	for _, obj := range c.World().Objects {
		if _, ok := obj.(panicObject); ok {
			t.Error("panicking object kept in world")
			continue
		}
		if seen[obj] {
			t.Errorf("object %T listed twice", obj)
		}
		seen[obj] = true
	}

	c.Tick(100 * time.Millisecond)
	if got := c.Session().Lives; got != lives-1 {
		t.Errorf("lives = %d, want %d", got, lives-1)
	}
	if n := c.World().EnemyCount(); n != 0 {
		t.Errorf("enemies after escape = %d, want 0", n)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAwaitingAnswer.String() != "awaiting answer" || Phase(42).String() != "phase(42)" {
		t.Error("unexpected phase names")
	}
}
