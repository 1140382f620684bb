// Package loop runs a game: the controller and its scheduler, collision
// matching, the question gate, and the terminal client that hosts them.
package loop

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/achievement"
	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/input"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/physics"
	"github.com/tomz197/wordblast/internal/question"
)

// ErrNotRunning is returned by operations that need a game in progress.
var ErrNotRunning = errors.New("game not running")

// Phase is the controller's state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused // paused by the player, no question on screen
	PhaseAwaitingAnswer
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseAwaitingAnswer:
		return "awaiting answer"
	case PhaseGameOver:
		return "game over"
	default:
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}
}

// Options configures a Controller.
type Options struct {
	Provider question.Provider
	Tracker  *achievement.Tracker // nil disables achievements and results
	Logger   *log.Logger
	Rand     *rand.Rand
	Field    object.Field // zero means the default playfield
}

// Controller owns one game: session state, entities, and the transitions
// between phases. It is not safe for concurrent use; one goroutine drives
// it through Advance and the input methods.
type Controller struct {
	provider question.Provider
	tracker  *achievement.Tracker
	logger   *log.Logger

	spawner   *object.EnemySpawner
	scheduler *Scheduler
	world     *WorldState
	gate      *QuestionGate
	grid      *physics.SpatialGrid
	hits      []Hit

	session  Session
	player   *object.Player
	input    input.Input
	started  bool
	ctx      context.Context
	cancel   context.CancelFunc
	unlocked []achievement.ID // unlocked during the current game
	best     achievement.Result
	hasBest  bool
}

// NewController creates an idle controller.
func NewController(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	field := opts.Field
	if field.Width <= 0 || field.Height <= 0 {
		field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	c := &Controller{
		provider: opts.Provider,
		tracker:  opts.Tracker,
		logger:   logger,
		spawner:  object.NewEnemySpawner(opts.Provider, opts.Rand, logger),
		world:    NewWorldState(field),
		grid:     physics.NewSpatialGrid(field.Width, field.Height, collisionGridCellSize),
		ctx:      context.Background(),
	}
	c.gate = NewQuestionGate(&c.session, c.world)
	c.scheduler = NewScheduler(c.Tick, c.OnSecond, c.session.Suspended)
	return c
}

// Spawner exposes the enemy spawner for tuning (roll function, timeouts).
func (c *Controller) Spawner() *object.EnemySpawner {
	return c.spawner
}

// Start begins a new game at difficulty d. It fails without starting when
// the provider has no content.
func (c *Controller) Start(ctx context.Context, d question.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("start game: unknown difficulty %q", d)
	}
	if c.provider == nil {
		return fmt.Errorf("start game: %w", question.ErrEmptyContent)
	}
	if err := c.provider.Ready(ctx); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	c.Reset()
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.session = newSession(d)
	c.player = object.NewPlayer(c.world.Field.Width / 2)
	c.world.AddObject(c.player)
	c.started = true
	c.scheduler.Start()
	c.logger.Info("game started", "difficulty", d)
	return nil
}

// Advance feeds one frame of dt to the scheduler.
func (c *Controller) Advance(dt time.Duration) {
	c.scheduler.Advance(dt)
}

// Tick runs one update step: spawn, move, collide, check for game over.
// It does nothing while paused or over.
func (c *Controller) Tick(dt time.Duration) {
	if !c.started || c.session.Suspended() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("tick panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	st := object.SpawnState{
		Difficulty:      c.session.Difficulty,
		Level:           c.session.Level,
		SpawnMultiplier: c.session.SpawnMultiplier,
		Enemies:         c.world.EnemyCount(),
		Width:           c.world.Field.Width,
	}
	if e := c.spawner.MaybeSpawn(c.ctx, st); e != nil {
		c.world.AddObject(e)
	}

	c.updateObjects(dt)
	c.checkCollisions()

	if c.session.Lives <= 0 {
		c.End(c.ctx)
	}
}

// updateObject runs one object's update. A panicking object is dropped so
// the compaction in updateObjects always finishes.
func (c *Controller) updateObject(obj object.Object, ctx object.UpdateContext) (remove bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("object update panicked", "panic", r, "stack", string(debug.Stack()))
			remove, err = true, nil
		}
	}()
	return obj.Update(ctx)
}

func (c *Controller) updateObjects(dt time.Duration) {
	ctx := object.UpdateContext{
		Delta:   dt,
		Input:   c.input,
		Field:   c.world.Field,
		Spawner: c.world,
	}

	kept := c.world.Objects[:0]
	for _, obj := range c.world.Objects {
		remove, err := c.updateObject(obj, ctx)
		if err != nil {
			c.logger.Warn("update object", "err", err)
		}
		if !remove {
			kept = append(kept, obj)
			continue
		}
		if e, ok := obj.(*object.Enemy); ok && e.Escaped {
			c.session.Lives--
			c.logger.Debug("enemy escaped", "type", e.Type, "lives", c.session.Lives)
		}
		object.ReleaseObject(obj)
	}
	clear(c.world.Objects[len(kept):])
	c.world.Objects = kept
	c.world.FlushSpawned()
}

func (c *Controller) checkCollisions() {
	bullets, enemies := c.world.collectCollidables()
	c.hits = detectHits(bullets, enemies, c.grid, c.hits)
	if len(c.hits) == 0 {
		return
	}
	for _, h := range c.hits {
		h.Bullet.MarkDestroyed()
	}
	if err := c.gate.Present(c.hits[0].Enemy); err != nil {
		c.logger.Debug("question skipped", "err", err)
	}
}

// OnSecond counts down the level timer and levels up when it runs out.
func (c *Controller) OnSecond() {
	if !c.started || c.session.Suspended() {
		return
	}
	c.session.LevelTimer--
	if c.session.LevelTimer > 0 {
		return
	}
	c.session.Level++
	c.session.LevelTimer = config.LevelSeconds
	c.session.SpawnMultiplier *= config.LevelUpSpawnFactor
	object.SpawnText(c.world.Field.Width/2, c.world.Field.Height/2,
		"LEVEL "+strconv.Itoa(c.session.Level), draw.ColorCyan, config.LevelBannerDecay, c.world)
	c.logger.Info("level up", "level", c.session.Level)
	c.evaluate(c.ctx)
	c.world.FlushSpawned()
}

// Pause suspends a running game.
func (c *Controller) Pause() {
	if c.Phase() == PhaseRunning {
		c.session.Paused = true
	}
}

// Resume continues a game paused with Pause. It does not dismiss a question.
func (c *Controller) Resume() {
	if c.Phase() == PhasePaused {
		c.session.Paused = false
	}
}

// End finishes the game: the scheduler stops before End returns, pending
// question requests are abandoned and the result is recorded.
func (c *Controller) End(ctx context.Context) {
	if !c.started || c.session.Over {
		return
	}
	c.scheduler.Stop()
	c.spawner.Cancel()
	c.gate.Clear()
	c.session.Over = true
	c.session.Paused = false

	if c.tracker != nil {
		c.evaluate(ctx)
		c.tracker.Record(ctx, c.session.result())
		c.best, c.hasBest = c.tracker.Best(ctx)
	}
	if c.cancel != nil {
		c.cancel()
	}
	c.world.FlushSpawned()
	c.logger.Info("game over", "score", c.session.Score, "maxCombo", c.session.MaxCombo, "level", c.session.Level)
}

// Reset stops everything and returns to Idle.
func (c *Controller) Reset() {
	c.scheduler.Stop()
	c.spawner.Reset()
	c.gate.Clear()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.ctx = context.Background()
	c.world.Clear()
	c.session = Session{}
	c.player = nil
	c.input = input.Input{}
	c.unlocked = nil
	c.started = false
}

// Resolve answers the question on screen.
func (c *Controller) Resolve(ctx context.Context, answer string) (Outcome, error) {
	if c.gate.Active() == nil {
		return Outcome{}, ErrNoActiveQuestion
	}
	out := c.gate.Resolve(answer)
	c.logger.Debug("question resolved", "outcome", out.Kind, "points", out.Points)
	c.evaluate(ctx)
	c.world.FlushSpawned()
	return out, nil
}

// Answer resolves the active question with its n-th option (1-based).
func (c *Controller) Answer(ctx context.Context, n int) (Outcome, error) {
	e := c.gate.Active()
	if e == nil {
		return Outcome{}, ErrNoActiveQuestion
	}
	if n < 1 || n > len(e.Question.Options) {
		return Outcome{}, fmt.Errorf("answer %d: out of range", n)
	}
	return c.Resolve(ctx, e.Question.Options[n-1])
}

// SetInput sets the input used by following ticks. A number key answers
// the active question; the pause key toggles a player pause.
func (c *Controller) SetInput(in input.Input) {
	c.input = in
	switch c.Phase() {
	case PhaseAwaitingAnswer:
		if in.Number > 0 {
			if _, err := c.Answer(c.ctx, in.Number); err != nil {
				c.logger.Debug("answer ignored", "err", err)
			}
		}
	case PhaseRunning:
		if in.Pause {
			c.Pause()
		}
	case PhasePaused:
		if in.Pause || in.Enter {
			c.Resume()
		}
	}
}

func (c *Controller) evaluate(ctx context.Context) {
	if c.tracker == nil {
		return
	}
	for _, id := range c.tracker.Evaluate(ctx, c.session.snapshot()) {
		c.unlocked = append(c.unlocked, id)
		object.SpawnText(c.world.Field.Width/2, c.world.Field.Height/3,
			"UNLOCKED: "+achievement.Title(id), draw.ColorYellow, config.LevelBannerDecay, c.world)
	}
}

// Phase returns the current state.
func (c *Controller) Phase() Phase {
	switch {
	case !c.started:
		return PhaseIdle
	case c.session.Over:
		return PhaseGameOver
	case c.gate.Active() != nil:
		return PhaseAwaitingAnswer
	case c.session.Paused:
		return PhasePaused
	default:
		return PhaseRunning
	}
}

// Session returns a copy of the session state.
func (c *Controller) Session() Session {
	return c.session
}

// Player returns the turret, or nil when idle.
func (c *Controller) Player() *object.Player {
	return c.player
}

// World returns the entity container.
func (c *Controller) World() *WorldState {
	return c.world
}

// ActiveQuestion returns the question on screen, if any.
func (c *Controller) ActiveQuestion() (question.Question, bool) {
	e := c.gate.Active()
	if e == nil {
		return question.Question{}, false
	}
	return e.Question, true
}

// ProviderFailures returns the number of consecutive failed question requests.
func (c *Controller) ProviderFailures() int {
	return c.spawner.Failures()
}

// Unlocked returns achievements unlocked during the current game.
func (c *Controller) Unlocked() []achievement.ID {
	return c.unlocked
}

// Best returns the best recorded result, loaded when the last game ended.
func (c *Controller) Best() (achievement.Result, bool) {
	return c.best, c.hasBest
}

// Draw renders the world and the in-game overlays onto s.
func (c *Controller) Draw(s draw.Surface) error {
	ctx := object.DrawContext{Surface: s, Field: c.world.Field}
	var errs []error
	for _, obj := range c.world.Objects {
		if err := obj.Draw(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if !c.started {
		return errors.Join(errs...)
	}
	drawHUD(s, c.world.Field, c.session, c.ProviderFailures())
	switch c.Phase() {
	case PhaseAwaitingAnswer:
		if q, ok := c.ActiveQuestion(); ok {
			drawQuestion(s, c.world.Field, q)
		}
	case PhasePaused:
		drawPaused(s, c.world.Field)
	}
	return errors.Join(errs...)
}
