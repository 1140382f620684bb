package object

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/physics"
	"github.com/tomz197/wordblast/internal/question"
)

// SpawnState is the part of the session the spawner decides on.
type SpawnState struct {
	Difficulty      question.Difficulty
	Level           int
	SpawnMultiplier float64
	Enemies         int     // live enemies on the field
	Width           float64 // playfield width
}

var baseRates = map[question.Difficulty]float64{
	question.Easy:   0.015,
	question.Medium: 0.02,
	question.Hard:   0.025,
}

var enemyCaps = map[question.Difficulty]int{
	question.Easy:   8,
	question.Medium: 10,
	question.Hard:   12,
}

var bandSpeeds = map[question.Difficulty]float64{
	question.Easy:   0.8,
	question.Medium: 1.0,
	question.Hard:   1.25,
}

// SpawnProbability is the chance of requesting a new enemy on one tick.
func SpawnProbability(d question.Difficulty, level int, multiplier float64) float64 {
	base, ok := baseRates[d]
	if !ok {
		base = baseRates[question.Medium]
	}
	if level < 1 {
		level = 1
	}
	p := base * (1 + float64(level-1)*config.SpawnLevelStep) * multiplier
	return physics.Clamp(p, 0, 1)
}

// EnemyCap is the most enemies allowed on the field at once.
func EnemyCap(d question.Difficulty) int {
	if c, ok := enemyCaps[d]; ok {
		return c
	}
	return enemyCaps[question.Medium]
}

// SpeedFactor scales enemy fall speed by difficulty band and level.
func SpeedFactor(d question.Difficulty, level int) float64 {
	band, ok := bandSpeeds[d]
	if !ok {
		band = 1
	}
	if level < 1 {
		level = 1
	}
	return band * (1 + float64(level-1)*config.EnemyLevelSpeedStep)
}

// DefaultRequestTimeout bounds a single question request.
const DefaultRequestTimeout = 5 * time.Second

type spawnResult struct {
	gen uint64
	q   question.Question
	err error
}

// EnemySpawner decides when enemies appear. Questions are requested in the
// background; results are picked up on a later MaybeSpawn call, so every
// enemy is created on the caller's goroutine.
//
// MaybeSpawn, Cancel and Failures must be called from one goroutine.
type EnemySpawner struct {
	provider question.Provider
	logger   *log.Logger
	rng      *rand.Rand
	roll     func() float64
	timeout  time.Duration

	results  chan spawnResult
	gen      uint64
	genCtx   context.Context
	cancel   context.CancelFunc
	inFlight int
	failures int
}

// NewEnemySpawner creates a spawner drawing questions from provider. A nil
// rng gets a time-seeded one.
func NewEnemySpawner(provider question.Provider, rng *rand.Rand, logger *log.Logger) *EnemySpawner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &EnemySpawner{
		provider: provider,
		logger:   logger,
		rng:      rng,
		timeout:  DefaultRequestTimeout,
		results:  make(chan spawnResult, 16),
	}
	s.roll = s.rng.Float64
	return s
}

// SetRoll replaces the uniform [0,1) draw used for the spawn chance.
func (s *EnemySpawner) SetRoll(roll func() float64) {
	s.roll = roll
}

// SetTimeout sets the deadline of each question request.
func (s *EnemySpawner) SetTimeout(d time.Duration) {
	s.timeout = d
}

// InFlight returns the number of outstanding question requests.
func (s *EnemySpawner) InFlight() int {
	return s.inFlight
}

// Failures returns the number of consecutive failed question requests.
func (s *EnemySpawner) Failures() int {
	return s.failures
}

// MaybeSpawn returns a new enemy when a requested question has arrived, and
// rolls for a new request. It returns nil when nothing spawns this tick.
func (s *EnemySpawner) MaybeSpawn(ctx context.Context, st SpawnState) *Enemy {
	limit := EnemyCap(st.Difficulty)
	enemy := s.collect(st, limit)

	live := st.Enemies
	if enemy != nil {
		live++
	}
	if live+s.inFlight >= limit {
		return enemy
	}
	if s.roll() < SpawnProbability(st.Difficulty, st.Level, st.SpawnMultiplier) {
		s.request(ctx, st.Difficulty)
	}
	return enemy
}

// collect takes at most one current-generation result off the channel.
func (s *EnemySpawner) collect(st SpawnState, limit int) *Enemy {
	for {
		var res spawnResult
		select {
		case res = <-s.results:
		default:
			return nil
		}
		if res.gen != s.gen {
			continue
		}
		s.inFlight--

		if res.err != nil {
			s.failures++
			var genErr *question.GenerationError
			switch {
			case errors.Is(res.err, question.ErrEmptyContent):
				s.logger.Debug("spawn skipped: no content", "err", res.err)
			case errors.As(res.err, &genErr):
				s.logger.Debug("spawn skipped: generation failed", "type", genErr.Type, "err", genErr.Err)
			default:
				s.logger.Debug("spawn skipped", "err", res.err)
			}
			return nil
		}
		if err := res.q.Validate(); err != nil {
			s.failures++
			s.logger.Debug("spawn skipped: invalid question", "err", err)
			return nil
		}
		s.failures = 0
		if st.Enemies >= limit {
			return nil
		}
		return s.newEnemy(res.q, st)
	}
}

func (s *EnemySpawner) newEnemy(q question.Question, st SpawnState) *Enemy {
	r := config.EnemyRadius
	x := r
	if st.Width > 2*r {
		x = r + s.rng.Float64()*(st.Width-2*r)
	}
	e := NewEnemy(x, q, SpeedFactor(st.Difficulty, st.Level), s.rng)
	if st.Difficulty == question.Hard && s.rng.Float64() < config.ToughEnemyChance {
		e.HitPoints = config.ToughEnemyHitPoints
		e.MaxHitPoints = config.ToughEnemyHitPoints
	}
	return e
}

// request starts a background question request. Requests of one generation
// share the context of the first request made after the last Cancel.
func (s *EnemySpawner) request(ctx context.Context, d question.Difficulty) {
	if s.genCtx == nil {
		s.genCtx, s.cancel = context.WithCancel(ctx)
	}
	gctx := s.genCtx
	rctx, cancel := context.WithTimeout(gctx, s.timeout)
	gen := s.gen
	s.inFlight++

	go func() {
		defer cancel()
		q, err := generate(rctx, s.provider, d)
		// A timed-out request still reports back so it leaves the in-flight count.
		select {
		case s.results <- spawnResult{gen: gen, q: q, err: err}:
		case <-gctx.Done():
		}
	}()
}

// generate calls the provider and reports a panic as an error.
func generate(ctx context.Context, p question.Provider, d question.Difficulty) (q question.Question, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("question provider panicked: %v", r)
		}
	}()
	return p.Generate(ctx, d)
}

// Cancel abandons outstanding requests; their results are discarded.
func (s *EnemySpawner) Cancel() {
	s.gen++
	s.inFlight = 0
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.genCtx = nil
	}
}

// Reset cancels outstanding requests and clears the failure count.
func (s *EnemySpawner) Reset() {
	s.Cancel()
	s.failures = 0
}
