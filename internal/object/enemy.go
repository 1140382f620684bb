package object

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/physics"
	"github.com/tomz197/wordblast/internal/question"
)

// EnemyStyle is the per-type look and base fall speed of an enemy.
type EnemyStyle struct {
	Speed float64
	Color color.RGBA
	Icon  string
}

var enemyStyles = map[question.Type]EnemyStyle{
	question.TypeSpelling:  {Speed: 6.0, Color: color.RGBA{0x4F, 0xC3, 0xF7, 0xFF}, Icon: "S"},
	question.TypeFillBlank: {Speed: 5.0, Color: color.RGBA{0x81, 0xC7, 0x84, 0xFF}, Icon: "F"},
	question.TypeSynonym:   {Speed: 7.0, Color: color.RGBA{0xFF, 0xB7, 0x4D, 0xFF}, Icon: "≈"},
	question.TypeGrammar:   {Speed: 4.0, Color: color.RGBA{0xE5, 0x73, 0x73, 0xFF}, Icon: "G"},
}

var defaultEnemyStyle = EnemyStyle{Speed: 5.0, Color: color.RGBA{0xBD, 0xBD, 0xBD, 0xFF}, Icon: "?"}

// StyleFor returns the style for t, or the default style for unknown types.
func StyleFor(t question.Type) EnemyStyle {
	if s, ok := enemyStyles[t]; ok {
		return s
	}
	return defaultEnemyStyle
}

// Enemy is a falling word carrying a question.
type Enemy struct {
	X, Y          float64 // Position (centre)
	BaseX         float64 // Centre line of the lateral wave
	Speed         float64 // Fall speed, units per second
	WaveOffset    float64 // Phase of the lateral wave
	WaveSpeed     float64
	WaveAmplitude float64
	Radius        float64

	Type         question.Type
	HitPoints    int
	MaxHitPoints int
	Question     question.Question

	// Escaped is set when the enemy fell past the bottom edge.
	Escaped   bool
	destroyed bool
}

// NewEnemy creates an enemy at the top of the field, centred on x, bound to
// q. speedFactor scales the per-type fall speed.
func NewEnemy(x float64, q question.Question, speedFactor float64, rng *rand.Rand) *Enemy {
	style := StyleFor(q.Type)
	return &Enemy{
		X:             x,
		Y:             -config.EnemyRadius,
		BaseX:         x,
		Speed:         style.Speed * speedFactor,
		WaveOffset:    rng.Float64() * 2 * math.Pi,
		WaveSpeed:     config.EnemyMinWaveSpeed + rng.Float64()*(config.EnemyMaxWaveSpeed-config.EnemyMinWaveSpeed),
		WaveAmplitude: config.EnemyMinAmplitude + rng.Float64()*(config.EnemyMaxAmplitude-config.EnemyMinAmplitude),
		Radius:        config.EnemyRadius,
		Type:          q.Type,
		HitPoints:     1,
		MaxHitPoints:  1,
		Question:      q,
	}
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed reports whether the enemy is marked for removal.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Damage removes one hit point and reports whether the enemy is out of them.
func (e *Enemy) Damage() bool {
	if e.HitPoints > 0 {
		e.HitPoints--
	}
	return e.HitPoints <= 0
}

// Update moves the enemy down its wave. Crossing the bottom edge removes
// it with Escaped set.
func (e *Enemy) Update(ctx UpdateContext) (bool, error) {
	if e.destroyed {
		return true, nil
	}
	e.Y += e.Speed * ctx.Delta.Seconds()
	e.X = e.waveX(ctx.Field.Width)

	if ctx.Field.Height > 0 && e.Y > ctx.Field.Height {
		e.Escaped = true
		SpawnBurst(e.X, e.Y, config.BurstParticles, draw.ColorRed, ctx.Spawner)
		return true, nil
	}
	return false, nil
}

func (e *Enemy) waveX(width float64) float64 {
	x := e.BaseX + e.WaveAmplitude*math.Sin(e.WaveOffset+e.Y*config.EnemyWaveYFactor*e.WaveSpeed)
	if width <= 0 {
		return x
	}
	return physics.Clamp(x, e.Radius, width-e.Radius)
}

// Draw renders the enemy as a coloured disc with its type icon; tough
// enemies get a hit point counter.
func (e *Enemy) Draw(ctx DrawContext) error {
	if e.destroyed {
		return nil
	}
	style := StyleFor(e.Type)
	ctx.Surface.FillCircle(e.X, e.Y, e.Radius, style.Color)
	ctx.Surface.Text(e.X-0.5, e.Y-e.Radius-2, style.Icon, style.Color)
	if e.MaxHitPoints > 1 {
		ctx.Surface.Text(e.X+e.Radius+1, e.Y, fmt.Sprintf("%d", e.HitPoints), draw.ColorWhite)
	}
	return nil
}
