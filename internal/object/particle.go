package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"
	"unicode/utf8"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect: a dot, or a floating text when
// Text is set.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Life    float64 // 1 at spawn, removed at 0
	Decay   float64 // Life lost per second
	Gravity float64 // Added to VY per second
	Radius  float64
	Text    string
	Color   color.Color
}

// NewParticle creates a dot particle from the pool.
func NewParticle(x, y, vx, vy, decay float64, c color.Color) *Particle {
	p := particlePool.Get().(*Particle)
	*p = Particle{
		X:       x,
		Y:       y,
		VX:      vx,
		VY:      vy,
		Life:    1,
		Decay:   decay,
		Gravity: config.ParticleGravity,
		Radius:  0.7,
		Color:   c,
	}
	return p
}

// NewTextParticle creates a floating text that rises without gravity.
func NewTextParticle(x, y float64, text string, c color.Color, decay float64) *Particle {
	p := NewParticle(x, y, 0, -config.ScorePopupRise, decay, c)
	p.Gravity = 0
	p.Text = text
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	*p = Particle{}
	particlePool.Put(p)
}

// SpawnBurst creates count particles flying out from (x,y).
func SpawnBurst(x, y float64, count int, c color.Color, spawner Spawner) {
	if spawner == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rand.Float64() * 2 * math.Pi
		// 50% to 150% of the base speed
		spd := config.ParticleSpeed * (0.5 + rand.Float64())
		vx := math.Cos(angle) * spd
		// Bias upward so gravity brings them back down in an arc.
		vy := math.Sin(angle)*spd - config.ParticleSpeed*0.5
		decay := 1.2 + rand.Float64()*0.8
		spawner.Spawn(NewParticle(x, y, vx, vy, decay, c))
	}
}

// SpawnText creates a floating text particle at (x,y).
func SpawnText(x, y float64, text string, c color.Color, decay float64, spawner Spawner) {
	if spawner == nil || text == "" {
		return
	}
	spawner.Spawn(NewTextParticle(x, y, text, c, decay))
}

// Update moves the particle and ages it.
func (p *Particle) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()

	p.Life -= p.Decay * dt
	if p.Life <= 0 {
		p.Life = 0
		return true, nil
	}

	p.VY += p.Gravity * dt
	p.X += p.VX * dt
	p.Y += p.VY * dt

	return false, nil
}

// Draw renders the particle. Dots shrink as they age.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.Life <= 0 {
		return nil
	}
	c := p.Color
	if c == nil {
		c = draw.ColorWhite
	}
	if p.Text != "" {
		half := float64(utf8.RuneCountInString(p.Text)) / 2
		ctx.Surface.Text(p.X-half, p.Y, p.Text, c)
		return nil
	}
	ctx.Surface.FillCircle(p.X, p.Y, p.Radius*p.Life, c)
	return nil
}
