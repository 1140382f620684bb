package object

import (
	"math"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/physics"
)

// Player is the turret at the bottom of the field. It slides horizontally
// and leans its barrel toward where it is heading.
type Player struct {
	X, Y           float64 // Position (centre of the turret base); Y never changes
	Rotation       float64 // Barrel angle in radians, 0 = straight up, positive leans right
	TargetRotation float64 // Aim the barrel is easing toward

	Speed         float64 // Horizontal units per second
	FireRate      float64 // Minimum seconds between shots
	ShootCooldown float64 // Seconds until the next shot is allowed
}

// NewPlayer creates a turret at x on the player row.
func NewPlayer(x float64) *Player {
	return &Player{
		X:        x,
		Y:        config.PlayerY,
		Speed:    config.PlayerSpeed,
		FireRate: config.PlayerFireRate,
	}
}

// Update applies movement, aim smoothing and shooting.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	dt := ctx.Delta.Seconds()
	in := ctx.Input
	step := p.Speed * dt

	switch {
	case in.Aim:
		dx := in.AimX - p.X
		p.X += physics.Clamp(dx, -step, step)
		p.TargetRotation = config.PlayerLeanAngle * physics.Clamp(dx/10, -1, 1)
	case in.Left && !in.Right:
		p.X -= step
		p.TargetRotation = -config.PlayerLeanAngle
	case in.Right && !in.Left:
		p.X += step
		p.TargetRotation = config.PlayerLeanAngle
	default:
		p.TargetRotation = 0
	}

	if ctx.Field.Width > 0 {
		half := config.PlayerBodyHalfWidth
		p.X = physics.Clamp(p.X, half, ctx.Field.Width-half)
	}

	p.Rotation += (p.TargetRotation - p.Rotation) * math.Min(1, dt*config.PlayerTurnResponse)

	if p.ShootCooldown > 0 {
		p.ShootCooldown -= dt
	}
	if in.Shoot && ctx.Spawner != nil {
		if b := p.Shoot(); b != nil {
			ctx.Spawner.Spawn(b)
		}
	}

	return false, nil
}

// Muzzle returns the tip of the barrel.
func (p *Player) Muzzle() (float64, float64) {
	return p.X + math.Sin(p.Rotation)*config.PlayerBarrelLength,
		p.Y - math.Cos(p.Rotation)*config.PlayerBarrelLength
}

// Shoot fires a bullet from the muzzle, or returns nil while cooling down.
func (p *Player) Shoot() *Bullet {
	if p.ShootCooldown > 0 {
		return nil
	}
	p.ShootCooldown = p.FireRate
	x, y := p.Muzzle()
	return NewBullet(x, y)
}

// Draw renders the base as a block and the barrel as a row of dots.
func (p *Player) Draw(ctx DrawContext) error {
	s := ctx.Surface
	half := config.PlayerBodyHalfWidth
	s.FillRect(p.X-half, p.Y, half*2, 3, draw.ColorCyan)

	const dots = 4
	for i := 1; i <= dots; i++ {
		d := config.PlayerBarrelLength * float64(i) / dots
		s.FillCircle(p.X+math.Sin(p.Rotation)*d, p.Y-math.Cos(p.Rotation)*d, 0.8, draw.ColorCyan)
	}
	return nil
}
