package object

import (
	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/loop/config"
)

// Bullet travels straight up until it leaves the field or hits an enemy.
type Bullet struct {
	X, Y      float64
	VY        float64
	Radius    float64
	destroyed bool
}

// NewBullet creates a bullet at (x,y) moving upward.
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		X:      x,
		Y:      y,
		VY:     -config.BulletSpeed,
		Radius: config.BulletRadius,
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed reports whether the bullet is marked for removal.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Update moves the bullet; it is removed once above the field.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.destroyed {
		return true, nil
	}
	b.Y += b.VY * ctx.Delta.Seconds()
	return b.Y < -b.Radius, nil
}

// Draw renders the bullet.
func (b *Bullet) Draw(ctx DrawContext) error {
	if b.destroyed {
		return nil
	}
	ctx.Surface.FillCircle(b.X, b.Y, b.Radius, draw.ColorYellow)
	return nil
}
