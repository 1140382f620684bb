// Package object holds the entities living on the playfield.
package object

import (
	"time"

	"github.com/tomz197/wordblast/internal/draw"
	"github.com/tomz197/wordblast/internal/input"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Input is an alias for the input package's Input type.
type Input = input.Input

// Field is the logical playfield size.
type Field struct {
	Width, Height float64
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   Input
	Field   Field
	Spawner Spawner
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
	Field   Field
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update updates the object state. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)

	// Draw draws the object onto ctx.Surface.
	Draw(ctx DrawContext) error
}

// Destructible is implemented by objects that can be marked for removal
// outside their own Update.
type Destructible interface {
	MarkDestroyed()
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}
