package loop

import (
	"github.com/tomz197/wordblast/internal/object"
)

// WorldState holds the entities of one game.
type WorldState struct {
	Objects []object.Object
	toSpawn []object.Object // Objects to add after the current update cycle
	Field   object.Field

	// Reusable caches for collision detection (avoids allocations)
	bullets []*object.Bullet
	enemies []*object.Enemy
}

// NewWorldState creates an empty world over field.
func NewWorldState(field object.Field) *WorldState {
	return &WorldState{
		Objects: []object.Object{},
		Field:   field,
	}
}

// AddObject adds an object to the world immediately.
func (w *WorldState) AddObject(obj object.Object) {
	w.Objects = append(w.Objects, obj)
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *WorldState) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *WorldState) FlushSpawned() {
	w.Objects = append(w.Objects, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Clear removes every object, returning pooled ones to their pools.
func (w *WorldState) Clear() {
	for _, obj := range w.Objects {
		object.ReleaseObject(obj)
	}
	for _, obj := range w.toSpawn {
		object.ReleaseObject(obj)
	}
	clear(w.Objects)
	w.Objects = w.Objects[:0]
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// EnemyCount returns the number of live enemies.
func (w *WorldState) EnemyCount() int {
	n := 0
	for _, obj := range w.Objects {
		if e, ok := obj.(*object.Enemy); ok && !e.IsDestroyed() {
			n++
		}
	}
	return n
}

// collectCollidables fills the cached bullet and enemy slices in list order,
// skipping objects already marked for removal.
func (w *WorldState) collectCollidables() ([]*object.Bullet, []*object.Enemy) {
	clear(w.bullets)
	clear(w.enemies)
	w.bullets = w.bullets[:0]
	w.enemies = w.enemies[:0]
	for _, obj := range w.Objects {
		switch o := obj.(type) {
		case *object.Bullet:
			if !o.IsDestroyed() {
				w.bullets = append(w.bullets, o)
			}
		case *object.Enemy:
			if !o.IsDestroyed() {
				w.enemies = append(w.enemies, o)
			}
		}
	}
	return w.bullets, w.enemies
}
