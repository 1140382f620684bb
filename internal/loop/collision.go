package loop

import (
	"github.com/tomz197/wordblast/internal/loop/config"
	"github.com/tomz197/wordblast/internal/object"
	"github.com/tomz197/wordblast/internal/physics"
)

// collisionGridCellSize is the cell size for the spatial hash grid.
// Must be >= the largest collision distance (enemy + bullet radius).
const collisionGridCellSize = 8.0

// Hit is one bullet/enemy match. The indices refer to the slices passed to
// DetectHits.
type Hit struct {
	Bullet      *object.Bullet
	Enemy       *object.Enemy
	BulletIndex int
	EnemyIndex  int
}

// DetectHits matches bullets against enemies. Bullets are visited in order;
// each takes the first enemy in list order it overlaps that no earlier
// bullet claimed this call. A bullet claims at most one enemy and an enemy
// is claimed by at most one bullet.
func DetectHits(bullets []*object.Bullet, enemies []*object.Enemy) []Hit {
	grid := physics.NewSpatialGrid(config.FieldWidth, config.FieldHeight, collisionGridCellSize)
	return detectHits(bullets, enemies, grid, nil)
}

// detectHits is DetectHits with a reusable grid and result slice.
func detectHits(bullets []*object.Bullet, enemies []*object.Enemy, grid *physics.SpatialGrid, hits []Hit) []Hit {
	hits = hits[:0]
	if len(bullets) == 0 || len(enemies) == 0 {
		return hits
	}

	grid.Clear()
	for i, e := range enemies {
		grid.Insert(e.X, e.Y, i)
	}

	var claimed []bool
	if len(enemies) <= 64 {
		var buf [64]bool
		claimed = buf[:len(enemies)]
	} else {
		claimed = make([]bool, len(enemies))
	}

	for bi, b := range bullets {
		best := -1
		grid.QueryAround(b.X, b.Y, func(ei int) bool {
			if claimed[ei] || (best >= 0 && ei > best) {
				return false
			}
			e := enemies[ei]
			if physics.CirclesOverlap(b.X, b.Y, b.Radius, e.X, e.Y, e.Radius) {
				best = ei
			}
			return false
		})
		if best < 0 {
			continue
		}
		claimed[best] = true
		hits = append(hits, Hit{Bullet: b, Enemy: enemies[best], BulletIndex: bi, EnemyIndex: best})
	}
	return hits
}
