package physics

import (
	"math"
	"sort"
	"testing"
)

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance(0,0,3,4) = %v, want 5", d)
	}
	if d := DistanceSquared(1, 1, 4, 5); d != 25 {
		t.Errorf("DistanceSquared = %v, want 25", d)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		x1, y1, r1, x2, y2, r2 float64
		want                   bool
	}{
		{"same center", 5, 5, 1, 5, 5, 1, true},
		{"overlapping", 0, 0, 2, 3, 0, 2, true},
		{"touching is not a hit", 0, 0, 1, 2, 0, 1, false},
		{"apart", 0, 0, 1, 10, 10, 1, false},
		{"diagonal inside", 0, 0, 0.5, 2, 2, 3, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CirclesOverlap(tc.x1, tc.y1, tc.r1, tc.x2, tc.y2, tc.r2)
			if got != tc.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if v := Clamp(-1, 0, 10); v != 0 {
		t.Errorf("Clamp low = %v", v)
	}
	if v := Clamp(11, 0, 10); v != 10 {
		t.Errorf("Clamp high = %v", v)
	}
	if v := Clamp(4, 0, 10); v != 4 {
		t.Errorf("Clamp inside = %v", v)
	}
	if v := Clamp(3, 8, 2); v != 5 {
		t.Errorf("Clamp inverted = %v, want midpoint 5", v)
	}
	if v := Clamp(math.Inf(1), 0, 1); v != 1 {
		t.Errorf("Clamp +Inf = %v", v)
	}
}

func TestSpatialGridQueryAround(t *testing.T) {
	g := NewSpatialGrid(100, 50, 10)
	g.Insert(5, 5, 0)   // cell (0,0)
	g.Insert(15, 5, 1)  // cell (1,0)
	g.Insert(55, 25, 2) // far away
	g.Insert(-20, 5, 3) // clamped into cell (0,0)

	var found []int
	g.QueryAround(6, 6, func(i int) bool {
		found = append(found, i)
		return false
	})
	sort.Ints(found)
	want := []int{0, 1, 3}
	if len(found) != len(want) {
		t.Fatalf("found %v, want %v", found, want)
	}
	for i := range want {
		if found[i] != want[i] {
			t.Fatalf("found %v, want %v", found, want)
		}
	}
}

func TestSpatialGridNoWrap(t *testing.T) {
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(95, 5, 7)

	hit := false
	g.QueryAround(2, 5, func(i int) bool {
		hit = true
		return true
	})
	if hit {
		t.Error("query at left edge must not see items at the right edge")
	}
}

func TestSpatialGridClearAndEarlyStop(t *testing.T) {
	g := NewSpatialGrid(30, 30, 10)
	for i := 0; i < 5; i++ {
		g.Insert(15, 15, i)
	}

	calls := 0
	g.QueryAround(15, 15, func(int) bool {
		calls++
		return calls == 2
	})
	if calls != 2 {
		t.Errorf("expected iteration to stop after 2 calls, got %d", calls)
	}

	g.Clear()
	g.QueryAround(15, 15, func(int) bool {
		t.Error("grid should be empty after Clear")
		return true
	})
}
