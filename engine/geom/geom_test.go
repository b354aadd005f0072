package geom

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDirection(t *testing.T) {
	tests := []struct {
		name       string
		yaw, pitch float64
		want       Vec3
	}{
		{"forward", 0, 0, Vec3{0, 0, -1}},
		{"quarter turn", math.Pi / 2, 0, Vec3{-1, 0, 0}},
		{"straight down", 0, -math.Pi / 2, Vec3{0, -1, 0}},
	}
	for _, tt := range tests {
		got := Direction(tt.yaw, tt.pitch)
		if !near(got.X, tt.want.X) || !near(got.Y, tt.want.Y) || !near(got.Z, tt.want.Z) {
			t.Errorf("%s: Direction = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestIntersects(t *testing.T) {
	a := Cube(Vec3{0, 0, 0}, 2)
	if !a.Intersects(Cube(Vec3{1, 0, 0}, 2)) {
		t.Error("overlapping boxes should intersect")
	}
	if a.Intersects(Cube(Vec3{2, 0, 0}, 2)) {
		t.Error("touching boxes should not intersect")
	}
	if a.Intersects(Cube(Vec3{0, 5, 0}, 2)) {
		t.Error("boxes separated on Y should not intersect")
	}
}

func TestRayBox(t *testing.T) {
	box := Cube(Vec3{0, 0, -5}, 2)

	tHit, ok := RayBox(Vec3{}, Vec3{0, 0, -1}, box)
	if !ok || !near(tHit, 4) {
		t.Errorf("expected hit at 4, got %v (ok=%v)", tHit, ok)
	}

	if _, ok := RayBox(Vec3{}, Vec3{0, 0, 1}, box); ok {
		t.Error("ray pointing away should miss")
	}

	if _, ok := RayBox(Vec3{3, 0, 0}, Vec3{0, 0, -1}, box); ok {
		t.Error("parallel ray outside the slab should miss")
	}

	tHit, ok = RayBox(Vec3{0, 0, -5}, Vec3{1, 0, 0}, box)
	if !ok || tHit != 0 {
		t.Errorf("ray from inside should hit at 0, got %v (ok=%v)", tHit, ok)
	}
}

func TestNormalizeZero(t *testing.T) {
	if got := Normalize(Vec3{}); got != (Vec3{}) {
		t.Errorf("Normalize(0) = %+v", got)
	}
	if got := Len(Normalize(Vec3{3, 4, 0})); !near(got, 1) {
		t.Errorf("normalized length = %v", got)
	}
}
