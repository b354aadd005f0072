// Package geom holds the small amount of 3D math the engine needs:
// vectors, axis-aligned boxes and ray/box intersection.
package geom

import "math"

// Vec3 is a float64 3D vector. X/Z is the floor plane, Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Len(v Vec3) float64 {
	return math.Sqrt(Dot(v, v))
}

// Dist is the straight-line distance between a and b.
func Dist(a, b Vec3) float64 {
	return Len(Sub(a, b))
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return Scale(v, 1/l)
}

// Flat drops the vertical component.
func Flat(v Vec3) Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}

// Direction returns the unit look vector for a yaw/pitch pair in radians.
// Yaw 0 looks along -Z, positive yaw turns towards -X.
func Direction(yaw, pitch float64) Vec3 {
	cp := math.Cos(pitch)
	return Vec3{
		X: -math.Sin(yaw) * cp,
		Y: math.Sin(pitch),
		Z: -math.Cos(yaw) * cp,
	}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// Box builds a box from its center and half extents.
func Box(center, half Vec3) AABB {
	return AABB{Min: Sub(center, half), Max: Add(center, half)}
}

// Cube builds a box of edge size centered on center.
func Cube(center Vec3, size float64) AABB {
	h := size / 2
	return Box(center, Vec3{h, h, h})
}

// Center returns the box center.
func (b AABB) Center() Vec3 {
	return Scale(Add(b.Min, b.Max), 0.5)
}

// Intersects reports whether two boxes overlap. Touching faces do not count.
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// ContainsXZ reports whether p lies inside the box footprint.
func (b AABB) ContainsXZ(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// RayBox intersects a ray with a box using the slab method. dir need not
// be normalized; the returned t is in units of dir. A ray starting inside
// the box hits at t = 0.
func RayBox(origin, dir Vec3, b AABB) (float64, bool) {
	tmin := 0.0
	tmax := math.Inf(1)

	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1 := (lo[i] - o[i]) * inv
		t2 := (hi[i] - o[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
