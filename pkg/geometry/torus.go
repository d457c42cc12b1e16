package geometry

import "math"

// Torus is a Width x Height world whose axes wrap: leaving one edge re-enters from the opposite one.
// Every distance, direction and following computation on world positions goes through Delta,
// raw subtraction gives wrong answers across the seam.
type Torus struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewTorus returns a torus of the given dimensions.
func NewTorus(width, height float64) Torus {
	return Torus{Width: width, Height: height}
}

// Wrap reduces both coordinates of p into [0,Width) x [0,Height).
func (t Torus) Wrap(p Vector2D) Vector2D {
	return Vector2D{X: wrapAxis(p.X, t.Width), Y: wrapAxis(p.Y, t.Height)}
}

// Contains reports whether p already lies in the canonical range.
func (t Torus) Contains(p Vector2D) bool {
	return p.X >= 0 && p.X < t.Width && p.Y >= 0 && p.Y < t.Height
}

// Delta returns the shortest signed displacement from a to b, each axis on its own.
func (t Torus) Delta(a, b Vector2D) Vector2D {
	return Vector2D{X: deltaAxis(a.X, b.X, t.Width), Y: deltaAxis(a.Y, b.Y, t.Height)}
}

// Distance is the length of the shortest displacement between a and b.
func (t Torus) Distance(a, b Vector2D) float64 {
	return t.Delta(a, b).Len()
}

// DistanceSqr avoids the square root for range checks.
func (t Torus) DistanceSqr(a, b Vector2D) float64 {
	return t.Delta(a, b).LenSqr()
}

// Overlap is the circle collision test: centres closer than the sum of the radii.
func (t Torus) Overlap(a Vector2D, ra float64, b Vector2D, rb float64) bool {
	r := ra + rb
	return t.DistanceSqr(a, b) < r*r
}

// Direction returns the unit vector pointing from a toward b across the shortest path.
func (t Torus) Direction(a, b Vector2D) Vector2D {
	return t.Delta(a, b).Normalize()
}

// Advance moves p by offset and wraps the result.
func (t Torus) Advance(p, offset Vector2D) Vector2D {
	return t.Wrap(p.Add(offset))
}

func wrapAxis(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size rounds to size in float64
	if v >= size {
		v = 0
	}
	return v
}

func deltaAxis(a, b, size float64) float64 {
	d := b - a
	if size <= 0 {
		return d
	}
	d = math.Mod(d, size)
	half := size / 2
	if d > half {
		d -= size
	} else if d < -half {
		d += size
	}
	return d
}
