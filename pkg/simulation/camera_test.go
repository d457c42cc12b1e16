package simulation

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

func TestTargetZoom(t *testing.T) {
	tests := []struct {
		segments int
		want     float64
	}{
		{0, 1}, {1, 1 / 1.02}, {10, 1 / 1.2}, {40, 1 / 1.8},
	}
	for _, tt := range tests {
		if got := targetZoom(tt.segments, 0.02); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("targetZoom(%d) = %v, want %v", tt.segments, got, tt.want)
		}
	}
}

func TestCamera_follow(t *testing.T) {
	world := geometry.NewTorus(3000, 3000)
	cfg := DefaultConfig().Camera

	t.Run("converges on the head", func(t *testing.T) {
		c := newCamera(cfg)
		head := geometry.Vector2D{X: 1500, Y: 1500}
		for range 600 {
			c.follow(world, cfg, head, 5, 1.0/60)
		}
		want := head.Sub(geometry.Vector2D{X: 300, Y: 300}.Mul(1 / targetZoom(5, cfg.ZoomPerSegment)))
		if world.Distance(c.Pos, want) > 1e-3 {
			t.Errorf("camera at %s, want %s", c.Pos, want)
		}
	})

	t.Run("does not jump when the head wraps", func(t *testing.T) {
		c := newCamera(cfg)
		c.snap(world, cfg, geometry.Vector2D{X: 2995, Y: 1500}, 1)
		before := c.Pos
		// the head crossed the right edge this tick
		c.follow(world, cfg, geometry.Vector2D{X: 3, Y: 1500}, 1, 1.0/60)
		if d := world.Distance(before, c.Pos); d > 10 {
			t.Errorf("camera jumped %v units across the seam", d)
		}
		if !world.Contains(c.Pos) {
			t.Errorf("camera position %s outside the world", c.Pos)
		}
	})
}

func TestCamera_Project(t *testing.T) {
	world := geometry.NewTorus(3000, 3000)
	cfg := DefaultConfig().Camera
	c := newCamera(cfg)
	c.snap(world, cfg, geometry.Vector2D{X: 10, Y: 10}, 0)

	centre := c.Project(world, geometry.Vector2D{X: 10, Y: 10})
	if !centre.Eq(geometry.Vector2D{X: 300, Y: 300}) {
		t.Errorf("the head should project to the view centre, got %s", centre)
	}
	// a point just across the seam shows up left of the head, not 3000 units away
	left := c.Project(world, geometry.Vector2D{X: 2990, Y: 10})
	if math.Abs(left.X-280) > 1e-9 {
		t.Errorf("expected x=280 for the wrapped neighbour, got %s", left)
	}
	if !c.Visible(world, geometry.Vector2D{X: 2990, Y: 10}, 5) {
		t.Error("the wrapped neighbour should be visible")
	}
	if c.Visible(world, geometry.Vector2D{X: 1500, Y: 1500}, 5) {
		t.Error("the far side of the world should not be visible")
	}
}
