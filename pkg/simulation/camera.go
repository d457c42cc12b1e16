package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

// Camera is the derived viewport. Pos is the top-left corner of the view in world coordinates;
// the visible world area is ViewWidth/Zoom by ViewHeight/Zoom.
type Camera struct {
	Pos        geometry.Vector2D
	Zoom       float64
	ViewWidth  float64
	ViewHeight float64
}

func newCamera(cfg CameraConfig) Camera {
	return Camera{Zoom: 1, ViewWidth: cfg.ViewWidth, ViewHeight: cfg.ViewHeight}
}

// targetZoom shrinks the zoom as the player grows so the whole body stays in view.
func targetZoom(segments int, perSegment float64) float64 {
	return 1 / (1 + float64(segments)*perSegment)
}

// follow eases the camera toward the player's head. The gap is always measured with the
// toroidal delta so a head that wrapped this tick does not drag the view across the world.
func (c *Camera) follow(world geometry.Torus, cfg CameraConfig, head geometry.Vector2D, segments int, dt float64) {
	k := math.Min(1, cfg.Ease*dt)
	c.Zoom += (targetZoom(segments, cfg.ZoomPerSegment) - c.Zoom) * k

	half := geometry.Vector2D{X: c.ViewWidth / 2, Y: c.ViewHeight / 2}.Mul(1 / c.Zoom)
	target := world.Wrap(head.Sub(half))
	c.Pos = world.Advance(c.Pos, world.Delta(c.Pos, target).Mul(k))
}

// snap centres the camera on head immediately, used on spawn.
func (c *Camera) snap(world geometry.Torus, cfg CameraConfig, head geometry.Vector2D, segments int) {
	c.Zoom = targetZoom(segments, cfg.ZoomPerSegment)
	half := geometry.Vector2D{X: c.ViewWidth / 2, Y: c.ViewHeight / 2}.Mul(1 / c.Zoom)
	c.Pos = world.Wrap(head.Sub(half))
}

// Project maps a world position to view coordinates, picking the wrapped copy nearest the view centre.
func (c Camera) Project(world geometry.Torus, p geometry.Vector2D) geometry.Vector2D {
	half := geometry.Vector2D{X: c.ViewWidth / 2, Y: c.ViewHeight / 2}
	centre := world.Advance(c.Pos, half.Mul(1/c.Zoom))
	return world.Delta(centre, p).Mul(c.Zoom).Add(half)
}

// Visible reports whether a circle at p with radius r overlaps the view.
func (c Camera) Visible(world geometry.Torus, p geometry.Vector2D, r float64) bool {
	s := c.Project(world, p)
	rz := r * c.Zoom
	return s.X+rz >= 0 && s.Y+rz >= 0 && s.X-rz <= c.ViewWidth && s.Y-rz <= c.ViewHeight
}
