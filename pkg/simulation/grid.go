package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
)

type gridKey struct {
	x, y int
}

// spatialGrid buckets items by cell so collision checks only look at the 3x3 cells around a point.
// Cells evenly divide the world, and neighbour lookups wrap, so two points close across the
// seam always land in adjacent cells.
type spatialGrid[T any] struct {
	cols, rows   int
	cellW, cellH float64
	cells        map[gridKey][]T
}

// newSpatialGrid sizes cells so that each is at least minCell wide: any pair of points
// closer than minCell sits in the same or a neighbouring cell.
func newSpatialGrid[T any](world geometry.Torus, minCell float64) *spatialGrid[T] {
	// Clamp to a minimum of 10 to avoid tiny grids or div by zero
	minCell = math.Max(minCell, 10)
	cols := max(1, int(world.Width/minCell))
	rows := max(1, int(world.Height/minCell))
	return &spatialGrid[T]{
		cols:  cols,
		rows:  rows,
		cellW: world.Width / float64(cols),
		cellH: world.Height / float64(rows),
		cells: make(map[gridKey][]T),
	}
}

// reset empties every cell but keeps the slices' capacity, so steady-state rebuilds
// allocate almost nothing.
func (g *spatialGrid[T]) reset() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

func (g *spatialGrid[T]) key(p geometry.Vector2D) gridKey {
	return gridKey{
		x: min(int(p.X/g.cellW), g.cols-1),
		y: min(int(p.Y/g.cellH), g.rows-1),
	}
}

func (g *spatialGrid[T]) insert(p geometry.Vector2D, v T) {
	k := g.key(p)
	// append reuses the capacity kept by reset
	g.cells[k] = append(g.cells[k], v)
}

// near calls fn for every item in the cells around p until fn returns false.
func (g *spatialGrid[T]) near(p geometry.Vector2D, fn func(T) bool) {
	k := g.key(p)
	for _, x := range neighbours(k.x, g.cols) {
		for _, y := range neighbours(k.y, g.rows) {
			for _, v := range g.cells[gridKey{x: x, y: y}] {
				if !fn(v) {
					return
				}
			}
		}
	}
}

// neighbours lists the distinct wrapped indices i-1, i, i+1; fewer than three columns
// would otherwise visit a cell twice.
func neighbours(i, n int) []int {
	switch n {
	case 1:
		return []int{0}
	case 2:
		return []int{0, 1}
	}
	return []int{(i - 1 + n) % n, i, (i + 1) % n}
}
