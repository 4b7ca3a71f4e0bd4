package system

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/saiyanquest/ecs"
)

type cellKey struct {
	x, z int
}

// HitGrid is a uniform spatial hash over the ground plane, rebuilt every
// frame. Cells are unbounded so enemies anywhere in the arena can be indexed.
type HitGrid struct {
	cellSize float64
	cells    map[cellKey][]ecs.Entity
	pos      map[ecs.Entity]cp.Vector
}

func NewHitGrid(cellSize float64) *HitGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &HitGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.Entity),
		pos:      make(map[ecs.Entity]cp.Vector),
	}
}

func (g *HitGrid) key(v cp.Vector) cellKey {
	return cellKey{
		x: int(math.Floor(v.X / g.cellSize)),
		z: int(math.Floor(v.Y / g.cellSize)),
	}
}

// Add indexes e at ground position p.
func (g *HitGrid) Add(e ecs.Entity, p cp.Vector) {
	k := g.key(p)
	g.cells[k] = append(g.cells[k], e)
	g.pos[e] = p
}

// Clear empties the grid, keeping cell storage for reuse.
func (g *HitGrid) Clear() {
	for k, cell := range g.cells {
		g.cells[k] = cell[:0]
	}
	clear(g.pos)
}

// Len returns the number of indexed entities.
func (g *HitGrid) Len() int {
	return len(g.pos)
}

// QueryCircle calls fn for every indexed entity within radius of center, in
// cell order then insertion order. fn returning false stops the query.
func (g *HitGrid) QueryCircle(center cp.Vector, radius float64, fn func(ecs.Entity, cp.Vector) bool) {
	bb := cp.NewBBForCircle(center, radius)
	lo := g.key(cp.Vector{X: bb.L, Y: bb.B})
	hi := g.key(cp.Vector{X: bb.R, Y: bb.T})
	r2 := radius * radius
	for z := lo.z; z <= hi.z; z++ {
		for x := lo.x; x <= hi.x; x++ {
			for _, e := range g.cells[cellKey{x: x, z: z}] {
				p := g.pos[e]
				if p.DistanceSq(center) > r2 {
					continue
				}
				if !fn(e, p) {
					return
				}
			}
		}
	}
}
