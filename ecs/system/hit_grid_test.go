package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"

	"github.com/milk9111/saiyanquest/ecs"
)

func collect(g *HitGrid, center cp.Vector, radius float64) []ecs.Entity {
	var out []ecs.Entity
	g.QueryCircle(center, radius, func(e ecs.Entity, _ cp.Vector) bool {
		out = append(out, e)
		return true
	})
	return out
}

func TestHitGridQueryCircle(t *testing.T) {
	g := NewHitGrid(4)
	g.Add(1, cp.Vector{X: 0.5, Y: 0})
	g.Add(2, cp.Vector{X: 3.9, Y: 0})
	g.Add(3, cp.Vector{X: 4.1, Y: 0})
	g.Add(4, cp.Vector{X: -1, Y: -1})
	g.Add(5, cp.Vector{X: 40, Y: 40})

	tests := []struct {
		name   string
		center cp.Vector
		radius float64
		want   []ecs.Entity
	}{
		{"crosses_cell_boundary", cp.Vector{X: 4, Y: 0}, 0.5, []ecs.Entity{2, 3}},
		{"negative_coordinates", cp.Vector{X: -1, Y: -1.2}, 0.5, []ecs.Entity{4}},
		{"radius_is_inclusive", cp.Vector{X: 0, Y: 0}, 0.5, []ecs.Entity{1}},
		{"far_away_cell", cp.Vector{X: 39, Y: 40}, 1.5, []ecs.Entity{5}},
		{"empty", cp.Vector{X: 20, Y: 20}, 1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, collect(g, tc.center, tc.radius))
		})
	}
}

func TestHitGridStopsEarlyAndClears(t *testing.T) {
	g := NewHitGrid(1)
	for i := 1; i <= 5; i++ {
		g.Add(ecs.Entity(i), cp.Vector{X: 0.1 * float64(i)})
	}
	assert.Equal(t, 5, g.Len())

	visited := 0
	g.QueryCircle(cp.Vector{}, 2, func(ecs.Entity, cp.Vector) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)

	g.Clear()
	assert.Zero(t, g.Len())
	assert.Empty(t, collect(g, cp.Vector{}, 2))
}
