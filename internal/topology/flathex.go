// Package topology builds a World's tile graph: neighbour adjacency and
// positions, for either a toroidal flat-hex grid or a geodesic icosphere.
// The core specification treats this as consumed, not re-specified; this
// is the minimal reimplementation needed to have a runnable repo. Flat-hex
// is ported from original_source's world/topology.rs; geodesic is a
// standard icosphere construction documented in DESIGN.md as not
// attributable to any pack file.
package topology

import (
	"math"

	"github.com/brookstalley/worldground/internal/tile"
)

// evenRowNeighbors and oddRowNeighbors are the odd-r offset-coordinate
// neighbour deltas (col, row), matching original_source's
// EVEN_ROW_NEIGHBORS / ODD_ROW_NEIGHBORS tables exactly.
var evenRowNeighbors = [6][2]int{
	{1, 0}, {-1, 0}, {0, -1}, {-1, -1}, {0, 1}, {-1, 1},
}

var oddRowNeighbors = [6][2]int{
	{1, 0}, {-1, 0}, {1, -1}, {0, -1}, {1, 1}, {0, 1},
}

// GridDimensions returns (width, height) for a toroidal flat-hex grid
// covering at least targetCount tiles, with height always even so wrapping
// stays well-defined.
func GridDimensions(targetCount uint32) (width, height uint32) {
	side := uint32(math.Ceil(math.Sqrt(float64(targetCount))))
	if side < 2 {
		side = 2
	}
	height = side
	if height%2 != 0 {
		height++
	}
	width = side
	if width < 2 {
		width = 2
	}
	return
}

// GenerateFlatHex builds a width*height toroidal hex grid. Every tile has
// exactly 6 neighbours and adjacency is symmetric by construction.
func GenerateFlatHex(width, height uint32) []tile.Tile {
	if width < 2 || height < 2 || height%2 != 0 {
		panic("topology: flat-hex grid requires width>=2, height>=2, height even")
	}

	total := int(width * height)
	tiles := make([]tile.Tile, total)

	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			id := row*width + col
			pos := offsetToPixel(col, row, width, height)
			tiles[id] = tile.NewDefault(id, make([]uint32, 0, 6), pos)
		}
	}

	for row := uint32(0); row < height; row++ {
		for col := uint32(0); col < width; col++ {
			id := row*width + col
			offsets := evenRowNeighbors
			if row%2 == 1 {
				offsets = oddRowNeighbors
			}
			neighbors := make([]uint32, 0, 6)
			for _, d := range offsets {
				nc := wrapInt(int(col)+d[0], int(width))
				nr := wrapInt(int(row)+d[1], int(height))
				neighbors = append(neighbors, uint32(nr)*width+uint32(nc))
			}
			tiles[id].Neighbors = neighbors
		}
	}

	return tiles
}

func offsetToPixel(col, row, width, height uint32) tile.Position {
	const size = 1.0
	x := size * math.Sqrt(3) * (float64(col) + 0.5*float64(row%2))
	y := size * 1.5 * float64(row)
	return tile.NewFlatPosition(x, y, size*math.Sqrt(3)*float64(width), 1.5*float64(height))
}

// wrapInt is Go's equivalent of Rust's rem_euclid for int: always returns a
// value in [0, m).
func wrapInt(v, m int) int {
	r := v % m
	if r < 0 {
		r += m
	}
	return r
}
