package topology

import (
	"math"
	"sort"

	"github.com/brookstalley/worldground/internal/tile"
)

type vec3 struct{ x, y, z float64 }

func (v vec3) normalize() vec3 {
	m := math.Sqrt(v.x*v.x + v.y*v.y + v.z*v.z)
	return vec3{v.x / m, v.y / m, v.z / m}
}

func midpoint(a, b vec3) vec3 {
	return vec3{(a.x + b.x) / 2, (a.y + b.y) / 2, (a.z + b.z) / 2}
}

type edgeKey struct{ a, b uint32 }

func makeEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// icosahedronVertices are the 12 vertices of a regular icosahedron; these
// remain the 12 five-neighbour pentagon tiles at any subdivision depth,
// since subdivision only ever adds new vertices at edge midpoints.
func icosahedronVertices() []vec3 {
	phi := (1.0 + math.Sqrt(5.0)) / 2.0
	raw := [][3]float64{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	out := make([]vec3, len(raw))
	for i, r := range raw {
		out[i] = vec3{r[0], r[1], r[2]}.normalize()
	}
	return out
}

func icosahedronFaces() [][3]uint32 {
	return [][3]uint32{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
}

// subdivide splits every face of the given mesh into 4, inserting a single
// shared vertex at each edge midpoint (deduplicated via midpointCache so
// adjacency stays symmetric and no vertex is ever duplicated).
func subdivide(vertices []vec3, faces [][3]uint32) ([]vec3, [][3]uint32) {
	midpointCache := make(map[edgeKey]uint32)

	getMid := func(a, b uint32) uint32 {
		key := makeEdgeKey(a, b)
		if id, ok := midpointCache[key]; ok {
			return id
		}
		m := midpoint(vertices[a], vertices[b]).normalize()
		id := uint32(len(vertices))
		vertices = append(vertices, m)
		midpointCache[key] = id
		return id
	}

	newFaces := make([][3]uint32, 0, len(faces)*4)
	for _, f := range faces {
		a, b, c := f[0], f[1], f[2]
		ab := getMid(a, b)
		bc := getMid(b, c)
		ca := getMid(c, a)
		newFaces = append(newFaces,
			[3]uint32{a, ab, ca},
			[3]uint32{b, bc, ab},
			[3]uint32{c, ca, bc},
			[3]uint32{ab, bc, ca},
		)
	}
	return vertices, newFaces
}

// GenerateGeodesic builds a geodesic icosphere at the given subdivision
// level (0 = bare icosahedron, 12 tiles; each level roughly quadruples the
// triangle count). Exactly 12 tiles have 5 neighbours at every level; all
// others have 6.
func GenerateGeodesic(subdivisions int) []tile.Tile {
	vertices := icosahedronVertices()
	faces := icosahedronFaces()

	for i := 0; i < subdivisions; i++ {
		vertices, faces = subdivide(vertices, faces)
	}

	adjacency := make([]map[uint32]struct{}, len(vertices))
	for i := range adjacency {
		adjacency[i] = make(map[uint32]struct{})
	}
	addEdge := func(a, b uint32) {
		adjacency[a][b] = struct{}{}
		adjacency[b][a] = struct{}{}
	}
	for _, f := range faces {
		addEdge(f[0], f[1])
		addEdge(f[1], f[2])
		addEdge(f[2], f[0])
	}

	tiles := make([]tile.Tile, len(vertices))
	for id, v := range vertices {
		pos := tile.NewGeodesicPosition(v.x, v.y, v.z)
		neighbors := make([]uint32, 0, len(adjacency[id]))
		for n := range adjacency[id] {
			neighbors = append(neighbors, n)
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })
		tiles[id] = tile.NewDefault(uint32(id), neighbors, pos)
	}

	return tiles
}

// PentagonTileIDs returns the ids of the 12 five-neighbour tiles inherent
// to any geodesic world: exactly the original icosahedron vertices.
func PentagonTileIDs() [12]uint32 {
	var ids [12]uint32
	for i := range ids {
		ids[i] = uint32(i)
	}
	return ids
}
