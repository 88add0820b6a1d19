package tile

// Snapshot is the frozen, read-only view of a World's tiles that every
// phase's parallel evaluation reads from. It is an owned deep copy: no
// reader can observe another worker's in-flight mutation because none
// exist — mutations are collected separately and applied only after every
// tile in the phase has been evaluated.
type Snapshot struct {
	Tiles  []Tile
	Season Season
	Tick   uint64
}

// NewSnapshot deep-copies w's tiles into a Snapshot.
func NewSnapshot(w *World) Snapshot {
	tiles := make([]Tile, len(w.Tiles))
	for i := range w.Tiles {
		tiles[i] = w.Tiles[i].Clone()
	}
	return Snapshot{Tiles: tiles, Season: w.Season, Tick: w.TickCount}
}

// Tile returns the snapshot tile with the given id.
func (s *Snapshot) Tile(id uint32) *Tile {
	return &s.Tiles[id]
}

// Neighbors returns pointers to the snapshot tiles adjacent to id.
func (s *Snapshot) Neighbors(id uint32) []*Tile {
	t := &s.Tiles[id]
	out := make([]*Tile, len(t.Neighbors))
	for i, n := range t.Neighbors {
		out[i] = &s.Tiles[n]
	}
	return out
}
