package tile

import "testing"

func TestNewSnapshotIsIndependentOfWorld(t *testing.T) {
	w := &World{
		Season:    SeasonSpring,
		TickCount: 4,
		Tiles: []Tile{
			NewDefault(0, []uint32{1}, Position{}),
			NewDefault(1, []uint32{0}, Position{}),
		},
	}
	snap := NewSnapshot(w)

	snap.Tile(0).Weather.Temperature = 999
	if w.Tiles[0].Weather.Temperature == 999 {
		t.Fatal("expected the snapshot to be a deep copy, not share state with the world")
	}
	if snap.Season != SeasonSpring || snap.Tick != 4 {
		t.Fatalf("expected season/tick carried from world, got %v/%d", snap.Season, snap.Tick)
	}
}

func TestSnapshotNeighborsReturnsAdjacentTiles(t *testing.T) {
	w := &World{
		Tiles: []Tile{
			NewDefault(0, []uint32{1, 2}, Position{}),
			NewDefault(1, nil, Position{}),
			NewDefault(2, nil, Position{}),
		},
	}
	snap := NewSnapshot(w)
	neighbors := snap.Neighbors(0)
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbours, got %d", len(neighbors))
	}
	if neighbors[0].ID != 1 || neighbors[1].ID != 2 {
		t.Fatalf("expected neighbours in order [1,2], got [%d,%d]", neighbors[0].ID, neighbors[1].ID)
	}
}
