package snapshot

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brookstalley/worldground/internal/tile"
)

func testWorld(tick uint64) *tile.World {
	return &tile.World{
		ID:        uuid.New(),
		Name:      "test-world",
		CreatedAt: time.Unix(0, 0).UTC(),
		TickCount: tick,
		Season:    tile.SeasonSpring,
		Tiles: []tile.Tile{
			tile.NewDefault(0, []uint32{1}, tile.Position{}),
			tile.NewDefault(1, []uint32{0}, tile.Position{}),
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshots.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDigestIsStableForIdenticalWorlds(t *testing.T) {
	w := testWorld(5)
	d1, _, err := Digest(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d2, _, err := Digest(w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d1 != d2 {
		t.Fatalf("expected identical digests for the same world, got %s vs %s", d1, d2)
	}
}

func TestDigestDiffersWhenWorldStateDiffers(t *testing.T) {
	a := testWorld(5)
	b := testWorld(5)
	b.Tiles[0].Weather.Temperature += 1

	da, _, _ := Digest(a)
	db, _, _ := Digest(b)
	if da == db {
		t.Fatal("expected digests to differ when tile state differs")
	}
}

func TestSaveLoadRoundTripsWorldState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	w := testWorld(3)
	w.Tiles[0].Weather.Temperature = 301.5

	if err := s.Save(ctx, w, 10); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	loaded, digest, err := s.Load(ctx, 3)
	if err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	wantDigest, _, _ := Digest(w)
	if digest != wantDigest {
		t.Fatalf("expected loaded digest to match saved digest")
	}
	if loaded.Tiles[0].Weather.Temperature != 301.5 {
		t.Fatalf("expected round-tripped temperature 301.5, got %v", loaded.Tiles[0].Weather.Temperature)
	}
}

func TestSaveLoadRoundTripsAHighlyCompressibleWorld(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := &tile.World{
		ID:        uuid.New(),
		Name:      "uniform-world",
		CreatedAt: time.Unix(0, 0).UTC(),
		TickCount: 1,
		Season:    tile.SeasonSpring,
	}
	// A large, uniform tile vector compresses at ratios well beyond a
	// fixed 20x assumption over the compressed size.
	for i := uint32(0); i < 5000; i++ {
		w.Tiles = append(w.Tiles, tile.NewDefault(i, []uint32{i}, tile.Position{}))
	}

	if err := s.Save(ctx, w, 10); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	loaded, digest, err := s.Load(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error loading a highly compressible snapshot: %v", err)
	}
	wantDigest, _, _ := Digest(w)
	if digest != wantDigest {
		t.Fatal("expected loaded digest to match saved digest")
	}
	if len(loaded.Tiles) != len(w.Tiles) {
		t.Fatalf("expected %d tiles round-tripped, got %d", len(w.Tiles), len(loaded.Tiles))
	}
}

func TestSavePrunesBeyondMaxSnapshots(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for tick := uint64(1); tick <= 5; tick++ {
		if err := s.Save(ctx, testWorld(tick), 2); err != nil {
			t.Fatalf("unexpected error saving tick %d: %v", tick, err)
		}
	}

	if _, ok, err := s.LatestTick(ctx); err != nil || !ok {
		t.Fatalf("expected a latest tick after saving, ok=%v err=%v", ok, err)
	}

	if _, _, err := s.Load(ctx, 1); err == nil {
		t.Fatal("expected tick 1 to have been pruned once more than max_snapshots were saved")
	}
	if _, _, err := s.Load(ctx, 5); err != nil {
		t.Fatalf("expected the most recent tick to survive pruning, got error: %v", err)
	}
}

func TestLatestTickReturnsFalseWhenStoreIsEmpty(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.LatestTick(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for an empty store")
	}
}
