package tile

import "testing"

func TestNewDefaultPopulatesDefaultLayers(t *testing.T) {
	tl := NewDefault(3, []uint32{1, 2}, Position{Lat: 10})
	if tl.ID != 3 {
		t.Fatalf("expected ID 3, got %d", tl.ID)
	}
	if len(tl.Neighbors) != 2 {
		t.Fatalf("expected 2 neighbours, got %d", len(tl.Neighbors))
	}
	if tl.Biome.BiomeType != DefaultBiomeLayer().BiomeType {
		t.Fatalf("expected default biome layer values")
	}
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	orig := NewDefault(1, []uint32{2, 3}, Position{})
	orig.Resources.Deposits = []ResourceDeposit{{ResourceType: "ore", Quantity: 10}}

	clone := orig.Clone()
	clone.Neighbors[0] = 99
	clone.Resources.Deposits[0].Quantity = 999

	if orig.Neighbors[0] == 99 {
		t.Fatal("expected Clone's Neighbors slice to be independently backed")
	}
	if orig.Resources.Deposits[0].Quantity == 999 {
		t.Fatal("expected Clone's Deposits slice to be independently backed")
	}
}

func TestHasNeighbor(t *testing.T) {
	tl := NewDefault(0, []uint32{5, 6, 7}, Position{})
	if !tl.HasNeighbor(6) {
		t.Fatal("expected 6 to be a neighbour")
	}
	if tl.HasNeighbor(42) {
		t.Fatal("expected 42 not to be a neighbour")
	}
}

func TestLatLonToXYZRoundTrip(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{0, 0}, {45, 90}, {-30, -120}, {89, 179},
	}
	for _, c := range cases {
		x, y, z := LatLonToXYZ(c.lat, c.lon)
		lat, lon := XYZToLatLon(x, y, z)
		if diff := lat - c.lat; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("lat round trip mismatch: %v vs %v", lat, c.lat)
		}
		if diff := lon - c.lon; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("lon round trip mismatch: %v vs %v", lon, c.lon)
		}
	}
}

func TestNewFlatPositionProjectsIntoValidLatLonRange(t *testing.T) {
	pos := NewFlatPosition(5, 3, 10, 6)
	if pos.Lat < -90 || pos.Lat > 90 {
		t.Fatalf("expected lat in [-90,90], got %v", pos.Lat)
	}
	if pos.Lon < -180 || pos.Lon > 180 {
		t.Fatalf("expected lon in [-180,180], got %v", pos.Lon)
	}
	if pos.PlanarX != 5 || pos.PlanarY != 3 {
		t.Fatalf("expected planar coordinates preserved, got (%v,%v)", pos.PlanarX, pos.PlanarY)
	}
}

func TestNewMacroWeatherStateSeedsNextIDAndRNG(t *testing.T) {
	m := NewMacroWeatherState(12345)
	if m.NextID != 1 {
		t.Fatalf("expected NextID to start at 1, got %d", m.NextID)
	}
	if m.RNGState != 12345 {
		t.Fatalf("expected RNGState to be seeded from input, got %d", m.RNGState)
	}
	if len(m.Systems) != 0 {
		t.Fatalf("expected a fresh state to have no systems, got %d", len(m.Systems))
	}
}

func TestEnumStringMethodsAreNonEmpty(t *testing.T) {
	enums := []interface{ String() string }{
		TerrainOcean, TerrainPlains, SoilLoam, ClimateTropical,
		BiomeDesert, BiomeOcean, PrecipitationRain, SeasonWinter,
		TopologyGeodesic, TopologyFlatHex, MidLatCyclone,
	}
	for _, e := range enums {
		if e.String() == "" {
			t.Fatalf("expected non-empty String() for %#v", e)
		}
	}
}
