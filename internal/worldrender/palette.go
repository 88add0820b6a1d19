// Package worldrender builds a biome-colored pixel raster from a world, for
// the debug viewer. It has no dependency on the tick engine or scripthost:
// it only reads a *tile.World snapshot, the same separation the teacher
// keeps between internal/render (pixel painting) and the simulation core.
package worldrender

import (
	"image/color"

	"github.com/brookstalley/worldground/internal/tile"
)

// BiomePalette maps a biome to its debug-viewer display color.
var BiomePalette = map[tile.BiomeType]color.RGBA{
	tile.BiomeOcean:           {R: 28, G: 62, B: 128, A: 255},
	tile.BiomeIce:             {R: 226, G: 240, B: 247, A: 255},
	tile.BiomeTundra:          {R: 150, G: 163, B: 140, A: 255},
	tile.BiomeBorealForest:    {R: 49, G: 89, B: 65, A: 255},
	tile.BiomeTemperateForest: {R: 59, G: 122, B: 63, A: 255},
	tile.BiomeGrassland:       {R: 150, G: 186, B: 90, A: 255},
	tile.BiomeSavanna:         {R: 196, G: 175, B: 95, A: 255},
	tile.BiomeDesert:          {R: 224, G: 198, B: 133, A: 255},
	tile.BiomeTropicalForest:  {R: 27, G: 99, B: 55, A: 255},
	tile.BiomeWetland:         {R: 84, G: 122, B: 95, A: 255},
	tile.BiomeBarren:          {R: 120, G: 112, B: 104, A: 255},
}

func colorFor(b tile.BiomeType) color.RGBA {
	if c, ok := BiomePalette[b]; ok {
		return c
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255} // unmapped biome, loud on purpose
}
