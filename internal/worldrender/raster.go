package worldrender

import (
	"math"

	"github.com/brookstalley/worldground/internal/tile"
)

// Raster is an equirectangular lat/lon pixel grid with each pixel bound to
// its nearest tile. The tile assignment is built once (tile positions never
// move after generation); only the color buffer is refreshed per tick.
type Raster struct {
	Width, Height int
	tileIndex     []uint32 // len == Width*Height, index into World.Tiles
	pixels        []byte   // RGBA, len == Width*Height*4
}

// NewRaster builds a raster of the given pixel size against w, assigning
// every pixel the tile nearest its lat/lon center by brute-force scan. Built
// once at startup; cost is paid a single time regardless of tick count.
func NewRaster(w *tile.World, width, height int) *Raster {
	r := &Raster{
		Width:     width,
		Height:    height,
		tileIndex: make([]uint32, width*height),
		pixels:    make([]byte, width*height*4),
	}
	for py := 0; py < height; py++ {
		lat := 90.0 - (float64(py)+0.5)/float64(height)*180.0
		for px := 0; px < width; px++ {
			lon := (float64(px)+0.5)/float64(width)*360.0 - 180.0
			r.tileIndex[py*width+px] = nearestTile(w, lat, lon)
		}
	}
	return r
}

func nearestTile(w *tile.World, lat, lon float64) uint32 {
	best := uint32(0)
	bestDist := math.MaxFloat64
	latRad, lonRad := lat*math.Pi/180, lon*math.Pi/180
	sx, sy, sz := math.Cos(latRad)*math.Cos(lonRad), math.Cos(latRad)*math.Sin(lonRad), math.Sin(latRad)
	for i := range w.Tiles {
		p := w.Tiles[i].Position
		dx, dy, dz := p.X-sx, p.Y-sy, p.Z-sz
		d := dx*dx + dy*dy + dz*dz
		if d < bestDist {
			bestDist = d
			best = w.Tiles[i].ID
		}
	}
	return best
}

// Refresh repaints the pixel buffer from the world's current biome layer.
func (r *Raster) Refresh(w *tile.World) {
	for i, tid := range r.tileIndex {
		c := colorFor(w.Tiles[tid].Biome.BiomeType)
		base := i * 4
		r.pixels[base+0] = c.R
		r.pixels[base+1] = c.G
		r.pixels[base+2] = c.B
		r.pixels[base+3] = c.A
	}
}

// Pixels returns the current RGBA buffer, valid until the next Refresh.
func (r *Raster) Pixels() []byte {
	return r.pixels
}
