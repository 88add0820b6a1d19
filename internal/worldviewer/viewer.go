//go:build ebiten

// Package worldviewer adapts a running tick engine to the ebiten.Game
// interface, painting the current biome raster every frame — the same
// Game-interface shape the teacher's internal/app uses, generalized from a
// single-layer cellular grid to a lat/lon biome raster advanced by the tick
// engine instead of a core.Sim.
package worldviewer

import (
	"context"
	"fmt"

	"github.com/brookstalley/worldground/internal/tick"
	"github.com/brookstalley/worldground/internal/tile"
	"github.com/brookstalley/worldground/internal/worldrender"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game steps the tick engine once per update (unless paused) and paints the
// resulting biome raster.
type Game struct {
	world   *tile.World
	engine  *tick.Engine
	ctx     context.Context
	raster  *worldrender.Raster
	img     *ebiten.Image
	scale   int
	paused  bool
	tickErr error
}

// New constructs a Game over world, driven by engine, rendered at the given
// pixel scale.
func New(ctx context.Context, world *tile.World, engine *tick.Engine, rasterWidth, rasterHeight, scale int) *Game {
	r := worldrender.NewRaster(world, rasterWidth, rasterHeight)
	r.Refresh(world)
	return &Game{
		world:  world,
		engine: engine,
		ctx:    ctx,
		raster: r,
		img:    ebiten.NewImage(rasterWidth, rasterHeight),
		scale:  scale,
	}
}

// Update advances the simulation by one tick unless paused, then repaints
// the raster from the new biome state.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if g.tickErr != nil {
		return g.tickErr
	}
	if g.paused {
		return nil
	}
	if _, err := g.engine.Tick(g.ctx, g.world); err != nil {
		g.tickErr = fmt.Errorf("tick: %w", err)
		return g.tickErr
	}
	g.raster.Refresh(g.world)
	g.img.WritePixels(g.raster.Pixels())
	return nil
}

// Draw blits the raster, scaled to the output image.
func (g *Game) Draw(screen *ebiten.Image) {
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, opts)
}

// Layout returns the scaled window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.raster.Width * g.scale, g.raster.Height * g.scale
}
