//go:build ebiten

// Command worldviz is the interactive debug viewer: it generates a world,
// drives it with the tick engine, and paints the biome raster each frame.
package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"github.com/brookstalley/worldground/internal/config"
	"github.com/brookstalley/worldground/internal/generate"
	"github.com/brookstalley/worldground/internal/phase"
	"github.com/brookstalley/worldground/internal/rules"
	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/tick"
	"github.com/brookstalley/worldground/internal/worldviewer"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	seed := flag.Int64("seed", 1337, "generation seed")
	tileCount := flag.Uint("tiles", 3000, "tile count")
	rasterW := flag.Int("raster-width", 360, "raster pixel width")
	rasterH := flag.Int("raster-height", 180, "raster pixel height")
	scale := flag.Int("scale", 3, "window pixel scale")
	tickRateHz := flag.Float64("rate", 8, "ticks per second")
	flag.Parse()

	genCfg := config.DefaultGenerationConfig()
	genCfg.Seed = *seed
	genCfg.TileCount = uint32(*tileCount)

	w, err := generate.Generate("worldviz", genCfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	registry := scripthost.NewRegistry()
	rules.RegisterDefaults(registry)
	host := scripthost.NewHost(registry)
	executor := phase.NewExecutor(host, true)
	engine := tick.NewEngine(executor, *tickRateHz, true)

	game := worldviewer.New(context.Background(), w, engine, *rasterW, *rasterH, *scale)

	ebiten.SetWindowTitle("worldground — biome viewer")
	ebiten.SetWindowSize(*rasterW * *scale, *rasterH * *scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
