// Command worldground runs the simulation headless: generate (or load) a
// world, then tick it at the configured rate, printing a one-line summary
// per tick and periodically persisting a snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/brookstalley/worldground/internal/config"
	"github.com/brookstalley/worldground/internal/generate"
	"github.com/brookstalley/worldground/internal/phase"
	"github.com/brookstalley/worldground/internal/rules"
	"github.com/brookstalley/worldground/internal/scripthost"
	"github.com/brookstalley/worldground/internal/snapshot"
	"github.com/brookstalley/worldground/internal/stream"
	"github.com/brookstalley/worldground/internal/tick"
)

func main() {
	configPath := flag.String("config", "", "path to a simulation config YAML file (defaults applied if omitted)")
	genPath := flag.String("generate", "", "path to a generation config YAML file (defaults applied if omitted)")
	ticks := flag.Uint64("ticks", 0, "number of ticks to run, 0 for unbounded")
	serve := flag.Bool("serve", false, "serve the tick-event websocket stream")
	flag.Parse()

	simCfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.FromFile(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		simCfg = loaded
	}
	setupLogging(simCfg.LogLevel)

	genCfg := config.DefaultGenerationConfig()
	if *genPath != "" {
		loaded, err := config.GenerationParamsFromFile(*genPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "generation config:", err)
			os.Exit(1)
		}
		genCfg = loaded
	}

	w, err := generate.Generate("worldground", genCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate:", err)
		os.Exit(1)
	}
	w.SeasonLength = simCfg.SeasonLength

	registry := scripthost.NewRegistry()
	rules.RegisterDefaults(registry)
	host := scripthost.NewHost(registry)
	if simCfg.RuleTimeoutMs > 0 {
		host.Timeout = time.Duration(simCfg.RuleTimeoutMs) * time.Millisecond
	}

	executor := phase.NewExecutor(host, simCfg.NativeEvaluation)
	engine := tick.NewEngine(executor, simCfg.TickRateHz, simCfg.MacroWeatherOn)

	store, err := snapshot.Open(simCfg.SnapshotDirectory + "/worldground.sqlite")
	if err != nil {
		slog.Warn("snapshot store unavailable, continuing without persistence", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	var hub *stream.Hub
	if *serve {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle("/ticks", hub)
		addr := fmt.Sprintf("%s:%d", simCfg.WebsocketBind, simCfg.WebsocketPort)
		go func() {
			slog.Info("stream: listening", "addr", addr)
			if err := http.ListenAndServe(addr, mux); err != nil {
				slog.Error("stream: listener exited", "err", err)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	slog.Info("world generated", "tiles", humanize.Comma(int64(len(w.Tiles))), "topology", w.TopologyType.String())

	var ran uint64
	for {
		if ctx.Err() != nil {
			break
		}
		if *ticks > 0 && ran >= *ticks {
			break
		}
		event, err := engine.Tick(ctx, w)
		if err != nil {
			slog.Error("tick failed", "err", err)
			break
		}
		ran++

		slog.Info("tick",
			"tick", event.Tick,
			"season", event.Season.String(),
			"changed_tiles", humanize.Comma(int64(len(event.ChangedTiles))),
			"biome_diversity", fmt.Sprintf("%.3f", event.Statistics.BiomeDiversity),
			"rule_errors", event.Statistics.RuleErrorCount,
			"duration_ms", fmt.Sprintf("%.2f", event.Statistics.TickDurationMillis),
		)
		if event.Cascade != nil {
			slog.Warn("cascade detected", "tick", event.Cascade.Tick, "errors", event.Cascade.ErrorCount, "tiles", event.Cascade.TileCount)
		}

		if hub != nil {
			hub.Broadcast(event)
		}

		if store != nil && simCfg.SnapshotInterval > 0 && event.Tick%simCfg.SnapshotInterval == 0 {
			if err := store.Save(ctx, w, simCfg.MaxSnapshots); err != nil {
				slog.Warn("snapshot save failed", "err", err)
			}
		}
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}
