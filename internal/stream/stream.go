// Package stream serves the tick-event websocket feed: each completed tick
// is broadcast as one JSON message to every connected subscriber, with
// gorilla/websocket's per-message deflate compression enabled (the level is
// given as klauspost/compress/flate's DefaultCompression constant).
package stream

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	kflate "github.com/klauspost/compress/flate"
	"github.com/gorilla/websocket"

	"github.com/brookstalley/worldground/internal/tick"
)

// wireEvent is the flat, string-discriminated JSON payload sent to
// subscribers for one tick. ChangedTiles lists the ids of tiles that had at
// least one mutation applied this tick; no per-tile layer data is sent.
type wireEvent struct {
	Tick         uint64   `json:"tick"`
	Season       string   `json:"season"`
	PhaseTimingsMs [6]float32 `json:"phase_timings_ms"`
	ChangedTiles []uint32 `json:"changed_tiles,omitempty"`
	Statistics   wireStatistics `json:"statistics"`
	Cascade      bool     `json:"cascade"`
}

type wireStatistics struct {
	BiomeDistribution map[string]int `json:"biome_distribution"`
	BiomeDiversity    float64        `json:"biome_diversity"`
	WeatherCoverage   map[string]int `json:"weather_coverage"`
	MeanTemperature   float64        `json:"mean_temperature"`
	MeanSoilMoisture  float64        `json:"mean_soil_moisture"`
	MeanVegetation    float64        `json:"mean_vegetation"`
	RuleErrorCount    int            `json:"rule_error_count"`
	TickDurationMs    float64        `json:"tick_duration_ms"`
}

func toWire(e tick.Event) wireEvent {
	var timings [6]float32
	for i, d := range e.PhaseTimings {
		timings[i] = float32(d.Microseconds()) / 1000.0
	}
	return wireEvent{
		Tick:           e.Tick,
		Season:         e.Season.String(),
		PhaseTimingsMs: timings,
		ChangedTiles:   e.ChangedTiles,
		Cascade:        e.Cascade != nil,
		Statistics: wireStatistics{
			BiomeDistribution: e.Statistics.BiomeDistribution,
			BiomeDiversity:    e.Statistics.BiomeDiversity,
			WeatherCoverage:   e.Statistics.WeatherCoverage,
			MeanTemperature:   e.Statistics.MeanTemperature,
			MeanSoilMoisture:  e.Statistics.MeanSoilMoisture,
			MeanVegetation:    e.Statistics.MeanVegetation,
			RuleErrorCount:    e.Statistics.RuleErrorCount,
			TickDurationMs:    e.Statistics.TickDurationMillis,
		},
	}
}

// Hub fans out tick events to every connected websocket subscriber.
type Hub struct {
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[*websocket.Conn]struct{}
}

// NewHub returns a Hub bound to no subscribers, accepting connections from
// any origin (the debug viewer and CLI tools are trusted local clients).
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
			EnableCompression: true,
			CheckOrigin:       func(r *http.Request) bool { return true },
		},
		subs: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request to a websocket and registers it as a
// subscriber until the client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream: upgrade failed", "err", err)
		return
	}
	conn.EnableWriteCompression(true)
	conn.SetCompressionLevel(kflate.DefaultCompression)

	h.mu.Lock()
	h.subs[conn] = struct{}{}
	h.mu.Unlock()

	go func() {
		defer h.remove(conn)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.subs, conn)
	h.mu.Unlock()
	conn.Close()
}

// Broadcast sends e to every connected subscriber, dropping any connection
// that errors on write.
func (h *Hub) Broadcast(e tick.Event) {
	payload, err := json.Marshal(toWire(e))
	if err != nil {
		slog.Error("stream: marshal failed", "err", err)
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs))
	for c := range h.subs {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.remove(c)
		}
	}
}
