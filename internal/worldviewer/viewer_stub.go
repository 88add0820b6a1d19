//go:build !ebiten

package worldviewer

import (
	"context"
	"fmt"

	"github.com/brookstalley/worldground/internal/tick"
	"github.com/brookstalley/worldground/internal/tile"
)

// Game is a placeholder satisfying the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(context.Context, *tile.World, *tick.Engine, int, int, int) *Game {
	panic("worldviewer.New requires building with the 'ebiten' tag")
}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("worldviewer.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
