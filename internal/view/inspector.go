package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/seolfor/cryptward/internal/tactics"
)

const (
	inspW     = 250
	inspH     = 190
	inspPad   = 8
	inspLineH = 15

	// inspectorLogLines is how many recent log lines the panel shows for
	// the selected enemy.
	inspectorLogLines = 5
)

// Inspector holds the click-to-select state for the enemy detail panel.
type Inspector struct {
	selected int
	active   bool
}

// handleInspectorClick maps a mouse click to a grid cell and selects the
// living enemy there, if any. Clicking empty space deselects.
func (g *Game) handleInspectorClick(mx, my int) bool {
	cell := tactics.Position{
		X: (mx - g.offX) / cellSize,
		Y: (my - g.offY) / cellSize,
	}
	if mx < g.offX || my < g.offY || !g.coord.Session().Grid.InBounds(cell) {
		return false
	}
	for _, e := range g.coord.Roster() {
		if e.Pos == cell && e.Alive() {
			g.inspector.selected = e.ID
			g.inspector.active = true
			return true
		}
	}
	g.inspector.selected = -1
	g.inspector.active = false
	return false
}

func (g *Game) drawInspector(screen *ebiten.Image) {
	if !g.inspector.active {
		return
	}
	e := g.coord.Roster().ByID(g.inspector.selected)
	if e == nil {
		g.inspector.active = false
		return
	}

	px := float32(g.width - panelWidth + borderWidth/2)
	py := float32(g.height - borderWidth - inspH)

	panelBg := color.RGBA{R: 14, G: 16, B: 14, A: 235}
	panelBorder := color.RGBA{R: 55, G: 80, B: 55, A: 255}
	vector.FillRect(screen, px, py, inspW, inspH, panelBg, false)
	vector.StrokeRect(screen, px, py, inspW, inspH, 1.0, panelBorder, false)

	lx := int(px) + inspPad
	ly := int(py) + inspPad

	frozenStr := ""
	if e.Frozen {
		frozenStr = " [FROZEN]"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[ %s %s%s ]", e.Label(), e.Archetype, frozenStr), lx, ly)
	ly += inspLineH + 2

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("pos (%d,%d)  health %d", e.Pos.X, e.Pos.Y, e.Health), lx, ly)
	ly += inspLineH
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("facing (%d,%d)", e.Facing.X, e.Facing.Y), lx, ly)
	ly += inspLineH + 2

	vector.StrokeLine(screen, float32(lx), float32(ly), px+inspW-inspPad, float32(ly), 1.0, panelBorder, false)
	ly += 4

	entries := g.simLog.FilterEnemy(e.Label())
	start := len(entries) - inspectorLogLines
	if start < 0 {
		start = 0
	}
	for _, le := range entries[start:] {
		line := fmt.Sprintf("t%d %s/%s %s", le.Turn, le.Category, le.Key, le.Value)
		if len(line) > 38 {
			line = line[:38]
		}
		ebitenutil.DebugPrintAt(screen, line, lx, ly)
		ly += inspLineH
	}
}
