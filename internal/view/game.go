// Package view is the ebiten front end: it renders the crypt grid, feeds
// player steps into the turn coordinator, and applies the combat outcomes
// the engine signals back.
package view

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/seolfor/cryptward/internal/persist"
	"github.com/seolfor/cryptward/internal/spectate"
	"github.com/seolfor/cryptward/internal/tactics"
)

// cellSize is the on-screen pixel size of one grid cell.
const cellSize = 48

// borderWidth is the pixel gap between the window edge and the crypt grid.
const borderWidth = 24

// panelWidth is the width of the right-hand status/log panel.
const panelWidth = 340

// traceTurns is how far back the clipboard trace reaches.
const traceTurns = 20

// Config carries the optional wiring for a run: a snapshot store for
// autosave and a spectate hub for live viewers. Either may be nil.
type Config struct {
	Store persist.Store
	Hub   *spectate.Hub
}

type Game struct {
	coord  *tactics.Coordinator
	simLog *tactics.SimLog
	store  persist.Store
	hub    *spectate.Hub

	width  int
	height int
	offX   int
	offY   int

	reports   []*tactics.TurnReport
	inspector Inspector
	gameOver  bool
	statusMsg string

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool
}

func New(coord *tactics.Coordinator, simLog *tactics.SimLog, cfg Config) *Game {
	grid := coord.Session().Grid
	return &Game{
		coord:    coord,
		simLog:   simLog,
		store:    cfg.Store,
		hub:      cfg.Hub,
		width:    borderWidth + grid.Cols*cellSize + borderWidth + panelWidth,
		height:   borderWidth + grid.Rows*cellSize + borderWidth,
		offX:     borderWidth,
		offY:     borderWidth,
		prevKeys: make(map[ebiten.Key]bool),
	}
}

// keyJustPressed is edge-triggered: true only on the frame the key went down.
func (g *Game) keyJustPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

func (g *Game) Update() error {
	mx, my := ebiten.CursorPosition()
	mouseLeft := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if mouseLeft && !g.prevMouseLeft {
		g.handleInspectorClick(mx, my)
	}
	g.prevMouseLeft = mouseLeft

	if g.keyJustPressed(ebiten.KeyC) {
		g.copyTrace()
	}
	if g.keyJustPressed(ebiten.KeyEscape) {
		g.inspector.selected = -1
		g.inspector.active = false
	}

	if g.gameOver {
		return nil
	}

	if step, ok := g.readStep(); ok {
		g.runTurn(step)
	}
	return nil
}

// readStep maps arrows/WASD to a grid step and space to a wait turn.
func (g *Game) readStep() (tactics.Position, bool) {
	switch {
	case g.keyJustPressed(ebiten.KeyArrowUp) || g.keyJustPressed(ebiten.KeyW):
		return tactics.Position{Y: -1}, true
	case g.keyJustPressed(ebiten.KeyArrowDown) || g.keyJustPressed(ebiten.KeyS):
		return tactics.Position{Y: 1}, true
	case g.keyJustPressed(ebiten.KeyArrowLeft) || g.keyJustPressed(ebiten.KeyA):
		return tactics.Position{X: -1}, true
	case g.keyJustPressed(ebiten.KeyArrowRight) || g.keyJustPressed(ebiten.KeyD):
		return tactics.Position{X: 1}, true
	case g.keyJustPressed(ebiten.KeySpace):
		return tactics.Position{}, true
	}
	return tactics.Position{}, false
}

func (g *Game) runTurn(step tactics.Position) {
	report := g.coord.RunTurn(step)
	g.applyOutcomes(report)
	g.coord.SweepRoster()
	g.reports = append(g.reports, report)
	g.statusMsg = ""

	if g.hub != nil {
		g.hub.BroadcastReport(g.coord.Session().Zone, report)
	}
	if g.store != nil {
		if err := g.store.SaveSnapshot(g.coord.Snapshot()); err != nil {
			log.Printf("autosave failed: %v", err)
		}
	}
	if g.coord.Player().Health <= 0 {
		g.gameOver = true
	}
}

// applyOutcomes consumes the signalled combat events: the engine never
// mutates health or removes enemies on its own.
func (g *Game) applyOutcomes(report *tactics.TurnReport) {
	player := g.coord.Player()
	apply := func(o tactics.Outcome) {
		switch o.Kind {
		case tactics.OutcomePlayerDamaged:
			player.Health -= o.Amount
		case tactics.OutcomeKnockback:
			player.Pos = o.Landing
		case tactics.OutcomeEnemyDefeated:
			if e := g.coord.Roster().ByID(o.EnemyID); e != nil && e.Anim != tactics.AnimDead {
				e.Health = 0
				e.Anim = tactics.AnimDying
			}
		}
	}
	for _, o := range report.Hazards {
		apply(o)
	}
	for _, en := range report.Entries {
		for _, o := range en.Outcomes {
			apply(o)
		}
	}
}

// copyTrace puts the recent turn trace on the system clipboard.
func (g *Game) copyTrace() {
	turn := g.coord.Session().Turn
	from := turn - traceTurns + 1
	if from < 1 {
		from = 1
	}
	trace := fmt.Sprintf("--- cryptward trace zone=%s depth=%d turns=[%d..%d] ---\n%s",
		g.coord.Session().Zone, g.coord.Session().Depth, from, turn,
		g.simLog.FormatRange(from, turn))
	if err := copyToClipboard(trace); err != nil {
		g.statusMsg = "clipboard copy failed"
		log.Printf("clipboard copy failed: %v", err)
		return
	}
	g.statusMsg = "trace copied to clipboard"
}

func cellColor(t tactics.Terrain) color.RGBA {
	switch t {
	case tactics.TerrainWall:
		return color.RGBA{R: 52, G: 50, B: 58, A: 255}
	case tactics.TerrainRubble:
		return color.RGBA{R: 78, G: 70, B: 62, A: 255}
	case tactics.TerrainWater:
		return color.RGBA{R: 28, G: 52, B: 96, A: 255}
	case tactics.TerrainSpikes:
		return color.RGBA{R: 96, G: 34, B: 34, A: 255}
	case tactics.TerrainExit:
		return color.RGBA{R: 34, G: 86, B: 52, A: 255}
	default:
		return color.RGBA{R: 22, G: 22, B: 26, A: 255}
	}
}

func archetypeColor(a tactics.Archetype) color.RGBA {
	switch a {
	case tactics.ArchetypeQueen:
		return color.RGBA{R: 220, G: 80, B: 200, A: 255}
	case tactics.ArchetypeRook:
		return color.RGBA{R: 210, G: 120, B: 60, A: 255}
	case tactics.ArchetypeBishop:
		return color.RGBA{R: 120, G: 120, B: 230, A: 255}
	case tactics.ArchetypeKnight:
		return color.RGBA{R: 90, G: 190, B: 110, A: 255}
	case tactics.ArchetypePawn:
		return color.RGBA{R: 170, G: 170, B: 170, A: 255}
	default:
		return color.RGBA{R: 220, G: 190, B: 70, A: 255}
	}
}

func (g *Game) cellRect(p tactics.Position) (float32, float32) {
	return float32(g.offX + p.X*cellSize), float32(g.offY + p.Y*cellSize)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 12, G: 12, B: 14, A: 255})
	grid := g.coord.Session().Grid

	for y := 0; y < grid.Rows; y++ {
		for x := 0; x < grid.Cols; x++ {
			p := tactics.Position{X: x, Y: y}
			tile := grid.At(p)
			cx, cy := g.cellRect(p)
			vector.FillRect(screen, cx, cy, cellSize-1, cellSize-1, cellColor(tile.Terrain), false)
			if tile.BombFuse > 0 {
				vector.FillRect(screen, cx+14, cy+14, cellSize-29, cellSize-29,
					color.RGBA{R: 180, G: 40, B: 40, A: 255}, false)
				ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", tile.BombFuse), int(cx)+20, int(cy)+16)
			}
		}
	}

	g.drawEnemies(screen)
	g.drawPlayer(screen)
	g.drawPanel(screen)
	g.drawInspector(screen)

	if g.gameOver {
		msg := "THE WARD HAS FALLEN"
		text.Draw(screen, msg, basicfont.Face7x13,
			g.offX+gridPixelWidth(grid)/2-len(msg)*7/2, g.offY+gridPixelHeight(grid)/2,
			color.RGBA{R: 230, G: 60, B: 60, A: 255})
	}
}

func gridPixelWidth(grid *tactics.TileMap) int  { return grid.Cols * cellSize }
func gridPixelHeight(grid *tactics.TileMap) int { return grid.Rows * cellSize }

func (g *Game) drawEnemies(screen *ebiten.Image) {
	for _, e := range g.coord.Roster() {
		cx, cy := g.cellRect(e.Pos)
		col := archetypeColor(e.Archetype)
		if e.Anim == tactics.AnimDying || e.Anim == tactics.AnimDead {
			col.A = 90
		}
		vector.FillRect(screen, cx+6, cy+6, cellSize-13, cellSize-13, col, false)
		if g.inspector.active && g.inspector.selected == e.ID {
			vector.StrokeRect(screen, cx+3, cy+3, cellSize-7, cellSize-7, 2,
				color.RGBA{R: 255, G: 255, B: 255, A: 220}, false)
		}
		ebitenutil.DebugPrintAt(screen, e.Label(), int(cx)+14, int(cy)+16)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	player := g.coord.Player()
	cx, cy := g.cellRect(player.Pos)
	vector.FillRect(screen, cx+8, cy+8, cellSize-17, cellSize-17,
		color.RGBA{R: 240, G: 240, B: 240, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "@", int(cx)+20, int(cy)+16)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	grid := g.coord.Session().Grid
	px := g.offX + gridPixelWidth(grid) + borderWidth
	py := g.offY

	vector.FillRect(screen, float32(px), float32(py), panelWidth-borderWidth, float32(g.height-2*borderWidth),
		color.RGBA{R: 16, G: 18, B: 16, A: 255}, false)

	session := g.coord.Session()
	player := g.coord.Player()
	text.Draw(screen, "CRYPT WARD", basicfont.Face7x13, px+8, py+16, color.RGBA{R: 200, G: 210, B: 200, A: 255})

	y := py + 34
	line := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, px+8, y)
		y += 15
	}
	line(fmt.Sprintf("zone %s  depth %d  turn %d", session.Zone, session.Depth, session.Turn))
	line(fmt.Sprintf("health %d", player.Health))
	if last := g.lastReport(); last != nil && last.Frozen {
		line("** EXIT WARD ACTIVE: enemies frozen **")
	}
	line("")
	line("arrows/wasd move  space wait")
	line("click enemy to inspect  c copy trace")
	line("")

	if last := g.lastReport(); last != nil {
		line(fmt.Sprintf("-- turn %d --", last.Turn))
		for _, blast := range last.Blasts {
			line(fmt.Sprintf("bomb detonated at (%d,%d)", blast.X, blast.Y))
		}
		for _, en := range last.Entries {
			for _, o := range en.Outcomes {
				switch o.Kind {
				case tactics.OutcomePlayerDamaged:
					line(fmt.Sprintf("enemy %d hit you for %d (%s)", o.EnemyID, o.Amount, o.Cause))
				case tactics.OutcomeKnockback:
					line(fmt.Sprintf("knocked back to (%d,%d)", o.Landing.X, o.Landing.Y))
				case tactics.OutcomeEnemyDefeated:
					line(fmt.Sprintf("enemy %d defeated (%s)", o.EnemyID, o.Cause))
				}
			}
		}
		for _, o := range last.Hazards {
			if o.Kind == tactics.OutcomeEnemyDefeated {
				line(fmt.Sprintf("enemy %d caught in blast", o.EnemyID))
			}
		}
	}

	if g.statusMsg != "" {
		line("")
		line(g.statusMsg)
	}
}

func (g *Game) lastReport() *tactics.TurnReport {
	if len(g.reports) == 0 {
		return nil
	}
	return g.reports[len(g.reports)-1]
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
