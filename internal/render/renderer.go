// Package render draws a match onto a tcell screen. It only reads the world.
package render

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/sim"
	"castle-fight/internal/vec"
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved at the bottom for the HUD.
const hudRows = 6

// View is one player's perspective on a match.
type View struct {
	Team     component.Team
	Player   string
	MenuOpen bool
	Selected int // index into the team faction's buildings
}

// Renderer draws the battlefield onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(vec.Vec2{}, w, max(h-hudRows, 1)),
	}
}

// Resize adapts the viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-hudRows, 1)
}

// Camera exposes the camera for cursor translation.
func (r *Renderer) Camera() *Camera { return r.camera }

// DrawFrame renders the battlefield and HUD for v, centered on the team's
// cursor. It only fills the screen buffer; the caller shows it once it no
// longer needs m.
func (r *Renderer) DrawFrame(m *sim.Match, v View) {
	r.Resize()
	cursor := m.Cursor(v.Team)
	r.camera.Center(cursor)
	r.camera.ClampTo(m.Level.Width, m.Level.Height)

	r.screen.Clear()
	r.drawField(m.Level.Width, m.Level.Height)
	r.drawEntities(m.World)
	r.drawCursor(cursor)
	r.DrawHUD(m, v)
}

// drawField outlines the playable area.
func (r *Renderer) drawField(width, height float64) {
	cw := int(math.Ceil(width / CellSize))
	ch := int(math.Ceil(height / CellSize))
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for cx := -1; cx <= cw; cx++ {
		for _, cy := range []int{-1, ch} {
			r.putCell(cx, cy, borderGlyph, style)
		}
	}
	for cy := 0; cy < ch; cy++ {
		for _, cx := range []int{-1, cw} {
			r.putCell(cx, cy, borderGlyph, style)
		}
	}
}

func (r *Renderer) putCell(cx, cy int, glyph string, style tcell.Style) {
	sx := (cx - r.camera.OffsetX) * 2
	sy := cy - r.camera.OffsetY
	if sx < 0 || sx >= r.camera.ViewWidth || sy < 0 || sy >= r.camera.ViewHeight {
		return
	}
	r.putGlyph(sx, sy, glyph, style)
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	id    ecs.EntityID
	order int
	pos   vec.Vec2
	rend  component.Renderable
	style tcell.Style
}

// drawEntities renders all entities with Renderable + Position, ordered by
// RenderOrder and then id. Building labels are drawn below their parent.
func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		entities = append(entities, renderableEntity{
			id:    id,
			order: rend.RenderOrder,
			pos:   pos.Vec(),
			rend:  rend,
			style: entityStyle(w, id),
		})
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos)
		if !onScreen {
			continue
		}
		r.putGlyph(sx, sy, e.rend.Glyph, e.style)
	}

	for _, id := range w.Query(component.CLabel) {
		parent := w.Parent(id)
		if !w.Has(parent, component.CTagBuilding) {
			continue
		}
		pc := w.Get(parent, component.CPosition)
		if pc == nil {
			continue
		}
		sx, sy, onScreen := r.camera.WorldToScreen(pc.(component.Position).Vec())
		if !onScreen || sy+1 >= r.camera.ViewHeight {
			continue
		}
		label := w.Get(id, component.CLabel).(component.Label)
		r.drawText(sx, sy+1, label.Text, tcell.StyleDefault.Foreground(label.Team.Color()))
	}
}

func entityStyle(w *ecs.World, id ecs.EntityID) tcell.Style {
	if gc := w.Get(id, component.CBuildingGhost); gc != nil {
		if gc.(component.BuildingGhost).Valid {
			return validGhost
		}
		return invalidGhost
	}
	if tc := w.Get(id, component.CTeam); tc != nil {
		return teamStyle(tc.(component.Team))
	}
	if ac := w.Get(id, component.CTeamAssociation); ac != nil {
		return tcell.StyleDefault.Foreground(ac.(component.TeamAssociation).Team.Color())
	}
	return tcell.StyleDefault
}

func (r *Renderer) drawCursor(p vec.Vec2) {
	sx, sy, onScreen := r.camera.WorldToScreen(p)
	if !onScreen {
		return
	}
	mainc, combc, _, _ := r.screen.GetContent(sx, sy)
	r.screen.SetContent(sx, sy, mainc, combc, cursorStyle)
	if sx+1 < r.camera.ViewWidth {
		mainc, combc, _, _ = r.screen.GetContent(sx+1, sy)
		r.screen.SetContent(sx+1, sy, mainc, combc, cursorStyle)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	mainc := runes[0]
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, mainc, combc, style)
	if runewidth.StringWidth(glyph) < 2 {
		// Narrow glyphs still own both columns of their cell.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
