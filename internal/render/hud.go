package render

import (
	"castle-fight/internal/component"
	"castle-fight/internal/sim"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawHUD renders the status bar, build menu and message log at the bottom of
// the screen.
func (r *Renderer) DrawHUD(m *sim.Match, v View) {
	screenW, screenH := r.screen.Size()
	hudY := screenH - hudRows

	r.drawHLine(hudY, tcell.ColorGray)

	var status []string
	if v.Player != "" {
		status = append(status, fmt.Sprintf("%s [%s]", v.Player, v.Team))
	}
	for _, team := range m.Level.Teams() {
		cur, total := m.CastleHealth(team)
		status = append(status, fmt.Sprintf("%s 🏰 %d/%d", team, cur, total))
	}
	status = append(status, fmt.Sprintf("%.0fs", m.Elapsed()))
	switch {
	case m.Finished() && m.Winner() == component.TeamGaia:
		status = append(status, "DRAW")
	case m.Finished():
		status = append(status, m.Winner().String()+" WINS")
	case !m.Running():
		status = append(status, "PAUSED")
	}
	r.drawText(0, hudY+1, runewidth.Truncate(strings.Join(status, "  "), screenW, "…"), hudStyle)

	r.drawMenu(m, v, hudY+2, screenW)

	messages := m.Messages()
	start := max(len(messages)-3, 0)
	for i, msg := range messages[start:] {
		r.drawText(0, hudY+3+i, runewidth.Truncate(msg, screenW, "…"), messageStyle)
	}
}

// drawMenu lists the team faction's buildings. The selected entry is
// highlighted while the menu is open.
func (r *Renderer) drawMenu(m *sim.Match, v View, y, width int) {
	fac := m.Factions[v.Team]
	if fac == nil {
		return
	}
	x := r.drawText(0, y, "[b]uild: ", menuStyle)
	for i, b := range fac.Buildings {
		entry := fmt.Sprintf("%d %s %s ", i+1, glyphOr(b.Glyph), b.Name)
		if x+runewidth.StringWidth(entry) > width {
			break
		}
		style := menuStyle
		if v.MenuOpen && i == v.Selected {
			style = menuSelected
		}
		x = r.drawText(x, y, entry, style)
	}
}

func glyphOr(glyph string) string {
	if glyph != "" {
		return glyph
	}
	return "·"
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

// drawText writes text starting at column x and returns the column after it.
func (r *Renderer) drawText(x, y int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
	return col
}
