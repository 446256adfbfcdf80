package render

import (
	"castle-fight/internal/component"

	"github.com/gdamore/tcell/v2"
)

// Emoji are rendered by the terminal with their own colors, so team ownership
// is shown through the cell background instead of the glyph foreground.
var (
	borderGlyph  = "🟫"
	cursorStyle  = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	validGhost   = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	invalidGhost = tcell.StyleDefault.Background(tcell.ColorDarkRed)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	messageStyle = tcell.StyleDefault.Foreground(tcell.ColorLightYellow)
	menuStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	menuSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// teamStyle tints a cell for team. Gaia entities keep the default background.
func teamStyle(team component.Team) tcell.Style {
	if team == component.TeamGaia {
		return tcell.StyleDefault.Background(tcell.ColorBlack)
	}
	return tcell.StyleDefault.Background(team.Color()).Foreground(tcell.ColorWhite)
}
