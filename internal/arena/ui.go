package arena

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// putText writes s starting at (x, y), stopping at the right edge of the
// screen.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		if x >= sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// putCentered writes s centered on row y.
func putCentered(scr tcell.Screen, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	putText(scr, max((sw-runewidth.StringWidth(s))/2, 0), y, s, st)
}

// showWaiting tells a lobby player how to get an opponent.
func showWaiting(screen tcell.Screen) {
	screen.Clear()
	_, h := screen.Size()
	y := h / 2
	putCentered(screen, y-2, "🏰 Castle Fight 🏰", tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	putCentered(screen, y, "Waiting for a second player...", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	putCentered(screen, y+2, "Connect another terminal:  ssh -p 2222 <host>", tcell.StyleDefault.Foreground(tcell.ColorGray))
	putCentered(screen, y+3, "[x] play against the bot   [q] quit", tcell.StyleDefault.Foreground(tcell.ColorGray))
	screen.Show()
}

var helpLines = []string{
	"── Cursor ────────────────────────────",
	"  Arrow keys / hjkl   Move cursor",
	"",
	"── Building ──────────────────────────",
	"  b                   Open build menu",
	"  Tab                 Next building",
	"  1-9                 Pick building",
	"  Enter / Space       Place building",
	"  Esc                 Cancel placement",
	"",
	"── Match ─────────────────────────────",
	"  p                   Pause / resume",
	"  q                   Forfeit and leave",
	"  ?                   This help",
	"",
	"  [any key to close]",
}

// drawHelp draws the keybinding reference box.
func drawHelp(screen tcell.Screen) {
	header := " Controls "
	width := 42
	hdrStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	bodyStyle := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	screen.Clear()
	sw, sh := screen.Size()
	boxH := len(helpLines) + 3
	x0 := max((sw-width)/2, 0)
	y0 := max((sh-boxH)/2, 0)

	for col := x0; col < x0+width; col++ {
		screen.SetContent(col, y0, '─', nil, borderStyle)
		screen.SetContent(col, y0+boxH-1, '─', nil, borderStyle)
	}
	for row := y0; row < y0+boxH; row++ {
		screen.SetContent(x0, row, '│', nil, borderStyle)
		screen.SetContent(x0+width-1, row, '│', nil, borderStyle)
	}
	screen.SetContent(x0, y0, '┌', nil, borderStyle)
	screen.SetContent(x0+width-1, y0, '┐', nil, borderStyle)
	screen.SetContent(x0, y0+boxH-1, '└', nil, borderStyle)
	screen.SetContent(x0+width-1, y0+boxH-1, '┘', nil, borderStyle)

	putText(screen, x0+(width-len([]rune(header)))/2, y0, header, hdrStyle)
	for i, line := range helpLines {
		putText(screen, x0+2, y0+1+i, line, bodyStyle)
	}
	screen.Show()
}

// drawGameOver overlays the result banner on the last frame.
func drawGameOver(screen tcell.Screen, banner string) {
	_, h := screen.Size()
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	putCentered(screen, h/3, "  "+banner+"  ", style)
	putCentered(screen, h/3+1, "  [any key to leave]  ", tcell.StyleDefault.Foreground(tcell.ColorSilver))
	screen.Show()
}
