package arena

import (
	"castle-fight/internal/render"
	"castle-fight/internal/sim"
	"castle-fight/internal/vec"

	"github.com/gdamore/tcell/v2"
)

// Action represents a player-requested command.
type Action uint8

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionMenu
	ActionNext
	ActionConfirm
	ActionCancel
	ActionPause
	ActionBot
	ActionHelp
	ActionQuit
	ActionPick // digit shortcut; the building index comes from the key
)

// keyToAction maps a tcell key event to an action. For ActionPick, pick is
// the zero-based building index.
func keyToAction(ev *tcell.EventKey) (a Action, pick int) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionUp, 0
	case tcell.KeyDown:
		return ActionDown, 0
	case tcell.KeyRight:
		return ActionRight, 0
	case tcell.KeyLeft:
		return ActionLeft, 0
	case tcell.KeyTab:
		return ActionNext, 0
	case tcell.KeyEnter:
		return ActionConfirm, 0
	case tcell.KeyEscape:
		return ActionCancel, 0
	}
	switch r := ev.Rune(); r {
	case 'k', 'K':
		return ActionUp, 0
	case 'j', 'J':
		return ActionDown, 0
	case 'l', 'L':
		return ActionRight, 0
	case 'h', 'H':
		return ActionLeft, 0
	case 'b', 'B':
		return ActionMenu, 0
	case ' ':
		return ActionConfirm, 0
	case 'p', 'P':
		return ActionPause, 0
	case 'x', 'X':
		return ActionBot, 0
	case '?':
		return ActionHelp, 0
	case 'q', 'Q':
		return ActionQuit, 0
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return ActionPick, int(r - '1')
	}
	return ActionNone, 0
}

// actionToDelta converts a cursor action to a grid step.
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionUp:
		return 0, -1
	case ActionDown:
		return 0, 1
	case ActionRight:
		return 1, 0
	case ActionLeft:
		return -1, 0
	}
	return 0, 0
}

func viewFor(s *Session) render.View {
	return render.View{Team: s.Team, Player: s.Name}
}

// handleAction turns a seated player's action into queued match input and
// local UI changes. buildings is the player's faction building ids in menu
// order; grid is the cursor step in world units.
func (s *Session) handleAction(a Action, pick int, buildings []string, grid float64) {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		if s.view.MenuOpen {
			if a == ActionLeft || a == ActionUp {
				s.view.Selected = (s.view.Selected - 1 + len(buildings)) % max(len(buildings), 1)
			} else {
				s.view.Selected = (s.view.Selected + 1) % max(len(buildings), 1)
			}
			return
		}
		dx, dy := actionToDelta(a)
		s.cursor = s.cursor.Add(vec.New(float64(dx)*grid, float64(dy)*grid))
		s.Queue(sim.Input{Kind: sim.InputCursor, Cursor: s.cursor})
	case ActionMenu:
		s.view.MenuOpen = !s.view.MenuOpen
	case ActionNext:
		if len(buildings) > 0 {
			s.view.MenuOpen = true
			s.view.Selected = (s.view.Selected + 1) % len(buildings)
		}
	case ActionPick:
		if pick < len(buildings) {
			s.view.Selected = pick
			s.view.MenuOpen = false
			s.Queue(sim.Input{Kind: sim.InputSelect, Building: buildings[pick]})
		}
	case ActionConfirm:
		if s.view.MenuOpen {
			s.view.MenuOpen = false
			if s.view.Selected < len(buildings) {
				s.Queue(sim.Input{Kind: sim.InputSelect, Building: buildings[s.view.Selected]})
			}
			return
		}
		s.Queue(sim.Input{Kind: sim.InputConfirm})
	case ActionCancel:
		if s.view.MenuOpen {
			s.view.MenuOpen = false
			return
		}
		s.Queue(sim.Input{Kind: sim.InputCancel})
	case ActionPause:
		s.Queue(sim.Input{Kind: sim.InputPause})
	}
}
