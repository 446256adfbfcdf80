package sim

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/system"
	"castle-fight/internal/vec"
	"errors"
	"fmt"
)

// ErrUnknownBuilding is returned when a team asks to place a building its
// faction does not have.
var ErrUnknownBuilding = errors.New("unknown building")

// InputKind identifies a player command.
type InputKind uint8

const (
	// InputCursor moves the team's placement cursor to Cursor.
	InputCursor InputKind = iota
	// InputSelect starts placing Building at the cursor.
	InputSelect
	// InputConfirm places the ghost if it is valid.
	InputConfirm
	// InputCancel discards the ghost.
	InputCancel
	// InputPause toggles the simulation.
	InputPause
)

// Input is one command from a player or bot.
type Input struct {
	Team     component.Team
	Kind     InputKind
	Cursor   vec.Vec2
	Building string
}

type cursor struct {
	pos vec.Vec2
	set bool
}

// Cursor returns team's placement cursor. Before any cursor input it sits on
// the team's first castle.
func (m *Match) Cursor(team component.Team) vec.Vec2 {
	if c, ok := m.cursors[team]; ok && c.set {
		return c.pos
	}
	return m.home(team)
}

// home is the position of team's first castle in the level.
func (m *Match) home(team component.Team) vec.Vec2 {
	for _, c := range m.Level.Castles {
		if c.Team == team {
			return vec.New(c.X, c.Y)
		}
	}
	return vec.Vec2{}
}

// Ghost returns team's placement ghost, if any.
func (m *Match) Ghost(team component.Team) (ecs.EntityID, bool) {
	return system.GhostFor(m.World, team)
}

// Apply executes in. A selection while a ghost already exists is ignored.
// Input for a finished match is dropped.
func (m *Match) Apply(in Input) error {
	if m.Finished() {
		return nil
	}
	grid := m.cfg.GridSize
	switch in.Kind {
	case InputCursor:
		m.cursors[in.Team] = cursor{pos: in.Cursor, set: true}
		if err := system.MoveGhost(m.World, in.Team, in.Cursor, grid); err != nil && !errors.Is(err, system.ErrNoGhost) {
			return err
		}
		system.ValidateGhosts(m.World, m.bounds())
	case InputSelect:
		fac := m.Factions[in.Team]
		if fac == nil {
			return fmt.Errorf("%w %s", ErrNoFaction, in.Team)
		}
		b, ok := fac.Building(in.Building)
		if !ok {
			return fmt.Errorf("%w %q in faction %s", ErrUnknownBuilding, in.Building, fac.ID)
		}
		if _, err := system.BeginPlacement(m.World, in.Team, fac, b, m.Cursor(in.Team), grid); err != nil {
			if errors.Is(err, system.ErrPlacementBusy) {
				m.log.Debug("placement ignored", "team", in.Team, "building", b.ID, "reason", err)
				return nil
			}
			return err
		}
		system.ValidateGhosts(m.World, m.bounds())
	case InputConfirm:
		id, err := system.ConfirmPlacement(m.World, in.Team, m.bounds())
		if err != nil {
			m.log.Debug("placement rejected", "team", in.Team, "error", err)
			return err
		}
		name := ""
		if nc := m.World.Get(id, component.CName); nc != nil {
			name = nc.(component.Name).Value
		}
		m.note("%s built", name)
		m.log.Info("building placed", "team", in.Team, "entity", id, "name", name)
	case InputCancel:
		system.CancelPlacement(m.World, in.Team)
	case InputPause:
		m.TogglePause()
	default:
		return fmt.Errorf("unknown input kind %d", in.Kind)
	}
	return nil
}
