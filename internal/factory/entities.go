package factory

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/level"
	"castle-fight/internal/vec"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Footprints, matching the sprite sizes the assets are drawn for.
const (
	UnitRadius         = 20.0
	BuildingHalfExtent = 32.0
	CastleHalfExtent   = 48.0
	GhostHalfExtent    = 31.0
)

// Render orders: lower is drawn first.
const (
	orderWaypoint = 1
	orderBuilding = 5
	orderGhost    = 6
	orderUnit     = 10
)

// ApplyBlueprint attaches the live component for every descriptor in cs.
// fac resolves UnitSpawner references and may only be nil when cs holds none.
func ApplyBlueprint(w *ecs.World, id ecs.EntityID, cs blueprint.Components, fac *blueprint.Faction) error {
	for _, d := range cs {
		switch d := d.(type) {
		case blueprint.Health:
			w.Add(id, component.Health{Current: d.Health, Max: d.MaxHealth})
		case blueprint.Visible:
			w.Add(id, component.TagVisible{})
		case blueprint.OpponentFollower:
			w.Add(id, component.TagOpponentFollower{})
		case blueprint.MovementSpeed:
			w.Add(id, component.MovementSpeed{Speed: float64(d)})
		case blueprint.AttackStats:
			w.Add(id, component.AttackStats{
				Damage:      d.Damage,
				AttackSpeed: d.AttackSpeed,
				AttackRange: d.AttackRange,
			})
		case blueprint.VisionRange:
			w.Add(id, component.VisionRange{Radius: float64(d)})
			// Perception only scans entities that also hold InVision.
			w.Add(id, component.InVision{})
		case blueprint.UnitSpawner:
			if fac == nil {
				return fmt.Errorf("spawner for %q: no faction: %w", d.UnitID, blueprint.ErrUnknownUnit)
			}
			unit, ok := fac.Unit(d.UnitID)
			if !ok {
				return fmt.Errorf("faction %s: spawner for %q: %w", fac.ID, d.UnitID, blueprint.ErrUnknownUnit)
			}
			w.Add(id, component.UnitSpawner{
				Period:   d.SpawnTime,
				TimeLeft: d.SpawnTime,
				Unit:     unit,
				Faction:  fac,
			})
		default:
			return fmt.Errorf("%w: %T", blueprint.ErrUnknownDescriptor, d)
		}
	}
	return nil
}

// glyphFor falls back to the first letter of name when no glyph is set.
func glyphFor(glyph, name string) string {
	if glyph != "" {
		return glyph
	}
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// attachLabel spawns the team-name text shown under a unit or building.
func attachLabel(w *ecs.World, parent ecs.EntityID, team component.Team) ecs.EntityID {
	label := w.CreateEntityWith(
		component.TagInGame{},
		component.Label{Text: team.String(), Team: team},
	)
	w.SetParent(label, parent)
	return label
}

// NewUnit spawns a unit of team at pos. When starts knows a start waypoint
// for the team, the unit follows the nearest one.
func NewUnit(w *ecs.World, team component.Team, fac *blueprint.Faction, unit *blueprint.Unit, pos vec.Vec2, starts *level.StartMap) (ecs.EntityID, error) {
	id := w.CreateEntityWith(
		component.TagInGame{},
		team,
		component.TagUnit{},
		component.At(pos),
		component.Body{Radius: UnitRadius},
		component.Renderable{Glyph: glyphFor(unit.Glyph, unit.Name), RenderOrder: orderUnit},
		component.Name{Value: fmt.Sprintf("Unit: %s - Team: %s", unit.Name, team)},
	)
	if err := ApplyBlueprint(w, id, unit.Components, fac); err != nil {
		w.DestroyRecursive(id)
		return ecs.NilEntity, fmt.Errorf("spawn unit %s: %w", unit.ID, err)
	}
	attachLabel(w, id, team)

	if starts != nil {
		if wp, ok := starts.Closest(pos, team); ok {
			w.Add(id, component.WaypointFollower{Waypoint: wp})
		}
	}
	return id, nil
}

// NewBuilding spawns a placed building of team at pos.
func NewBuilding(w *ecs.World, team component.Team, fac *blueprint.Faction, b *blueprint.Building, pos vec.Vec2) (ecs.EntityID, error) {
	id := w.CreateEntityWith(
		component.TagInGame{},
		team,
		component.TagBuilding{},
		component.At(pos),
		component.Body{Radius: BuildingHalfExtent},
		component.Renderable{Glyph: glyphFor(b.Glyph, b.Name), RenderOrder: orderBuilding},
		component.Name{Value: fmt.Sprintf("Building: %s - Team: %s", b.Name, team)},
	)
	if err := ApplyBlueprint(w, id, b.Components, fac); err != nil {
		w.DestroyRecursive(id)
		return ecs.NilEntity, fmt.Errorf("spawn building %s: %w", b.ID, err)
	}
	attachLabel(w, id, team)
	return id, nil
}

// NewCastle spawns a team's castle from level data.
func NewCastle(w *ecs.World, c level.Castle) ecs.EntityID {
	id := w.CreateEntityWith(
		component.TagInGame{},
		c.Team,
		component.TagBuilding{},
		component.TagCastle{},
		component.TagVisible{},
		component.At(vec.New(c.X, c.Y)),
		component.Body{Radius: CastleHalfExtent},
		component.Health{Current: c.Health, Max: c.Health},
		component.Renderable{Glyph: "🏰", RenderOrder: orderBuilding},
		component.Name{Value: fmt.Sprintf("Castle - Team: %s", c.Team)},
	)
	attachLabel(w, id, c.Team)
	return id
}

// NewGhost spawns a placement preview for b. Ghosts carry no Team, so they are
// never perceived or attacked.
func NewGhost(w *ecs.World, team component.Team, fac *blueprint.Faction, b *blueprint.Building, pos vec.Vec2) ecs.EntityID {
	return w.CreateEntityWith(
		component.TagInGame{},
		component.BuildingGhost{Team: team, Building: b, Faction: fac, Valid: true},
		component.At(pos),
		component.Body{Radius: GhostHalfExtent},
		component.Renderable{Glyph: glyphFor(b.Glyph, b.Name), RenderOrder: orderGhost},
		component.Name{Value: fmt.Sprintf("Ghost: %s - Team: %s", b.Name, team)},
	)
}

// BuildLevel spawns the castles and waypoint graph of lvl and returns the
// start waypoints per team.
func BuildLevel(w *ecs.World, lvl *level.Level) *level.StartMap {
	starts := level.NewStartMap()
	ids := make(map[string]ecs.EntityID, len(lvl.Waypoints))
	for _, wp := range lvl.Waypoints {
		pos := vec.New(wp.X, wp.Y)
		id := w.CreateEntityWith(
			component.TagInGame{},
			component.TeamAssociation{Team: wp.Team},
			component.At(pos),
			component.Renderable{Glyph: "·", RenderOrder: orderWaypoint},
			component.Name{Value: "Waypoint " + strings.TrimSpace(wp.ID)},
		)
		if wp.Start {
			w.Add(id, component.TagStartPoint{})
			starts.Add(wp.Team, id, pos)
		}
		ids[wp.ID] = id
	}
	// Next references are resolved once every node exists, so paths may loop.
	for _, wp := range lvl.Waypoints {
		w.Add(ids[wp.ID], component.Waypoint{Next: ids[wp.Next]})
	}
	for _, c := range lvl.Castles {
		NewCastle(w, c)
	}
	return starts
}
