package system

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/spatial"
	"castle-fight/internal/vec"
	"testing"
)

const testFactionJSON = `{
  "id": "test",
  "name": "Test",
  "buildings": [
    {"id": "barracks", "name": "Barracks", "sprite": "barracks.png",
     "components": [{"UnitSpawner": {"unit_id": "soldier", "spawn_time": 5.0}}, {"Health": {"max_health": 50, "health": 50}}, "Visible"]}
  ],
  "units": [
    {"id": "soldier", "name": "Soldier", "sprite": "soldier.png",
     "components": [
       {"Health": {"max_health": 5, "health": 5}},
       {"AttackStats": {"damage": 1, "attack_speed": 2, "attack_range": 16}},
       {"VisionRange": 200},
       {"MovementSpeed": 50},
       "OpponentFollower",
       "Visible"
     ]}
  ]
}`

func testFaction(t *testing.T) *blueprint.Faction {
	t.Helper()
	fac, err := blueprint.Parse([]byte(testFactionJSON), blueprint.FormatJSON)
	if err != nil {
		t.Fatalf("parse faction: %v", err)
	}
	return fac
}

// newFighter creates a visible combatant with vision and a body.
func newFighter(w *ecs.World, team component.Team, pos vec.Vec2) ecs.EntityID {
	return w.CreateEntityWith(
		team,
		component.At(pos),
		component.Body{Radius: 20},
		component.Health{Current: 5, Max: 5},
		component.AttackStats{Damage: 1, AttackSpeed: 2, AttackRange: 16},
		component.VisionRange{Radius: 200},
		component.InVision{},
		component.MovementSpeed{Speed: 50},
		component.TagOpponentFollower{},
		component.TagVisible{},
	)
}

func perceive(w *ecs.World) {
	ix := spatial.NewIndex(spatial.DefaultCellSize)
	ix.Rebuild(w)
	UpdateVision(w, ix)
}

func attackTarget(w *ecs.World, id ecs.EntityID) (ecs.EntityID, bool) {
	c := w.Get(id, component.CAttackTarget)
	if c == nil {
		return ecs.NilEntity, false
	}
	return c.(component.AttackTarget).Target, true
}

func hp(w *ecs.World, id ecs.EntityID) int {
	return w.Get(id, component.CHealth).(component.Health).Current
}
