package factory

import (
	"castle-fight/assets"
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/level"
	"castle-fight/internal/vec"
	"errors"
	"testing"
)

func humans(t *testing.T) *blueprint.Faction {
	t.Helper()
	cat, err := blueprint.LoadDir(assets.Data, assets.FactionsDir)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := cat.Faction("humans")
	if !ok {
		t.Fatal("humans faction missing")
	}
	return f
}

func testLevel(t *testing.T) *level.Level {
	t.Helper()
	lvl, err := level.Load(assets.Data, assets.DefaultLevel)
	if err != nil {
		t.Fatal(err)
	}
	return lvl
}

func TestApplyBlueprintInitialValues(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	cs := blueprint.Components{
		blueprint.Health{MaxHealth: 5, Health: 5},
		blueprint.AttackStats{Damage: 1, AttackSpeed: 2, AttackRange: 16},
		blueprint.VisionRange(200),
		blueprint.MovementSpeed(50),
		blueprint.OpponentFollower{},
		blueprint.Visible{},
	}
	if err := ApplyBlueprint(w, id, cs, nil); err != nil {
		t.Fatal(err)
	}
	if h := w.Get(id, component.CHealth).(component.Health); h.Current != 5 || h.Max != 5 {
		t.Errorf("health = %+v", h)
	}
	a := w.Get(id, component.CAttackStats).(component.AttackStats)
	if a.Damage != 1 || a.AttackSpeed != 2 || a.AttackRange != 16 || a.Cooldown != 0 {
		t.Errorf("attack = %+v", a)
	}
	if v := w.Get(id, component.CVisionRange).(component.VisionRange); v.Radius != 200 {
		t.Errorf("vision = %+v", v)
	}
	if !w.Has(id, component.CInVision) {
		t.Error("VisionRange must also make the entity a perceiver")
	}
	for _, ct := range []ecs.ComponentType{component.CMovementSpeed, component.CTagOpponentFollower, component.CTagVisible} {
		if !w.Has(id, ct) {
			t.Errorf("missing component %d", ct)
		}
	}
}

func TestApplyBlueprintSpawnerNeedsFaction(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	cs := blueprint.Components{blueprint.UnitSpawner{UnitID: "ghoul", SpawnTime: 3}}
	if err := ApplyBlueprint(w, id, cs, nil); !errors.Is(err, blueprint.ErrUnknownUnit) {
		t.Errorf("nil faction err = %v", err)
	}
	if err := ApplyBlueprint(w, id, cs, humans(t)); !errors.Is(err, blueprint.ErrUnknownUnit) {
		t.Errorf("unknown unit err = %v", err)
	}
}

func TestNewBuildingSpawner(t *testing.T) {
	w := ecs.NewWorld()
	fac := humans(t)
	b, _ := fac.Building("barracks")
	id, err := NewBuilding(w, component.TeamBlue, fac, b, vec.New(320, 320))
	if err != nil {
		t.Fatal(err)
	}
	sp := w.Get(id, component.CUnitSpawner).(component.UnitSpawner)
	if sp.Period <= 0 || sp.TimeLeft != sp.Period || sp.Unit == nil || sp.Faction != fac {
		t.Errorf("spawner = %+v", sp)
	}
	if team := w.Get(id, component.CTeam).(component.Team); team != component.TeamBlue {
		t.Errorf("team = %v", team)
	}
	if !w.Has(id, component.CTagBuilding) || w.Has(id, component.CTagCastle) {
		t.Error("placed building tags wrong")
	}
	children := w.Children(id)
	if len(children) != 1 {
		t.Fatalf("children = %v, want one label", children)
	}
	if l := w.Get(children[0], component.CLabel).(component.Label); l.Text != "BLUE" {
		t.Errorf("label = %+v", l)
	}
}

func TestNewUnitJoinsNearestStart(t *testing.T) {
	w := ecs.NewWorld()
	starts := BuildLevel(w, testLevel(t))
	fac := humans(t)
	spawner := w.Get(mustBuilding(t, w, fac), component.CUnitSpawner).(component.UnitSpawner)

	// Near the south lane of the red side.
	id, err := NewUnit(w, component.TeamRed, fac, spawner.Unit, vec.New(200, 500), starts)
	if err != nil {
		t.Fatal(err)
	}
	wf, ok := w.Get(id, component.CWaypointFollower).(component.WaypointFollower)
	if !ok {
		t.Fatal("unit does not follow a waypoint")
	}
	if p := w.Get(wf.Waypoint, component.CPosition).(component.Position); p.X != 192 || p.Y != 448 {
		t.Errorf("joined start at %+v, want red-south-1 (192,448)", p)
	}
	if !w.Has(id, component.CTagUnit) || w.Get(id, component.CBody).(component.Body).Radius != UnitRadius {
		t.Error("unit footprint missing")
	}

	// Without a start map the unit idles.
	idle, err := NewUnit(w, component.TeamRed, fac, spawner.Unit, vec.New(0, 0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if w.Has(idle, component.CWaypointFollower) {
		t.Error("unit without starts follows a waypoint")
	}
}

func mustBuilding(t *testing.T, w *ecs.World, fac *blueprint.Faction) ecs.EntityID {
	t.Helper()
	b, _ := fac.Building("barracks")
	id, err := NewBuilding(w, component.TeamRed, fac, b, vec.New(320, 320))
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestNewUnitFailureLeavesNoEntity(t *testing.T) {
	w := ecs.NewWorld()
	bad := &blueprint.Unit{ID: "broken", Name: "Broken", Components: blueprint.Components{
		blueprint.UnitSpawner{UnitID: "nobody", SpawnTime: 1},
	}}
	before := w.Len()
	if _, err := NewUnit(w, component.TeamRed, humans(t), bad, vec.Vec2{}, nil); !errors.Is(err, blueprint.ErrUnknownUnit) {
		t.Fatalf("err = %v", err)
	}
	if w.Len() != before {
		t.Errorf("world grew from %d to %d on failure", before, w.Len())
	}
}

func TestBuildLevel(t *testing.T) {
	w := ecs.NewWorld()
	lvl := testLevel(t)
	starts := BuildLevel(w, lvl)

	castles := w.Query(component.CTagCastle)
	if len(castles) != 2 {
		t.Fatalf("castles = %d, want 2", len(castles))
	}
	for _, c := range castles {
		h := w.Get(c, component.CHealth).(component.Health)
		if h.Current != 500 || h.Max != 500 || !w.Has(c, component.CTagVisible) {
			t.Errorf("castle %d = %+v", c, h)
		}
	}

	wps := w.Query(component.CWaypoint)
	if len(wps) != len(lvl.Waypoints) {
		t.Fatalf("waypoints = %d, want %d", len(wps), len(lvl.Waypoints))
	}
	ends := 0
	for _, id := range wps {
		if w.Has(id, component.CTeam) {
			t.Errorf("waypoint %d is a team member", id)
		}
		if _, ok := w.Get(id, component.CTeamAssociation).(component.TeamAssociation); !ok {
			t.Errorf("waypoint %d has no team association", id)
		}
		if w.Get(id, component.CWaypoint).(component.Waypoint).Next == ecs.NilEntity {
			ends++
		}
	}
	if ends != 2 {
		t.Errorf("path ends = %d, want 2", ends)
	}
	if starts.Len(component.TeamRed) != 2 || starts.Len(component.TeamBlue) != 2 {
		t.Errorf("starts = %d red, %d blue", starts.Len(component.TeamRed), starts.Len(component.TeamBlue))
	}
}

func TestNewGhostHasNoTeam(t *testing.T) {
	w := ecs.NewWorld()
	fac := humans(t)
	b, _ := fac.Building("barracks")
	id := NewGhost(w, component.TeamRed, fac, b, vec.New(64, 64))
	if w.Has(id, component.CTeam) {
		t.Error("ghost must not be perceivable")
	}
	g := w.Get(id, component.CBuildingGhost).(component.BuildingGhost)
	if g.Team != component.TeamRed || g.Building != b || !g.Valid {
		t.Errorf("ghost = %+v", g)
	}
}
