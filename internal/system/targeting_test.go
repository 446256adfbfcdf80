package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
	"testing"
)

func TestAcquireTargetPicksNearestEnemy(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	far := newFighter(w, component.TeamBlue, vec.New(150, 0))
	near := newFighter(w, component.TeamBlue, vec.New(60, 0))
	_ = far

	perceive(w)
	changes := ResolveTargets(w, true)

	got, ok := attackTarget(w, a)
	if !ok || got != near {
		t.Fatalf("target = %v,%v; want %v", got, ok, near)
	}
	found := false
	for _, c := range changes {
		if c.Attacker == a && c.Target == near && c.Acquired {
			found = true
		}
	}
	if !found {
		t.Errorf("changes %v missing acquisition", changes)
	}
}

func TestAcquireTargetKeepsExistingTarget(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	first := newFighter(w, component.TeamBlue, vec.New(150, 0))
	w.Add(a, component.AttackTarget{Target: first})
	newFighter(w, component.TeamBlue, vec.New(40, 0))

	perceive(w)
	ResolveTargets(w, true)

	if got, _ := attackTarget(w, a); got != first {
		t.Errorf("target switched to %v, want %v", got, first)
	}
}

func TestNoTargetWithoutEnemies(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	newFighter(w, component.TeamRed, vec.New(20, 0))

	perceive(w)
	ResolveTargets(w, true)

	if _, ok := attackTarget(w, a); ok {
		t.Error("acquired a friendly as target")
	}
}

func TestTargetLostOnDeath(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	e := newFighter(w, component.TeamBlue, vec.New(30, 0))
	w.Add(a, component.AttackTarget{Target: e})

	w.DestroyEntity(e)
	changes := ReleaseLostTargets(w, true)

	if _, ok := attackTarget(w, a); ok {
		t.Fatal("AttackTarget survived its target's destruction")
	}
	if len(changes) != 1 || changes[0].Acquired {
		t.Errorf("changes = %v, want one release", changes)
	}
}

func TestTargetLostWhenHealthRemoved(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	e := newFighter(w, component.TeamBlue, vec.New(30, 0))
	w.Add(a, component.AttackTarget{Target: e})

	w.Remove(e, component.CHealth)
	ResolveTargets(w, true)

	if got, ok := attackTarget(w, a); ok {
		t.Errorf("target %v kept without Health", got)
	}
}

func TestLoseSightOnlyClearsMatchingTarget(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	e := newFighter(w, component.TeamBlue, vec.New(30, 0))
	other := newFighter(w, component.TeamBlue, vec.New(60, 0))
	w.Add(a, component.AttackTarget{Target: e})

	if LoseSight(w, a, other) {
		t.Error("cleared target for an unrelated entity")
	}
	if !LoseSight(w, a, e) {
		t.Error("did not clear the current target")
	}
}

// newTower creates a combatant that cannot move: vision 192, range 160.
func newTower(w *ecs.World, team component.Team, pos vec.Vec2) ecs.EntityID {
	return w.CreateEntityWith(
		team,
		component.At(pos),
		component.Body{Radius: 32},
		component.Health{Current: 50, Max: 50},
		component.AttackStats{Damage: 1, AttackSpeed: 1, AttackRange: 160},
		component.VisionRange{Radius: 192},
		component.InVision{},
		component.TagVisible{},
	)
}

func TestStationaryAttackerOnlyTargetsInRange(t *testing.T) {
	w := ecs.NewWorld()
	tower := newTower(w, component.TeamRed, vec.New(0, 0))
	// Seen at 188 but out of range once its body is subtracted (188-20 > 160).
	passer := newFighter(w, component.TeamBlue, vec.New(188, 0))

	perceive(w)
	ResolveTargets(w, true)
	if got, ok := attackTarget(w, tower); ok {
		t.Fatalf("tower targeted %v outside its attack range", got)
	}

	// Without range enforcement the nearest perceived enemy is taken as before.
	ResolveTargets(w, false)
	if got, _ := attackTarget(w, tower); got != passer {
		t.Fatalf("target = %v, want %v without range enforcement", got, passer)
	}

	// The passer walks off and a new enemy stands close: the tower switches.
	w.Add(passer, component.At(vec.New(400, 0)))
	near := newFighter(w, component.TeamBlue, vec.New(50, 0))
	perceive(w)
	changes := ResolveTargets(w, true)
	if got, _ := attackTarget(w, tower); got != near {
		t.Fatalf("target = %v, want the enemy in range %v", got, near)
	}
	var towerChanges []TargetChange
	for _, c := range changes {
		if c.Attacker == tower {
			towerChanges = append(towerChanges, c)
		}
	}
	if len(towerChanges) != 2 || towerChanges[0].Target != passer || towerChanges[0].Acquired || !towerChanges[1].Acquired {
		t.Errorf("tower changes = %+v, want release of the passer then acquisition", towerChanges)
	}

	for range 60 {
		ResolveAttacks(w, tick, true)
	}
	if hp(w, near) >= 5 {
		t.Errorf("tower never fired at the enemy in range, hp = %d", hp(w, near))
	}
}

func TestMobileAttackerKeepsTargetOutOfRange(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	e := newFighter(w, component.TeamBlue, vec.New(150, 0))

	perceive(w)
	ResolveTargets(w, true)
	if got, _ := attackTarget(w, a); got != e {
		t.Fatalf("target = %v, want %v: movers chase enemies out of range", got, e)
	}
	w.Add(e, component.At(vec.New(190, 0)))
	ResolveTargets(w, true)
	if got, _ := attackTarget(w, a); got != e {
		t.Errorf("mover dropped a target it can still chase")
	}
}
