package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
	"testing"
)

func TestCheckDeathsDestroysChildren(t *testing.T) {
	w := ecs.NewWorld()
	u := newFighter(w, component.TeamBlue, vec.New(0, 0))
	w.Add(u, component.Name{Value: "grunt"})
	label := w.CreateEntityWith(component.Label{Text: "BLUE", Team: component.TeamBlue})
	w.SetParent(label, u)
	w.Add(u, component.Health{Current: 0, Max: 5})

	deaths := CheckDeaths(w)

	if len(deaths) != 1 || deaths[0].ID != u || deaths[0].Name != "grunt" || deaths[0].Team != component.TeamBlue {
		t.Fatalf("deaths = %+v", deaths)
	}
	if w.Alive(u) || w.Alive(label) {
		t.Error("dead entity or its label survived")
	}
}

func TestCheckDeathsIgnoresTeamless(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntityWith(component.Health{Current: -3, Max: 5})

	if deaths := CheckDeaths(w); len(deaths) != 0 {
		t.Errorf("deaths = %v, want none", deaths)
	}
	if !w.Alive(id) {
		t.Error("teamless entity destroyed")
	}
}

func TestDeathCascade(t *testing.T) {
	w := ecs.NewWorld()
	a := newFighter(w, component.TeamRed, vec.New(0, 0))
	d := newFighter(w, component.TeamBlue, vec.New(30, 0))
	w.Add(d, component.Health{Current: 1, Max: 5})
	w.Add(a, component.AttackTarget{Target: d})

	ResolveAttacks(w, tick, true)
	deaths := CheckDeaths(w)
	if len(deaths) != 1 || deaths[0].ID != d {
		t.Fatalf("deaths = %v, want %v", deaths, d)
	}
	ResolveTargets(w, true)

	if _, ok := attackTarget(w, a); ok {
		t.Error("AttackTarget on a destroyed entity survived targeting")
	}
}

func TestCastleDeathIsFlagged(t *testing.T) {
	w := ecs.NewWorld()
	c := w.CreateEntityWith(component.TeamRed, component.TagCastle{}, component.Health{Current: -1, Max: 500})

	deaths := CheckDeaths(w)
	if len(deaths) != 1 || !deaths[0].Castle || deaths[0].ID != c {
		t.Errorf("deaths = %+v, want castle", deaths)
	}
}
