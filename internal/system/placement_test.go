package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
	"errors"
	"testing"
)

func TestPlacementLifecycle(t *testing.T) {
	w := ecs.NewWorld()
	fac := testFaction(t)
	b, _ := fac.Building("barracks")

	g, err := BeginPlacement(w, component.TeamBlue, fac, b, vec.New(70, 50), DefaultGridSize)
	if err != nil {
		t.Fatal(err)
	}
	if p := posOf(w, g); p != vec.New(64, 64) {
		t.Errorf("ghost at %v, want snapped (64,64)", p)
	}
	if _, err := BeginPlacement(w, component.TeamBlue, fac, b, vec.New(0, 0), DefaultGridSize); !errors.Is(err, ErrPlacementBusy) {
		t.Errorf("second ghost err = %v", err)
	}
	if _, ok := GhostFor(w, component.TeamRed); ok {
		t.Error("red has a ghost it never started")
	}

	id, err := ConfirmPlacement(w, component.TeamBlue, Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	if w.Alive(g) {
		t.Error("ghost survived confirmation")
	}
	if !w.Has(id, component.CTagBuilding) || !w.Has(id, component.CUnitSpawner) {
		t.Error("placed building missing components")
	}
	if team := w.Get(id, component.CTeam).(component.Team); team != component.TeamBlue {
		t.Errorf("building team = %v", team)
	}
}

func TestPlacementRejectsOverlap(t *testing.T) {
	w := ecs.NewWorld()
	fac := testFaction(t)
	b, _ := fac.Building("barracks")
	if _, err := BeginPlacement(w, component.TeamRed, fac, b, vec.New(64, 64), DefaultGridSize); err != nil {
		t.Fatal(err)
	}
	if _, err := ConfirmPlacement(w, component.TeamRed, Bounds{}); err != nil {
		t.Fatal(err)
	}

	g, _ := BeginPlacement(w, component.TeamRed, fac, b, vec.New(96, 64), DefaultGridSize)
	if _, err := ConfirmPlacement(w, component.TeamRed, Bounds{}); !errors.Is(err, ErrInvalidPlacement) {
		t.Fatalf("overlapping confirm err = %v", err)
	}
	if !w.Alive(g) {
		t.Fatal("invalid ghost was discarded")
	}

	// Adjacent squares touch but do not overlap.
	if err := MoveGhost(w, component.TeamRed, vec.New(128, 64), DefaultGridSize); err != nil {
		t.Fatal(err)
	}
	ValidateGhosts(w, Bounds{})
	if !w.Get(g, component.CBuildingGhost).(component.BuildingGhost).Valid {
		t.Error("adjacent ghost marked invalid")
	}
}

func TestPlacementBounds(t *testing.T) {
	w := ecs.NewWorld()
	fac := testFaction(t)
	b, _ := fac.Building("barracks")
	BeginPlacement(w, component.TeamRed, fac, b, vec.New(0, 0), DefaultGridSize)

	if _, err := ConfirmPlacement(w, component.TeamRed, Bounds{Width: 640, Height: 480}); !errors.Is(err, ErrInvalidPlacement) {
		t.Errorf("out-of-bounds confirm err = %v", err)
	}
}

func TestCancelPlacement(t *testing.T) {
	w := ecs.NewWorld()
	fac := testFaction(t)
	b, _ := fac.Building("barracks")
	g, _ := BeginPlacement(w, component.TeamRed, fac, b, vec.New(0, 0), DefaultGridSize)

	if !CancelPlacement(w, component.TeamRed) || w.Alive(g) {
		t.Error("cancel did not discard the ghost")
	}
	if CancelPlacement(w, component.TeamRed) {
		t.Error("second cancel reported a ghost")
	}
	if err := MoveGhost(w, component.TeamRed, vec.New(1, 1), DefaultGridSize); !errors.Is(err, ErrNoGhost) {
		t.Errorf("move without ghost err = %v", err)
	}
}
