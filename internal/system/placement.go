package system

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/factory"
	"castle-fight/internal/vec"
	"errors"
	"fmt"
	"math"
)

// DefaultGridSize is the snap spacing for building placement.
const DefaultGridSize = 32.0

var (
	ErrPlacementBusy    = errors.New("a building is already being placed")
	ErrNoGhost          = errors.New("no building is being placed")
	ErrInvalidPlacement = errors.New("building overlaps another building")
)

// Bounds limits where ghosts may be confirmed. The zero value is unbounded.
type Bounds struct {
	Width, Height float64
}

func (b Bounds) contains(p vec.Vec2, half float64) bool {
	if b.Width <= 0 || b.Height <= 0 {
		return true
	}
	return p.X-half >= 0 && p.Y-half >= 0 && p.X+half <= b.Width && p.Y+half <= b.Height
}

// GhostFor returns team's placement ghost, if any.
func GhostFor(w *ecs.World, team component.Team) (ecs.EntityID, bool) {
	for _, id := range w.Query(component.CBuildingGhost) {
		if w.Get(id, component.CBuildingGhost).(component.BuildingGhost).Team == team {
			return id, true
		}
	}
	return ecs.NilEntity, false
}

// BeginPlacement starts placing b for team at the snapped pos. Each team
// places one building at a time.
func BeginPlacement(w *ecs.World, team component.Team, fac *blueprint.Faction, b *blueprint.Building, pos vec.Vec2, grid float64) (ecs.EntityID, error) {
	if _, ok := GhostFor(w, team); ok {
		return ecs.NilEntity, ErrPlacementBusy
	}
	return factory.NewGhost(w, team, fac, b, pos.Snap(grid)), nil
}

// MoveGhost moves team's ghost to the snapped pos.
func MoveGhost(w *ecs.World, team component.Team, pos vec.Vec2, grid float64) error {
	id, ok := GhostFor(w, team)
	if !ok {
		return ErrNoGhost
	}
	w.Add(id, component.At(pos.Snap(grid)))
	return nil
}

// overlaps tests two axis-aligned squares given by center and half extent.
func overlaps(a vec.Vec2, ha float64, b vec.Vec2, hb float64) bool {
	return math.Abs(a.X-b.X) < ha+hb && math.Abs(a.Y-b.Y) < ha+hb
}

// ValidateGhosts refreshes the Valid flag of every ghost: a ghost is valid
// while it is inside bounds and overlaps no building.
func ValidateGhosts(w *ecs.World, bounds Bounds) {
	buildings := w.Query(component.CTagBuilding, component.CPosition, component.CBody)
	for _, id := range w.Query(component.CBuildingGhost, component.CPosition, component.CBody) {
		g := w.Get(id, component.CBuildingGhost).(component.BuildingGhost)
		gp := w.Get(id, component.CPosition).(component.Position).Vec()
		gh := w.Get(id, component.CBody).(component.Body).Radius

		valid := bounds.contains(gp, gh)
		for _, b := range buildings {
			if !valid {
				break
			}
			bp := w.Get(b, component.CPosition).(component.Position).Vec()
			bh := w.Get(b, component.CBody).(component.Body).Radius
			if overlaps(gp, gh, bp, bh) {
				valid = false
			}
		}
		g.Valid = valid
		w.Add(id, g)
	}
}

// ConfirmPlacement turns team's ghost into a real building when it is valid.
// An invalid ghost stays in place so the player can move it.
func ConfirmPlacement(w *ecs.World, team component.Team, bounds Bounds) (ecs.EntityID, error) {
	id, ok := GhostFor(w, team)
	if !ok {
		return ecs.NilEntity, ErrNoGhost
	}
	ValidateGhosts(w, bounds)
	g := w.Get(id, component.CBuildingGhost).(component.BuildingGhost)
	if !g.Valid {
		return ecs.NilEntity, ErrInvalidPlacement
	}
	pos := w.Get(id, component.CPosition).(component.Position).Vec()
	b, err := factory.NewBuilding(w, team, g.Faction, g.Building, pos)
	if err != nil {
		return ecs.NilEntity, fmt.Errorf("place %s: %w", g.Building.ID, err)
	}
	w.DestroyRecursive(id)
	return b, nil
}

// CancelPlacement discards team's ghost. It reports whether one existed.
func CancelPlacement(w *ecs.World, team component.Team) bool {
	id, ok := GhostFor(w, team)
	if ok {
		w.DestroyRecursive(id)
	}
	return ok
}
