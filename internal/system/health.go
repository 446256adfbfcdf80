package system

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
)

// Death describes an entity removed by CheckDeaths.
type Death struct {
	ID     ecs.EntityID
	Team   component.Team
	Name   string
	Castle bool
}

// CheckDeaths destroys every teamed entity whose health is depleted, together
// with its child entities. It must run after combat for the tick.
func CheckDeaths(w *ecs.World) []Death {
	var deaths []Death
	for _, id := range w.Query(component.CHealth, component.CTeam) {
		if !w.Get(id, component.CHealth).(component.Health).Depleted() {
			continue
		}
		d := Death{
			ID:     id,
			Team:   w.Get(id, component.CTeam).(component.Team),
			Castle: w.Has(id, component.CTagCastle),
		}
		if nc := w.Get(id, component.CName); nc != nil {
			d.Name = nc.(component.Name).Value
		}
		w.DestroyRecursive(id)
		deaths = append(deaths, d)
	}
	return deaths
}
