// Package spatial provides the radius queries perception runs on.
package spatial

import (
	"castle-fight/internal/component"
	"castle-fight/internal/ecs"
	"castle-fight/internal/vec"
	"cmp"
	"math"
	"slices"
)

// DefaultCellSize suits vision ranges of a few hundred world units.
const DefaultCellSize = 64.0

// Entry is one indexed entity.
type Entry struct {
	ID   ecs.EntityID
	Team component.Team
	Pos  vec.Vec2
}

// Hit is a query result with its squared distance from the query center.
type Hit struct {
	Entry
	DistSq float64
}

type cellKey struct{ x, y int }

// Index is a uniform grid over team-tagged positions. It is rebuilt by its
// owner between queries and must not be mutated while being queried.
type Index struct {
	cellSize float64
	cells    map[cellKey][]Entry
	n        int
}

// NewIndex creates an empty index. A non-positive cellSize uses DefaultCellSize.
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Index{cellSize: cellSize, cells: make(map[cellKey][]Entry)}
}

func (ix *Index) key(p vec.Vec2) cellKey {
	return cellKey{int(math.Floor(p.X / ix.cellSize)), int(math.Floor(p.Y / ix.cellSize))}
}

// Clear empties the index, keeping allocated cells for reuse.
func (ix *Index) Clear() {
	for k, c := range ix.cells {
		ix.cells[k] = c[:0]
	}
	ix.n = 0
}

// Insert adds one entry.
func (ix *Index) Insert(e Entry) {
	k := ix.key(e.Pos)
	ix.cells[k] = append(ix.cells[k], e)
	ix.n++
}

// Rebuild replaces the contents with every live entity holding Team and
// Position.
func (ix *Index) Rebuild(w *ecs.World) {
	ix.Clear()
	for _, id := range w.Query(component.CTeam, component.CPosition) {
		team := w.Get(id, component.CTeam).(component.Team)
		pos := w.Get(id, component.CPosition).(component.Position)
		ix.Insert(Entry{ID: id, Team: team, Pos: pos.Vec()})
	}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.n }

// WithinDistance returns every entry whose distance to center is at most
// radius, nearest first with ties broken by lowest entity id.
func (ix *Index) WithinDistance(center vec.Vec2, radius float64) []Hit {
	if radius < 0 {
		return nil
	}
	r2 := radius * radius
	lo := ix.key(vec.Vec2{X: center.X - radius, Y: center.Y - radius})
	hi := ix.key(vec.Vec2{X: center.X + radius, Y: center.Y + radius})
	var hits []Hit
	for cy := lo.y; cy <= hi.y; cy++ {
		for cx := lo.x; cx <= hi.x; cx++ {
			for _, e := range ix.cells[cellKey{cx, cy}] {
				if d := e.Pos.DistSq(center); d <= r2 {
					hits = append(hits, Hit{Entry: e, DistSq: d})
				}
			}
		}
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.DistSq, b.DistSq); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return hits
}
