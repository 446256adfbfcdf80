package ecs

import "slices"

// World is the central entity registry and component store.
//
// Entities may be arranged in a parent/child hierarchy. Destroying a parent
// with DestroyRecursive also destroys every descendant.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
	parent     map[EntityID]EntityID
	children   map[EntityID][]EntityID
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
		parent:     make(map[EntityID]EntityID),
		children:   make(map[EntityID][]EntityID),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// CreateEntityWith mints an entity and attaches all given components.
func (w *World) CreateEntityWith(cs ...Component) EntityID {
	id := w.CreateEntity()
	for _, c := range cs {
		w.Add(id, c)
	}
	return id
}

// DestroyEntity removes the entity and all its components. Children are
// detached, not destroyed.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
	w.detach(id)
	for _, child := range w.children[id] {
		delete(w.parent, child)
	}
	delete(w.children, id)
}

// DestroyRecursive destroys id and every entity below it in the hierarchy.
// It returns the number of entities destroyed.
func (w *World) DestroyRecursive(id EntityID) int {
	if !w.alive[id] {
		return 0
	}
	n := 0
	for _, child := range slices.Clone(w.children[id]) {
		n += w.DestroyRecursive(child)
	}
	w.DestroyEntity(id)
	return n + 1
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.alive) }

// SetParent makes child a child of parent. Any previous parent is replaced.
func (w *World) SetParent(child, parent EntityID) {
	if !w.alive[child] || !w.alive[parent] || child == parent {
		return
	}
	w.detach(child)
	w.parent[child] = parent
	w.children[parent] = append(w.children[parent], child)
}

// Parent returns the parent of id, or NilEntity.
func (w *World) Parent(id EntityID) EntityID { return w.parent[id] }

// Children returns a copy of the direct children of id.
func (w *World) Children(id EntityID) []EntityID { return slices.Clone(w.children[id]) }

func (w *World) detach(child EntityID) {
	p, ok := w.parent[child]
	if !ok {
		return
	}
	delete(w.parent, child)
	siblings := w.children[p]
	if i := slices.Index(siblings, child); i >= 0 {
		w.children[p] = slices.Delete(siblings, i, i+1)
	}
}

// Add attaches a component to an entity, replacing any previous component of
// the same type. Adding to a dead entity is a no-op.
func (w *World) Add(id EntityID, c Component) {
	if !w.alive[id] {
		return
	}
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	if store := w.components[t]; store != nil {
		delete(store, id)
	}
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// Query returns all alive entities that have every listed component type,
// in ascending ID order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// QueryWithout is Query with every entity holding any of the excluded types
// filtered out.
func (w *World) QueryWithout(include []ComponentType, exclude ...ComponentType) []EntityID {
	ids := w.Query(include...)
	if len(exclude) == 0 {
		return ids
	}
	return slices.DeleteFunc(ids, func(id EntityID) bool {
		for _, t := range exclude {
			if w.Has(id, t) {
				return true
			}
		}
		return false
	})
}
