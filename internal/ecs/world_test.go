package ecs

import "testing"

// stub component used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 42})

	c := w.Get(id, ComponentType(1))
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	tc, ok := c.(testComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
}

func TestDestroyEntityRemovesComponents(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 7})
	w.DestroyEntity(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after DestroyEntity")
	}
	if w.Get(id, ComponentType(1)) != nil {
		t.Fatal("component should be gone after DestroyEntity")
	}
}

func TestQueryFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	// entity with both A and B
	both := w.CreateEntity()
	w.Add(both, testComp{})
	w.Add(both, otherComp{})

	// entity with only A
	onlyA := w.CreateEntity()
	w.Add(onlyA, testComp{})

	results := w.Query(ComponentType(1), ComponentType(2))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0] != both {
		t.Fatalf("expected entity %v in results, got %v", both, results[0])
	}
}

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.Add(id, testComp{val: 5})

	w.Remove(id, ComponentType(1))

	if w.Get(id, ComponentType(1)) != nil {
		t.Fatal("component should be nil after Remove")
	}
}

func TestRemoveNonexistentIsNoop(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	// Removing a component type that was never added must not panic.
	w.Remove(id, ComponentType(99))
}

func TestHasComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()

	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false before Add")
	}
	w.Add(id, testComp{val: 1})
	if !w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return true after Add")
	}
	w.Remove(id, ComponentType(1))
	if w.Has(id, ComponentType(1)) {
		t.Fatal("Has should return false after Remove")
	}
}

func TestQueryExcludesDeadEntities(t *testing.T) {
	w := NewWorld()
	alive := w.CreateEntity()
	w.Add(alive, testComp{})

	dead := w.CreateEntity()
	w.Add(dead, testComp{})
	w.DestroyEntity(dead)

	results := w.Query(ComponentType(1))
	for _, id := range results {
		if id == dead {
			t.Fatal("Query returned a destroyed entity")
		}
	}
	if len(results) != 1 || results[0] != alive {
		t.Fatalf("expected only the alive entity; got %v", results)
	}
}

func TestQueryIsOrderedByID(t *testing.T) {
	w := NewWorld()
	var want []EntityID
	for range 20 {
		id := w.CreateEntity()
		w.Add(id, testComp{})
		want = append(want, id)
	}
	got := w.Query(ComponentType(1))
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestQueryWithoutExcludes(t *testing.T) {
	w := NewWorld()
	keep := w.CreateEntityWith(testComp{})
	drop := w.CreateEntityWith(testComp{}, otherComp{})

	got := w.QueryWithout([]ComponentType{1}, ComponentType(2))
	if len(got) != 1 || got[0] != keep {
		t.Fatalf("expected only %v, got %v (excluded %v)", keep, got, drop)
	}
}

func TestAddToDeadEntityIsNoop(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	w.DestroyEntity(id)
	w.Add(id, testComp{val: 1})
	if w.Has(id, ComponentType(1)) {
		t.Fatal("dead entity must not gain components")
	}
}

// ─── hierarchy ────────────────────────────────────────────────────────────────

func TestDestroyRecursiveRemovesDescendants(t *testing.T) {
	w := NewWorld()
	root := w.CreateEntityWith(testComp{})
	child := w.CreateEntityWith(testComp{})
	grandchild := w.CreateEntityWith(testComp{})
	bystander := w.CreateEntityWith(testComp{})
	w.SetParent(child, root)
	w.SetParent(grandchild, child)

	if n := w.DestroyRecursive(root); n != 3 {
		t.Errorf("DestroyRecursive destroyed %d entities; want 3", n)
	}
	for _, id := range []EntityID{root, child, grandchild} {
		if w.Alive(id) {
			t.Errorf("%v should be destroyed", id)
		}
	}
	if !w.Alive(bystander) {
		t.Error("unrelated entity must survive")
	}
	if w.Len() != 1 {
		t.Errorf("Len = %d; want 1", w.Len())
	}
}

func TestDestroyEntityDetachesChildren(t *testing.T) {
	w := NewWorld()
	parent := w.CreateEntity()
	child := w.CreateEntity()
	w.SetParent(child, parent)

	w.DestroyEntity(parent)
	if !w.Alive(child) {
		t.Fatal("plain DestroyEntity must not destroy children")
	}
	if p := w.Parent(child); p != NilEntity {
		t.Errorf("child parent = %v; want NilEntity", p)
	}
}

func TestSetParentReparents(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	child := w.CreateEntity()

	w.SetParent(child, a)
	w.SetParent(child, b)

	if len(w.Children(a)) != 0 {
		t.Errorf("old parent still lists child: %v", w.Children(a))
	}
	if got := w.Children(b); len(got) != 1 || got[0] != child {
		t.Errorf("Children(b) = %v; want [%v]", got, child)
	}
	if w.Parent(child) != b {
		t.Errorf("Parent(child) = %v; want %v", w.Parent(child), b)
	}
}
