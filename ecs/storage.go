package ecs

// entityTable is the authoritative set of live entities: a stable id -> slot
// index over a slice kept in insertion order. It is only mutated at
// reconciliation, so slot indices never shift while a phase iterates.
type entityTable struct {
	index map[string]int
	slots []*Entity
}

func newEntityTable() entityTable {
	return entityTable{index: make(map[string]int)}
}

// set inserts e, or replaces the entity already stored under the same id in
// place.
func (t *entityTable) set(e *Entity) {
	if i, ok := t.index[e.id]; ok {
		t.slots[i] = e
		return
	}
	t.index[e.id] = len(t.slots)
	t.slots = append(t.slots, e)
}

func (t *entityTable) get(id string) (*Entity, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.slots[i], true
}

func (t *entityTable) remove(id string) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	delete(t.index, id)

	next := make([]*Entity, 0, len(t.slots)-1)
	next = append(next, t.slots[:i]...)
	next = append(next, t.slots[i+1:]...)
	for j := i; j < len(next); j++ {
		t.index[next[j].id] = j
	}
	t.slots = next
	return true
}

// snapshot returns the live slice. Callers must not modify it; remove and
// clear allocate a new slice, so a snapshot taken before them stays intact.
func (t *entityTable) snapshot() []*Entity {
	return t.slots
}

func (t *entityTable) len() int {
	return len(t.slots)
}

func (t *entityTable) clear() {
	t.index = make(map[string]int)
	t.slots = nil
}
