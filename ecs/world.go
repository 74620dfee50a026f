package ecs

import (
	"go.uber.org/zap"
)

// World owns the live entity table and the deferred add/delete queues.
// Entities registered or unregistered during a tick only take effect at the
// next Reconcile, so phase iteration always sees a stable set.
type World struct {
	live     entityTable
	toAdd    queue[*Entity]
	toDelete queue[*Entity]
	log      *zap.Logger
}

// NewWorld creates an empty world.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		live: newEntityTable(),
		log:  log,
	}
}

// Logger returns the logger entities of this world report through.
func (w *World) Logger() *zap.Logger {
	if w == nil {
		return zap.NewNop()
	}
	return w.log
}

// Register queues e for insertion at the next Reconcile.
func (w *World) Register(e *Entity) *Entity {
	if w == nil || e == nil {
		return e
	}
	w.toAdd.Push(e)
	return e
}

// Unregister queues the entity with the given id for deletion. An entity that
// is still waiting to be added is dropped from the add queue instead and never
// becomes live.
func (w *World) Unregister(id string) {
	if w == nil {
		return
	}
	w.toAdd.Filter(func(e *Entity) bool { return e.id != id })
	if e, live := w.live.get(id); live {
		w.toDelete.Push(e)
	}
}

// unregister queues exactly e, leaving any other instance under its id alone.
func (w *World) unregister(e *Entity) {
	if w == nil || e == nil {
		return
	}
	w.toAdd.Filter(func(pending *Entity) bool { return pending != e })
	if cur, live := w.live.get(e.id); live && cur == e {
		w.toDelete.Push(e)
	}
}

// Entity returns the live entity with the given id.
func (w *World) Entity(id string) (*Entity, bool) {
	if w == nil {
		return nil, false
	}
	return w.live.get(id)
}

// Entities returns the live entities in insertion order.
func (w *World) Entities() []*Entity {
	if w == nil {
		return nil
	}
	live := w.live.snapshot()
	out := make([]*Entity, len(live))
	copy(out, live)
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.live.len()
}

// Pending returns the sizes of the add and delete queues.
func (w *World) Pending() (adds, deletes int) {
	if w == nil {
		return 0, 0
	}
	return w.toAdd.Len(), w.toDelete.Len()
}

// Reconcile applies queued additions, starting each new entity, then applies
// queued deletions. A deletion only drops the instance it was queued for, so
// an entity re-registered under the same id in the same tick survives.
func (w *World) Reconcile() {
	if w == nil {
		return
	}
	w.pushCachedEntities()
	w.removeDeletedEntities()
}

func (w *World) pushCachedEntities() {
	for _, e := range w.toAdd.Drain() {
		w.live.set(e)
		e.Start()
	}
}

func (w *World) removeDeletedEntities() {
	for _, e := range w.toDelete.Drain() {
		if cur, ok := w.live.get(e.id); ok && cur == e {
			w.live.remove(e.id)
		}
	}
}

// Clear removes every live entity, ending its systems, and discards both
// queues. Entities still waiting to be added are dropped without being
// started.
func (w *World) Clear() {
	if w == nil {
		return
	}
	for _, e := range w.live.snapshot() {
		e.Remove()
	}
	w.live.clear()
	w.toAdd.Reset()
	w.toDelete.Reset()
}

// Save serializes every live entity marked Saveable.
func (w *World) Save() ([]EntityData, error) {
	if w == nil {
		return nil, nil
	}
	var out []EntityData
	for _, e := range w.live.snapshot() {
		if !e.Saveable {
			continue
		}
		data, err := e.Save()
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
