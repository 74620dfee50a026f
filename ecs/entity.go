package ecs

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
)

// Entity is an identity, a world position and an ordered set of systems keyed
// by slot. Position is the single source of truth for where the entity is;
// systems read it and only movement logic writes it.
type Entity struct {
	Position common.Vec
	Saveable bool

	id      string
	world   *World
	systems map[string]System
	order   []string
	started bool
	removed bool
}

// NewEntity creates an entity with a fresh id and queues it on w. It becomes
// live, and its systems start, at the world's next Reconcile.
func NewEntity(w *World, pos common.Vec) *Entity {
	return NewEntityWithID(w, newEntityID(), pos)
}

// NewEntityWithID is NewEntity with a caller-chosen id, used when restoring
// saved entities.
func NewEntityWithID(w *World, id string, pos common.Vec) *Entity {
	if id == "" {
		id = newEntityID()
	}
	e := &Entity{
		Position: pos,
		Saveable: true,
		id:       id,
		world:    w,
		systems:  make(map[string]System),
	}
	w.Register(e)
	return e
}

func newEntityID() string {
	id, err := uuid.NewUUID()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (e *Entity) ID() string {
	return e.id
}

// Started reports whether the entity has become live and started its systems.
func (e *Entity) Started() bool {
	return e.started
}

// Removed reports whether Remove has been called.
func (e *Entity) Removed() bool {
	return e.removed
}

// Start starts every attached system in insertion order. Systems added later
// start as soon as they are added.
func (e *Entity) Start() {
	if e.started {
		return
	}
	e.started = true
	for _, slot := range e.order {
		if s, ok := e.systems[slot]; ok {
			s.Start(e)
		}
	}
}

func (e *Entity) PreUpdate(delta float64) {
	e.run(PhasePreUpdate, delta)
}

func (e *Entity) Update(delta float64) {
	e.run(PhaseUpdate, delta)
}

func (e *Entity) PostUpdate(delta float64) {
	e.run(PhasePostUpdate, delta)
}

func (e *Entity) run(phase Phase, delta float64) {
	for _, slot := range e.order {
		s, ok := e.systems[slot]
		if !ok || s.Disabled() {
			continue
		}
		switch phase {
		case PhasePreUpdate:
			s.PreUpdate(delta)
		case PhaseUpdate:
			s.Update(delta)
		case PhasePostUpdate:
			s.PostUpdate(delta)
		}
	}
}

// Remove ends every system, disabled or not, and queues the entity for
// deletion. Only the first call has any effect.
func (e *Entity) Remove() {
	if e.removed {
		return
	}
	e.removed = true
	for _, slot := range e.order {
		if s, ok := e.systems[slot]; ok {
			s.End()
		}
	}
	e.world.unregister(e)
}

// AddSystem attaches s under its slot and starts it right away if the entity
// has already started. If the slot is taken the call is a no-op: the occupant
// is returned with false.
func (e *Entity) AddSystem(s System) (System, bool) {
	if s == nil {
		return nil, false
	}
	slot := s.Slot()
	if existing, ok := e.systems[slot]; ok {
		e.world.Logger().Debug("system slot already occupied",
			zap.String("entity", e.id), zap.String("slot", slot), zap.String("kind", s.Kind()))
		return existing, false
	}

	e.systems[slot] = s
	e.order = append(e.order, slot)

	if e.started {
		s.Start(e)
	}
	return s, true
}

// RemoveSystem ends and detaches the system in slot, if any.
func (e *Entity) RemoveSystem(slot string) {
	s, ok := e.systems[slot]
	if !ok {
		return
	}
	s.End()
	delete(e.systems, slot)

	next := make([]string, 0, len(e.order)-1)
	for _, o := range e.order {
		if o != slot {
			next = append(next, o)
		}
	}
	e.order = next
}

// System returns the system in slot.
func (e *Entity) System(slot string) (System, bool) {
	s, ok := e.systems[slot]
	return s, ok
}

// Systems returns the attached systems in insertion order.
func (e *Entity) Systems() []System {
	out := make([]System, 0, len(e.order))
	for _, slot := range e.order {
		out = append(out, e.systems[slot])
	}
	return out
}

// SystemAs returns the system in slot as T.
func SystemAs[T System](e *Entity, slot string) (T, bool) {
	var zero T
	s, ok := e.System(slot)
	if !ok {
		return zero, false
	}
	t, ok := s.(T)
	return t, ok
}
