package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(zap.NewNop())
			ents := make([]*Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, NewEntity(w, common.V(float64(i), 0)))
			}
			assert.Equal(t, 0, w.Len(), "entities are pending until reconcile")
			w.Reconcile()
			require.Equal(t, c.create, w.Len())

			if c.destroyIndex < 0 {
				return
			}
			victim := ents[c.destroyIndex]
			victim.Remove()
			_, live := w.Entity(victim.ID())
			assert.True(t, live, "removal is deferred")

			w.Reconcile()
			_, live = w.Entity(victim.ID())
			assert.False(t, live)
			assert.Equal(t, c.create-1, w.Len())

			var order []string
			for _, e := range w.Entities() {
				order = append(order, e.ID())
			}
			var want []string
			for i, e := range ents {
				if i != c.destroyIndex {
					want = append(want, e.ID())
				}
			}
			assert.Equal(t, want, order, "insertion order survives removal")
		})
	}
}

func TestWorldDeferredMutation(t *testing.T) {
	t.Run("added_mid_tick_visible_next_tick", func(t *testing.T) {
		w := NewWorld(nil)
		spawner := NewEntity(w, common.Zero())
		w.Reconcile()

		var spawned *Entity
		var spawnedRecorder *recorder
		hook := &hookSystem{slot: "SPAWN", onUpdate: func() {
			if spawned == nil {
				spawned = NewEntity(w, common.Zero())
				spawnedRecorder = newRecorder("P")
				spawned.AddSystem(spawnedRecorder)
			}
		}}
		spawner.AddSystem(hook)

		tick(w)
		require.NotNil(t, spawned)
		assert.Equal(t, []string{"start"}, spawnedRecorder.calls, "no phase calls in the tick it was added")
		assert.True(t, spawned.Started())

		tick(w)
		assert.Equal(t, []string{"start", "preUpdate", "update", "postUpdate"}, spawnedRecorder.calls)
	})

	t.Run("removed_mid_tick_ends_once_and_is_gone", func(t *testing.T) {
		w := NewWorld(nil)
		victim := NewEntity(w, common.Zero())
		p := newRecorder("P")
		victim.AddSystem(p)
		killer := NewEntity(w, common.Zero())
		killer.AddSystem(&hookSystem{slot: "KILL", onUpdate: func() {
			victim.Remove()
			victim.Remove()
		}})
		w.Reconcile()

		tick(w)
		assert.Equal(t, 1, p.count("end"))
		assert.Equal(t, 1, p.count("update"), "victim ran before the killer")
		assert.Equal(t, 0, p.count("postUpdate"), "removed entities skip remaining phases")

		_, live := w.Entity(victim.ID())
		assert.False(t, live)

		tick(w)
		assert.Equal(t, 1, p.count("end"))
		assert.Equal(t, 1, p.count("update"))
	})

	t.Run("removed_before_reconcile_never_starts", func(t *testing.T) {
		w := NewWorld(nil)
		e := NewEntity(w, common.Zero())
		p := newRecorder("P")
		e.AddSystem(p)
		e.Remove()

		w.Reconcile()
		assert.Equal(t, 0, w.Len())
		assert.False(t, e.Started())
		assert.Equal(t, []string{"end"}, p.calls)

		adds, deletes := w.Pending()
		assert.Zero(t, adds)
		assert.Zero(t, deletes)
	})
}

func TestWorldReplaceSameIDInOneTick(t *testing.T) {
	for _, removeFirst := range []bool{true, false} {
		name := "remove_then_register"
		if !removeFirst {
			name = "register_then_remove"
		}
		t.Run(name, func(t *testing.T) {
			w := NewWorld(nil)
			old := NewEntityWithID(w, "hero", common.Zero())
			w.Reconcile()

			var fresh *Entity
			rec := newRecorder("P")
			if removeFirst {
				old.Remove()
				fresh = NewEntityWithID(w, "hero", common.V(1, 0))
			} else {
				fresh = NewEntityWithID(w, "hero", common.V(1, 0))
				old.Remove()
			}
			fresh.AddSystem(rec)
			w.Reconcile()

			live, ok := w.Entity("hero")
			require.True(t, ok, "the new instance stays live")
			assert.Same(t, fresh, live)
			assert.True(t, fresh.Started())
			assert.Equal(t, []string{"start"}, rec.calls)
			assert.Equal(t, 1, w.Len())
		})
	}
}

func TestWorldClear(t *testing.T) {
	w := NewWorld(nil)
	live := NewEntity(w, common.Zero())
	lp := newRecorder("P")
	live.AddSystem(lp)
	w.Reconcile()

	pending := NewEntity(w, common.Zero())
	pp := newRecorder("P")
	pending.AddSystem(pp)

	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 1, lp.count("end"))
	assert.Empty(t, pp.calls, "pending entities are dropped without start or end")

	w.Reconcile()
	assert.Equal(t, 0, w.Len())
}

func TestWorldSaveSkipsUnsaveable(t *testing.T) {
	w := NewWorld(nil)
	keep := NewEntity(w, common.V(1, 2))
	skip := NewEntity(w, common.V(3, 4))
	skip.Saveable = false
	w.Reconcile()

	data, err := w.Save()
	require.NoError(t, err)
	require.Len(t, data, 1)
	assert.Equal(t, keep.ID(), data[0].ID)
	assert.Equal(t, [2]float64{1, 2}, data[0].Position)
}

// hookSystem runs a callback during Update.
type hookSystem struct {
	Base
	slot     string
	onUpdate func()
}

func (h *hookSystem) Kind() string { return "HOOK" }
func (h *hookSystem) Slot() string { return h.slot }
func (h *hookSystem) Update(float64) {
	if h.onUpdate != nil {
		h.onUpdate()
	}
}
func (h *hookSystem) Save() (SystemData, error) { return h.SaveBase("HOOK", nil) }
func (h *hookSystem) Load(data SystemData) error { return h.LoadBase(data, nil) }
