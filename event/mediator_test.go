package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediatorOrdering(t *testing.T) {
	m := NewMediator(nil)

	var calls []string
	m.On(Update, func(any) { calls = append(calls, "a") })
	hb := m.On(Update, func(any) { calls = append(calls, "b") })
	m.On(Update, func(any) { calls = append(calls, "c") })

	m.Fire(Update, nil)
	assert.Equal(t, []string{"a", "b", "c"}, calls)

	calls = nil
	m.Unsubscribe(Update, hb)
	m.Fire(Update, nil)
	assert.Equal(t, []string{"a", "c"}, calls)
	assert.Equal(t, 2, m.Count(Update))
}

func TestMediatorPayloadAndIsolation(t *testing.T) {
	m := NewMediator(nil)

	var got any
	m.On(PreUpdate, func(p any) { got = p })
	m.On(PostUpdate, func(any) { t.Fatal("post update must not fire") })

	m.Fire(PreUpdate, 42)
	assert.Equal(t, 42, got)

	// no subscribers is a no-op
	m.Fire("UNKNOWN", nil)
}

func TestMediatorHandlesAreUnique(t *testing.T) {
	m := NewMediator(nil)
	seen := map[Handle]bool{}
	for i := 0; i < 50; i++ {
		h := m.On(Update, func(any) {})
		require.False(t, seen[h])
		seen[h] = true
	}
}

func TestMediatorMutationDuringFire(t *testing.T) {
	tests := []struct {
		name      string
		run       func(m *Mediator) []string
		wantFirst []string
	}{
		{
			name: "subscribe_inside_callback",
			run: func(m *Mediator) []string {
				var calls []string
				m.On(Update, func(any) {
					calls = append(calls, "outer")
					m.On(Update, func(any) { calls = append(calls, "late") })
				})
				m.Fire(Update, nil)
				return calls
			},
			wantFirst: []string{"outer"},
		},
		{
			name: "unsubscribe_self_inside_callback",
			run: func(m *Mediator) []string {
				var calls []string
				var h Handle
				h = m.On(Update, func(any) {
					calls = append(calls, "self")
					m.Unsubscribe(Update, h)
				})
				m.On(Update, func(any) { calls = append(calls, "next") })
				m.Fire(Update, nil)
				m.Fire(Update, nil)
				return calls
			},
			wantFirst: []string{"self", "next", "next"},
		},
		{
			name: "unsubscribe_later_listener_inside_callback",
			run: func(m *Mediator) []string {
				var calls []string
				var later Handle
				m.On(Update, func(any) {
					calls = append(calls, "first")
					m.Unsubscribe(Update, later)
				})
				later = m.On(Update, func(any) { calls = append(calls, "later") })
				m.Fire(Update, nil)
				m.Fire(Update, nil)
				return calls
			},
			wantFirst: []string{"first", "later", "first"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantFirst, tc.run(NewMediator(nil)))
		})
	}
}

func TestMediatorNestedFire(t *testing.T) {
	m := NewMediator(nil)
	var calls []string
	m.On(Update, func(any) {
		calls = append(calls, "update:start")
		m.Fire(PostUpdate, nil)
		calls = append(calls, "update:end")
	})
	m.On(PostUpdate, func(any) { calls = append(calls, "post") })

	m.Fire(Update, nil)
	assert.Equal(t, []string{"update:start", "post", "update:end"}, calls)
}
