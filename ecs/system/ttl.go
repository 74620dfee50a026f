package system

import (
	"github.com/milk9111/scaffold/ecs"
)

type ttlData struct {
	Ticks float64 `json:"ticks"`
}

// TTLSystem removes its entity once Ticks of scaled delta have elapsed.
type TTLSystem struct {
	ecs.Base

	Ticks float64
}

func NewTTLSystem(ticks float64) *TTLSystem {
	return &TTLSystem{Ticks: ticks}
}

func (t *TTLSystem) Kind() string { return TTLSystemKind }
func (t *TTLSystem) Slot() string { return TTLSystemKind }

func (t *TTLSystem) Update(delta float64) {
	e := t.Entity()
	if e == nil || e.Removed() {
		return
	}
	t.Ticks -= delta
	if t.Ticks <= 0 {
		e.Remove()
	}
}

func (t *TTLSystem) Save() (ecs.SystemData, error) {
	return t.SaveBase(TTLSystemKind, ttlData{Ticks: t.Ticks})
}

func (t *TTLSystem) Load(data ecs.SystemData) error {
	d := ttlData{Ticks: t.Ticks}
	if err := t.LoadBase(data, &d); err != nil {
		return err
	}
	t.Ticks = d.Ticks
	return nil
}
