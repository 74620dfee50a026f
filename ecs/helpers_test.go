package ecs

import (
	"errors"
	"fmt"
)

// recorder records every lifecycle call it receives.
type recorder struct {
	Base
	kind  string
	slot  string
	calls []string
	Label string `json:"label"`
}

func newRecorder(slot string) *recorder {
	return &recorder{kind: "RECORDER", slot: slot}
}

func (p *recorder) Kind() string { return p.kind }
func (p *recorder) Slot() string { return p.slot }

func (p *recorder) Start(e *Entity) {
	p.Base.Start(e)
	p.calls = append(p.calls, "start")
}

func (p *recorder) PreUpdate(float64)  { p.calls = append(p.calls, "preUpdate") }
func (p *recorder) Update(float64)     { p.calls = append(p.calls, "update") }
func (p *recorder) PostUpdate(float64) { p.calls = append(p.calls, "postUpdate") }
func (p *recorder) End()               { p.calls = append(p.calls, "end") }

func (p *recorder) Save() (SystemData, error) {
	return p.SaveBase(p.kind, struct {
		Slot  string `json:"slot"`
		Label string `json:"label"`
	}{p.slot, p.Label})
}

func (p *recorder) Load(data SystemData) error {
	var fields struct {
		Slot  string `json:"slot"`
		Label string `json:"label"`
	}
	if err := p.LoadBase(data, &fields); err != nil {
		return err
	}
	p.slot = fields.Slot
	p.Label = fields.Label
	return nil
}

func (p *recorder) count(call string) int {
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

type recorderFactory struct{}

func (recorderFactory) New(kind string) (System, error) {
	switch kind {
	case "RECORDER":
		return newRecorder(""), nil
	case "BROKEN":
		return &broken{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystemKind, kind)
	}
}

type broken struct{ recorder }

func (b *broken) Load(SystemData) error { return errors.New("corrupt") }

// tick runs the three phases and reconciles, the way the game loop does.
func tick(w *World) {
	for _, phase := range Phases {
		w.Run(phase, 1)
	}
	w.Reconcile()
}
