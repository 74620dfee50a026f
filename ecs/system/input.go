package system

import (
	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/obj"
)

// InputSystem samples the held directional inputs into InputVector at the
// start of every tick. Other systems on the entity read it to move.
type InputSystem struct {
	ecs.Base

	InputVector common.Vec

	input *obj.Input
}

func NewInputSystem(deps Deps) *InputSystem {
	return &InputSystem{input: deps.Input}
}

func (i *InputSystem) Kind() string { return InputSystemKind }
func (i *InputSystem) Slot() string { return InputSystemKind }

func (i *InputSystem) PreUpdate(float64) {
	if i.input == nil {
		return
	}
	i.InputVector = i.input.Direction()
}

func (i *InputSystem) Save() (ecs.SystemData, error) {
	return i.SaveBase(InputSystemKind, nil)
}

func (i *InputSystem) Load(data ecs.SystemData) error {
	return i.LoadBase(data, nil)
}
