package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
)

type scriptData struct {
	Script string `json:"script"`
}

// ScriptSystem runs a tengo script every Update. The script sees
//
//	delta     the scaled tick delta
//	position  [x, y] of the entity
//	input     [x, y] from the entity's InputSystem, or [0, 0]
//	state     a map kept between ticks
//
// and may assign a new [x, y] to position to move the entity.
type ScriptSystem struct {
	ecs.Base

	name     string
	compiled *tengo.Compiled
	state    *tengo.Map

	deps Deps
	log  *zap.Logger
}

func NewScriptSystem(deps Deps, name string) *ScriptSystem {
	return &ScriptSystem{
		name:  name,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
		deps:  deps,
		log:   deps.logger().Named("script"),
	}
}

func (s *ScriptSystem) Kind() string { return ScriptSystemKind }
func (s *ScriptSystem) Slot() string { return ScriptSystemKind }

// Name returns the script name.
func (s *ScriptSystem) Name() string {
	return s.name
}

func (s *ScriptSystem) Start(e *ecs.Entity) {
	s.Base.Start(e)
	if err := s.Reload(); err != nil {
		s.log.Error("load script", zap.String("entity", e.ID()), zap.String("script", s.name), zap.Error(err))
	}
}

// Reload recompiles the script from the script source. Script state is kept.
func (s *ScriptSystem) Reload() error {
	s.compiled = nil
	if strings.TrimSpace(s.name) == "" {
		return fmt.Errorf("system: empty script name")
	}
	if s.deps.Scripts == nil {
		return fmt.Errorf("system: no script source for %s", s.name)
	}
	src, err := s.deps.Scripts.Script(s.name)
	if err != nil {
		return err
	}
	compiled, err := compileScript(src)
	if err != nil {
		return fmt.Errorf("system: compile %s: %w", s.name, err)
	}
	s.compiled = compiled
	return nil
}

func compileScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	_ = script.Add("delta", 0.0)
	_ = script.Add("position", []any{0.0, 0.0})
	_ = script.Add("input", []any{0.0, 0.0})
	_ = script.Add("state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (s *ScriptSystem) Update(delta float64) {
	e := s.Entity()
	if s.compiled == nil || e == nil {
		return
	}
	if err := s.run(e, delta); err != nil {
		s.log.Error("script error", zap.String("entity", e.ID()), zap.String("script", s.name), zap.Error(err))
	}
}

func (s *ScriptSystem) run(e *ecs.Entity, delta float64) error {
	var input common.Vec
	if in, ok := ecs.SystemAs[*InputSystem](e, InputSystemKind); ok {
		input = in.InputVector
	}

	if err := s.compiled.Set("delta", delta); err != nil {
		return err
	}
	if err := s.compiled.Set("position", vecToArray(e.Position)); err != nil {
		return err
	}
	if err := s.compiled.Set("input", vecToArray(input)); err != nil {
		return err
	}
	if err := s.compiled.Set("state", s.state); err != nil {
		return err
	}
	if err := s.compiled.Run(); err != nil {
		return err
	}

	pos, err := arrayToVec(objectToAny(s.compiled.Get("position").Object()))
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}
	e.Position = pos
	return nil
}

// State returns a copy of the script's persistent state.
func (s *ScriptSystem) State() map[string]any {
	out, _ := objectToAny(s.state).(map[string]any)
	return out
}

func (s *ScriptSystem) Save() (ecs.SystemData, error) {
	return s.SaveBase(ScriptSystemKind, scriptData{Script: s.name})
}

func (s *ScriptSystem) Load(data ecs.SystemData) error {
	d := scriptData{Script: s.name}
	if err := s.LoadBase(data, &d); err != nil {
		return err
	}
	s.name = d.Script
	if s.Started() {
		return s.Reload()
	}
	return nil
}

func vecToArray(v common.Vec) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func arrayToVec(v any) (common.Vec, error) {
	items, ok := v.([]any)
	if !ok || len(items) != 2 {
		return common.Vec{}, fmt.Errorf("want [x, y], got %v", v)
	}
	x, okX := toFloat(items[0])
	y, okY := toFloat(items[1])
	if !okX || !okY {
		return common.Vec{}, fmt.Errorf("want numbers, got %v", v)
	}
	return common.V(x, y), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
