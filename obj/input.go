package obj

import (
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
)

// Button names a physical key or mouse button.
type Button string

const (
	KeyUp                 Button = "ArrowUp"
	KeyDown               Button = "ArrowDown"
	KeyLeft               Button = "ArrowLeft"
	KeyRight              Button = "ArrowRight"
	KeySpace              Button = "Space"
	KeyA                  Button = "a"
	KeyD                  Button = "d"
	KeyS                  Button = "s"
	KeyW                  Button = "w"
	KeyX                  Button = "x"
	KeyZ                  Button = "z"
	KeyDot                Button = "."
	KeyComma              Button = ","
	KeyLeftSquareBracket  Button = "["
	KeyRightSquareBracket Button = "]"
	KeyEscape             Button = "Escape"
	KeyF3                 Button = "F3"

	MouseLeft   Button = "Mouse0"
	MouseMiddle Button = "Mouse1"
	MouseRight  Button = "Mouse2"
)

// InputDef is a named logical input bound to one or more buttons.
type InputDef struct {
	Name    string   `yaml:"name"`
	Buttons []Button `yaml:"buttons"`
}

var (
	LeftMouse  = InputDef{Name: "Left Click", Buttons: []Button{MouseLeft}}
	RightMouse = InputDef{Name: "Right Click", Buttons: []Button{MouseRight}}
	Up         = InputDef{Name: "Move Up", Buttons: []Button{KeyUp, KeyW}}
	Down       = InputDef{Name: "Move Down", Buttons: []Button{KeyDown, KeyS}}
	Left       = InputDef{Name: "Move Left", Buttons: []Button{KeyLeft, KeyA}}
	Right      = InputDef{Name: "Move Right", Buttons: []Button{KeyRight, KeyD}}
	ZoomIn     = InputDef{Name: "Zoom In", Buttons: []Button{KeyComma}}
	ZoomOut    = InputDef{Name: "Zoom Out", Buttons: []Button{KeyDot}}
)

// DefaultInputs returns the stock bindings.
func DefaultInputs() []InputDef {
	return []InputDef{LeftMouse, RightMouse, Up, Down, Left, Right, ZoomIn, ZoomOut}
}

// WithBindings replaces the buttons of any input named in overrides.
func WithBindings(defs []InputDef, overrides map[string][]Button) []InputDef {
	out := make([]InputDef, len(defs))
	for i, d := range defs {
		if buttons, ok := overrides[d.Name]; ok && len(buttons) > 0 {
			d.Buttons = append([]Button(nil), buttons...)
		}
		out[i] = d
	}
	return out
}

// buttonState tracks held buttons plus the edges seen this tick.
type buttonState struct {
	held map[Button]bool
	down map[Button]bool
	up   map[Button]bool
}

func newButtonState() buttonState {
	return buttonState{held: map[Button]bool{}, down: map[Button]bool{}, up: map[Button]bool{}}
}

func (s *buttonState) press(b Button) bool {
	if s.held[b] {
		return false
	}
	s.held[b] = true
	s.down[b] = true
	return true
}

func (s *buttonState) release(b Button) bool {
	if !s.held[b] {
		return false
	}
	delete(s.held, b)
	s.up[b] = true
	return true
}

func (s *buttonState) clearEdges() {
	clear(s.down)
	clear(s.up)
}

// Input is the engine's input source. The host feeds it raw key and mouse
// events; game code queries buttons and named inputs. Edge queries hold for
// the tick the event arrived in until ClearKeys.
type Input struct {
	keys  buttonState
	mouse buttonState

	mousePos common.Vec

	bindings  map[Button]string
	inputHeld map[string]int
	inputDown map[string]bool
	inputUp   map[string]bool

	log *zap.Logger
}

func NewInput(log *zap.Logger) *Input {
	if log == nil {
		log = zap.NewNop()
	}
	return &Input{
		keys:      newButtonState(),
		mouse:     newButtonState(),
		bindings:  map[Button]string{},
		inputHeld: map[string]int{},
		inputDown: map[string]bool{},
		inputUp:   map[string]bool{},
		log:       log,
	}
}

// RegisterInput binds each of def's buttons to def.Name. A button already
// bound to an input is logged and left alone.
func (in *Input) RegisterInput(def InputDef) {
	for _, b := range def.Buttons {
		if owner, ok := in.bindings[b]; ok {
			in.log.Error("input: button already registered",
				zap.String("button", string(b)), zap.String("owner", owner), zap.String("input", def.Name))
			continue
		}
		in.bindings[b] = def.Name
	}
}

// Binding returns the input name a button is bound to.
func (in *Input) Binding(b Button) (string, bool) {
	name, ok := in.bindings[b]
	return name, ok
}

func (in *Input) KeyDown(b Button) {
	if in.keys.press(b) {
		in.bindingDown(b)
	}
}

func (in *Input) KeyUp(b Button) {
	if in.keys.release(b) {
		in.bindingUp(b)
	}
}

func (in *Input) MouseDown(b Button) {
	if in.mouse.press(b) {
		in.bindingDown(b)
	}
}

func (in *Input) MouseUp(b Button) {
	if in.mouse.release(b) {
		in.bindingUp(b)
	}
}

// MouseMove records the cursor position in canvas pixels.
func (in *Input) MouseMove(p common.Vec) {
	in.mousePos = p
}

// An input stays held while any of its buttons is held.
func (in *Input) bindingDown(b Button) {
	name, ok := in.bindings[b]
	if !ok {
		return
	}
	in.inputHeld[name]++
	if in.inputHeld[name] == 1 {
		in.inputDown[name] = true
	}
}

func (in *Input) bindingUp(b Button) {
	name, ok := in.bindings[b]
	if !ok || in.inputHeld[name] == 0 {
		return
	}
	in.inputHeld[name]--
	if in.inputHeld[name] == 0 {
		delete(in.inputHeld, name)
		in.inputUp[name] = true
	}
}

// ClearKeys drops this tick's press and release edges.
func (in *Input) ClearKeys() {
	in.keys.clearEdges()
	in.mouse.clearEdges()
	clear(in.inputDown)
	clear(in.inputUp)
}

func (in *Input) IsKeyPressed(b Button) bool  { return in.keys.down[b] }
func (in *Input) IsKeyHeld(b Button) bool     { return in.keys.held[b] }
func (in *Input) IsKeyReleased(b Button) bool { return in.keys.up[b] }

func (in *Input) MousePosition() common.Vec { return in.mousePos }

func (in *Input) IsMouseButtonPressed(b Button) bool  { return in.mouse.down[b] }
func (in *Input) IsMouseButtonHeld(b Button) bool     { return in.mouse.held[b] }
func (in *Input) IsMouseButtonReleased(b Button) bool { return in.mouse.up[b] }

func (in *Input) IsInputPressed(def InputDef) bool  { return in.inputDown[def.Name] }
func (in *Input) IsInputHeld(def InputDef) bool     { return in.inputHeld[def.Name] > 0 }
func (in *Input) IsInputReleased(def InputDef) bool { return in.inputUp[def.Name] }

// Direction sums the held Up/Down/Left/Right inputs into a vector. +Y points
// down the screen.
func (in *Input) Direction() common.Vec {
	var d common.Vec
	if in.IsInputHeld(Left) {
		d.X--
	}
	if in.IsInputHeld(Right) {
		d.X++
	}
	if in.IsInputHeld(Up) {
		d.Y--
	}
	if in.IsInputHeld(Down) {
		d.Y++
	}
	return d
}

// ReleaseStale releases every held key and mouse button the host reports as
// no longer pressed. Hosts call it after a stretch where events were not
// forwarded, such as a pause.
func (in *Input) ReleaseStale(keyPressed, mousePressed func(Button) bool) {
	for _, b := range stale(in.keys.held, keyPressed) {
		in.KeyUp(b)
	}
	for _, b := range stale(in.mouse.held, mousePressed) {
		in.MouseUp(b)
	}
}

func stale(held map[Button]bool, pressed func(Button) bool) []Button {
	var out []Button
	for b := range held {
		if pressed == nil || !pressed(b) {
			out = append(out, b)
		}
	}
	return out
}
