package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/obj"
)

var keyButtons = map[ebiten.Key]obj.Button{
	ebiten.KeyArrowUp:      obj.KeyUp,
	ebiten.KeyArrowDown:    obj.KeyDown,
	ebiten.KeyArrowLeft:    obj.KeyLeft,
	ebiten.KeyArrowRight:   obj.KeyRight,
	ebiten.KeySpace:        obj.KeySpace,
	ebiten.KeyA:            obj.KeyA,
	ebiten.KeyD:            obj.KeyD,
	ebiten.KeyS:            obj.KeyS,
	ebiten.KeyW:            obj.KeyW,
	ebiten.KeyX:            obj.KeyX,
	ebiten.KeyZ:            obj.KeyZ,
	ebiten.KeyPeriod:       obj.KeyDot,
	ebiten.KeyComma:        obj.KeyComma,
	ebiten.KeyBracketLeft:  obj.KeyLeftSquareBracket,
	ebiten.KeyBracketRight: obj.KeyRightSquareBracket,
	ebiten.KeyEscape:       obj.KeyEscape,
	ebiten.KeyF3:           obj.KeyF3,
}

var mouseButtons = map[ebiten.MouseButton]obj.Button{
	ebiten.MouseButtonLeft:   obj.MouseLeft,
	ebiten.MouseButtonMiddle: obj.MouseMiddle,
	ebiten.MouseButtonRight:  obj.MouseRight,
}

// pollInput forwards this frame's ebiten edges to the engine input.
func pollInput(in *obj.Input) {
	for key, b := range keyButtons {
		if inpututil.IsKeyJustPressed(key) {
			in.KeyDown(b)
		}
		if inpututil.IsKeyJustReleased(key) {
			in.KeyUp(b)
		}
	}

	for mb, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			in.MouseDown(b)
		}
		if inpututil.IsMouseButtonJustReleased(mb) {
			in.MouseUp(b)
		}
	}

	x, y := ebiten.CursorPosition()
	in.MouseMove(common.V(float64(x), float64(y)))
}

// resyncInput releases anything the engine still holds that ebiten no longer
// reports as pressed.
func resyncInput(in *obj.Input) {
	in.ReleaseStale(
		func(b obj.Button) bool {
			for key, kb := range keyButtons {
				if kb == b {
					return ebiten.IsKeyPressed(key)
				}
			}
			return false
		},
		func(b obj.Button) bool {
			for mb, mbb := range mouseButtons {
				if mbb == b {
					return ebiten.IsMouseButtonPressed(mb)
				}
			}
			return false
		},
	)
}
