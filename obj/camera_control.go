package obj

import (
	"math"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/event"
)

const (
	minZoom      = 0.5
	maxZoom      = 10
	zoomRate     = 0.01
	panMoveSpeed = 5
)

// CameraControl pans and zooms the camera from held inputs on every UPDATE
// event.
type CameraControl struct {
	camera *Camera
	input  *Input

	mediator *event.Mediator
	handle   event.Handle
}

func NewCameraControl(camera *Camera, input *Input) *CameraControl {
	return &CameraControl{camera: camera, input: input}
}

// Attach subscribes to UPDATE on m. Attaching twice is a no-op.
func (cc *CameraControl) Attach(m *event.Mediator) {
	if cc.mediator != nil {
		return
	}
	cc.mediator = m
	cc.handle = m.On(event.Update, func(any) { cc.Update() })
}

// Detach drops the UPDATE subscription.
func (cc *CameraControl) Detach() {
	if cc.mediator == nil {
		return
	}
	cc.mediator.Unsubscribe(event.Update, cc.handle)
	cc.mediator = nil
	cc.handle = ""
}

// Update applies one tick of zoom and pan. Zoom eases in log space so it
// feels even across the range.
func (cc *CameraControl) Update() {
	if cc.input.IsInputHeld(ZoomIn) {
		cc.camera.SetScale(logLerp(cc.camera.Scale(), maxZoom, zoomRate))
	}
	if cc.input.IsInputHeld(ZoomOut) {
		cc.camera.SetScale(logLerp(cc.camera.Scale(), minZoom, zoomRate))
	}

	dir := cc.input.Direction()
	if dir.Magnitude() > 0 {
		step := dir.Mul(panMoveSpeed / cc.camera.Scale())
		cc.camera.GoToPosition(cc.camera.WorldPosition.Add(step))
	}
}

func logLerp(from, to, t float64) float64 {
	return math.Exp(common.Lerp(math.Log(from), math.Log(to), t))
}
