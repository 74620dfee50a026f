package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/ecs"
	"github.com/milk9111/scaffold/obj"
)

type cameraFollowData struct {
	Offset        [2]float64 `json:"offset"`
	Smooth        bool       `json:"smooth"`
	ScrollSeconds float32    `json:"scrollSeconds,omitempty"`
	Ease          string     `json:"ease,omitempty"`
}

// CameraFollowSystem keeps the camera on its entity. With ScrollSeconds set
// the camera catches up in timed eased scrolls, one at a time. Otherwise
// Smooth follows pan toward the entity each tick and the rest snap.
type CameraFollowSystem struct {
	ecs.Base

	Offset        common.Vec
	Smooth        bool
	ScrollSeconds float32
	Ease          string

	camera *obj.Camera
	log    *zap.Logger
}

func NewCameraFollowSystem(deps Deps) *CameraFollowSystem {
	return &CameraFollowSystem{camera: deps.Camera, Smooth: true, log: deps.logger()}
}

func (c *CameraFollowSystem) Kind() string { return CameraFollowSystemKind }
func (c *CameraFollowSystem) Slot() string { return CameraFollowSystemKind }

func (c *CameraFollowSystem) PostUpdate(float64) {
	e := c.Entity()
	if c.camera == nil || e == nil {
		return
	}
	target := e.Position.Add(c.Offset)

	switch {
	case c.ScrollSeconds > 0:
		if c.camera.HasTarget() || common.Distance(c.camera.WorldPosition, target) < panArriveDist {
			return
		}
		easeFn, _ := obj.EaseByName(c.Ease)
		c.camera.ScrollTo(target, c.ScrollSeconds, easeFn)
	case c.Smooth:
		if common.Distance(c.camera.WorldPosition, target) < panArriveDist {
			return
		}
		c.camera.GoToPosition(target)
	default:
		c.camera.SnapTo(target)
	}
}

func (c *CameraFollowSystem) data() cameraFollowData {
	return cameraFollowData{
		Offset:        c.Offset.Serialize(),
		Smooth:        c.Smooth,
		ScrollSeconds: c.ScrollSeconds,
		Ease:          c.Ease,
	}
}

func (c *CameraFollowSystem) Save() (ecs.SystemData, error) {
	return c.SaveBase(CameraFollowSystemKind, c.data())
}

func (c *CameraFollowSystem) Load(data ecs.SystemData) error {
	d := c.data()
	if err := c.LoadBase(data, &d); err != nil {
		return err
	}
	if d.Ease != "" {
		if _, ok := obj.EaseByName(d.Ease); !ok {
			c.log.Warn("unknown ease, scrolling linearly", zap.String("ease", d.Ease))
		}
	}
	c.Offset = common.Deserialize(d.Offset)
	c.Smooth = d.Smooth
	c.ScrollSeconds = d.ScrollSeconds
	c.Ease = d.Ease
	return nil
}

// panArriveDist is the camera's own arrival threshold.
const panArriveDist = 0.1
