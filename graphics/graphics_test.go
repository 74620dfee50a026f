package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/scaffold/common"
	"github.com/milk9111/scaffold/obj"
)

func TestGraphicsBeforeInitIsNoop(t *testing.T) {
	g := New()
	g.DrawLine(common.Zero(), common.V(1, 1))
	g.DrawCircle(common.Zero(), 2)
	g.PreUpdate(true)
	assert.Empty(t, g.Commands())
	assert.False(t, g.Visible())
}

func TestGraphicsRecordsCommands(t *testing.T) {
	g := New()
	g.Init(obj.NewCamera(800, 600, 1, 16, nil))
	g.PreUpdate(true)
	require.True(t, g.Visible())

	g.SetLineStyle(2, White)
	g.DrawX(common.V(10, 10), 2)
	g.DrawRect(common.V(0, 0), common.V(4, 8), Fill{Colour: Black, Alpha: 0.5})
	g.DrawVectorList([]common.Vec{common.V(0, 0), common.V(1, 0), common.V(1, 1)})
	g.DrawPolygon([]common.Vec{common.V(0, 0), common.V(1, 0)})

	cmds := g.Commands()
	require.Len(t, cmds, 6)
	assert.Equal(t, []common.Vec{common.V(8, 8), common.V(12, 12)}, cmds[0].Points)
	assert.Equal(t, LineStyle{Thickness: 2, Colour: White}, cmds[0].Line)
	assert.Equal(t, ShapeRect, cmds[2].Shape)
	require.NotNil(t, cmds[2].Fill)
	assert.Equal(t, 0.5, cmds[2].Fill.Alpha)
	assert.Equal(t, []common.Vec{common.V(1, 1), common.V(0, 0)}, cmds[5].Points, "outline closes back to the first vertex")

	g.PreUpdate(false)
	assert.Empty(t, g.Commands())
	assert.False(t, g.Visible())
}

func TestGraphicsFollowsCamera(t *testing.T) {
	cam := obj.NewCamera(800, 600, 2, 16, nil)
	cam.WorldPosition = common.V(1, 0)
	g := New()
	g.Init(cam)
	g.PostUpdate()

	assert.Equal(t, 2.0, g.Scale)
	assert.Equal(t, common.V(368, 300), g.Origin)

	// One world unit is WorldScale overlay pixels.
	world := common.V(3, 2)
	assert.Equal(t, cam.WorldToScreenPosition(world), g.ToScreen(world.Mul(cam.WorldScale)))
}
