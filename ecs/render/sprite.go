package render

import "github.com/milk9111/scaffold/common"

// Sprite is a retained drawable. Position is in screen pixels; Anchor is the
// normalized pivot within the texture.
type Sprite struct {
	Texture  Texture
	Position common.Vec
	Scale    common.Vec
	Anchor   common.Vec
	Rotation float64
	FlipX    bool
	FlipY    bool
	Tint     uint32
	Alpha    float64
	Visible  bool
	ZIndex   int

	// Speed is frames advanced per unit of delta for animated sprites.
	Speed float64
	Loop  bool

	frames  []Texture
	frame   float64
	playing bool
}

// NewSprite returns a visible, untinted sprite drawing tex.
func NewSprite(tex Texture) *Sprite {
	return &Sprite{
		Texture: tex,
		Scale:   common.Splat(1),
		Tint:    0xFFFFFF,
		Alpha:   1,
		Visible: true,
	}
}

// NewAnimatedSprite returns a sprite cycling through frames. It starts
// stopped on the first frame.
func NewAnimatedSprite(frames []Texture, speed float64, loop bool) *Sprite {
	var first Texture
	if len(frames) > 0 {
		first = frames[0]
	}
	s := NewSprite(first)
	s.frames = frames
	s.Speed = speed
	s.Loop = loop
	return s
}

// Animated reports whether the sprite has more than one frame source.
func (s *Sprite) Animated() bool {
	return len(s.frames) > 0
}

func (s *Sprite) Play() {
	if len(s.frames) > 0 {
		s.playing = true
	}
}

func (s *Sprite) Stop() {
	s.playing = false
}

func (s *Sprite) Playing() bool {
	return s.playing
}

// Frame returns the index of the frame currently shown.
func (s *Sprite) Frame() int {
	return int(s.frame)
}

// GotoFrame jumps to frame i, clamped to the frame range.
func (s *Sprite) GotoFrame(i int) {
	if len(s.frames) == 0 {
		return
	}
	i = int(common.Clamp(float64(i), 0, float64(len(s.frames)-1)))
	s.frame = float64(i)
	s.Texture = s.frames[i]
}

// Advance moves the animation forward by Speed*delta frames. A non-looping
// animation stops on its last frame.
func (s *Sprite) Advance(delta float64) {
	if !s.playing || len(s.frames) == 0 {
		return
	}
	n := float64(len(s.frames))
	s.frame += s.Speed * delta
	if s.frame >= n {
		if s.Loop {
			for s.frame >= n {
				s.frame -= n
			}
		} else {
			s.frame = n - 1
			s.playing = false
		}
	}
	s.Texture = s.frames[int(s.frame)]
}
