package render

import "sort"

const (
	DefaultAnimationSpeed = 0.25
)

// Animation is a named clip of sprite sheet cells.
type Animation struct {
	Name   string  `json:"name"`
	Frames []int   `json:"frames"`
	Speed  float64 `json:"speed"`
	Loop   bool    `json:"loop"`
}

// NewAnimation returns a looping clip at the default speed.
func NewAnimation(name string, frames ...int) Animation {
	return Animation{Name: name, Frames: frames, Speed: DefaultAnimationSpeed, Loop: true}
}

// AnimationLibrary stores animation clips by name.
type AnimationLibrary struct {
	clips map[string]Animation
}

// NewAnimationLibrary creates a library holding anims.
func NewAnimationLibrary(anims ...Animation) *AnimationLibrary {
	l := &AnimationLibrary{clips: make(map[string]Animation)}
	for _, a := range anims {
		l.Register(a)
	}
	return l
}

// Register adds or replaces a clip. Unnamed or empty clips are ignored.
func (l *AnimationLibrary) Register(anim Animation) {
	if l == nil || anim.Name == "" || len(anim.Frames) == 0 {
		return
	}
	l.clips[anim.Name] = anim
}

// Get returns a clip by name.
func (l *AnimationLibrary) Get(name string) (Animation, bool) {
	if l == nil || name == "" {
		return Animation{}, false
	}
	clip, ok := l.clips[name]
	return clip, ok
}

// All returns the clips sorted by name.
func (l *AnimationLibrary) All() []Animation {
	if l == nil {
		return nil
	}
	out := make([]Animation, 0, len(l.clips))
	for _, c := range l.clips {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (l *AnimationLibrary) Len() int {
	if l == nil {
		return 0
	}
	return len(l.clips)
}
