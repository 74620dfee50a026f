package render

import "sort"

// Stage is the retained set of sprites the host draws each frame.
type Stage struct {
	sprites []*Sprite
}

func NewStage() *Stage {
	return &Stage{}
}

// Add puts s on the stage. Adding a sprite twice is a no-op.
func (st *Stage) Add(s *Sprite) {
	if s == nil || st.index(s) >= 0 {
		return
	}
	st.sprites = append(st.sprites, s)
}

// Remove takes s off the stage.
func (st *Stage) Remove(s *Sprite) {
	i := st.index(s)
	if i < 0 {
		return
	}
	st.sprites = append(st.sprites[:i:i], st.sprites[i+1:]...)
}

func (st *Stage) Contains(s *Sprite) bool {
	return st.index(s) >= 0
}

func (st *Stage) Len() int {
	return len(st.sprites)
}

// Sprites returns the sprites in draw order: ascending ZIndex, then insertion
// order.
func (st *Stage) Sprites() []*Sprite {
	out := make([]*Sprite, len(st.sprites))
	copy(out, st.sprites)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ZIndex < out[j].ZIndex
	})
	return out
}

// Clear removes every sprite.
func (st *Stage) Clear() {
	st.sprites = nil
}

func (st *Stage) index(s *Sprite) int {
	for i, o := range st.sprites {
		if o == s {
			return i
		}
	}
	return -1
}
