// pkg/render/sprite.go
package render

import (
	"image"
	"image/color"

	"github.com/opd-ai/go-spaceman/pkg/physics"
)

// BaseState is the sprite state every sprite falls back to.
const BaseState = "life-static"

// DefaultFramesBetweenChange is the animation cadence when none is configured.
const DefaultFramesBetweenChange = 5

// Texture is a decoded image with the scale it should be drawn at. Backends
// convert and cache it keyed by pointer.
type Texture struct {
	Name  string
	Image image.Image
	Scale float64
}

// NewTexture creates a texture. A non-positive scale is treated as 1.
func NewTexture(name string, img image.Image, scale float64) *Texture {
	if scale <= 0 {
		scale = 1
	}
	return &Texture{Name: name, Image: img, Scale: scale}
}

// Size returns the scaled width and height.
func (t *Texture) Size() (w, h float64) {
	if t == nil || t.Image == nil {
		return 0, 0
	}
	b := t.Image.Bounds()
	return float64(b.Dx()) * t.Scale, float64(b.Dy()) * t.Scale
}

// Sprite is a positioned, rotated texture with named animation states.
type Sprite struct {
	Center physics.Vector2D
	Angle  float64 // degrees, counter-clockwise
	Scale  float64
	Tint   color.Color

	states       map[string][]*Texture
	state        string
	texture      *Texture
	frame        int
	index        int
	changeFrames int
}

// NewSprite creates a sprite from its states and enters BaseState.
// changeFrames controls how many updates each animation frame lasts.
func NewSprite(states map[string][]*Texture, changeFrames int) *Sprite {
	if changeFrames <= 0 {
		changeFrames = DefaultFramesBetweenChange
	}
	s := &Sprite{Scale: 1, states: states, changeFrames: changeFrames}
	s.SetState(BaseState)
	return s
}

// SingleFrame creates a sprite with one static texture.
func SingleFrame(t *Texture) *Sprite {
	return NewSprite(map[string][]*Texture{BaseState: {t}}, 0)
}

// State returns the current state name.
func (s *Sprite) State() string { return s.state }

// States returns the names of every known state.
func (s *Sprite) States() []string {
	names := make([]string, 0, len(s.states))
	for name := range s.states {
		names = append(names, name)
	}
	return names
}

// SetState switches to the named state, falling back to BaseState when it
// is unknown.
func (s *Sprite) SetState(state string) {
	if s.state == state && s.texture != nil {
		return
	}
	if _, ok := s.states[state]; !ok {
		state = BaseState
	}
	s.state = state
	s.frame = 0
	s.index = 0
	s.texture = nil
	if frames := s.states[state]; len(frames) > 0 {
		s.texture = frames[0]
	}
}

// SetFrameRate changes the animation cadence.
func (s *Sprite) SetFrameRate(frames int) {
	if frames > 0 {
		s.changeFrames = frames
	}
}

// Animated reports whether the current state has more than one frame.
func (s *Sprite) Animated() bool {
	return len(s.states[s.state]) > 1
}

// Texture returns the current frame.
func (s *Sprite) Texture() *Texture { return s.texture }

// Update advances the animation by one frame.
func (s *Sprite) Update() {
	frames := s.states[s.state]
	if len(frames) <= 1 {
		return
	}
	s.frame++
	if s.frame%s.changeFrames == 0 {
		s.index = (s.index + 1) % len(frames)
		s.texture = frames[s.index]
	}
}

// Size returns the drawn width and height.
func (s *Sprite) Size() (w, h float64) {
	w, h = s.texture.Size()
	return w * s.Scale, h * s.Scale
}

// Bounds returns the unrotated screen rectangle of the sprite.
func (s *Sprite) Bounds() physics.Rectangle {
	w, h := s.Size()
	return physics.RectAround(s.Center, w, h)
}
