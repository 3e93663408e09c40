// pkg/render/batch.go
package render

import "slices"

// SpriteBatch is an ordered list of sprites drawn in one call.
type SpriteBatch struct {
	sprites []*Sprite
}

// Add appends s. Duplicates are not checked.
func (b *SpriteBatch) Add(s *Sprite) {
	b.sprites = append(b.sprites, s)
}

// Remove drops the first occurrence of s and reports whether it was present.
func (b *SpriteBatch) Remove(s *Sprite) bool {
	i := slices.Index(b.sprites, s)
	if i < 0 {
		return false
	}
	b.sprites = slices.Delete(b.sprites, i, i+1)
	return true
}

// Contains reports whether s is in the batch.
func (b *SpriteBatch) Contains(s *Sprite) bool {
	return slices.Contains(b.sprites, s)
}

// Len returns the number of sprites.
func (b *SpriteBatch) Len() int { return len(b.sprites) }

// Sprites returns the batch contents. Callers must not modify the slice.
func (b *SpriteBatch) Sprites() []*Sprite { return b.sprites }

