// pkg/event/signal.go
package event

import (
	"slices"

	"github.com/google/uuid"
)

// Token identifies one listener registration on a Signal or Bus.
type Token string

func newToken() Token {
	return Token(uuid.NewString())
}

type listener[T any] struct {
	token Token
	fn    func(T)
}

// Signal wraps a base behavior with ordered pre and post listeners. Emit runs
// every pre listener, then the base, then every post listener, each group in
// registration order. The zero value is usable and has no base.
type Signal[T any] struct {
	base func(T)
	pre  []listener[T]
	post []listener[T]
}

// NewSignal creates a signal around base. base may be nil.
func NewSignal[T any](base func(T)) *Signal[T] {
	return &Signal[T]{base: base}
}

// ListenPre registers fn to run before the base behavior.
func (s *Signal[T]) ListenPre(fn func(T)) Token {
	tok := newToken()
	s.pre = append(s.pre, listener[T]{token: tok, fn: fn})
	return tok
}

// ListenPost registers fn to run after the base behavior.
func (s *Signal[T]) ListenPost(fn func(T)) Token {
	tok := newToken()
	s.post = append(s.post, listener[T]{token: tok, fn: fn})
	return tok
}

// StopListening removes the registrations for the given tokens from both
// lists and returns how many were removed. Unknown tokens are ignored.
func (s *Signal[T]) StopListening(tokens ...Token) int {
	if len(tokens) == 0 {
		return 0
	}
	drop := func(l listener[T]) bool {
		return slices.Contains(tokens, l.token)
	}
	before := len(s.pre) + len(s.post)
	s.pre = slices.DeleteFunc(s.pre, drop)
	s.post = slices.DeleteFunc(s.post, drop)
	return before - len(s.pre) - len(s.post)
}

// Listeners returns the number of registered pre and post listeners.
func (s *Signal[T]) Listeners() (pre, post int) {
	return len(s.pre), len(s.post)
}

// Emit invokes the signal with v. Listeners registered or removed while the
// emit is running take effect on the next Emit.
func (s *Signal[T]) Emit(v T) {
	pre := slices.Clone(s.pre)
	post := slices.Clone(s.post)

	for _, l := range pre {
		l.fn(v)
	}
	if s.base != nil {
		s.base(v)
	}
	for _, l := range post {
		l.fn(v)
	}
}
