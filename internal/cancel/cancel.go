// Package cancel provides a cheaply-cloneable, edge-triggered-and-level-held
// cancellation token passed into analyzer passes by value, the same way the
// teacher threads progress callbacks through its filter passes without the
// callee ever holding a back-reference to its caller.
package cancel

import "sync/atomic"

// Token is a cooperative cancellation signal. The zero value is a valid,
// never-cancelled token. Token is safe to share across goroutines and is
// cheap to copy — copies observe the same underlying flag.
type Token struct {
	flag *atomic.Bool
}

// NewSource creates a fresh, live Token together with the cancel function
// that trips it. Once cancel is called, every Token derived from this
// source reports Cancelled() == true forever after (level-held).
func NewSource() (Token, func()) {
	flag := &atomic.Bool{}
	return Token{flag: flag}, func() { flag.Store(true) }
}

// Cancelled reports whether the token has been tripped. A zero-value Token
// (nil flag) is never cancelled, so helper functions can accept a Token by
// value without requiring callers to construct one for untestable paths.
func (t Token) Cancelled() bool {
	return t.flag != nil && t.flag.Load()
}
