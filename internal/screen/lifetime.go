package screen

import (
	"context"

	"github.com/google/uuid"
)

// Lifetime ties a screen's requests to the screen instance. Result messages
// carry the owner id; Owns rejects results from other instances and
// anything that arrives after Close.
type Lifetime struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewLifetime starts a lifetime derived from parent.
func NewLifetime(parent context.Context) *Lifetime {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Lifetime{id: uuid.NewString(), ctx: ctx, cancel: cancel}
}

// ID identifies the owning screen instance.
func (l *Lifetime) ID() string { return l.id }

// Context is cancelled when the screen closes.
func (l *Lifetime) Context() context.Context { return l.ctx }

// Owns reports whether a result tagged with owner should be applied.
func (l *Lifetime) Owns(owner string) bool {
	return !l.closed && owner == l.id
}

// Close cancels in-flight requests. It is safe to call more than once.
func (l *Lifetime) Close() {
	l.closed = true
	l.cancel()
}

// Closed reports whether Close was called.
func (l *Lifetime) Closed() bool { return l.closed }
