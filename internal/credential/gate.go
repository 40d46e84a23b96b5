// Package credential guards every API call behind the presence of a stored
// bearer token.
package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/beplus/beplus/internal/secrets"
)

// DefaultKey is the secure-storage key the token lives under.
const DefaultKey = "authToken"

// ErrAuthMissing means no token is stored. It is terminal for the current
// operation: no request may be sent.
var ErrAuthMissing = errors.New("authentication token not found")

// Gate reads the bearer token from secure storage.
type Gate struct {
	store secrets.Store
	key   string
}

// NewGate creates a Gate reading key from store. An empty key selects DefaultKey.
func NewGate(store secrets.Store, key string) *Gate {
	if key == "" {
		key = DefaultKey
	}
	return &Gate{store: store, key: key}
}

// Key returns the storage key this gate reads.
func (g *Gate) Key() string {
	return g.key
}

// AcquireToken returns the stored token, ErrAuthMissing when there is none,
// or a wrapped storage error when the store itself failed.
func (g *Gate) AcquireToken(ctx context.Context) (string, error) {
	if g == nil || g.store == nil {
		return "", ErrAuthMissing
	}

	token, err := g.store.Get(ctx, g.key)
	if err != nil {
		if errors.Is(err, secrets.ErrNotFound) {
			return "", ErrAuthMissing
		}
		return "", fmt.Errorf("read credential %q: %w", g.key, err)
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrAuthMissing
	}
	return token, nil
}
