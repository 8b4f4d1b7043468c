// Package datamode decides, once per process, whether the app runs
// local-only or against the remote backend. Precedence: environment force
// flag, then the persisted user toggle, then remote-backed by default.
package datamode

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/evzhukov/lifevault/internal/common"
	"github.com/evzhukov/lifevault/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// Secret store keys owned by this package.
const (
	KeyAccessToken = "accessToken"
	KeyLocalOnly   = "localOnlyMode"
)

// SecretStore is the abstract string-keyed credential store the resolver
// persists through. Get returns nil (not an error) for a missing key.
type SecretStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Mode is the tri-state answer of Peek: unresolved callers must be able to
// tell "not decided yet" apart from a resolved remote mode.
type Mode int8

const (
	ModeUnknown Mode = iota
	ModeRemote
	ModeLocalOnly
)

func (m Mode) String() string {
	switch m {
	case ModeRemote:
		return "remote"
	case ModeLocalOnly:
		return "local-only"
	default:
		return "unknown"
	}
}

// Resolver performs the one-time data-mode resolution and caches it.
// The mutex is held across the first resolution, so concurrent first
// callers share a single persisted read/write rather than racing it.
type Resolver struct {
	store SecretStore
	force bool
	log   logging.Logger

	mu       sync.Mutex
	resolved bool
	local    bool
}

// NewResolver builds a resolver. forceLocalOnly carries the environment
// flag; when set it is authoritative and overwrites the persisted toggle.
func NewResolver(store SecretStore, forceLocalOnly bool, log logging.Logger) *Resolver {
	return &Resolver{store: store, force: forceLocalOnly, log: log}
}

// IsLocalOnly resolves the data mode, performing persisted I/O only on the
// first call. Subsequent calls return the cached value.
func (r *Resolver) IsLocalOnly(ctx context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return r.local, nil
	}

	local, err := r.resolve(ctx)
	if err != nil {
		return false, err
	}
	r.local = local
	r.resolved = true
	r.log.Info(ctx, "data mode resolved", "mode", r.peekLocked().String())
	return local, nil
}

func (r *Resolver) resolve(ctx context.Context) (bool, error) {
	if r.force {
		// The environment flag wins and replaces whatever the user chose
		// earlier; this is a one-directional override, not a merge.
		if err := r.store.Set(ctx, KeyLocalOnly, []byte("true")); err != nil {
			return false, fmt.Errorf("persisting forced local-only mode: %w", err)
		}
		return true, nil
	}

	stored, err := r.store.Get(ctx, KeyLocalOnly)
	if err != nil {
		return false, fmt.Errorf("reading local-only preference: %w", err)
	}
	switch strings.TrimSpace(string(stored)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	// No usable preference: default to remote-backed and persist that
	// choice so later reads are stable.
	if err := r.store.Set(ctx, KeyLocalOnly, []byte("false")); err != nil {
		return false, fmt.Errorf("persisting default data mode: %w", err)
	}
	return false, nil
}

// Peek returns the cached mode without touching storage. ModeUnknown means
// IsLocalOnly has not completed yet; callers needing a definite answer must
// use IsLocalOnly.
func (r *Resolver) Peek() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.peekLocked()
}

func (r *Resolver) peekLocked() Mode {
	if !r.resolved {
		return ModeUnknown
	}
	if r.local {
		return ModeLocalOnly
	}
	return ModeRemote
}

// SetLocalOnly records an explicit user toggle and updates the cache.
func (r *Resolver) SetLocalOnly(ctx context.Context, local bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	value := "false"
	if local {
		value = "true"
	}
	if err := r.store.Set(ctx, KeyLocalOnly, []byte(value)); err != nil {
		return fmt.Errorf("persisting local-only preference: %w", err)
	}
	r.local = local
	r.resolved = true
	return nil
}

// HasCredential reports whether a real access token is present. The
// local-only placeholder token does not count.
func (r *Resolver) HasCredential(ctx context.Context) (bool, error) {
	tok, err := r.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return false, fmt.Errorf("reading access token: %w", err)
	}
	s := strings.TrimSpace(string(tok))
	return s != "" && s != common.PlaceholderAccessToken, nil
}

// TokenClaims returns the unverified registered claims of the stored access
// token, for expiry display and staleness checks. Verification belongs to
// the backend; this never treats a parse failure as fatal data.
func (r *Resolver) TokenClaims(ctx context.Context) (*jwt.RegisteredClaims, error) {
	tok, err := r.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("reading access token: %w", err)
	}
	s := strings.TrimSpace(string(tok))
	if s == "" || s == common.PlaceholderAccessToken {
		return nil, common.ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(s, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	return claims, nil
}
