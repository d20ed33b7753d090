package cache

import (
	"context"
	"time"
)

// TTLs for the two cached stages. Solve results are deterministic for a
// given instance, so they can live long; rendered artifacts are cheap to
// rebuild and expire sooner.
const (
	TTLSolve    = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage backend for pipeline results.
//
// Get reports (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Backends treat corrupt or expired entries as misses rather than errors,
// so callers only see errors for real I/O failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SolveKeyOpts captures everything besides the instance itself that changes
// a solve result.
type SolveKeyOpts struct {
	Algorithm string `json:"algorithm"`
	MaxStates int    `json:"max_states"`
	Limit     int    `json:"limit"`
}

// ArtifactKeyOpts captures the rendering parameters for an artifact key.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the two pipeline stages. Implementations
// must be deterministic: the same inputs always yield the same key.
type Keyer interface {
	// SolveKey keys a solve result by the instance hash and solver options.
	SolveKey(instanceHash string, opts SolveKeyOpts) string

	// ArtifactKey keys a rendered artifact by the solve hash and format.
	ArtifactKey(solveHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes option structs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SolveKey generates a key for a solve result.
func (k *DefaultKeyer) SolveKey(instanceHash string, opts SolveKeyOpts) string {
	return hashKey("solve", instanceHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", solveHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
