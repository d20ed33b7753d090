package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing a Redis instance get isolated namespaces.
//
// Example usage:
//
//	// Per-troupe keys on a shared server
//	troupeKeyer := NewScopedKeyer(NewDefaultKeyer(), "troupe:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SolveKey generates a prefixed key for a solve result.
func (k *ScopedKeyer) SolveKey(instanceHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(instanceHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(solveHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solveHash, opts)
}
