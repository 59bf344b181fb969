package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// Hosts serving several dashboards (or several users) from one cache give
// each scope its own namespace so identical layouts never leak between them.
//
// Example usage:
//
//	// Per-user keys for private dashboards
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Shared keys for public dashboards
//	globalKeyer := NewDefaultKeyer()
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

// NormalizeKey generates a prefixed key for a normalize/compact result.
func (k *ScopedKeyer) NormalizeKey(layoutHash string, opts NormalizeKeyOpts) string {
	return k.prefix + k.inner.NormalizeKey(layoutHash, opts)
}

// DeriveKey generates a prefixed key for a breakpoint derivation.
func (k *ScopedKeyer) DeriveKey(layoutHash string, opts DeriveKeyOpts) string {
	return k.prefix + k.inner.DeriveKey(layoutHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
