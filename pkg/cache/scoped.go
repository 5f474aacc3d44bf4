package cache

// ScopedKeyer prefixes every key of an inner keyer. Use it to keep
// deployments or tenants that share a Redis server apart:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) AnalysisKey(kind string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(kind, opts)
}

func (k *ScopedKeyer) ArtifactKey(analysisKey string, format string) string {
	return k.prefix + k.inner.ArtifactKey(analysisKey, format)
}
