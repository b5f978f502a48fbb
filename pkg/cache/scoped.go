package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The HTTP server and
// the CLI share one Redis instance by scoping their keys:
//
//	cliKeys := NewScopedKeyer(NewDefaultKeyer(), "cli:")
//	apiKeys := NewScopedKeyer(NewDefaultKeyer(), "api:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner; a nil inner uses the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// RuleSetKey implements [Keyer].
func (k *ScopedKeyer) RuleSetKey(contentHash, wildcard string) string {
	return k.prefix + k.inner.RuleSetKey(contentHash, wildcard)
}

// MapKey implements [Keyer].
func (k *ScopedKeyer) MapKey(contentHash string) string {
	return k.prefix + k.inner.MapKey(contentHash)
}
