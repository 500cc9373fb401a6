package domain

import "time"

// Policy controls how strictly a mapping table is built.
type Policy struct {
	// ThrowOnDuplicateKey fails the build when a time zone id occurs twice.
	// Otherwise the first occurrence wins.
	ThrowOnDuplicateKey bool
	// ThrowOnNonExisting fails the build when a platform id cannot be resolved.
	// Otherwise the candidate is dropped.
	ThrowOnNonExisting bool
}

// StrictPolicy is the default for the bundled resource, which is verified at build time.
func StrictPolicy() Policy {
	return Policy{ThrowOnDuplicateKey: true, ThrowOnNonExisting: true}
}

// LenientPolicy is the default for custom and online data, which is not under our control.
func LenientPolicy() Policy {
	return Policy{}
}

// Options holds construction-time configuration for mappers and the fetcher.
// Zero values mean "use the default"; nil policy flags mean "use the source default".
type Options struct {
	ThrowOnDuplicateKey *bool
	ThrowOnNonExisting  *bool
	Timeout             time.Duration
	ResourceURI         string
	CacheTTL            time.Duration
	CacheDirectory      string
}

// Policy returns def with any explicitly configured flags applied.
func (o Options) Policy(def Policy) Policy {
	if o.ThrowOnDuplicateKey != nil {
		def.ThrowOnDuplicateKey = *o.ThrowOnDuplicateKey
	}
	if o.ThrowOnNonExisting != nil {
		def.ThrowOnNonExisting = *o.ThrowOnNonExisting
	}
	return def
}

// WithDefaults returns a copy of o where unset network and cache settings are filled in.
// A zero CacheTTL is unset; use AlwaysRefetch to disable reuse of the cached copy.
func (o Options) WithDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.ResourceURI == "" {
		o.ResourceURI = DefaultResourceURI
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.CacheDirectory == "" {
		o.CacheDirectory = DefaultCacheDirectory()
	}
	return o
}

// Config is the full runtime configuration: which source to map from plus Options.
type Config struct {
	Source  string
	File    string
	Options Options
}
