package domain

import (
	"os"
	"time"
)

const (
	// DefaultResourceURI is the canonical location of the CLDR windowsZones.xml document.
	DefaultResourceURI = "https://raw.githubusercontent.com/unicode-org/cldr/main/common/supplemental/windowsZones.xml"

	// DefaultTimeout bounds a single download of the online document.
	DefaultTimeout = 5 * time.Second

	// DefaultCacheTTL is how long a downloaded document is reused before it is fetched again.
	DefaultCacheTTL = 24 * time.Hour

	// AlwaysRefetch is the CacheTTL that never reuses a cached copy.
	AlwaysRefetch time.Duration = -1

	// DefaultCacheFileName is used when the resource URI has no usable path segment.
	DefaultCacheFileName = "windowsZones.xml"

	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "tzmap.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// Source names.
const (
	SourceStatic   = "static"
	SourceOnline   = "online"
	SourceFallback = "fallback"
	SourceFile     = "file"
	SourceText     = "text"
	SourceReader   = "reader"
)

// DefaultCacheDirectory returns the directory used for the online document cache.
func DefaultCacheDirectory() string {
	return os.TempDir()
}

// CacheRecord describes the local copy of a remote document.
type CacheRecord struct {
	URI     string
	Path    string
	ModTime time.Time
}

// Age returns how old the cached copy is at now.
func (r CacheRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.ModTime)
}

// Fresh reports whether the cached copy may still be used at now.
// A negative ttl means the copy is never fresh.
func (r CacheRecord) Fresh(now time.Time, ttl time.Duration) bool {
	return ttl >= 0 && r.Age(now) <= ttl
}
