package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tzmap/internal/core/domain"
)

func TestVersion_String(t *testing.T) {
	assert.Equal(t, "zyx.xyz", domain.Version{TZID: "zyx", Platform: "xyz"}.String())
	assert.Equal(t, ".", domain.Version{}.String())
	assert.Equal(t, "2021a.", domain.Version{TZID: "2021a"}.String())
}

func TestResolveStatus(t *testing.T) {
	assert.True(t, domain.Resolved.OK())
	assert.False(t, domain.NotFound.OK())
	assert.False(t, domain.Invalid.OK())
	assert.Equal(t, "not found", domain.NotFound.String())
	assert.Equal(t, "unknown", domain.ResolveStatus(42).String())
}

func TestZone_String(t *testing.T) {
	var z *domain.Zone
	assert.Empty(t, z.String())
	assert.Equal(t, "UTC", (&domain.Zone{ID: "UTC"}).String())
}

func TestOptions_Policy(t *testing.T) {
	yes, no := true, false

	t.Run("unset keeps default", func(t *testing.T) {
		assert.Equal(t, domain.StrictPolicy(), domain.Options{}.Policy(domain.StrictPolicy()))
		assert.Equal(t, domain.LenientPolicy(), domain.Options{}.Policy(domain.LenientPolicy()))
	})

	t.Run("explicit flags override", func(t *testing.T) {
		opts := domain.Options{ThrowOnDuplicateKey: &no, ThrowOnNonExisting: &yes}
		got := opts.Policy(domain.StrictPolicy())
		assert.False(t, got.ThrowOnDuplicateKey)
		assert.True(t, got.ThrowOnNonExisting)
	})
}

func TestOptions_WithDefaults(t *testing.T) {
	got := domain.Options{}.WithDefaults()
	assert.Equal(t, domain.DefaultTimeout, got.Timeout)
	assert.Equal(t, domain.DefaultResourceURI, got.ResourceURI)
	assert.Equal(t, domain.DefaultCacheTTL, got.CacheTTL)
	assert.Equal(t, domain.DefaultCacheDirectory(), got.CacheDirectory)

	custom := domain.Options{Timeout: time.Second, CacheDirectory: "/var/cache"}.WithDefaults()
	assert.Equal(t, time.Second, custom.Timeout)
	assert.Equal(t, "/var/cache", custom.CacheDirectory)

	refetch := domain.Options{CacheTTL: domain.AlwaysRefetch}.WithDefaults()
	assert.Equal(t, domain.AlwaysRefetch, refetch.CacheTTL)
}

func TestCacheRecord_Fresh(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := domain.CacheRecord{ModTime: now.Add(-time.Hour)}

	assert.Equal(t, time.Hour, rec.Age(now))
	assert.True(t, rec.Fresh(now, time.Hour))
	assert.True(t, rec.Fresh(now, 2*time.Hour))
	assert.False(t, rec.Fresh(now, time.Minute))

	justWritten := domain.CacheRecord{ModTime: now}
	assert.True(t, justWritten.Fresh(now, 0))
	assert.False(t, justWritten.Fresh(now, domain.AlwaysRefetch))
}
