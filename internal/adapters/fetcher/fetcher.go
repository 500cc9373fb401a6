// Package fetcher retrieves remote mapping documents through a file cache.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sdassow/atomic"
	"go.trai.ch/tzmap/internal/adapters/logger"
	"go.trai.ch/tzmap/internal/adapters/telemetry"
	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/zerr"
)

// lockRetryDelay is how often a blocked process polls the cache lock.
const lockRetryDelay = 50 * time.Millisecond

// Fetcher implements ports.Fetcher. A cached copy younger than the TTL is
// returned without touching the network; otherwise the document is downloaded,
// written atomically to the cache and read back.
type Fetcher struct {
	client    *retryablehttp.Client
	ttl       time.Duration
	dir       string
	now       func() time.Time
	logger    ports.Logger
	telemetry ports.Telemetry
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the underlying HTTP client. Its timeout is overridden
// by the configured one.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		timeout := f.client.HTTPClient.Timeout
		clone := *c
		clone.Timeout = timeout
		f.client.HTTPClient = &clone
	}
}

// WithClock sets the time source used for freshness checks.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l ports.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithTelemetry sets the telemetry used to record downloads and cache hits.
func WithTelemetry(t ports.Telemetry) Option {
	return func(f *Fetcher) {
		f.telemetry = t
	}
}

// New creates a Fetcher using the timeout, TTL and cache directory of opts.
// Unset values fall back to the defaults.
func New(opts domain.Options, options ...Option) *Fetcher {
	opts = opts.WithDefaults()

	f := &Fetcher{
		client: &retryablehttp.Client{
			HTTPClient:   &http.Client{Timeout: opts.Timeout},
			ErrorHandler: retryablehttp.PassthroughErrorHandler,
			// Retries are disabled: a failed download is reported to the caller.
			CheckRetry: func(_ context.Context, _ *http.Response, err error) (bool, error) {
				return false, err
			},
			RetryMax: 0,
		},
		ttl:       opts.CacheTTL,
		dir:       filepath.Clean(opts.CacheDirectory),
		now:       time.Now,
		logger:    logger.Discard(),
		telemetry: telemetry.NewNoop(),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// TTL returns how long a cached copy is considered fresh.
func (f *Fetcher) TTL() time.Duration {
	return f.ttl
}

// CachePath returns the cache file used for uri.
func (f *Fetcher) CachePath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", zerr.With(zerr.Wrap(errors.Join(domain.ErrFetchFailed, err), "invalid resource uri"), "uri", uri)
	}
	return filepath.Join(f.dir, fileName(u)), nil
}

func fileName(u *url.URL) string {
	name := path.Base(u.Path)
	switch name {
	case "", "/", ".":
		return domain.DefaultCacheFileName
	default:
		return name
	}
}

// Record reports the cached copy of uri, if any.
func (f *Fetcher) Record(uri string) (domain.CacheRecord, bool) {
	p, err := f.CachePath(uri)
	if err != nil {
		return domain.CacheRecord{}, false
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return domain.CacheRecord{}, false
	}
	return domain.CacheRecord{URI: uri, Path: p, ModTime: info.ModTime()}, true
}

// Retrieve returns the document at uri, from the cache when it is still fresh.
func (f *Fetcher) Retrieve(ctx context.Context, uri string) ([]byte, error) {
	ctx, vertex := f.telemetry.Record(ctx, "fetch "+uri)
	data, err := f.retrieve(ctx, uri, vertex)
	vertex.Complete(err)
	return data, err
}

func (f *Fetcher) retrieve(ctx context.Context, uri string, vertex ports.Vertex) ([]byte, error) {
	p, err := f.CachePath(uri)
	if err != nil {
		return nil, err
	}

	if data, ok, err := f.readFresh(uri, p); ok || err != nil {
		if ok {
			vertex.Cached()
		}
		return data, err
	}

	if err := os.MkdirAll(f.dir, domain.DirPerm); err != nil {
		return nil, fetchFailed(err, "failed to create cache directory", uri)
	}

	lock := flock.New(p + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		if err == nil {
			err = ctx.Err()
		}
		return nil, fetchFailed(err, "failed to lock cache file", uri)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Another process may have refreshed the copy while we waited.
	if data, ok, err := f.readFresh(uri, p); ok || err != nil {
		if ok {
			vertex.Cached()
		}
		return data, err
	}

	vertex.Log(domain.LogLevelInfo, "downloading "+uri)
	if err := f.download(ctx, uri, p); err != nil {
		return nil, err
	}

	//nolint:gosec // path is derived from the configured cache directory
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fetchFailed(err, "failed to read back cached document", uri)
	}
	f.logger.Debug(fmt.Sprintf("cached %s at %s", uri, p))
	return data, nil
}

// readFresh returns the cached bytes when the copy at p exists and is within the TTL.
func (f *Fetcher) readFresh(uri, p string) ([]byte, bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.logger.Debug(fmt.Sprintf("ignoring unreadable cache entry %s: %v", p, err))
		}
		return nil, false, nil
	}

	rec := domain.CacheRecord{URI: uri, Path: p, ModTime: info.ModTime()}
	if info.IsDir() || !rec.Fresh(f.now(), f.ttl) {
		return nil, false, nil
	}

	//nolint:gosec // path is derived from the configured cache directory
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false, fetchFailed(err, "failed to read cached document", uri)
	}
	f.logger.Debug(fmt.Sprintf("using cached %s (age %s)", uri, rec.Age(f.now()).Round(time.Second)))
	return data, true, nil
}

func (f *Fetcher) download(ctx context.Context, uri, p string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fetchFailed(err, "failed to create request", uri)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return fetchFailed(err, "request failed", uri)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err := zerr.Wrap(domain.ErrFetchFailed, "unexpected response status")
		err = zerr.With(err, "uri", uri)
		return zerr.With(err, "status_code", resp.StatusCode)
	}

	if err := atomic.WriteFile(p, resp.Body, atomic.DefaultFileMode(domain.FilePerm)); err != nil {
		return fetchFailed(err, "failed to write cached document", uri)
	}
	return nil
}

func fetchFailed(cause error, msg, uri string) error {
	err := zerr.Wrap(errors.Join(domain.ErrFetchFailed, cause), msg)
	return zerr.With(err, "uri", uri)
}
