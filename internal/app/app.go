// Package app implements the application layer for tzmap.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.trai.ch/tzmap/internal/adapters/fetcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/tzmap/internal/adapters/source"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/tzmap/internal/engine/mapper"
	"go.trai.ch/tzmap/internal/engine/registry"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	resolver     ports.ZoneResolver
	telemetry    ports.Telemetry
	fetchOptions []fetcher.Option
	now          func() time.Time
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, resolver ports.ZoneResolver, telemetry ports.Telemetry) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		resolver:     resolver,
		telemetry:    telemetry,
		now:          time.Now,
	}
}

// WithFetcherOptions adds options to every fetcher the App creates.
// This is primarily used for testing to inject an HTTP client or a clock.
func (a *App) WithFetcherOptions(opts ...fetcher.Option) *App {
	a.fetchOptions = append(a.fetchOptions, opts...)
	return a
}

// WithClock sets the time source used to report cache age.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Options are the per-invocation settings given on the command line.
// They take precedence over the configuration file.
type Options struct {
	ConfigPath string
	Source     string
	File       string
}

// session is the resolved configuration of one invocation.
type session struct {
	cfg      *domain.Config
	fetcher  *fetcher.Fetcher
	registry *registry.Registry
}

func (a *App) newSession(opts Options) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get current working directory")
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath, cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.File != "" {
		cfg.File = opts.File
		if opts.Source == "" {
			cfg.Source = domain.SourceFile
		}
	}
	if opts.Source != "" {
		cfg.Source = opts.Source
	}
	cfg.Options = cfg.Options.WithDefaults()

	f := fetcher.New(cfg.Options, append([]fetcher.Option{
		fetcher.WithLogger(a.logger),
		fetcher.WithTelemetry(a.telemetry),
	}, a.fetchOptions...)...)

	reg := registry.New(
		a.resolver,
		source.Static(),
		source.Online(f, cfg.Options.ResourceURI),
		cfg.Options,
		registry.WithLogger(a.logger),
		registry.WithTelemetry(a.telemetry),
	)

	return &session{cfg: cfg, fetcher: f, registry: reg}, nil
}

func (s *session) mapper(ctx context.Context) (*mapper.Mapper, error) {
	switch s.cfg.Source {
	case domain.SourceStatic:
		return s.registry.Static(ctx)
	case domain.SourceOnline:
		return s.registry.Online(ctx)
	case domain.SourceFallback:
		return s.registry.OnlineWithFallback(ctx)
	case domain.SourceFile:
		if s.cfg.File == "" {
			return nil, zerr.Wrap(domain.ErrMissingSourceFile, "no mapping document given")
		}
		return s.registry.Custom(ctx, source.File(s.cfg.File))
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownSource, s.cfg.Source), "source", s.cfg.Source)
	}
}

func (a *App) loadMapper(ctx context.Context, opts Options) (*mapper.Mapper, error) {
	s, err := a.newSession(opts)
	if err != nil {
		return nil, err
	}
	return s.mapper(ctx)
}

// MapResult is the outcome of mapping one time zone id.
type MapResult struct {
	TZID string
	Zone *domain.Zone
}

// Found reports whether the id was mapped.
func (r MapResult) Found() bool {
	return r.Zone != nil
}

// Map maps every id in ids. All results are returned; if any id is unmapped
// the error wraps domain.ErrUnmappedIDs.
func (a *App) Map(ctx context.Context, opts Options, ids []string) ([]MapResult, error) {
	m, err := a.loadMapper(ctx, opts)
	if err != nil {
		return nil, err
	}

	results := make([]MapResult, 0, len(ids))
	var missing []string
	for _, id := range ids {
		z, ok := m.TryMapID(id)
		if !ok {
			missing = append(missing, id)
		}
		results = append(results, MapResult{TZID: id, Zone: z})
	}

	if len(missing) > 0 {
		err := zerr.Wrap(domain.ErrUnmappedIDs, strings.Join(missing, ", "))
		return results, zerr.With(err, "source", m.Source())
	}
	return results, nil
}

// IDs returns every time zone id the selected mapper knows.
func (a *App) IDs(ctx context.Context, opts Options) ([]string, error) {
	m, err := a.loadMapper(ctx, opts)
	if err != nil {
		return nil, err
	}
	return m.AvailableIDs(), nil
}

// Zones returns the distinct platform zones of the selected mapper.
func (a *App) Zones(ctx context.Context, opts Options) ([]*domain.Zone, error) {
	m, err := a.loadMapper(ctx, opts)
	if err != nil {
		return nil, err
	}
	return m.AvailableZones(), nil
}

// Info describes a mapper.
type Info struct {
	Source          string
	Version         string
	TZIDVersion     string
	PlatformVersion string
	Digest          string
	IDs             int
	Zones           int
}

// Info reports the versions and size of the selected mapper.
func (a *App) Info(ctx context.Context, opts Options) (*Info, error) {
	m, err := a.loadMapper(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Info{
		Source:          m.Source(),
		Version:         m.Version(),
		TZIDVersion:     m.TZIDVersion(),
		PlatformVersion: m.PlatformVersion(),
		Digest:          m.Digest(),
		IDs:             len(m.AvailableIDs()),
		Zones:           len(m.AvailableZones()),
	}, nil
}

// Warm builds the static and online mappers, which primes the download cache.
func (a *App) Warm(ctx context.Context, opts Options) error {
	s, err := a.newSession(opts)
	if err != nil {
		return err
	}
	if err := s.registry.Warm(ctx); err != nil {
		return zerr.Wrap(err, "failed to warm mappers")
	}
	a.logger.Info(fmt.Sprintf("cached %s in %s", s.cfg.Options.ResourceURI, s.cfg.Options.CacheDirectory))
	return nil
}

// CacheStatus describes the local copy of the online document.
type CacheStatus struct {
	URI     string
	Path    string
	Present bool
	ModTime time.Time
	Age     time.Duration
	TTL     time.Duration
	Fresh   bool
}

// Cache reports the state of the online document cache without touching the network.
func (a *App) Cache(_ context.Context, opts Options) (*CacheStatus, error) {
	s, err := a.newSession(opts)
	if err != nil {
		return nil, err
	}

	uri := s.cfg.Options.ResourceURI
	path, err := s.fetcher.CachePath(uri)
	if err != nil {
		return nil, err
	}

	status := &CacheStatus{URI: uri, Path: path, TTL: s.fetcher.TTL()}
	rec, ok := s.fetcher.Record(uri)
	if !ok {
		return status, nil
	}

	now := a.now()
	status.Present = true
	status.ModTime = rec.ModTime
	status.Age = rec.Age(now)
	status.Fresh = rec.Fresh(now, status.TTL)
	return status, nil
}

// loggingConfigurer is implemented by loggers whose format and level can change at runtime.
type loggingConfigurer interface {
	SetJSON(enable bool)
	SetLevel(level domain.LogLevel)
}

// verboseTelemetry is implemented by telemetry that can render progress when asked to.
type verboseTelemetry interface {
	SetVerbose(enable bool)
}

// ConfigureLogging switches the logger to JSON output and/or debug level when supported.
// In verbose mode the telemetry also reports finished fetch and build steps.
func (a *App) ConfigureLogging(jsonOutput, verbose bool) {
	if vt, ok := a.telemetry.(verboseTelemetry); ok {
		vt.SetVerbose(verbose)
	}

	lc, ok := a.logger.(loggingConfigurer)
	if !ok {
		return
	}
	lc.SetJSON(jsonOutput)
	if verbose {
		lc.SetLevel(domain.LogLevelDebug)
	}
}

// IsUnmapped reports whether err was caused by ids without a mapping.
func IsUnmapped(err error) bool {
	return errors.Is(err, domain.ErrUnmappedIDs)
}
