// Package registry builds mappers on demand and keeps them for reuse.
package registry

import (
	"context"
	"errors"
	"sync"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/tzmap/internal/engine/mapper"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// memo holds the outcome of the first construction of one mapper flavor.
type memo struct {
	mu   sync.Mutex
	done bool
	m    *mapper.Mapper
	err  error
}

func (c *memo) get(build func() (*mapper.Mapper, error)) (*mapper.Mapper, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.done {
		c.m, c.err = build()
		c.done = true
	}
	return c.m, c.err
}

// Registry is a caller-owned factory for the static, online and fallback
// mappers. Each flavor is built at most once; its mapper or its error is
// returned to every later caller. A Registry is safe for concurrent use.
type Registry struct {
	resolver  ports.ZoneResolver
	static    ports.Source
	online    ports.Source
	opts      domain.Options
	logger    ports.Logger
	telemetry ports.Telemetry

	staticMemo   memo
	onlineMemo   memo
	fallbackMemo memo
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger passed to every mapper and used for fallback warnings.
func WithLogger(l ports.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// WithTelemetry sets the telemetry passed to every mapper.
func WithTelemetry(t ports.Telemetry) Option {
	return func(r *Registry) {
		r.telemetry = t
	}
}

// New creates a Registry. static and online produce the documents of the
// respective flavors; opts may override their default build policies.
func New(resolver ports.ZoneResolver, static, online ports.Source, opts domain.Options, options ...Option) *Registry {
	r := &Registry{
		resolver: resolver,
		static:   static,
		online:   online,
		opts:     opts,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *Registry) build(ctx context.Context, src ports.Source) (*mapper.Mapper, error) {
	if src == nil {
		return nil, zerr.Wrap(domain.ErrInvalidArgument, "mapping source must not be nil")
	}
	return mapper.New(ctx, src, r.resolver,
		mapper.WithPolicy(r.opts.Policy(src.DefaultPolicy())),
		mapper.WithLogger(r.logger),
		mapper.WithTelemetry(r.telemetry),
	)
}

// Static returns the mapper over the bundled document.
func (r *Registry) Static(ctx context.Context) (*mapper.Mapper, error) {
	return r.staticMemo.get(func() (*mapper.Mapper, error) {
		return r.build(ctx, r.static)
	})
}

// Online returns the mapper over the remote document.
func (r *Registry) Online(ctx context.Context) (*mapper.Mapper, error) {
	return r.onlineMemo.get(func() (*mapper.Mapper, error) {
		return r.build(ctx, r.online)
	})
}

// OnlineWithFallback returns the online mapper, or the static one if the
// online mapper cannot be built. The two are never merged.
func (r *Registry) OnlineWithFallback(ctx context.Context) (*mapper.Mapper, error) {
	return r.fallbackMemo.get(func() (*mapper.Mapper, error) {
		m, err := r.Online(ctx)
		if err == nil {
			return m, nil
		}
		if r.logger != nil {
			r.logger.Warn("online mapping unavailable, using bundled data: " + err.Error())
		}
		return r.Static(ctx)
	})
}

// Custom builds a new mapper from src every time it is called.
func (r *Registry) Custom(ctx context.Context, src ports.Source) (*mapper.Mapper, error) {
	return r.build(ctx, src)
}

// Warm builds the static and online mappers concurrently and reports the
// errors of both.
func (r *Registry) Warm(ctx context.Context) error {
	var (
		g    errgroup.Group
		errs [2]error
	)
	g.Go(func() error {
		_, errs[0] = r.Static(ctx)
		return errs[0]
	})
	g.Go(func() error {
		_, errs[1] = r.Online(ctx)
		return errs[1]
	})
	if err := g.Wait(); err != nil {
		return errors.Join(errs[:]...)
	}
	return nil
}
