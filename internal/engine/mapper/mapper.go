// Package mapper maps IANA time zone ids to platform time zones.
package mapper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/tzmap/internal/engine/cldr"
	"go.trai.ch/zerr"
)

// Mapper answers lookups against a table built once from a mapping document.
// It is safe for concurrent use.
type Mapper struct {
	table   *Table
	version domain.Version
	digest  string
	source  string
}

type config struct {
	policy    *domain.Policy
	logger    ports.Logger
	telemetry ports.Telemetry
	source    string
}

// Option configures a Mapper.
type Option func(*config)

// WithPolicy overrides the default build policy of the source.
func WithPolicy(p domain.Policy) Option {
	return func(c *config) {
		c.policy = &p
	}
}

// WithLogger sets the logger used while building the table.
func WithLogger(l ports.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTelemetry sets the telemetry used to record the build.
func WithTelemetry(t ports.Telemetry) Option {
	return func(c *config) {
		if t != nil {
			c.telemetry = t
		}
	}
}

// WithSourceName labels a mapper built by NewFromDocument.
func WithSourceName(name string) Option {
	return func(c *config) {
		c.source = name
	}
}

func newConfig(opts []Option) *config {
	c := &config{
		logger:    nopLogger{},
		telemetry: nopTelemetry{},
		source:    domain.SourceText,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New loads, parses and indexes the document produced by src.
// Construction is eager: any failure returns no mapper.
func New(ctx context.Context, src ports.Source, resolver ports.ZoneResolver, opts ...Option) (*Mapper, error) {
	if src == nil {
		return nil, zerr.Wrap(domain.ErrInvalidArgument, "mapping source must not be nil")
	}

	opts = append([]Option{WithSourceName(src.Name())}, opts...)
	cfg := newConfig(opts)

	policy := src.DefaultPolicy()
	if cfg.policy != nil {
		policy = *cfg.policy
	}

	ctx, vertex := cfg.telemetry.Record(ctx, "build mapper ("+cfg.source+")")
	data, err := src.Load(ctx)
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}

	m, err := build(data, resolver, policy, cfg)
	if err != nil {
		vertex.Complete(err)
		return nil, err
	}
	vertex.Log(domain.LogLevelInfo, "mapped "+strconv.Itoa(m.table.Len())+" time zone ids, version "+m.Version())
	vertex.Complete(nil)
	return m, nil
}

// NewFromDocument builds a mapper from an already loaded document.
// Without WithPolicy the lenient policy applies.
func NewFromDocument(data []byte, resolver ports.ZoneResolver, opts ...Option) (*Mapper, error) {
	cfg := newConfig(opts)
	policy := domain.LenientPolicy()
	if cfg.policy != nil {
		policy = *cfg.policy
	}
	return build(data, resolver, policy, cfg)
}

func build(data []byte, resolver ports.ZoneResolver, policy domain.Policy, cfg *config) (*Mapper, error) {
	if resolver == nil {
		return nil, domain.ErrMissingResolver
	}

	doc, err := cldr.Parse(data)
	if err != nil {
		return nil, err
	}

	table, err := Build(doc.Candidates, resolver, policy, cfg.logger)
	if err != nil {
		return nil, zerr.With(err, "source", cfg.source)
	}

	return &Mapper{
		table:   table,
		version: doc.Version(),
		digest:  fmt.Sprintf("%016x", xxhash.Sum64(data)),
		source:  cfg.source,
	}, nil
}

// MapID returns the platform zone for tzid, ignoring case.
func (m *Mapper) MapID(tzid string) (*domain.Zone, error) {
	if tzid == "" {
		return nil, domain.ErrInvalidArgument
	}
	z, ok := m.table.Lookup(tzid)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrKeyNotFound, tzid), "tzid", tzid)
	}
	return z, nil
}

// TryMapID is MapID without an error: it reports false for a miss or an empty tzid.
func (m *Mapper) TryMapID(tzid string) (*domain.Zone, bool) {
	if tzid == "" {
		return nil, false
	}
	return m.table.Lookup(tzid)
}

// AvailableIDs returns the mapped time zone ids in sorted order.
func (m *Mapper) AvailableIDs() []string {
	return m.table.IDs()
}

// AvailableZones returns the distinct platform zones in the mapping, sorted by id.
func (m *Mapper) AvailableZones() []*domain.Zone {
	return m.table.Zones()
}

// Version returns "{tzid version}.{platform version}".
func (m *Mapper) Version() string {
	return m.version.String()
}

// TZIDVersion returns the typeVersion attribute of the document.
func (m *Mapper) TZIDVersion() string {
	return m.version.TZID
}

// PlatformVersion returns the otherVersion attribute of the document.
func (m *Mapper) PlatformVersion() string {
	return m.version.Platform
}

// Digest returns the xxhash of the document the mapper was built from, in hex.
func (m *Mapper) Digest() string {
	return m.digest
}

// Source names the source the document came from.
func (m *Mapper) Source() string {
	return m.source
}
