// Package platform resolves Windows time zone ids to platform zone descriptors.
package platform

import (
	_ "embed"
	"errors"
	"sort"
	"sync"
	"time"

	// Locations must load the same way on every host, including ones without a zoneinfo database.
	_ "time/tzdata"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogDTO struct {
	Zones []entryDTO `yaml:"zones"`
}

type entryDTO struct {
	ID       string `yaml:"id"`
	Location string `yaml:"location"`
}

type resolved struct {
	zone   *domain.Zone
	status domain.ResolveStatus
}

// Resolver implements ports.ZoneResolver over a catalog of Windows zone ids.
// Descriptors are materialized on first use and shared afterwards.
type Resolver struct {
	locations map[string]string

	mu    sync.Mutex
	cache map[string]resolved
}

// New returns a Resolver over the embedded catalog.
func New() (*Resolver, error) {
	return NewFromCatalog(defaultCatalog)
}

// NewFromCatalog returns a Resolver over a YAML catalog of the form
//
//	zones:
//	  - id: "W. Europe Standard Time"
//	    location: Europe/Berlin
func NewFromCatalog(data []byte) (*Resolver, error) {
	var dto catalogDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.Wrap(errors.Join(domain.ErrInvalidCatalog, err), "failed to parse platform zone catalog")
	}

	locations := make(map[string]string, len(dto.Zones))
	for _, e := range dto.Zones {
		if e.ID == "" {
			return nil, zerr.Wrap(domain.ErrInvalidCatalog, "catalog entry without id")
		}
		if _, ok := locations[e.ID]; ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidCatalog, "duplicate catalog entry"), "platform_id", e.ID)
		}
		locations[e.ID] = e.Location
	}

	return &Resolver{
		locations: locations,
		cache:     make(map[string]resolved, len(locations)),
	}, nil
}

// Resolve returns the descriptor for a Windows time zone id. Ids are matched exactly.
func (r *Resolver) Resolve(id string) (*domain.Zone, domain.ResolveStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.cache[id]; ok {
		return res.zone, res.status
	}

	var res resolved
	name, ok := r.locations[id]
	switch {
	case !ok:
		res.status = domain.NotFound
	case name == "":
		res.status = domain.Invalid
	default:
		loc, err := time.LoadLocation(name)
		if err != nil {
			res.status = domain.Invalid
			break
		}
		res.zone = &domain.Zone{ID: id, Location: loc}
		res.status = domain.Resolved
	}

	r.cache[id] = res
	return res.zone, res.status
}

// IDs returns the catalog ids in sorted order.
func (r *Resolver) IDs() []string {
	ids := make([]string, 0, len(r.locations))
	for id := range r.locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
