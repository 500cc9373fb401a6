package mapper

import (
	"fmt"
	"sort"

	"go.trai.ch/tzmap/internal/core/domain"
	"go.trai.ch/tzmap/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/text/cases"
)

// Table is an immutable, case-insensitive map from time zone id to platform zone.
type Table struct {
	zones map[string]*domain.Zone
	ids   []string
}

// fold returns the lookup key of a time zone id.
// A Caser keeps state, so one is created per call.
func fold(id string) string {
	return cases.Fold().String(id)
}

type keyed struct {
	key string
	domain.Candidate
}

// Build resolves candidates and inserts them into a new Table according to policy.
// Candidates are processed in ordinal order of their folded id; equal ids keep
// document order, so "first write wins" refers to the document.
func Build(candidates []domain.Candidate, resolver ports.ZoneResolver, policy domain.Policy, logger ports.Logger) (*Table, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	ordered := make([]keyed, len(candidates))
	for i, c := range candidates {
		ordered[i] = keyed{key: fold(c.TZID), Candidate: c}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].key < ordered[j].key
	})

	type result struct {
		zone   *domain.Zone
		status domain.ResolveStatus
	}
	resolved := make(map[string]result)

	t := &Table{zones: make(map[string]*domain.Zone, len(ordered))}
	for _, c := range ordered {
		r, ok := resolved[c.PlatformID]
		if !ok {
			r.zone, r.status = resolver.Resolve(c.PlatformID)
			if r.status.OK() && r.zone == nil {
				r.status = domain.Invalid
			}
			resolved[c.PlatformID] = r
		}

		if !r.status.OK() {
			if policy.ThrowOnNonExisting {
				err := zerr.Wrap(domain.ErrUnresolvablePlatformID, r.status.String())
				err = zerr.With(err, "tzid", c.TZID)
				return nil, zerr.With(err, "platform_id", c.PlatformID)
			}
			logger.Debug(fmt.Sprintf("skipping %s: platform id %q %s", c.TZID, c.PlatformID, r.status))
			continue
		}

		if _, exists := t.zones[c.key]; exists {
			if policy.ThrowOnDuplicateKey {
				err := zerr.Wrap(domain.ErrDuplicateKey, "time zone id occurs more than once")
				return nil, zerr.With(err, "tzid", c.TZID)
			}
			logger.Debug(fmt.Sprintf("ignoring duplicate %s -> %s", c.TZID, c.PlatformID))
			continue
		}

		t.zones[c.key] = r.zone
		t.ids = append(t.ids, c.TZID)
	}

	sort.Strings(t.ids)
	return t, nil
}

// Lookup returns the zone for id, ignoring case.
func (t *Table) Lookup(id string) (*domain.Zone, bool) {
	z, ok := t.zones[fold(id)]
	return z, ok
}

// Len returns the number of time zone ids in the table.
func (t *Table) Len() int {
	return len(t.zones)
}

// IDs returns a sorted copy of the time zone ids, spelled as first seen.
func (t *Table) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Zones returns the distinct zones in the table sorted by platform id.
func (t *Table) Zones() []*domain.Zone {
	seen := make(map[*domain.Zone]struct{})
	out := make([]*domain.Zone, 0)
	for _, z := range t.zones {
		if _, ok := seen[z]; ok {
			continue
		}
		seen[z] = struct{}{}
		out = append(out, z)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}
