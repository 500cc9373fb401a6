package domain

import "time"

// Zone is a platform time zone descriptor: a Windows time zone id together
// with the location used to materialize it.
type Zone struct {
	ID       string
	Location *time.Location
}

// String returns the platform id of the zone.
func (z *Zone) String() string {
	if z == nil {
		return ""
	}
	return z.ID
}

// ResolveStatus is the tagged outcome of resolving a platform time zone id.
type ResolveStatus int

const (
	// Resolved means the resolver produced a descriptor.
	Resolved ResolveStatus = iota
	// NotFound means the platform does not know the id.
	NotFound
	// Invalid means the platform knows the id but its data is unusable.
	Invalid
)

// String returns the string representation of the ResolveStatus.
func (s ResolveStatus) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case NotFound:
		return "not found"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// OK reports whether the status denotes a successful resolution.
func (s ResolveStatus) OK() bool {
	return s == Resolved
}

// Candidate is a single (time zone id, platform id) pair read from a mapping document.
type Candidate struct {
	TZID       string
	PlatformID string
}
