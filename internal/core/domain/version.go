package domain

// Version identifies the mapping data a mapper was built from.
// TZID corresponds to the typeVersion attribute and Platform to otherVersion;
// either may be empty when the attribute is absent.
type Version struct {
	TZID     string
	Platform string
}

// String returns the composite "{tzid}.{platform}" version.
func (v Version) String() string {
	return v.TZID + "." + v.Platform
}
