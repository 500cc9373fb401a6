package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedDocument is returned when the mapping document is not well-formed XML
	// or a mapZone element lacks a required attribute.
	ErrMalformedDocument = zerr.New("malformed mapping document")

	// ErrSchemaMismatch is returned when the document contains no mapTimezones element.
	ErrSchemaMismatch = zerr.New("document has no mapTimezones element")

	// ErrUnresolvablePlatformID is returned under the strict policy when a platform id cannot be resolved.
	ErrUnresolvablePlatformID = zerr.New("platform time zone id cannot be resolved")

	// ErrDuplicateKey is returned under the strict policy when a time zone id occurs more than once.
	ErrDuplicateKey = zerr.New("duplicate time zone id")

	// ErrKeyNotFound is returned when a time zone id is not present in the mapping.
	ErrKeyNotFound = zerr.New("time zone id not found")

	// ErrInvalidArgument is returned when an empty time zone id is passed to a lookup.
	ErrInvalidArgument = zerr.New("time zone id must not be empty")

	// ErrMissingResolver is returned when a mapper is constructed without a platform zone resolver.
	ErrMissingResolver = zerr.New("platform zone resolver is required")

	// ErrFetchFailed is returned when the remote mapping document cannot be retrieved or cached.
	ErrFetchFailed = zerr.New("failed to fetch mapping document")

	// ErrFileNotFound is returned when a local mapping document does not exist.
	ErrFileNotFound = zerr.New("mapping document not found")

	// ErrIO is returned when a local mapping document cannot be read.
	ErrIO = zerr.New("failed to read mapping document")

	// ErrInvalidCatalog is returned when the platform zone catalog cannot be parsed.
	ErrInvalidCatalog = zerr.New("invalid platform zone catalog")

	// ErrUnknownSource is returned when a configured mapping source is not recognized.
	ErrUnknownSource = zerr.New("unknown mapping source, expected 'static', 'online', 'fallback' or 'file'")

	// ErrMissingSourceFile is returned when the file source is selected without a path.
	ErrMissingSourceFile = zerr.New("file source requires a path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnmappedIDs is returned by the CLI when one or more requested ids have no mapping.
	ErrUnmappedIDs = zerr.New("some time zone ids could not be mapped")
)
