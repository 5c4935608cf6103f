package artfolio

import "errors"

// Sentinel errors returned by the store, transcoder, and catalog. Callers
// classify failures with errors.Is; wrapped messages carry the operation
// context.
var (
	// ErrNotFound is returned when an operation targets a record id that
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when a required field is missing or an
	// uploaded file is not an image.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDecode is returned when source bytes are not a decodable raster
	// image.
	ErrDecode = errors.New("image decode failed")

	// ErrEncode is returned when JPEG re-encoding fails. Fatal to the
	// calling operation; no partial artifact is persisted.
	ErrEncode = errors.New("image encode failed")

	// ErrBadSnapshot is returned when an import snapshot lacks a
	// recognizable paintings list. Raised before any mutation.
	ErrBadSnapshot = errors.New("unrecognized snapshot format")
)
