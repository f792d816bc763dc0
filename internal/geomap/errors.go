package geomap

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when extent resolution is asked to cover zero
// datasets.
var ErrEmptyInput = errors.New("geomap: no datasets to resolve an extent over")

// ErrMissingKey marks a coordinate lookup that found no metadata item at
// all, as opposed to one whose value failed to parse. Wrapped inside an
// ExtentError.
var ErrMissingKey = errors.New("missing metadata item")

// ClassificationError reports that neither the point nor the bbox test key
// was present where classification is mandatory. Retrying with the same keys
// cannot succeed.
type ClassificationError struct {
	PointKey string
	BBoxKey  string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("geomap: dataset has neither %q nor %q metadata items", e.PointKey, e.BBoxKey)
}

// MixedModeError reports a batch mixing point-mode and bbox-mode datasets.
// The first dataset fixes the mode for the whole collection.
type MixedModeError struct {
	Index int
	Want  Mode
	Got   Mode
}

func (e *MixedModeError) Error() string {
	return fmt.Sprintf("geomap: dataset %d is %s-mode but the collection resolved as %s-mode", e.Index, e.Got, e.Want)
}

// ExtentError reports a missing or non-numeric coordinate key encountered
// during all-or-nothing batch extent computation.
type ExtentError struct {
	Index int
	Key   string
	Err   error
}

func (e *ExtentError) Error() string {
	return fmt.Sprintf("geomap: dataset %d: %v", e.Index, e.Err)
}

func (e *ExtentError) Unwrap() error { return e.Err }
