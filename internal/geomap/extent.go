package geomap

import (
	"fmt"
	"strconv"
	"strings"
)

// Default metadata keys for the two coordinate representations. The point
// keys follow ACDD single-site headers; the bbox keys follow the ACDD
// geospatial bounds family.
const (
	DefaultXKey = "longitude"
	DefaultYKey = "latitude"

	DefaultXMinKey = "geospatial_lon_min"
	DefaultXMaxKey = "geospatial_lon_max"
	DefaultYMinKey = "geospatial_lat_min"
	DefaultYMaxKey = "geospatial_lat_max"

	// DefaultOffset is the margin, in degrees, applied around a computed
	// extent.
	DefaultOffset = 5.0
)

// Dataset is the read-only view of a dataset's metadata the resolver needs.
// Lookups must not fail for missing keys; they report ok=false instead.
type Dataset interface {
	MetadataItemValue(key string) (string, bool)
}

// Extent is a rectangular geographic region in degrees.
type Extent struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Array returns the extent as [left, right, bottom, top].
func (e Extent) Array() [4]float64 {
	return [4]float64{e.Left, e.Right, e.Bottom, e.Top}
}

func (e Extent) String() string {
	return fmt.Sprintf("[%g, %g, %g, %g]", e.Left, e.Right, e.Bottom, e.Top)
}

// Width returns the longitudinal span in degrees.
func (e Extent) Width() float64 { return e.Right - e.Left }

// Height returns the latitudinal span in degrees.
func (e Extent) Height() float64 { return e.Top - e.Bottom }

// Mode is a dataset's coordinate representation. It is re-derived from key
// presence on every call, never cached.
type Mode int

const (
	ModeUnresolved Mode = iota
	ModePoint
	ModeBBox
)

func (m Mode) String() string {
	switch m {
	case ModePoint:
		return "point"
	case ModeBBox:
		return "bbox"
	default:
		return "unresolved"
	}
}

// Classify determines a dataset's coordinate representation by key presence
// alone: pointTestKey wins over bboxTestKey, and a present-but-unparseable
// value still selects its mode so the parse failure surfaces later as a
// semantic error instead of a silent skip.
func Classify(ds Dataset, pointTestKey, bboxTestKey string) Mode {
	if _, ok := ds.MetadataItemValue(pointTestKey); ok {
		return ModePoint
	}
	if _, ok := ds.MetadataItemValue(bboxTestKey); ok {
		return ModeBBox
	}
	return ModeUnresolved
}

// ResolvePointExtent computes the minimal extent covering every dataset's
// (xkey, ykey) coordinate, padded by offset on all sides. A single dataset
// with a missing or non-numeric key fails the whole batch: an extent that
// silently excludes one site is worse than a loud failure.
func ResolvePointExtent(datasets []Dataset, xkey, ykey string, offset float64) (Extent, error) {
	if len(datasets) == 0 {
		return Extent{}, ErrEmptyInput
	}
	var ext Extent
	for i, ds := range datasets {
		x, err := coordinate(ds, xkey)
		if err != nil {
			return Extent{}, &ExtentError{Index: i, Key: xkey, Err: err}
		}
		y, err := coordinate(ds, ykey)
		if err != nil {
			return Extent{}, &ExtentError{Index: i, Key: ykey, Err: err}
		}
		if i == 0 {
			ext = Extent{Left: x, Right: x, Bottom: y, Top: y}
			continue
		}
		ext.Left = min(ext.Left, x)
		ext.Right = max(ext.Right, x)
		ext.Bottom = min(ext.Bottom, y)
		ext.Top = max(ext.Top, y)
	}
	return pad(ext, offset), nil
}

// ResolveBBoxExtent computes the minimal extent covering every dataset's
// bounding box, padded by offset. Same all-or-nothing policy as
// ResolvePointExtent.
func ResolveBBoxExtent(datasets []Dataset, xminKey, xmaxKey, yminKey, ymaxKey string, offset float64) (Extent, error) {
	if len(datasets) == 0 {
		return Extent{}, ErrEmptyInput
	}
	var ext Extent
	for i, ds := range datasets {
		var vals [4]float64
		for j, key := range [4]string{xminKey, xmaxKey, yminKey, ymaxKey} {
			v, err := coordinate(ds, key)
			if err != nil {
				return Extent{}, &ExtentError{Index: i, Key: key, Err: err}
			}
			vals[j] = v
		}
		if i == 0 {
			ext = Extent{Left: vals[0], Right: vals[1], Bottom: vals[2], Top: vals[3]}
			continue
		}
		ext.Left = min(ext.Left, vals[0])
		ext.Right = max(ext.Right, vals[1])
		ext.Bottom = min(ext.Bottom, vals[2])
		ext.Top = max(ext.Top, vals[3])
	}
	return pad(ext, offset), nil
}

// ResolveExtent classifies the collection and dispatches to the matching
// resolver using the default key sets. The first dataset picks the mode;
// every other dataset must classify the same way or the batch is rejected
// with a MixedModeError rather than silently misread.
func ResolveExtent(datasets []Dataset, pointTestKey, bboxTestKey string, offset float64) (Extent, error) {
	if len(datasets) == 0 {
		return Extent{}, ErrEmptyInput
	}
	mode := Classify(datasets[0], pointTestKey, bboxTestKey)
	if mode == ModeUnresolved {
		return Extent{}, &ClassificationError{PointKey: pointTestKey, BBoxKey: bboxTestKey}
	}
	for i, ds := range datasets[1:] {
		if got := Classify(ds, pointTestKey, bboxTestKey); got != mode {
			return Extent{}, &MixedModeError{Index: i + 1, Want: mode, Got: got}
		}
	}
	switch mode {
	case ModePoint:
		return ResolvePointExtent(datasets, DefaultXKey, DefaultYKey, offset)
	default:
		return ResolveBBoxExtent(datasets, DefaultXMinKey, DefaultXMaxKey, DefaultYMinKey, DefaultYMaxKey, offset)
	}
}

func pad(e Extent, offset float64) Extent {
	return Extent{
		Left:   e.Left - offset,
		Right:  e.Right + offset,
		Bottom: e.Bottom - offset,
		Top:    e.Top + offset,
	}
}

// coordinate extracts a metadata value and coerces it to degrees, stripping
// any trailing unit annotation such as "-65.46 (degree_east)".
func coordinate(ds Dataset, key string) (float64, error) {
	raw, ok := ds.MetadataItemValue(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	v, err := ParseDegrees(raw)
	if err != nil {
		return 0, fmt.Errorf("metadata item %q: %w", key, err)
	}
	return v, nil
}

// ParseDegrees coerces a metadata value to a float, taking only the leading
// numeric token so unit-annotated values like "12.5 (degree_north)" parse as
// 12.5.
func ParseDegrees(s string) (float64, error) {
	tok := s
	if fields := strings.Fields(strings.TrimSpace(s)); len(fields) > 0 {
		tok = fields[0]
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("not a numeric coordinate: %q", s)
	}
	return v, nil
}
