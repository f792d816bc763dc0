// Package proj maps projection names to projection implementations.
//
// The registry is an explicit table: an unrecognized name is a typed error,
// not a reflection miss against some external namespace.
package proj

import (
	"fmt"
	"math"
	"sort"
)

// Projection transforms geographic coordinates (degrees) into planar map
// coordinates. Implementations must be stateless and safe for reuse.
type Projection interface {
	Name() string
	Project(lon, lat float64) (x, y float64)
}

// UnknownProjectionError reports a projection name missing from the registry.
type UnknownProjectionError struct {
	Name string
}

func (e *UnknownProjectionError) Error() string {
	return fmt.Sprintf("proj: %q is not a supported projection (supported: %v)", e.Name, Names())
}

var registry = map[string]func() Projection{
	"PlateCarree": func() Projection { return plateCarree{} },
	"Mercator":    func() Projection { return mercator{} },
	"Miller":      func() Projection { return miller{} },
}

// Get returns the named projection, or an UnknownProjectionError.
func Get(name string) (Projection, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, &UnknownProjectionError{Name: name}
	}
	return factory(), nil
}

// Default returns the equirectangular projection used when no name is given.
func Default() Projection { return plateCarree{} }

// Names lists the registered projection names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// plateCarree is the identity equirectangular projection: x=lon, y=lat.
type plateCarree struct{}

func (plateCarree) Name() string { return "PlateCarree" }

func (plateCarree) Project(lon, lat float64) (float64, float64) {
	return lon, lat
}

// mercator stretches latitude toward the poles. Latitudes are clamped to
// ±85.05113 so the transform stays finite.
type mercator struct{}

const mercatorLatLimit = 85.05113

func (mercator) Name() string { return "Mercator" }

func (mercator) Project(lon, lat float64) (float64, float64) {
	if lat > mercatorLatLimit {
		lat = mercatorLatLimit
	} else if lat < -mercatorLatLimit {
		lat = -mercatorLatLimit
	}
	rad := lat * math.Pi / 180
	y := math.Log(math.Tan(math.Pi/4+rad/2)) * 180 / math.Pi
	return lon, y
}

// miller is a compromise cylindrical projection, flatter than Mercator at
// high latitudes.
type miller struct{}

func (miller) Name() string { return "Miller" }

func (miller) Project(lon, lat float64) (float64, float64) {
	rad := lat * math.Pi / 180
	y := 1.25 * math.Log(math.Tan(math.Pi/4+0.4*rad)) * 180 / math.Pi
	return lon, y
}
