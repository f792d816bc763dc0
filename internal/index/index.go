// Package index provides fast spatial lookups over dataset sites.
//
// The index stores one lightweight entry per dataset (site name, mode,
// bounds) in a 2-D R-tree, so viewport filtering and nearest-site queries
// stay O(log N) instead of scanning every dataset per query.
package index

import (
	"errors"

	"github.com/dhconnelly/rtreego"

	"geoplot/internal/geomap"
)

// degenerate point boxes still need positive R-tree side lengths
const minSide = 1e-9

// SiteEntry is the indexed footprint of one dataset.
type SiteEntry struct {
	Name string
	Mode geomap.Mode
	// Lon and Lat anchor the site: the marker position for a point, the
	// (xmin, ymin) corner for a bbox.
	Lon float64
	Lat float64
	// Box is the site footprint without any margin. For a point it is
	// degenerate.
	Box geomap.Extent
}

// Bounds implements rtreego.Spatial.
func (e SiteEntry) Bounds() rtreego.Rect {
	w := e.Box.Width()
	h := e.Box.Height()
	if w < minSide {
		w = minSide
	}
	if h < minSide {
		h = minSide
	}
	rect, _ := rtreego.NewRect(rtreego.Point{e.Box.Left, e.Box.Bottom}, []float64{w, h})
	return rect
}

// SiteIndex answers spatial queries over a dataset collection's sites.
type SiteIndex struct {
	entries []SiteEntry
	rtree   *rtreego.Rtree
}

// Build indexes every classifiable dataset. Datasets lacking both key
// families, or missing a coordinate sub-key, are skipped: the index is a
// lookup aid, not a validator — extent resolution already enforces the
// strict policy. A present but non-numeric coordinate is still an error.
func Build(datasets []geomap.Dataset, pointTestKey, bboxTestKey, siteKey string) (*SiteIndex, error) {
	idx := &SiteIndex{rtree: rtreego.NewTree(2, 25, 50)}
	for _, ds := range datasets {
		entry, ok, err := entryFor(ds, pointTestKey, bboxTestKey, siteKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		idx.entries = append(idx.entries, entry)
		idx.rtree.Insert(entry)
	}
	return idx, nil
}

func entryFor(ds geomap.Dataset, pointTestKey, bboxTestKey, siteKey string) (SiteEntry, bool, error) {
	name, _ := ds.MetadataItemValue(siteKey)
	switch geomap.Classify(ds, pointTestKey, bboxTestKey) {
	case geomap.ModePoint:
		ext, err := geomap.ResolvePointExtent([]geomap.Dataset{ds}, geomap.DefaultXKey, geomap.DefaultYKey, 0)
		if err != nil {
			if missingKey(err) {
				return SiteEntry{}, false, nil
			}
			return SiteEntry{}, false, err
		}
		return SiteEntry{Name: name, Mode: geomap.ModePoint, Lon: ext.Left, Lat: ext.Bottom, Box: ext}, true, nil
	case geomap.ModeBBox:
		ext, err := geomap.ResolveBBoxExtent([]geomap.Dataset{ds},
			geomap.DefaultXMinKey, geomap.DefaultXMaxKey,
			geomap.DefaultYMinKey, geomap.DefaultYMaxKey, 0)
		if err != nil {
			if missingKey(err) {
				return SiteEntry{}, false, nil
			}
			return SiteEntry{}, false, err
		}
		return SiteEntry{Name: name, Mode: geomap.ModeBBox, Lon: ext.Left, Lat: ext.Bottom, Box: ext}, true, nil
	default:
		return SiteEntry{}, false, nil
	}
}

// Within returns the entries whose footprint intersects the extent.
func (idx *SiteIndex) Within(ext geomap.Extent) []SiteEntry {
	w := ext.Width()
	h := ext.Height()
	if w < minSide {
		w = minSide
	}
	if h < minSide {
		h = minSide
	}
	rect, err := rtreego.NewRect(rtreego.Point{ext.Left, ext.Bottom}, []float64{w, h})
	if err != nil {
		return nil
	}
	spatials := idx.rtree.SearchIntersect(rect)
	out := make([]SiteEntry, 0, len(spatials))
	for _, s := range spatials {
		out = append(out, s.(SiteEntry))
	}
	return out
}

// Nearest returns the entry closest to (lon, lat).
func (idx *SiteIndex) Nearest(lon, lat float64) (SiteEntry, bool) {
	if len(idx.entries) == 0 {
		return SiteEntry{}, false
	}
	s := idx.rtree.NearestNeighbor(rtreego.Point{lon, lat})
	if s == nil {
		return SiteEntry{}, false
	}
	return s.(SiteEntry), true
}

// Count returns the number of indexed sites.
func (idx *SiteIndex) Count() int { return len(idx.entries) }

// missingKey distinguishes an absent coordinate key (soft skip for the
// index) from a present but unparseable one (hard error).
func missingKey(err error) bool {
	return errors.Is(err, geomap.ErrMissingKey)
}
