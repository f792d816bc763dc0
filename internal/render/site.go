package render

import (
	"fmt"

	"geoplot/internal/geomap"
)

// NoSpatialKeysError reports a dataset reaching the render dispatch with
// neither key family present. Unlike a missing coordinate sub-key, this is a
// caller or configuration mistake, not a sparse-data condition.
type NoSpatialKeysError struct {
	PointKey string
	BBoxKey  string
}

func (e *NoSpatialKeysError) Error() string {
	return fmt.Sprintf("render: dataset has neither %q nor %q metadata items, cannot place it on the map", e.PointKey, e.BBoxKey)
}

// RenderPointSite draws a marker at the dataset's (xkey, ykey) coordinate
// and a site label offset from it. A missing coordinate key means there is
// nothing to plot for this site and is not an error; extent resolution
// upstream already validated the datasets that matter. A present but
// non-numeric value is still a hard error.
func RenderPointSite(target Drawable, ds geomap.Dataset, xkey, ykey, siteKey string, style Style) error {
	st := style.withDefaults()

	rawX, okX := ds.MetadataItemValue(xkey)
	rawY, okY := ds.MetadataItemValue(ykey)
	if !okX || !okY {
		return nil
	}
	x, err := geomap.ParseDegrees(rawX)
	if err != nil {
		return fmt.Errorf("render: metadata item %q: %w", xkey, err)
	}
	y, err := geomap.ParseDegrees(rawY)
	if err != nil {
		return fmt.Errorf("render: metadata item %q: %w", ykey, err)
	}

	target.DrawPoint(x, y, st)
	site, _ := ds.MetadataItemValue(siteKey)
	target.DrawText(x+st.XOffset, y+st.YOffset, site, st)
	return nil
}

// RenderBBoxSite draws a filled rectangle spanning the dataset's bounding
// box and a site label anchored at (xmin, ymin) with the same offset
// convention as RenderPointSite. Missing keys skip silently.
func RenderBBoxSite(target Drawable, ds geomap.Dataset, xminKey, xmaxKey, yminKey, ymaxKey, siteKey string, style Style) error {
	st := style.withDefaults()

	var vals [4]float64
	for i, key := range [4]string{xminKey, xmaxKey, yminKey, ymaxKey} {
		raw, ok := ds.MetadataItemValue(key)
		if !ok {
			return nil
		}
		v, err := geomap.ParseDegrees(raw)
		if err != nil {
			return fmt.Errorf("render: metadata item %q: %w", key, err)
		}
		vals[i] = v
	}
	xmin, xmax, ymin, ymax := vals[0], vals[1], vals[2], vals[3]

	target.DrawPolygon([][2]float64{
		{xmin, ymin},
		{xmax, ymin},
		{xmax, ymax},
		{xmin, ymax},
	}, st)
	site, _ := ds.MetadataItemValue(siteKey)
	target.DrawText(xmin+st.XOffset, ymin+st.YOffset, site, st)
	return nil
}

// RenderSite classifies the dataset with the same rule the extent resolver
// uses and dispatches to the matching renderer, using the default coordinate
// key sets.
func RenderSite(target Drawable, ds geomap.Dataset, pointTestKey, bboxTestKey, siteKey string, style Style) error {
	switch geomap.Classify(ds, pointTestKey, bboxTestKey) {
	case geomap.ModePoint:
		return RenderPointSite(target, ds, geomap.DefaultXKey, geomap.DefaultYKey, siteKey, style)
	case geomap.ModeBBox:
		return RenderBBoxSite(target, ds,
			geomap.DefaultXMinKey, geomap.DefaultXMaxKey,
			geomap.DefaultYMinKey, geomap.DefaultYMaxKey,
			siteKey, style)
	default:
		return &NoSpatialKeysError{PointKey: pointTestKey, BBoxKey: bboxTestKey}
	}
}
