package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Style is an immutable set of per-call rendering options. Zero-valued
// fields fall back to DefaultStyle at the point of use; a Style is never
// shared mutable state between calls.
type Style struct {
	// Color is a cycle name ("C0".."C9") or a hex color.
	Color string `json:"color"`
	// Marker selects the point glyph: "o", ".", "x", "+", "*".
	Marker string `json:"marker"`
	// Alpha is the bbox fill transparency in (0, 1].
	Alpha float64 `json:"alpha"`

	FontSize string `json:"fontsize"`
	HAlign   string `json:"horizontalalignment"`

	// XOffset and YOffset displace the site label from its anchor, in the
	// same coordinate space as the marker.
	XOffset float64 `json:"xoffset"`
	YOffset float64 `json:"yoffset"`
}

// DefaultStyle returns the per-call fallback options.
func DefaultStyle() Style {
	return Style{
		Color:    "C0",
		Marker:   "o",
		Alpha:    0.5,
		FontSize: "large",
		HAlign:   "left",
		XOffset:  0,
		YOffset:  -0.5,
	}
}

// withDefaults fills unset fields from DefaultStyle. Numeric zero values
// mean "use the default"; callers wanting a literal zero offset get it from
// the default X offset.
func (s Style) withDefaults() Style {
	def := DefaultStyle()
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.Marker == "" {
		s.Marker = def.Marker
	}
	if s.Alpha == 0 {
		s.Alpha = def.Alpha
	}
	if s.FontSize == "" {
		s.FontSize = def.FontSize
	}
	if s.HAlign == "" {
		s.HAlign = def.HAlign
	}
	if s.YOffset == 0 {
		s.YOffset = def.YOffset
	}
	return s
}

// ParseStyle decodes a JSON options blob, as passed on the command line.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func ParseStyle(blob string) (Style, error) {
	if blob == "" {
		return Style{}, nil
	}
	var s Style
	dec := json.NewDecoder(strings.NewReader(blob))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return Style{}, fmt.Errorf("render: invalid style options: %w", err)
	}
	return s, nil
}

// ColorAt returns the cycle color for dataset index i, pairing a dataset's
// plot series with its map marker.
func ColorAt(i int) string {
	return "C" + strconv.Itoa(((i%10)+10)%10)
}
