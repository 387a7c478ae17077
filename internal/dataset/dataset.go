// Package dataset provides the core data model: datasets and display groups.
package dataset

import (
	"path/filepath"
	"strings"
)

// ErrorBarStyle selects how measurement uncertainty is rendered.
type ErrorBarStyle string

const (
	// ErrorBars draws classic capped error bars at each point.
	ErrorBars ErrorBarStyle = "bars"
	// ErrorFill draws a translucent band around the curve.
	ErrorFill ErrorBarStyle = "fill"
)

// LineStyle identifies a curve's line rendering.
type LineStyle string

const (
	LineNone    LineStyle = ""
	LineSolid   LineStyle = "-"
	LineDashed  LineStyle = "--"
	LineDashDot LineStyle = "-."
	LineDotted  LineStyle = ":"
)

// MarkerStyle identifies a curve's point marker.
type MarkerStyle string

const (
	MarkerNone     MarkerStyle = ""
	MarkerCircle   MarkerStyle = "o"
	MarkerSquare   MarkerStyle = "s"
	MarkerTriangle MarkerStyle = "^"
	MarkerDiamond  MarkerStyle = "d"
	MarkerCross    MarkerStyle = "x"
	MarkerPlus     MarkerStyle = "+"
)

// Range is an optional per-dataset plot clip. Nil bounds are unset.
type Range struct {
	XMin *float64 `json:"x_min,omitempty"`
	XMax *float64 `json:"x_max,omitempty"`
	YMin *float64 `json:"y_min,omitempty"`
	YMax *float64 `json:"y_max,omitempty"`
}

// Dataset is one loaded scattering curve plus its display styling.
// The X/Y/YErr series are immutable after load; styling is mutable.
type Dataset struct {
	Name         string `json:"name"`
	DisplayLabel string `json:"display_label"`
	FilePath     string `json:"filepath"`

	X    []float64 `json:"-"`
	Y    []float64 `json:"-"`
	YErr []float64 `json:"-"`

	// Style
	Color        string      `json:"color,omitempty"`
	LineStyle    LineStyle   `json:"line_style"`
	MarkerStyle  MarkerStyle `json:"marker_style"`
	LineWidth    float64     `json:"line_width"`
	MarkerSize   float64     `json:"marker_size"`
	ShowInLegend bool        `json:"show_in_legend"`
	LegendBold   bool        `json:"legend_bold"`
	LegendItalic bool        `json:"legend_italic"`

	// Error bar rendering
	ShowErrorBars     bool          `json:"show_errorbars"`
	ErrorBarStyle     ErrorBarStyle `json:"errorbar_style"`
	ErrorBarCapSize   float64       `json:"errorbar_capsize"`
	ErrorBarAlpha     float64       `json:"errorbar_alpha"`
	ErrorBarLineWidth float64       `json:"errorbar_linewidth"`

	// Optional plot-range clip
	Clip Range `json:"clip,omitempty"`
}

// New creates a dataset from a loaded series. The name defaults to the
// file's base name without extension.
func New(path, name string, x, y, yerr []float64) *Dataset {
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &Dataset{
		Name:              name,
		DisplayLabel:      name,
		FilePath:          path,
		X:                 x,
		Y:                 y,
		YErr:              yerr,
		LineWidth:         2,
		MarkerSize:        4,
		ShowInLegend:      true,
		ShowErrorBars:     true,
		ErrorBarStyle:     ErrorFill,
		ErrorBarCapSize:   3,
		ErrorBarAlpha:     0.3,
		ErrorBarLineWidth: 1,
	}
}

// HasErrors reports whether the dataset carries a y-error column.
func (d *Dataset) HasErrors() bool {
	return len(d.YErr) == len(d.Y) && len(d.YErr) > 0
}

// EffectiveStyle resolves the auto-style rule: an unstyled dataset renders
// as a solid line when its name suggests a fit, otherwise as markers.
func (d *Dataset) EffectiveStyle() (LineStyle, MarkerStyle) {
	if d.LineStyle != LineNone || d.MarkerStyle != MarkerNone {
		return d.LineStyle, d.MarkerStyle
	}
	if strings.Contains(strings.ToLower(d.Name), "fit") {
		return LineSolid, MarkerNone
	}
	return LineNone, MarkerCircle
}

// InClip reports whether the point (x, y) passes the dataset's plot clip.
func (d *Dataset) InClip(x, y float64) bool {
	c := d.Clip
	if c.XMin != nil && x < *c.XMin {
		return false
	}
	if c.XMax != nil && x > *c.XMax {
		return false
	}
	if c.YMin != nil && y < *c.YMin {
		return false
	}
	if c.YMax != nil && y > *c.YMax {
		return false
	}
	return true
}
