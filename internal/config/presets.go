package config

import (
	"path/filepath"
	"sort"
	"strings"

	"scatterforge/internal/dataset"
)

// StylePreset is a named bundle of display attributes applied to datasets.
type StylePreset struct {
	LineStyle     dataset.LineStyle     `json:"line_style"`
	MarkerStyle   dataset.MarkerStyle   `json:"marker_style"`
	LineWidth     float64               `json:"line_width"`
	MarkerSize    float64               `json:"marker_size"`
	ErrorBarStyle dataset.ErrorBarStyle `json:"errorbar_style,omitempty"`
	ErrorBarAlpha float64               `json:"errorbar_alpha,omitempty"`
	Description   string                `json:"description,omitempty"`
}

// Built-in preset names.
const (
	PresetMeasurement = "Measurement"
	PresetFit         = "Fit"
	PresetSimulation  = "Simulation"
	PresetTheory      = "Theory"
)

func defaultPresets() map[string]StylePreset {
	return map[string]StylePreset{
		PresetMeasurement: {
			MarkerStyle: dataset.MarkerCircle,
			LineWidth:   1.5,
			MarkerSize:  4,
			Description: "Measured data with error bars",
		},
		PresetFit: {
			LineStyle:   dataset.LineSolid,
			LineWidth:   2,
			Description: "Fit curves (solid line)",
		},
		PresetSimulation: {
			LineStyle:   dataset.LineDashed,
			LineWidth:   1.5,
			Description: "Simulations (dashed line)",
		},
		PresetTheory: {
			LineStyle:   dataset.LineDashDot,
			LineWidth:   1.5,
			Description: "Theoretical curves (dash-dot)",
		},
	}
}

func defaultDetectionRules() map[string]string {
	return map[string]string{
		"fit":         PresetFit,
		"fitted":      PresetFit,
		"measurement": PresetMeasurement,
		"measure":     PresetMeasurement,
		"messung":     PresetMeasurement,
		"data":        PresetMeasurement,
		"daten":       PresetMeasurement,
		"sim":         PresetSimulation,
		"simulation":  PresetSimulation,
		"theo":        PresetTheory,
		"theory":      PresetTheory,
		"theorie":     PresetTheory,
	}
}

// Preset looks up a style preset by name. Callers decide how to handle a
// missing preset; there is no hidden default.
func (c *Config) Preset(name string) (StylePreset, bool) {
	p, ok := c.presets[name]
	return p, ok
}

// PresetNames returns the defined preset names in unspecified order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.presets))
	for name := range c.presets {
		names = append(names, name)
	}
	return names
}

// SetPreset adds or replaces a style preset.
func (c *Config) SetPreset(name string, p StylePreset) {
	c.presets[name] = p
}

// DeletePreset removes a preset. It reports whether the preset existed.
func (c *Config) DeletePreset(name string) bool {
	if _, ok := c.presets[name]; !ok {
		return false
	}
	delete(c.presets, name)
	return true
}

// PresetForFilename matches the file's base name against the detection
// rules and returns the preset of the first matching keyword. It reports
// ok=false when detection is disabled, no rule matches, or the matched
// rule names a preset that no longer exists.
func (c *Config) PresetForFilename(path string) (StylePreset, bool) {
	if !c.Settings.AutoDetectEnabled {
		return StylePreset{}, false
	}
	base := filepath.Base(path)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	// Sorted keyword order keeps matching deterministic when several
	// keywords occur in one filename.
	keywords := make([]string, 0, len(c.Settings.AutoDetectRules))
	for k := range c.Settings.AutoDetectRules {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	for _, keyword := range keywords {
		if strings.Contains(stem, strings.ToLower(keyword)) {
			if p, ok := c.presets[c.Settings.AutoDetectRules[keyword]]; ok {
				return p, true
			}
		}
	}
	return StylePreset{}, false
}

// Apply copies the preset's attributes onto a dataset.
func (p StylePreset) Apply(d *dataset.Dataset) {
	d.LineStyle = p.LineStyle
	d.MarkerStyle = p.MarkerStyle
	if p.LineWidth > 0 {
		d.LineWidth = p.LineWidth
	}
	d.MarkerSize = p.MarkerSize
	if p.ErrorBarStyle != "" {
		d.ErrorBarStyle = p.ErrorBarStyle
	}
	if p.ErrorBarAlpha > 0 {
		d.ErrorBarAlpha = p.ErrorBarAlpha
	}
}
