// Package plotmodel assembles publication figures from groups of
// scattering datasets: per-type axis transforms, stack-factor application
// at render time, and export to common figure formats.
package plotmodel

import (
	"fmt"
	"math"
)

// Scale selects an axis scale.
type Scale string

const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// PlotType identifies one of the standard scattering representations.
type PlotType string

const (
	LogLog       PlotType = "Log-Log"
	Porod        PlotType = "Porod"
	Kratky       PlotType = "Kratky"
	Guinier      PlotType = "Guinier"
	BraggSpacing PlotType = "Bragg Spacing"
	TwoTheta     PlotType = "2-Theta"
	PDDF         PlotType = "PDDF"
)

// PlotTypes lists the supported types in menu order.
var PlotTypes = []PlotType{LogLog, Porod, Kratky, Guinier, BraggSpacing, TwoTheta, PDDF}

// axes describes a plot type's axis labels and scales.
type axes struct {
	xLabel, yLabel string
	xScale, yScale Scale
}

var axesByType = map[PlotType]axes{
	LogLog:       {"q / nm⁻¹", "I / a.u.", ScaleLog, ScaleLog},
	Porod:        {"q / nm⁻¹", "I·q⁴ / a.u.·nm⁻⁴", ScaleLog, ScaleLog},
	Kratky:       {"q / nm⁻¹", "I·q² / a.u.·nm⁻²", ScaleLinear, ScaleLinear},
	Guinier:      {"q² / nm⁻²", "ln(I)", ScaleLinear, ScaleLinear},
	BraggSpacing: {"d / nm", "I / a.u.", ScaleLog, ScaleLog},
	TwoTheta:     {"2θ / °", "I / a.u.", ScaleLinear, ScaleLog},
	PDDF:         {"q / nm⁻¹", "I / a.u.", ScaleLog, ScaleLog},
}

// Axes returns the axis labels and scales for the plot type. Unknown
// types fall back to Log-Log.
func (t PlotType) Axes() (xLabel, yLabel string, xScale, yScale Scale) {
	a, ok := axesByType[t]
	if !ok {
		a = axesByType[LogLog]
	}
	return a.xLabel, a.yLabel, a.xScale, a.yScale
}

// Transform maps a curve into the plot type's coordinates. The stacked
// Y values are expected (stack factor already applied). For TwoTheta the
// wavelength (nm) converts q to diffraction angle; points outside the
// arcsin domain are dropped. The returned index slice maps transformed
// points back to source indices, so error columns can follow.
func (t PlotType) Transform(x, y []float64, wavelength float64) (tx, ty []float64, idx []int) {
	tx = make([]float64, 0, len(x))
	ty = make([]float64, 0, len(y))
	idx = make([]int, 0, len(x))
	for i := range x {
		px, py, ok := t.TransformPoint(x[i], y[i], wavelength)
		if !ok {
			continue
		}
		tx = append(tx, px)
		ty = append(ty, py)
		idx = append(idx, i)
	}
	return tx, ty, idx
}

// TransformPoint maps a single point into the plot type's coordinates.
// ok is false when the point falls outside the transform's domain.
func (t PlotType) TransformPoint(x, y, wavelength float64) (px, py float64, ok bool) {
	switch t {
	case Porod:
		px, py = x, y*math.Pow(x, 4)
	case Kratky:
		px, py = x, y*x*x
	case Guinier:
		if y <= 0 {
			return 0, 0, false
		}
		px, py = x*x, math.Log(y)
	case BraggSpacing:
		if x == 0 {
			return 0, 0, false
		}
		px, py = 2*math.Pi/x, y
	case TwoTheta:
		arg := wavelength * x / (4 * math.Pi)
		if arg > 1 || arg < -1 {
			return 0, 0, false
		}
		px, py = 2*math.Asin(arg)*180/math.Pi, y
	default:
		px, py = x, y
	}
	if math.IsNaN(px) || math.IsNaN(py) || math.IsInf(px, 0) || math.IsInf(py, 0) {
		return 0, 0, false
	}
	return px, py, true
}

// FormatStackFactor renders a stack factor for display next to a group
// name. Factors of 1 render as the empty string; exact powers of ten use
// MathText exponent notation; everything else is a plain multiplier.
func FormatStackFactor(factor float64) string {
	if math.Abs(factor-1) < 1e-10 {
		return ""
	}
	if factor > 0 {
		logf := math.Log10(factor)
		if math.Abs(logf-math.Round(logf)) < 1e-6 {
			return fmt.Sprintf(`$(\cdot 10^{%d})$`, int(math.Round(logf)))
		}
	}
	return fmt.Sprintf(`$(\times %.1f)$`, factor)
}

// PlainStackFactor is FormatStackFactor without MathText markup, for
// renderers and views without math support.
func PlainStackFactor(factor float64) string {
	if math.Abs(factor-1) < 1e-10 {
		return ""
	}
	if factor > 0 {
		logf := math.Log10(factor)
		if math.Abs(logf-math.Round(logf)) < 1e-6 {
			return fmt.Sprintf("(·10^%d)", int(math.Round(logf)))
		}
	}
	return fmt.Sprintf("(×%.1f)", factor)
}
