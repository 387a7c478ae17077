package plotmodel

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"scatterforge/internal/dataset"
	"scatterforge/internal/mathtext"
	"scatterforge/pkg/colorutil"
)

// ErrNothingToPlot is returned when no visible dataset yields any point.
var ErrNothingToPlot = errors.New("nothing to plot")

// Options steers figure assembly.
type Options struct {
	Type  PlotType
	Title string

	// Wavelength in nm, used by the 2-Theta transform.
	Wavelength float64

	// Palette is the default color cycle for datasets without an
	// explicit color.
	Palette []string

	// SchemeFor resolves a group's color-scheme name, typically backed
	// by the user configuration. May be nil.
	SchemeFor func(name string) ([]string, bool)
}

// Figure builds a plot from the group collection and the unassigned pool.
// Group stack factors multiply the Y values at this point only; the
// datasets themselves are left untouched.
func Figure(groups []*dataset.Group, unassigned []*dataset.Dataset, opts Options) (*plot.Plot, error) {
	p := plot.New()

	xLabel, yLabel, xScale, yScale := opts.Type.Axes()
	p.Title.Text = mathtext.Strip(opts.Title)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	if xScale == ScaleLog {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if yScale == ScaleLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	plotted := 0
	colorIdx := 0

	for _, d := range unassigned {
		n, err := addCurve(p, d, nil, opts, opts.Palette, &colorIdx)
		if err != nil {
			return nil, err
		}
		plotted += n
	}
	for _, g := range groups {
		if !g.Visible {
			continue
		}
		palette := opts.Palette
		if g.ColorScheme != "" && opts.SchemeFor != nil {
			if colors, ok := opts.SchemeFor(g.ColorScheme); ok {
				palette = colors
			}
		}
		for _, d := range g.Datasets {
			n, err := addCurve(p, d, g, opts, palette, &colorIdx)
			if err != nil {
				return nil, err
			}
			plotted += n
		}
	}

	if plotted == 0 {
		return nil, ErrNothingToPlot
	}
	return p, nil
}

// addCurve renders one dataset with its group's stack factor applied and
// returns the number of points plotted. A nil group means the dataset
// comes from the unassigned pool.
func addCurve(p *plot.Plot, d *dataset.Dataset, g *dataset.Group, opts Options, palette []string, colorIdx *int) (int, error) {
	stack := 1.0
	if g != nil {
		stack = g.StackFactor
	}

	// Stack and clip in data space, then transform.
	xs := make([]float64, 0, len(d.X))
	ys := make([]float64, 0, len(d.Y))
	errs := make([]float64, 0, len(d.YErr))
	for i := range d.X {
		if !d.InClip(d.X[i], d.Y[i]) {
			continue
		}
		xs = append(xs, d.X[i])
		ys = append(ys, d.Y[i]*stack)
		if d.HasErrors() {
			errs = append(errs, d.YErr[i]*stack)
		}
	}

	tx, ty, idx := opts.Type.Transform(xs, ys, opts.Wavelength)
	if len(tx) == 0 {
		return 0, nil
	}

	xys := make(plotter.XYs, len(tx))
	for i := range tx {
		xys[i] = plotter.XY{X: tx[i], Y: ty[i]}
	}

	c := nextColor(d, palette, colorIdx)
	lineStyle, markerStyle := d.EffectiveStyle()

	var thumbs []plot.Thumbnailer

	if d.ShowErrorBars && len(errs) > 0 {
		if err := addErrorDecoration(p, d, xys, xs, ys, errs, idx, opts, c); err != nil {
			return 0, err
		}
	}

	if lineStyle != dataset.LineNone {
		line, err := plotter.NewLine(xys)
		if err != nil {
			return 0, fmt.Errorf("line for %s: %w", d.Name, err)
		}
		line.LineStyle.Color = c
		line.LineStyle.Width = vg.Points(d.LineWidth)
		line.LineStyle.Dashes = dashes(lineStyle)
		p.Add(line)
		thumbs = append(thumbs, line)
	}
	if markerStyle != dataset.MarkerNone {
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return 0, fmt.Errorf("scatter for %s: %w", d.Name, err)
		}
		scatter.GlyphStyle = draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(d.MarkerSize / 2),
			Shape:  glyph(markerStyle),
		}
		p.Add(scatter)
		thumbs = append(thumbs, scatter)
	}

	if d.ShowInLegend && len(thumbs) > 0 {
		p.Legend.Add(mathtext.Strip(legendMarkup(d, g)), thumbs...)
	}
	return len(xys), nil
}

// legendMarkup builds a dataset's legend entry. Group-level bold/italic
// flags combine with the dataset's own, and a group shown in the legend
// appends its stack factor.
func legendMarkup(d *dataset.Dataset, g *dataset.Group) string {
	bold, italic := d.LegendBold, d.LegendItalic
	if g != nil {
		bold = bold || g.LegendBold
		italic = italic || g.LegendItalic
	}
	label := mathtext.FormatLegend(d.DisplayLabel, bold, italic)
	if g != nil && g.ShowInLegend {
		if suffix := PlainStackFactor(g.StackFactor); suffix != "" {
			label += " " + suffix
		}
	}
	return label
}

// addErrorDecoration draws either capped error bars or a translucent band,
// mapping the error bounds through the same transform as the curve.
func addErrorDecoration(p *plot.Plot, d *dataset.Dataset, xys plotter.XYs, xs, ys, errs []float64, idx []int, opts Options, c color.Color) error {
	_, _, _, yScale := opts.Type.Axes()
	lows := make([]float64, len(xys))
	highs := make([]float64, len(xys))
	for i, src := range idx {
		low := ys[src] - errs[src]
		// A lower bound at or below zero cannot be drawn on a log axis;
		// leave that side of the bar at zero length.
		if low > 0 || yScale == ScaleLinear {
			if _, lo, ok := opts.Type.TransformPoint(xs[src], low, opts.Wavelength); ok {
				lows[i] = xys[i].Y - lo
			}
		}
		if _, hi, ok := opts.Type.TransformPoint(xs[src], ys[src]+errs[src], opts.Wavelength); ok {
			highs[i] = hi - xys[i].Y
		}
	}

	switch d.ErrorBarStyle {
	case dataset.ErrorBars:
		yerrs := make(plotter.YErrors, len(xys))
		for i := range yerrs {
			yerrs[i].Low = lows[i]
			yerrs[i].High = highs[i]
		}
		bars, err := plotter.NewYErrorBars(struct {
			plotter.XYer
			plotter.YErrorer
		}{xys, yerrs})
		if err != nil {
			return fmt.Errorf("error bars for %s: %w", d.Name, err)
		}
		bars.LineStyle.Color = c
		bars.LineStyle.Width = vg.Points(d.ErrorBarLineWidth)
		bars.CapWidth = vg.Points(d.ErrorBarCapSize)
		p.Add(bars)
	default: // dataset.ErrorFill
		band := make(plotter.XYs, 0, 2*len(xys))
		for i := range xys {
			band = append(band, plotter.XY{X: xys[i].X, Y: xys[i].Y + highs[i]})
		}
		for i := len(xys) - 1; i >= 0; i-- {
			band = append(band, plotter.XY{X: xys[i].X, Y: xys[i].Y - lows[i]})
		}
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return fmt.Errorf("error band for %s: %w", d.Name, err)
		}
		poly.Color = colorutil.WithAlpha(c, d.ErrorBarAlpha)
		poly.LineStyle.Width = 0
		p.Add(poly)
	}
	return nil
}

// nextColor resolves a dataset's color: explicit hex first, then the
// running palette cycle.
func nextColor(d *dataset.Dataset, palette []string, colorIdx *int) color.NRGBA {
	if d.Color != "" {
		return colorutil.ParseHexOr(d.Color, colorutil.Fallback)
	}
	if len(palette) == 0 {
		return colorutil.Fallback
	}
	c := colorutil.ParseHexOr(palette[*colorIdx%len(palette)], colorutil.Fallback)
	*colorIdx++
	return c
}

func dashes(s dataset.LineStyle) []vg.Length {
	switch s {
	case dataset.LineDashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case dataset.LineDashDot:
		return []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	case dataset.LineDotted:
		return []vg.Length{vg.Points(1.5), vg.Points(3)}
	}
	return nil
}

func glyph(m dataset.MarkerStyle) draw.GlyphDrawer {
	switch m {
	case dataset.MarkerSquare:
		return draw.BoxGlyph{}
	case dataset.MarkerTriangle:
		return draw.PyramidGlyph{}
	case dataset.MarkerDiamond:
		return draw.SquareGlyph{}
	case dataset.MarkerCross:
		return draw.CrossGlyph{}
	case dataset.MarkerPlus:
		return draw.PlusGlyph{}
	}
	return draw.CircleGlyph{}
}
