package plotmodel

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"scatterforge/internal/metadata"
)

// Default figure size in inches, matching the on-screen aspect ratio.
const (
	defaultWidthIn  = 8
	defaultHeightIn = 6
)

// ExportOptions controls figure export.
type ExportOptions struct {
	// Width and Height in inches. Zero means the 8x6 default.
	Width, Height float64

	// DPI for raster formats. Zero means 300.
	DPI int

	// Fields is the metadata field set stamped into the output, built by
	// metadata.UserMetadata.Fields. Nil disables metadata.
	Fields map[string]string
}

func (o ExportOptions) size() (w, h vg.Length) {
	wIn, hIn := o.Width, o.Height
	if wIn <= 0 {
		wIn = defaultWidthIn
	}
	if hIn <= 0 {
		hIn = defaultHeightIn
	}
	return vg.Length(wIn) * vg.Inch, vg.Length(hIn) * vg.Inch
}

func (o ExportOptions) dpi() int {
	if o.DPI <= 0 {
		return 300
	}
	return o.DPI
}

// Export writes the figure to path. The format follows the file
// extension: png and tif/tiff are rasterized at the requested DPI, svg
// and pdf go through the vector backends. PNG output carries the XMP
// metadata embedded; all other formats get an .xmp sidecar file.
func Export(p *plot.Plot, path string, opts ExportOptions) error {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return exportPNG(p, path, opts)
	case ".tif", ".tiff":
		if err := exportTIFF(p, path, opts); err != nil {
			return err
		}
		return writeSidecar(path, opts)
	case ".svg", ".pdf":
		w, h := opts.size()
		if err := p.Save(w, h, path); err != nil {
			return fmt.Errorf("save %s: %w", ext[1:], err)
		}
		return writeSidecar(path, opts)
	}
	return fmt.Errorf("unsupported export format %q", ext)
}

func exportPNG(p *plot.Plot, path string, opts ExportOptions) error {
	buf, err := renderPNG(p, opts)
	if err != nil {
		return err
	}
	data := buf.Bytes()
	if opts.Fields != nil {
		data, err = metadata.EmbedPNGXMP(data, metadata.XMPPacket(opts.Fields))
		if err != nil {
			return fmt.Errorf("embed metadata: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// renderPNG rasterizes the figure to an encoded PNG at the requested
// size and DPI.
func renderPNG(p *plot.Plot, opts ExportOptions) (*bytes.Buffer, error) {
	c := rasterCanvas(p, opts)
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return &buf, nil
}

func exportTIFF(p *plot.Plot, path string, opts ExportOptions) error {
	c := rasterCanvas(p, opts)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := tiff.Encode(f, c.Image(), &tiff.Options{Compression: tiff.Deflate}); err != nil {
		f.Close()
		return fmt.Errorf("encode tiff: %w", err)
	}
	return f.Close()
}

// Raster renders the figure to an in-memory image, for on-screen views.
func Raster(p *plot.Plot, opts ExportOptions) image.Image {
	return rasterCanvas(p, opts).Image()
}

func rasterCanvas(p *plot.Plot, opts ExportOptions) *vgimg.Canvas {
	w, h := opts.size()
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(opts.dpi()))
	p.Draw(draw.New(c))
	return c
}

// writeSidecar stores the XMP packet next to the exported file, with the
// image extension replaced by .xmp.
func writeSidecar(path string, opts ExportOptions) error {
	if opts.Fields == nil {
		return nil
	}
	side := strings.TrimSuffix(path, filepath.Ext(path)) + ".xmp"
	packet := metadata.XMPPacket(opts.Fields)
	if err := os.WriteFile(side, []byte(packet), 0644); err != nil {
		return fmt.Errorf("write sidecar: %w", err)
	}
	return nil
}
