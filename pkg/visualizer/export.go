package visualizer

import (
	"bytes"
	"math"
	"strings"

	"github.com/matzehuels/hyperview/pkg/errors"
	hio "github.com/matzehuels/hyperview/pkg/io"
	"github.com/matzehuels/hyperview/pkg/observability"
	"github.com/matzehuels/hyperview/pkg/render"
	"github.com/matzehuels/hyperview/pkg/render/nodelink"
	"github.com/matzehuels/hyperview/pkg/render/sink"
)

// Format is an export format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists every export format.
var Formats = []Format{FormatPNG, FormatSVG, FormatDOT, FormatJSON}

// ParseFormat parses an export format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatPNG, FormatSVG, FormatDOT, FormatJSON:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format: %q (must be one of: png, svg, dot, json)", s)
}

// ExportOptions tunes Export.
type ExportOptions struct {
	// Scale multiplies the PNG pixel size; zero means 1.
	Scale float64
	// EmbedFont inlines the label font into SVG output.
	EmbedFont bool
}

// Export renders the current model at canvas size into an encoded blob.
// PNG and SVG draw through the same renderer settings as the live view;
// DOT and JSON describe the positioned model. The attached surface is left
// untouched.
func (v *Visualizer) Export(format Format, opts ExportOptions) ([]byte, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	data, err := v.export(format, opts)
	observability.Render().OnExport(string(format), len(data), err)
	return data, err
}

func (v *Visualizer) export(format Format, opts ExportOptions) ([]byte, error) {
	w := int(math.Ceil(v.cfg.Canvas.Width))
	h := int(math.Ceil(v.cfg.Canvas.Height))

	switch format {
	case FormatPNG:
		scale := opts.Scale
		if !(scale > 0) {
			scale = 1
		}
		png := sink.NewPNG(w, h, sink.WithScale(scale))
		v.drawOn(png)
		return png.Encode()
	case FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.EmbedFont {
			svgOpts = append(svgOpts, sink.WithEmbeddedFont())
		}
		svg := sink.NewSVG(w, h, svgOpts...)
		v.drawOn(svg)
		return svg.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(v.model, nodelink.Options{Height: v.cfg.Canvas.Height})), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := hio.WriteJSON(v.model, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
		return buf.Bytes(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported export format: %q", format)
}

// drawOn renders one frame onto s, restoring the live surface afterwards.
// Callers hold v.mu.
func (v *Visualizer) drawOn(s render.Surface) {
	live := v.renderer.Surface()
	v.renderer.Attach(s)
	v.renderer.Render(v.model)
	if live != nil {
		v.renderer.Attach(live)
	} else {
		v.renderer.Detach()
	}
}
