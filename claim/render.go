package claim

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// ClaimRenderer renders a claim set as vector graphics.
type ClaimRenderer struct {
	Claims      []ClaimShape
	Padding     float64           // padding in plane units
	StrokeWidth float64           // claim outline stroke width
	FillAlpha   uint8             // claim fill opacity, 0..255
	Resolution  canvas.Resolution // resolution for PNG output
}

// NewClaimRenderer creates a renderer with default settings.
func NewClaimRenderer(claims []ClaimShape) *ClaimRenderer {
	return &ClaimRenderer{
		Claims:      claims,
		Padding:     50.0,
		StrokeWidth: 3.0,
		FillAlpha:   90,
		Resolution:  canvas.DPI(300),
	}
}

// canvasRenderer is the surface both the svg and rasterizer backends expose.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the claim set as an SVG to the provided writer.
func (r *ClaimRenderer) RenderToSVG(w io.Writer) error {
	bound, ok := r.bounds()
	if !ok {
		return fmt.Errorf("render claims: no claim geometry to render")
	}

	width := bound.Width() + 2*r.Padding
	height := bound.Height() + 2*r.Padding

	svgRenderer := svg.New(w, width, height, nil)
	r.renderToCanvas(svgRenderer, bound, width, height)
	return svgRenderer.Close()
}

// RenderToPNG writes the claim set as a PNG to the provided writer.
func (r *ClaimRenderer) RenderToPNG(w io.Writer) error {
	bound, ok := r.bounds()
	if !ok {
		return fmt.Errorf("render claims: no claim geometry to render")
	}

	width := bound.Width() + 2*r.Padding
	height := bound.Height() + 2*r.Padding

	rast := rasterizer.New(width, height, r.Resolution, canvas.DefaultColorSpace)
	r.renderToCanvas(rast, bound, width, height)
	return png.Encode(w, rast)
}

// renderToCanvas draws the claim set onto a canvas backend. Claims arrive in
// exclusion order, so larger shapes with punched holes never cover the
// smaller claims inside them regardless of paint order; painting in input
// order keeps output deterministic.
func (r *ClaimRenderer) renderToCanvas(renderer canvasRenderer, bound Rect, width, height float64) {
	bgStyle := canvas.DefaultStyle
	bgStyle.Fill = canvas.Paint{Color: canvas.White}
	renderer.RenderPath(canvas.Rectangle(width, height), bgStyle, canvas.Identity)

	// Map plane Y grows downward; canvas Y grows upward.
	toCanvas := func(p Point) (float64, float64) {
		return (p.X - bound.MinX) + r.Padding, (bound.MaxY - p.Y) + r.Padding
	}

	for _, claim := range r.Claims {
		fill := parseClaimColor(claim.Color)

		fillStyle := canvas.DefaultStyle
		fillStyle.Fill = canvas.Paint{Color: withAlpha(fill, r.FillAlpha)}
		fillStyle.Stroke = canvas.Paint{Color: canvas.Transparent}
		fillStyle.FillRule = canvas.EvenOdd

		strokeStyle := canvas.DefaultStyle
		strokeStyle.Fill = canvas.Paint{Color: canvas.Transparent}
		strokeStyle.Stroke = canvas.Paint{Color: fill}
		strokeStyle.StrokeWidth = r.StrokeWidth

		cp := &canvas.Path{}
		for _, ring := range claim.Loops {
			for i, pt := range ring {
				cx, cy := toCanvas(pt)
				if i == 0 {
					cp.MoveTo(cx, cy)
				} else {
					cp.LineTo(cx, cy)
				}
			}
			cp.Close()
		}
		renderer.RenderPath(cp, fillStyle, canvas.Identity)
		renderer.RenderPath(cp, strokeStyle, canvas.Identity)

		// Label anchor marker. Text is left to the raster preview and to
		// website consumers of the JSON output; here the placement box is
		// drawn as a solid tag, as large as the placement allows.
		tagStyle := canvas.DefaultStyle
		tagStyle.Fill = canvas.Paint{Color: fill}
		tagStyle.Stroke = canvas.Paint{Color: canvas.Black}
		tagStyle.StrokeWidth = 1.0

		lx, ly := toCanvas(Point{X: claim.Label.X, Y: claim.Label.Y})
		tag := canvas.Rectangle(claim.Label.MaxWidth, claim.Label.MaxHeight)
		tag = tag.Translate(lx-claim.Label.MaxWidth/2, ly-claim.Label.MaxHeight/2)
		renderer.RenderPath(tag, tagStyle, canvas.Identity)
	}
}

// bounds returns the union of all claim bounding boxes.
func (r *ClaimRenderer) bounds() (Rect, bool) {
	return claimSetBounds(r.Claims)
}

// parseClaimColor parses a claim's display color, falling back to the default
// gray when the value is malformed.
func parseClaimColor(s string) color.RGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		c, _ = ParseHexColor(DefaultClaimColor)
	}
	return c
}

// withAlpha applies an opacity to an opaque color, premultiplying the
// channels as the canvas library expects.
func withAlpha(c color.RGBA, a uint8) color.RGBA {
	if a == 255 {
		return c
	}
	alpha32 := uint32(a)
	return color.RGBA{
		R: uint8(uint32(c.R) * alpha32 / 255),
		G: uint8(uint32(c.G) * alpha32 / 255),
		B: uint8(uint32(c.B) * alpha32 / 255),
		A: a,
	}
}
