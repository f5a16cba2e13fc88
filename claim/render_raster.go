package claim

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PreviewRenderer draws the claim set onto a plain raster image with guild
// tags as bitmap text. It trades the vector renderer's fidelity for zero
// font setup, which is what a quick visual check needs.
type PreviewRenderer struct {
	Claims  []ClaimShape
	Scale   float64 // pixels per plane unit
	Padding int     // padding in pixels
}

// NewPreviewRenderer creates a preview renderer with default settings.
func NewPreviewRenderer(claims []ClaimShape) *PreviewRenderer {
	return &PreviewRenderer{
		Claims:  claims,
		Scale:   0.5,
		Padding: 20,
	}
}

// RenderPNG writes the preview image as a PNG to the provided writer.
func (r *PreviewRenderer) RenderPNG(w io.Writer) error {
	img, err := r.Render()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the preview image to a file.
func (r *PreviewRenderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return r.RenderPNG(f)
}

// Render rasterizes the claim set. Each claim region is filled with its
// guild color via even-odd containment, so punched holes stay unpainted.
func (r *PreviewRenderer) Render() (*image.RGBA, error) {
	bound, ok := claimSetBounds(r.Claims)
	if !ok {
		return nil, fmt.Errorf("render preview: no claim geometry to render")
	}
	if r.Scale <= 0 {
		return nil, fmt.Errorf("render preview: scale must be positive, got %g", r.Scale)
	}

	width := int(bound.Width()*r.Scale) + 2*r.Padding
	height := int(bound.Height()*r.Scale) + 2*r.Padding
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	// White background.
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
		img.Pix[i+1] = 0xff
		img.Pix[i+2] = 0xff
		img.Pix[i+3] = 0xff
	}

	for _, claim := range r.Claims {
		r.drawClaim(img, bound, claim)
	}
	for _, claim := range r.Claims {
		r.drawTag(img, bound, claim)
	}
	r.drawLegend(img)

	return img, nil
}

func (r *PreviewRenderer) drawClaim(img *image.RGBA, bound Rect, claim ClaimShape) {
	fill := parseClaimColor(claim.Color)
	fill.A = 0xff

	maxX := img.Bounds().Max.X
	maxY := img.Bounds().Max.Y
	for py := 0; py < maxY; py++ {
		// Pixel centers back-projected to plane coordinates.
		wy := bound.MinY + (float64(py-r.Padding)+0.5)/r.Scale
		for px := 0; px < maxX; px++ {
			wx := bound.MinX + (float64(px-r.Padding)+0.5)/r.Scale
			if pointInRings(claim.Loops, wx, wy) {
				img.SetRGBA(px, py, fill)
			}
		}
	}
}

func (r *PreviewRenderer) drawTag(img *image.RGBA, bound Rect, claim ClaimShape) {
	tag := claim.Guild.Tag
	if tag == "" {
		return
	}
	px := r.Padding + int((claim.Label.X-bound.MinX)*r.Scale)
	py := r.Padding + int((claim.Label.Y-bound.MinY)*r.Scale)

	// Center the 7x13 bitmap glyph run on the anchor.
	px -= len(tag) * 7 / 2
	py += 13 / 2
	drawText(img, px, py, tag, color.RGBA{A: 0xff})
}

// drawLegend lists guild names with color swatches in the top-left corner.
func (r *PreviewRenderer) drawLegend(img *image.RGBA) {
	seen := make(map[string]bool)
	var names []string
	colorFor := make(map[string]color.RGBA)
	for _, claim := range r.Claims {
		if claim.Guild.Name == "" || seen[claim.Guild.Name] {
			continue
		}
		seen[claim.Guild.Name] = true
		names = append(names, claim.Guild.Name)
		colorFor[claim.Guild.Name] = parseClaimColor(claim.Color)
	}
	sort.Strings(names)

	y := 15
	for _, name := range names {
		c := colorFor[name]
		c.A = 0xff
		for dy := 0; dy < 12; dy++ {
			for dx := 0; dx < 12; dx++ {
				img.SetRGBA(10+dx, y+dy-6, c)
			}
		}
		drawText(img, 28, y, name, color.RGBA{A: 0xff})
		y += 18
	}
}

// drawText renders text onto an image at the given position.
func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// pointInRings reports even-odd containment of the point in the loop set.
// Outer loops and hole loops both flip the parity, which is exactly the
// punched-hole semantics the exclusion pass produces.
func pointInRings(loops []Ring, x, y float64) bool {
	inside := false
	for _, ring := range loops {
		n := len(ring)
		for i := 0; i < n; i++ {
			a := ring[i]
			b := ring[(i+1)%n]
			if (a.Y > y) == (b.Y > y) {
				continue
			}
			t := (y - a.Y) / (b.Y - a.Y)
			if x < a.X+t*(b.X-a.X) {
				inside = !inside
			}
		}
	}
	return inside
}

// claimSetBounds returns the union of all claim loop bounding boxes.
func claimSetBounds(claims []ClaimShape) (Rect, bool) {
	var bound Rect
	found := false
	for _, claim := range claims {
		for _, ring := range claim.Loops {
			for _, p := range ring {
				pr := Rect{MinX: p.X, MaxX: p.X, MinY: p.Y, MaxY: p.Y}
				if !found {
					bound = pr
					found = true
				} else {
					bound = bound.Union(pr)
				}
			}
		}
	}
	return bound, found
}
