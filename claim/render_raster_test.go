package claim

import (
	"bytes"
	"image/png"
	"testing"
)

func TestPreviewRender(t *testing.T) {
	r := NewPreviewRenderer(renderableClaims())
	img, err := r.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Bounds: -3..303 at scale 0.5 plus 20px padding per side.
	wantW := int(306*0.5) + 40
	if img.Bounds().Dx() != wantW {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), wantW)
	}

	// A pixel inside the big blue claim, away from the hole.
	px := r.Padding + int((50.0+3)*r.Scale)
	py := r.Padding + int((50.0+3)*r.Scale)
	c := img.RGBAAt(px, py)
	if c.B != 0xff || c.R != 0 {
		t.Errorf("pixel inside big claim = %+v, want blue fill", c)
	}
}

func TestPreviewRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPreviewRenderer(renderableClaims()).RenderPNG(&buf); err != nil {
		t.Fatalf("RenderPNG failed: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a decodable PNG: %v", err)
	}
}

func TestPreviewRenderErrors(t *testing.T) {
	if _, err := NewPreviewRenderer(nil).Render(); err == nil {
		t.Error("empty claim set should fail")
	}

	r := NewPreviewRenderer(renderableClaims())
	r.Scale = 0
	if _, err := r.Render(); err == nil {
		t.Error("zero scale should fail")
	}
}

func TestPointInRings(t *testing.T) {
	square := Ring{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	hole := Ring{{4, 4}, {4, 6}, {6, 6}, {6, 4}}

	if !pointInRings([]Ring{square}, 5, 5) {
		t.Error("center of square should be inside")
	}
	if pointInRings([]Ring{square}, 15, 5) {
		t.Error("point beside square should be outside")
	}
	if pointInRings([]Ring{square, hole}, 5, 5) {
		t.Error("point inside the hole should be outside by even-odd parity")
	}
	if !pointInRings([]Ring{square, hole}, 2, 2) {
		t.Error("point between square and hole should be inside")
	}
}

func TestClaimSetBounds(t *testing.T) {
	claims := []ClaimShape{
		{Loops: []Ring{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}},
		{Loops: []Ring{{{50, -5}, {60, -5}, {60, 20}, {50, 20}}}},
	}
	bound, ok := claimSetBounds(claims)
	if !ok {
		t.Fatal("bounds should exist")
	}
	if bound != (Rect{MinX: 0, MaxX: 60, MinY: -5, MaxY: 20}) {
		t.Errorf("bounds = %+v", bound)
	}

	if _, ok := claimSetBounds(nil); ok {
		t.Error("no claims should yield no bounds")
	}
}
