package graphics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"
)

func TestBakeGlyphs(t *testing.T) {
	g, err := BakeGlyphs(goregular.TTF, DefaultFontPixels)
	if err != nil {
		t.Fatalf("Failed to bake glyphs: %v", err)
	}

	for r := rune(32); r <= 126; r++ {
		if _, ok := g.Characters[r]; !ok {
			t.Errorf("Missing glyph %q", r)
		}
	}

	space := g.Characters[' ']
	if space.Width != 0 || space.Advance <= 0 {
		t.Errorf("Expected empty space glyph with positive advance, got %+v", space)
	}

	b := g.Image.Bounds()
	for r, fc := range g.Characters {
		if fc.AtlasX+fc.Width > float32(b.Dx()) || fc.AtlasY+fc.Height > float32(b.Dy()) {
			t.Errorf("Glyph %q at (%v,%v) size %vx%v outside %v", r, fc.AtlasX, fc.AtlasY, fc.Width, fc.Height, b)
		}
	}
}

func TestBakeGlyphsRejectsGarbage(t *testing.T) {
	if _, err := BakeGlyphs([]byte("not a font"), DefaultFontPixels); err == nil {
		t.Errorf("Expected parse error")
	}
}

func TestBuildTextVertices(t *testing.T) {
	chars := map[rune]FontCharacter{
		' ': {Advance: 5},
		'A': {AtlasX: 0, AtlasY: 0, Width: 10, Height: 12, BearingX: 1, BearingY: 12, Advance: 11},
	}

	verts := BuildTextVertices(chars, 100, 100, "A A", 0, 20, 1)
	if len(verts) != 2*6*4 {
		t.Fatalf("Expected two quads, got %d floats", len(verts))
	}

	// second glyph starts after one 'A' advance and one space
	if x := verts[6*4]; x != 11+5+1 {
		t.Errorf("Expected second glyph at x=17, got %v", x)
	}
	// top edge sits BearingY above the baseline
	if y := verts[1*4+1]; y != 8 {
		t.Errorf("Expected glyph top at y=8, got %v", y)
	}

	if v := BuildTextVertices(chars, 100, 100, "é", 0, 0, 1); len(v) != 0 {
		t.Errorf("Expected missing glyph to produce no quads, got %d floats", len(v))
	}
}

func TestFontViewportIgnoresEmptyFramebuffer(t *testing.T) {
	fr := &FontRenderer{}
	fr.SetViewport(800, 600)
	want := mgl32.Ortho(0, 800, 600, 0, 0, 1)
	if fr.projection != want {
		t.Fatalf("Expected pixel projection for 800x600, got %v", fr.projection)
	}

	// minimized window
	fr.SetViewport(0, 0)
	fr.SetViewport(800, 0)
	if fr.projection != want {
		t.Errorf("Expected projection kept for empty framebuffer, got %v", fr.projection)
	}
	for _, f := range fr.projection {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			t.Fatalf("Projection holds non-finite value %v", fr.projection)
		}
	}
}
