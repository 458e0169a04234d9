package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"path/filepath"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultFontPixels is the glyph size of the overlay font
const DefaultFontPixels = 18

// FontCharacter describes a single character's placement and metrics within the atlas
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas texture (top-left origin)
	AtlasX float32
	AtlasY float32
	// Glyph bitmap size in pixels
	Width  float32
	Height float32
	// Bearing (offset from baseline) in pixels
	BearingX float32
	BearingY float32
	Advance  int
}

// GlyphAtlas is a baked set of glyphs before upload
type GlyphAtlas struct {
	Image      *image.Alpha
	Characters map[rune]FontCharacter
}

// FontAtlasInfo contains the OpenGL texture and per-glyph metadata
type FontAtlasInfo struct {
	TextureID  uint32
	AtlasW     int
	AtlasH     int
	Characters map[rune]FontCharacter
}

// BakeGlyphs rasterizes printable ASCII from a TrueType/OpenType font into a
// single-channel image. It does not touch OpenGL.
func BakeGlyphs(fontBytes []byte, fontPixels int) (*GlyphAtlas, error) {
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	const atlasW = 256
	padding := 1

	// First pass: pack rows to find the atlas height
	offsetX, rowH, requiredH := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, _, _, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		w, h := dr.Dx(), dr.Dy()
		if w == 0 || h == 0 {
			continue
		}
		if offsetX+w+padding > atlasW {
			requiredH += rowH + padding
			offsetX, rowH = 0, 0
		}
		offsetX += w + padding
		rowH = max(rowH, h)
	}
	requiredH += rowH + padding

	atlasImg := image.NewAlpha(image.Rect(0, 0, atlasW, requiredH))
	characters := make(map[rune]FontCharacter)

	// Second pass: render each glyph into the atlas and record metrics
	offsetX, offsetY, rowHeight := 0, 0, 0
	for r := rune(32); r <= 126; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok || mask == nil {
			continue
		}
		gw, gh := dr.Dx(), dr.Dy()
		adv := int(math.Round(float64(advance) / 64.0))

		if gw == 0 || gh == 0 {
			// Space or non-drawable glyph; still record advance
			characters[r] = FontCharacter{Advance: adv}
			continue
		}

		if offsetX+gw+padding > atlasW {
			offsetX = 0
			offsetY += rowHeight + padding
			rowHeight = 0
		}

		dstRect := image.Rect(offsetX, offsetY, offsetX+gw, offsetY+gh)
		draw.Draw(atlasImg, dstRect, mask, maskp, draw.Src)

		characters[r] = FontCharacter{
			AtlasX:   float32(offsetX),
			AtlasY:   float32(offsetY),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(dr.Min.X),
			BearingY: float32(-dr.Min.Y),
			Advance:  adv,
		}

		offsetX += gw + padding
		rowHeight = max(rowHeight, gh)
	}

	return &GlyphAtlas{Image: atlasImg, Characters: characters}, nil
}

// BuildFontAtlas bakes the Go Regular font and uploads it as a GL_RED texture
func BuildFontAtlas(fontPixels int) (*FontAtlasInfo, error) {
	g, err := BakeGlyphs(goregular.TTF, fontPixels)
	if err != nil {
		return nil, err
	}
	b := g.Image.Bounds()

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, texture)
	// Ensure tight byte alignment for single-channel upload
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, int32(b.Dx()), int32(b.Dy()), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(g.Image.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	return &FontAtlasInfo{TextureID: texture, AtlasW: b.Dx(), AtlasH: b.Dy(), Characters: g.Characters}, nil
}

// FontRenderer renders ASCII text strings using a prebuilt atlas
type FontRenderer struct {
	atlas      *FontAtlasInfo
	shader     *Shader
	projection mgl32.Mat4
	vao        uint32
	vbo        uint32
}

// NewFontRenderer creates the renderer and loads the font shader from assets
func NewFontRenderer(atlas *FontAtlasInfo) (*FontRenderer, error) {
	if atlas == nil || len(atlas.Characters) == 0 {
		return nil, fmt.Errorf("invalid font atlas")
	}
	shader, err := NewShader(filepath.Join(ShadersDir, "font.vert"), filepath.Join(ShadersDir, "font.frag"))
	if err != nil {
		return nil, err
	}
	fr := &FontRenderer{
		atlas:      atlas,
		shader:     shader,
		projection: mgl32.Ortho(0, 1, 1, 0, 0, 1),
	}
	fr.initGL()
	return fr, nil
}

func (fr *FontRenderer) initGL() {
	gl.GenVertexArrays(1, &fr.vao)
	gl.GenBuffers(1, &fr.vbo)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// SetViewport maps text coordinates to framebuffer pixels, origin top-left.
// An empty framebuffer (minimized window) keeps the previous mapping.
func (fr *FontRenderer) SetViewport(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	fr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, 0, 1)
}

// Render draws the given text with its baseline starting at (x, y)
func (fr *FontRenderer) Render(text string, x, y, scale float32, color mgl32.Vec3) {
	verts := BuildTextVertices(fr.atlas.Characters, fr.atlas.AtlasW, fr.atlas.AtlasH, text, x, y, scale)
	if len(verts) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)

	fr.shader.Use()
	fr.shader.SetVector3("textColor", color.X(), color.Y(), color.Z())
	fr.shader.SetMatrix4("projection", &fr.projection[0])
	fr.shader.SetInt("text", 0)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, fr.atlas.TextureID)
	gl.BindVertexArray(fr.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, fr.vbo)

	size := len(verts) * 4
	gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.DYNAMIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose releases GL objects
func (fr *FontRenderer) Dispose() {
	gl.DeleteBuffers(1, &fr.vbo)
	gl.DeleteVertexArrays(1, &fr.vao)
	gl.DeleteTextures(1, &fr.atlas.TextureID)
	fr.shader.Delete()
}

// BuildTextVertices lays out text as two triangles per glyph, 4 floats per
// vertex (x, y, u, v). Missing glyphs advance by the space width.
func BuildTextVertices(chars map[rune]FontCharacter, atlasW, atlasH int, text string, x, y, scale float32) []float32 {
	vertices := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := chars[r]
		if !ok {
			x += float32(chars[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			xPos := x + fc.BearingX*scale
			yPos := y - fc.BearingY*scale
			w := fc.Width * scale
			h := fc.Height * scale

			u := fc.AtlasX / float32(atlasW)
			v := fc.AtlasY / float32(atlasH)
			du := fc.Width / float32(atlasW)
			dv := fc.Height / float32(atlasH)

			vertices = append(vertices,
				xPos, yPos+h, u, v+dv,
				xPos, yPos, u, v,
				xPos+w, yPos, u+du, v,

				xPos, yPos+h, u, v+dv,
				xPos+w, yPos, u+du, v,
				xPos+w, yPos+h, u+du, v+dv,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return vertices
}
