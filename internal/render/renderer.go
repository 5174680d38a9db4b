package render

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/vovakirdan/deck-arcade/internal/core"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// referenceCell is the cell edge in pixels that font sizes are expressed
// against. Sizes scale proportionally for larger or smaller cells.
const referenceCell = 96

// Renderer draws VisualSpecs as square cell bitmaps.
// It is safe for concurrent use.
type Renderer struct {
	ttFont *truetype.Font

	mu    sync.Mutex
	faces map[int]font.Face // TrueType faces keyed by pixel size
}

// NewRenderer creates a renderer using the built-in bitmap font.
func NewRenderer() *Renderer {
	return &Renderer{faces: make(map[int]font.Face)}
}

// NewRendererFromFile creates a renderer that draws text with the TrueType
// font at path.
func NewRendererFromFile(path string) (*Renderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read font: %w", err)
	}
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse font %s: %w", path, err)
	}
	r := NewRenderer()
	r.ttFont = tt
	return r, nil
}

// TrueType reports whether a TrueType font is loaded.
func (r *Renderer) TrueType() bool {
	return r.ttFont != nil
}

// Render draws spec into a new w x h image: the background fills the cell
// and each text line is centred horizontally, the block centred vertically.
func (r *Renderer) Render(spec core.VisualSpec, w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(spec.Background.RGBA()), image.Point{}, draw.Src)

	if spec.Text == "" {
		return img
	}

	lines := strings.Split(spec.Text, "\n")
	px := pixelSize(spec.FontSize, h)

	if r.ttFont != nil {
		r.mu.Lock()
		defer r.mu.Unlock()
		drawLines(img, lines, r.faceLocked(px), spec.Foreground, img.Bounds())
		return img
	}

	r.drawBitmapText(img, lines, px, spec.Foreground)
	return img
}

// faceLocked returns the cached TrueType face for a pixel size.
// Faces keep internal glyph caches, so callers must hold r.mu.
func (r *Renderer) faceLocked(px int) font.Face {
	if f, ok := r.faces[px]; ok {
		return f
	}
	f := truetype.NewFace(r.ttFont, &truetype.Options{
		Size:    float64(px),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.faces[px] = f
	return f
}

// drawBitmapText renders with basicfont at its native size into a scratch
// image, then scales it up with nearest-neighbour so the glyphs keep hard
// edges.
func (r *Renderer) drawBitmapText(dst *image.RGBA, lines []string, px int, fg core.RGB) {
	face := basicfont.Face7x13
	lineH := face.Height

	var textW int
	for _, line := range lines {
		if lw := font.MeasureString(face, line).Ceil(); lw > textW {
			textW = lw
		}
	}
	if textW == 0 {
		return
	}
	textH := lineH * len(lines)

	scratch := image.NewRGBA(image.Rect(0, 0, textW, textH))
	drawLines(scratch, lines, face, fg, scratch.Bounds())

	// Scale so one line is px tall, shrinking to fit the cell if needed.
	scale := float64(px) / float64(lineH)
	bounds := dst.Bounds()
	if fit := float64(bounds.Dx()) / float64(textW); fit < scale {
		scale = fit
	}
	if fit := float64(bounds.Dy()) / float64(textH); fit < scale {
		scale = fit
	}
	sw := max(1, int(float64(textW)*scale))
	sh := max(1, int(float64(textH)*scale))

	x0 := (bounds.Dx() - sw) / 2
	y0 := (bounds.Dy() - sh) / 2
	target := image.Rect(x0, y0, x0+sw, y0+sh)
	xdraw.NearestNeighbor.Scale(dst, target, scratch, scratch.Bounds(), xdraw.Over, nil)
}

// drawLines writes lines centred inside area.
func drawLines(dst draw.Image, lines []string, face font.Face, fg core.RGB, area image.Rectangle) {
	m := face.Metrics()
	lineH := m.Height.Ceil()
	ascent := m.Ascent.Ceil()
	blockH := lineH * len(lines)
	top := area.Min.Y + (area.Dy()-blockH)/2

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg.RGBA()),
		Face: face,
	}
	for i, line := range lines {
		width := drawer.MeasureString(line).Ceil()
		x := area.Min.X + (area.Dx()-width)/2
		baseline := top + i*lineH + ascent
		drawer.Dot = fixed.P(x, baseline)
		drawer.DrawString(line)
	}
}

// pixelSize converts a font size to pixels for a cell of height h.
func pixelSize(fontSize, h int) int {
	if fontSize <= 0 {
		fontSize = core.FontMedium
	}
	return max(1, fontSize*h/referenceCell)
}
