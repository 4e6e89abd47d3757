package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// markerLayout maps each allergen tag to its position on the template,
// expressed as fractions of the template width and height so per-language
// templates of different sizes keep their markers in place.
var markerLayout = map[string]struct{ X, Y float64 }{
	"eggs":      {0.14, 0.48},
	"dairy":     {0.29, 0.48},
	"peanuts":   {0.43, 0.48},
	"tree_nuts": {0.57, 0.48},
	"shellfish": {0.71, 0.48},
	"soy":       {0.86, 0.48},
}

// Type scale relative to template height.
const (
	nameScale    = 0.085
	markerScale  = 0.10
	contactScale = 0.042
)

var (
	nameColor   = color.NRGBA{R: 0x21, G: 0x21, B: 0x21, A: 0xff}
	markerColor = color.NRGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	// light text for the dark bottom bar baked into the templates
	contactColor = color.NRGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
)

// Composer draws the dynamic overlay (name, allergen marks, emergency line)
// onto a language template. Safe for concurrent use once constructed.
type Composer struct {
	font *opentype.Font
}

// NewComposer parses the embedded bold face used for all overlay text.
func NewComposer() (*Composer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	return &Composer{font: f}, nil
}

// Compose flattens the overlay onto the template and returns the result.
// Canvas dimensions come from the template itself. Allergen tags without a
// layout entry are ignored; absent allergens draw nothing. Runes the embedded
// face cannot draw are stripped before rendering.
func (c *Composer) Compose(tpl image.Image, name string, allergens []string, emergencyLine string) (image.Image, error) {
	b := tpl.Bounds()
	w, h := b.Dx(), b.Dy()
	canvas := imaging.Clone(tpl)

	if s := c.drawable(name); s != "" {
		face, err := c.face(float64(h) * nameScale)
		if err != nil {
			return nil, err
		}
		defer face.Close()
		drawCentered(canvas, face, strings.ToUpper(s), w/2, int(float64(h)*0.14), nameColor)
	}

	if len(allergens) > 0 {
		face, err := c.face(float64(h) * markerScale)
		if err != nil {
			return nil, err
		}
		defer face.Close()
		for _, tag := range allergens {
			pos, ok := markerLayout[tag]
			if !ok {
				continue
			}
			drawCentered(canvas, face, "X", int(pos.X*float64(w)), int(pos.Y*float64(h)), markerColor)
		}
	}

	if s := c.drawable(emergencyLine); s != "" {
		face, err := c.face(float64(h) * contactScale)
		if err != nil {
			return nil, err
		}
		defer face.Close()
		drawAt(canvas, face, s, int(float64(w)*0.04), h-int(float64(h)*0.05), contactColor)
	}

	return canvas, nil
}

// CanRender reports whether every non-space rune of s has a glyph in the
// embedded face.
func (c *Composer) CanRender(s string) bool {
	var buf sfnt.Buffer
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		gi, err := c.font.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			return false
		}
	}
	return true
}

// drawable strips runes without a glyph in the embedded face, so unsupported
// scripts skip rendering instead of painting rows of identical .notdef boxes.
func (c *Composer) drawable(s string) string {
	var buf sfnt.Buffer
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteRune(r)
			continue
		}
		if gi, err := c.font.GlyphIndex(&buf, r); err == nil && gi > 0 {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func (c *Composer) face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating font face: %w", err)
	}
	return face, nil
}

// drawCentered centers the string's glyph box on (cx, cy).
func drawCentered(dst draw.Image, face font.Face, s string, cx, cy int, col color.Color) {
	bounds, _ := font.BoundString(face, s)
	gw := (bounds.Max.X - bounds.Min.X).Ceil()
	gh := (bounds.Max.Y - bounds.Min.Y).Ceil()
	x := cx - gw/2 - bounds.Min.X.Floor()
	y := cy - gh/2 - bounds.Min.Y.Floor()
	drawAt(dst, face, s, x, y, col)
}

// drawAt draws the string with its baseline origin at (x, y).
func drawAt(dst draw.Image, face font.Face, s string, x, y int, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
