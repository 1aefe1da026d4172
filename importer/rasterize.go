package importer

// Both importers converge here: given a font.Face and the runes it
// covers, rasterize every glyph into the common bounding box grid
// with 4-bit alpha and assemble the working data file.

import "errors"
import "image"
import "image/color"
import "image/draw"

import "golang.org/x/image/font"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/rlefont/datafile"

var ErrNoGlyphs = errors.New("font covers no usable characters")

// Quantizes an 8-bit alpha value to the 4-bit range.
func quantizeAlpha(alpha uint8) uint8 {
	return uint8((int(alpha) + 8) / 17)
}

func rasterizeFace(face font.Face, runes []rune, fontInfo datafile.FontInfo) (*datafile.DataFile, error) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	dot := fixed.P(0, ascent)

	// first pass: union of the glyph rectangles and covered runes
	var union image.Rectangle
	var covered []rune
	for _, char := range runes {
		if char > 0xFFFF { continue } // outside the encodable range
		rect, _, _, _, ok := face.Glyph(dot, char)
		if !ok { continue }
		covered = append(covered, char)
		if union.Empty() {
			union = rect
		} else {
			union = union.Union(rect)
		}
	}
	if len(covered) == 0 { return nil, ErrNoGlyphs }
	if union.Empty() { union = image.Rect(0, ascent - 1, 1, ascent) }
	if union.Dx() > 255 || union.Dy() > 255 {
		return nil, errors.New("glyph bounding box exceeds 255 pixels")
	}

	fontInfo.MaxWidth = uint8(union.Dx())
	fontInfo.MaxHeight = uint8(union.Dy())
	fontInfo.BaselineX = int8(clampInt8(-union.Min.X))
	fontInfo.BaselineY = int8(clampInt8(ascent - union.Min.Y))
	if fontInfo.LineHeight == 0 {
		fontInfo.LineHeight = uint8(min(metrics.Height.Round(), 255))
	}

	// second pass: draw each glyph mask into the grid
	glyphSize := union.Dx() * union.Dy()
	canvas := image.NewAlpha(union)
	opaque := image.NewUniform(color.Alpha{255})
	var glyphTable []datafile.GlyphEntry
	for _, char := range covered {
		rect, mask, maskPoint, advance, ok := face.Glyph(dot, char)
		if !ok { continue }
		draw.Draw(canvas, canvas.Bounds(), image.Transparent, image.Point{}, draw.Src)
		draw.DrawMask(canvas, rect, opaque, image.Point{}, mask, maskPoint, draw.Src)

		pixels := make(datafile.Pixels, 0, glyphSize)
		for y := union.Min.Y; y < union.Max.Y; y++ {
			for x := union.Min.X; x < union.Max.X; x++ {
				pixels = append(pixels, quantizeAlpha(canvas.AlphaAt(x, y).A))
			}
		}
		glyphTable = append(glyphTable, datafile.GlyphEntry{
			Chars: []uint16{uint16(char)},
			Width: uint8(min(max(advance.Round(), 0), 255)),
			Data:  pixels,
		})
	}

	glyphTable = EliminateDuplicates(glyphTable)
	CropGlyphs(glyphTable, &fontInfo)
	return datafile.New(seedDictionary(&fontInfo), glyphTable, fontInfo), nil
}

func clampInt8(value int) int {
	return min(max(value, -128), 127)
}
