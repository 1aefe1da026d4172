package importer

import "fmt"
import "unicode"

import "golang.org/x/image/font"
import "golang.org/x/image/font/opentype"
import "golang.org/x/image/font/sfnt"

import "github.com/tinne26/rlefont/datafile"

// Imports an OpenType or TrueType font rasterized at the given pixel
// size. Every character of the basic multilingual plane the font
// covers gets a glyph; use the filter step afterwards to cut the set
// down.
func LoadOpenType(data []byte, sizePx int) (*datafile.DataFile, error) {
	if sizePx < 1 || sizePx > 255 {
		return nil, fmt.Errorf("invalid pixel size %d", sizePx)
	}
	sfntFont, err := opentype.Parse(data)
	if err != nil { return nil, err }

	runes, err := coveredRunes(sfntFont)
	if err != nil { return nil, err }

	// 72 DPI makes points equal pixels
	face, err := opentype.NewFace(sfntFont, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingNone,
	})
	if err != nil { return nil, err }
	defer face.Close()

	var fontInfo datafile.FontInfo
	fontInfo.Name, err = sfntFont.Name(nil, sfnt.NameIDFull)
	if err != nil { fontInfo.Name = "Unnamed" }
	fontInfo.DefaultChar = 0xFFFD
	return rasterizeFace(face, runes, fontInfo)
}

// Walks the basic multilingual plane and collects the runes the font
// has real glyphs for (anything mapping to the notdef glyph is
// considered uncovered).
func coveredRunes(sfntFont *sfnt.Font) ([]rune, error) {
	var buffer sfnt.Buffer
	var runes []rune
	for char := rune(0x20); char <= 0xFFFF; char++ {
		if unicode.Is(unicode.Cs, char) { continue } // surrogates
		index, err := sfntFont.GlyphIndex(&buffer, char)
		if err != nil { return nil, err }
		if index != 0 { runes = append(runes, char) }
	}
	if len(runes) == 0 { return nil, ErrNoGlyphs }
	return runes, nil
}
