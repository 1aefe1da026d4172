package rlefont

// A [Font] is a read-only, fully decoded-side object holding the
// compressed form of a bitmap font: the shared dictionary data and
// the per-character-range glyph streams. To obtain a [Font], use
// [Parse]() on serialized font data, or build one from a working
// data file with the encoder package.
//
// Fonts are cheap to keep around: beyond the compressed data itself
// the overhead is a few slice headers per character range. All
// methods are safe for concurrent use, as the font is never mutated
// after parsing.
type Font struct {
	name string
	shortName string

	// glyph bounding box and metrics
	width  uint8
	height uint8
	baselineX int8
	baselineY int8
	lineHeight uint8
	flags uint16

	// compressed dictionary. offsets has dictCount + 1 entries so
	// entry lengths can be derived by subtracting consecutive values
	dictData []byte
	dictOffsets []uint16
	rleCount uint8 // entries below this index are RLE coded
	dictCount uint8

	// sparse character mapping
	fallbackChar uint16
	ranges []CharRange
	defaultGlyph []byte // width byte + codewords, shared slice into a range
}

// A contiguous span of character codes and their encoded glyphs.
// Ranges implement sparse storage of the character space: a font
// covering latin and cyrillic stores two ranges instead of one
// lookup table spanning the whole gap.
type CharRange struct {
	FirstChar uint16
	CharCount uint16

	// Start indices into GlyphData, one per character in the range.
	// Characters missing from the font alias the fallback glyph's
	// offset, so every slot is valid.
	GlyphOffsets []uint16

	// Encoded glyphs: for each glyph one advance width byte followed
	// by the codeword stream.
	GlyphData []byte
}

// --- accessors ---

// Full name of the font, from the original font file.
func (self *Font) Name() string { return self.name }

// Short identifier-safe name, typically derived from the file name.
func (self *Font) ShortName() string { return self.shortName }

// Width of the common glyph bounding box, in pixels.
func (self *Font) Width() uint8 { return self.width }

// Height of the common glyph bounding box, in pixels.
func (self *Font) Height() uint8 { return self.height }

// Horizontal location of the text baseline relative to the glyph
// bounding box origin.
func (self *Font) BaselineX() int8 { return self.baselineX }

// Vertical location of the text baseline relative to the glyph
// bounding box origin.
func (self *Font) BaselineY() int8 { return self.baselineY }

// Suggested advance between consecutive lines of text, in pixels.
func (self *Font) LineHeight() uint8 { return self.lineHeight }

func (self *Font) Flags() uint16 { return self.flags }

// The character substituted when rendering a character the font
// doesn't map.
func (self *Font) FallbackChar() rune { return rune(self.fallbackChar) }

// Number of dictionary entries, RLE coded ones first.
func (self *Font) DictSize() (rleEntries, totalEntries uint8) {
	return self.rleCount, self.dictCount
}

func (self *Font) NumRanges() int { return len(self.ranges) }

// --- glyph lookup ---

// Returns the encoded glyph data (width byte + codewords) for the
// given character, falling back to the default glyph when the
// character is not mapped by any range.
func (self *Font) findGlyph(char uint16) []byte {
	for i := 0; i < len(self.ranges); i++ {
		r := &self.ranges[i]
		index := char - r.FirstChar
		if char >= r.FirstChar && index < r.CharCount {
			offset := r.GlyphOffsets[index]
			return r.GlyphData[offset : ]
		}
	}
	return self.defaultGlyph
}

// Returns the dictionary entry data at the given index.
func (self *Font) dictEntry(index uint8) []byte {
	start := self.dictOffsets[index]
	end := self.dictOffsets[index + 1]
	return self.dictData[start : end]
}

// Returns the advance width of the given character, in pixels. This
// is the pen movement after drawing the character, which can differ
// from the bounding box width. Unmapped characters report the
// fallback glyph's advance.
func (self *Font) CharWidth(char rune) uint8 {
	return self.findGlyph(uint16(char))[0]
}
