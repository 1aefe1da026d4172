package encoder

// Character range packing: the assigned character codes are grouped
// into dense ranges so the runtime can map characters to glyphs with
// a short scan plus one table lookup, without a full 64K table.

import "sort"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/internal"

// A contiguous span of character codes and the glyph index for each
// one. Characters without a glyph of their own alias the fallback
// glyph.
type CharRange struct {
	FirstChar uint16
	CharCount uint16
	GlyphIndices []int
}

// Splits the font's character assignments into ranges. Two adjacent
// characters share a range while the gap between them stays under
// [internal.RangeGapLimit] and the range's encoded glyph data
// (reported by glyphSize, shared glyphs counted once) still fits
// uint16 offsets. glyphSize must report the full per-glyph byte
// cost, including the advance width byte.
func ComputeCharRanges(data *datafile.DataFile, glyphSize func(glyphIndex int) int) []CharRange {
	charToGlyph := make(map[uint16]int)
	var chars []uint16
	for i := 0; i < data.NumGlyphs(); i++ {
		for _, char := range data.GlyphEntry(i).Chars {
			charToGlyph[char] = i
			chars = append(chars, char)
		}
	}
	sort.Slice(chars, func(a, b int) bool { return chars[a] < chars[b] })

	fallbackIndex := FallbackGlyphIndex(data)
	var result []CharRange
	pos := 0
	for pos < len(chars) {
		var r CharRange
		r.FirstChar = chars[pos]
		counted := map[int]bool{}
		dataSize := 0

		addGlyph := func(glyphIndex int) {
			if counted[glyphIndex] { return }
			counted[glyphIndex] = true
			dataSize += glyphSize(glyphIndex)
		}
		addGlyph(charToGlyph[chars[pos]])

		pos += 1
		for pos < len(chars) {
			gap := int(chars[pos]) - int(chars[pos - 1])
			if gap >= internal.RangeGapLimit { break }
			glyphIndex := charToGlyph[chars[pos]]
			grown := dataSize
			if !counted[glyphIndex] { grown += glyphSize(glyphIndex) }
			if gap > 1 && !counted[fallbackIndex] {
				grown += glyphSize(fallbackIndex) // gap chars alias the fallback glyph
			}
			if grown > internal.MaxRangeDataSize { break }
			if gap > 1 { addGlyph(fallbackIndex) }
			addGlyph(glyphIndex)
			pos += 1
		}

		r.CharCount = uint16(int(chars[pos - 1]) + 1 - int(r.FirstChar))
		for i := 0; i < int(r.CharCount); i++ {
			char := uint16(int(r.FirstChar) + i)
			glyphIndex, mapped := charToGlyph[char]
			if !mapped { glyphIndex = fallbackIndex }
			r.GlyphIndices = append(r.GlyphIndices, glyphIndex)
		}
		result = append(result, r)
	}
	return result
}

// Picks the character used when rendering characters the font
// doesn't map: the data file's own default if it is assigned,
// otherwise the unicode replacement character, NUL (used by many BDF
// fonts for the replacement glyph), '?' or ' ', in that order.
func SelectFallbackChar(data *datafile.DataFile) uint16 {
	assigned := make(map[uint16]bool)
	for i := 0; i < data.NumGlyphs(); i++ {
		for _, char := range data.GlyphEntry(i).Chars {
			assigned[char] = true
		}
	}
	if def := data.FontInfo().DefaultChar; def != 0 && assigned[def] { return def }
	if assigned[0xFFFD] { return 0xFFFD }
	if assigned[0] { return 0 }
	if assigned['?'] { return '?' }
	return ' '
}

// Glyph table index backing the fallback character, or 0 when the
// fallback character itself is unmapped.
func FallbackGlyphIndex(data *datafile.DataFile) int {
	fallback := SelectFallbackChar(data)
	for i := 0; i < data.NumGlyphs(); i++ {
		for _, char := range data.GlyphEntry(i).Chars {
			if char == fallback { return i }
		}
	}
	return 0
}
