package encoder

import "testing"

import "github.com/tinne26/rlefont/datafile"

// Builds a data file mapping each of the given chars to its own tiny
// glyph.
func rangeTestFont(t *testing.T, chars ...uint16) *datafile.DataFile {
	t.Helper()
	var glyphs []datafile.GlyphEntry
	for _, char := range chars {
		glyphs = append(glyphs, datafile.GlyphEntry{
			Chars: []uint16{char},
			Width: 2,
			Data:  datafile.Pixels{15, uint8(char % 16), 0, 0},
		})
	}
	fontInfo := datafile.FontInfo{Name: "ranges", MaxWidth: 2, MaxHeight: 2, DefaultChar: chars[0]}
	return datafile.New(nil, glyphs, fontInfo)
}

func constGlyphSize(int) int { return 4 }

// A gap of 8 or more characters must split the packing into separate
// ranges.
func TestRangeSplitOnGap(t *testing.T) {
	var chars []uint16
	for char := uint16(0x20); char <= 0x7E; char++ { chars = append(chars, char) }
	for char := uint16(0xA0); char <= 0xFF; char++ { chars = append(chars, char) }

	data := rangeTestFont(t, chars...)
	ranges := ComputeCharRanges(data, constGlyphSize)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d: %+v", len(ranges), ranges)
	}
	if ranges[0].FirstChar != 0x20 || ranges[0].CharCount != 0x5F {
		t.Fatalf("bad first range: %+v", ranges[0])
	}
	if ranges[1].FirstChar != 0xA0 || ranges[1].CharCount != 0x60 {
		t.Fatalf("bad second range: %+v", ranges[1])
	}
}

// Gaps below the limit stay within one range, with the gap positions
// aliased to the fallback glyph.
func TestRangeSmallGapAliasesFallback(t *testing.T) {
	data := rangeTestFont(t, 0x40, 0x42, 0x46)
	ranges := ComputeCharRanges(data, constGlyphSize)
	if len(ranges) != 1 {
		t.Fatalf("expected a single range, got %d", len(ranges))
	}
	r := ranges[0]
	if r.FirstChar != 0x40 || r.CharCount != 7 {
		t.Fatalf("bad range bounds: %+v", r)
	}
	fallback := FallbackGlyphIndex(data)
	expected := []int{0, fallback, 1, fallback, fallback, fallback, 2}
	for i, glyphIndex := range r.GlyphIndices {
		if glyphIndex != expected[i] {
			t.Fatalf("slot %d: expected glyph %d, got %d", i, expected[i], glyphIndex)
		}
	}
}

// Every assigned character must land in exactly one range slot, and
// that slot must point at its own glyph.
func TestRangeCoversEveryChar(t *testing.T) {
	chars := []uint16{3, 4, 10, 200, 203, 210, 1000, 1001, 40000}
	data := rangeTestFont(t, chars...)
	ranges := ComputeCharRanges(data, constGlyphSize)

	charToGlyph := make(map[uint16]int)
	for i := 0; i < data.NumGlyphs(); i++ {
		for _, char := range data.GlyphEntry(i).Chars { charToGlyph[char] = i }
	}
	seen := make(map[uint16]int)
	for _, r := range ranges {
		for i := 0; i < int(r.CharCount); i++ {
			char := r.FirstChar + uint16(i)
			glyphIndex, assigned := charToGlyph[char]
			if !assigned { continue }
			seen[char] += 1
			if r.GlyphIndices[i] != glyphIndex {
				t.Fatalf("char %d maps to glyph %d, range says %d", char, glyphIndex, r.GlyphIndices[i])
			}
		}
	}
	for _, char := range chars {
		if seen[char] != 1 {
			t.Fatalf("char %d appears in %d range slots", char, seen[char])
		}
	}
}

// A range must split when its glyph data would outgrow uint16
// offsets, even with no character gaps.
func TestRangeSplitOnDataSize(t *testing.T) {
	var chars []uint16
	for char := uint16(100); char < 200; char++ { chars = append(chars, char) }
	data := rangeTestFont(t, chars...)
	ranges := ComputeCharRanges(data, func(int) int { return 1000 })
	if len(ranges) < 2 {
		t.Fatalf("expected a size-based split, got %d range(s)", len(ranges))
	}
	total := 0
	for _, r := range ranges { total += int(r.CharCount) }
	if total != 100 {
		t.Fatalf("ranges cover %d chars, expected 100", total)
	}
}

func TestSelectFallbackChar(t *testing.T) {
	data := rangeTestFont(t, '?', 'x')
	data.FontInfo().DefaultChar = 0 // unset
	if fallback := SelectFallbackChar(data); fallback != '?' {
		t.Fatalf("expected '?' fallback, got %d", fallback)
	}
	data = rangeTestFont(t, 'x', 0xFFFD)
	data.FontInfo().DefaultChar = 0
	if fallback := SelectFallbackChar(data); fallback != 0xFFFD {
		t.Fatalf("expected U+FFFD fallback, got %d", fallback)
	}
}
