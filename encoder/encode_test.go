package encoder

import "strings"
import "testing"
import "slices"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/internal"

const testFontText = "Version 1\n" +
	"FontName Sans Serif\n" +
	"MaxWidth 4\n" +
	"MaxHeight 6\n" +
	"BaselineX 1\n" +
	"BaselineY 1\n" +
	"DictEntry 1 0 0F0F\n" +
	"DictEntry 1 0 0000\n" +
	"DictEntry 1 0 FFFF\n" +
	"DictEntry 1 1 0F0F0F0F\n" +
	"Glyph 1 4 0F0F0F0F0F0F0F0F0F0F0F0F\n" +
	"Glyph 2 4 0F0F0000000000000000000F\n" +
	"Glyph 3 4 0000FFFF000FFF0000FFFF00\n"

func loadTestFont(t *testing.T) *datafile.DataFile {
	t.Helper()
	data, err := datafile.Load(strings.NewReader(testFontText))
	if err != nil { t.Fatalf("failed to load test font: %v", err) }
	return data
}

func TestEncode(t *testing.T) {
	data := loadTestFont(t)
	encoded := Encode(data, true)

	if len(encoded.Glyphs) != 3 {
		t.Fatalf("expected 3 encoded glyphs, got %d", len(encoded.Glyphs))
	}

	expectedRLE := [][]byte{
		{0x01, 0x80, 0x01, 0x80},
		{0x04},
		{0x83},
	}
	for i, expected := range expectedRLE {
		if !slices.Equal(encoded.RLEDict[i], expected) {
			t.Fatalf("rle dict entry %d: expected % 02x, got % 02x", i, expected, encoded.RLEDict[i])
		}
	}
	if !slices.Equal(encoded.RefDict[0], []byte{24, 24}) {
		t.Fatalf("ref dict entry 0: expected [24 24], got %v", encoded.RefDict[0])
	}

	expectedGlyphs := [][]byte{
		{27, 27, 27},
		{24, 25, 25, 25, 25, 0, 0, 0, 15},
		{25, 26, 0, 0, 0, 15, 15, 15, 25, 26, 16},
	}
	for i, expected := range expectedGlyphs {
		if !slices.Equal(encoded.Glyphs[i], expected) {
			t.Fatalf("glyph %d: expected %v, got %v", i, expected, encoded.Glyphs[i])
		}
	}
}

func TestDecodeGlyphRoundTrip(t *testing.T) {
	data := loadTestFont(t)
	encoded := Encode(data, false)
	for i := 0; i < data.NumGlyphs(); i++ {
		decoded := DecodeGlyph(encoded, i, data.FontInfo())
		source := data.GlyphEntry(i).Data
		if !slices.Equal(decoded, source) {
			t.Fatalf("glyph %d: decoded %v, source %v", i, decoded, source)
		}
	}
}

// Every glyph codeword must be a literal, a terminator or an
// existing dictionary reference.
func TestCodewordRange(t *testing.T) {
	data := loadTestFont(t)
	encoded := Encode(data, false)
	totalDict := encoded.NumDictEntries()
	for i, glyph := range encoded.Glyphs {
		for _, code := range glyph {
			if int(code) >= internal.DictStart + totalDict {
				t.Fatalf("glyph %d emits codeword %d beyond dictionary end %d",
					i, code, internal.DictStart + totalDict)
			}
		}
	}
}

// Ref coded dictionary entries may only reference RLE entries, which
// always sort before them.
func TestRefDictOrdering(t *testing.T) {
	data := loadTestFont(t)
	encoded := Encode(data, false)
	for i, entry := range encoded.RefDict {
		for _, code := range entry {
			if int(code) >= internal.DictStart + len(encoded.RLEDict) {
				t.Fatalf("ref dict entry %d references non-rle codeword %d", i, code)
			}
		}
	}
}

// Empty dictionary slots must be dropped and RLE entries emitted
// before ref entries regardless of their slot order.
func TestDictSorting(t *testing.T) {
	dictionary := []datafile.DictEntry{
		{RefEncode: true, Replacement: datafile.Pixels{0, 15, 0, 15}},
		{},
		{Replacement: datafile.Pixels{0, 15}},
		{},
		{Replacement: datafile.Pixels{15, 15}},
	}
	order := sortedDictOrder(dictionary)
	if !slices.Equal(order, []int{2, 4, 0}) {
		t.Fatalf("expected sorted order [2 4 0], got %v", order)
	}
}
