package encoder

import "testing"

import "github.com/tinne26/rlefont"

func TestBuildFont(t *testing.T) {
	data := loadTestFont(t)
	font, err := BuildFont(data, "testfont")
	if err != nil { t.Fatalf("BuildFont failed: %v", err) }

	if font.Name() != "Sans Serif" { t.Fatalf("unexpected name %q", font.Name()) }
	if font.ShortName() != "testfont" { t.Fatalf("unexpected short name %q", font.ShortName()) }
	if font.Width() != 4 || font.Height() != 6 {
		t.Fatalf("unexpected bounding box %dx%d", font.Width(), font.Height())
	}
	if font.BaselineX() != 1 || font.BaselineY() != 1 {
		t.Fatalf("unexpected baseline %d,%d", font.BaselineX(), font.BaselineY())
	}
	rleEntries, totalEntries := font.DictSize()
	if rleEntries != 3 || totalEntries != 4 {
		t.Fatalf("unexpected dictionary counts %d/%d", rleEntries, totalEntries)
	}

	// advance widths survive encoding
	for i := 0; i < data.NumGlyphs(); i++ {
		glyph := data.GlyphEntry(i)
		for _, char := range glyph.Chars {
			if font.CharWidth(rune(char)) != glyph.Width {
				t.Fatalf("char %d: width %d, expected %d", char, font.CharWidth(rune(char)), glyph.Width)
			}
		}
	}
}

// The serialized form must parse back into an identical font.
func TestSerializedRoundTrip(t *testing.T) {
	data := loadTestFont(t)
	serialized, err := AppendFontData(nil, data, "testfont")
	if err != nil { t.Fatalf("AppendFontData failed: %v", err) }

	font, err := rlefont.ParseBytes(serialized)
	if err != nil { t.Fatalf("ParseBytes failed: %v", err) }
	reserialized := font.AppendTo(nil)
	if len(reserialized) != len(serialized) {
		t.Fatalf("reserialized %d bytes, expected %d", len(reserialized), len(serialized))
	}
	for i := range serialized {
		if serialized[i] != reserialized[i] {
			t.Fatalf("byte %d differs: %02x vs %02x", i, serialized[i], reserialized[i])
		}
	}
}

func TestParseRejectsCorruptData(t *testing.T) {
	data := loadTestFont(t)
	serialized, err := AppendFontData(nil, data, "testfont")
	if err != nil { t.Fatalf("AppendFontData failed: %v", err) }

	_, err = rlefont.ParseBytes(serialized[ : len(serialized) - 3])
	if err == nil { t.Fatal("expected truncated data to be rejected") }

	bad := append([]byte{}, serialized...)
	bad[0] = 'x'
	_, err = rlefont.ParseBytes(bad)
	if err == nil { t.Fatal("expected bad signature to be rejected") }
}
