package rlefont_test

import "fmt"
import "strings"
import "testing"
import "slices"

import "github.com/tinne26/rlefont"
import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/encoder"

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

func buildTestFont(t *testing.T) (*rlefont.Font, *datafile.DataFile) {
	t.Helper()
	data, err := datafile.Load(strings.NewReader(testFontText))
	if err != nil { t.Fatalf("failed to load test data file: %v", err) }
	font, err := encoder.BuildFont(data, "test")
	if err != nil { t.Fatalf("failed to build font: %v", err) }
	return font, data
}

// Collects rendered pixels into a W x H alpha buffer.
type pixelBuffer struct {
	width, height int
	alphas []uint8
}

func newPixelBuffer(width, height int) *pixelBuffer {
	return &pixelBuffer{width, height, make([]uint8, width*height)}
}

func writeToBuffer(x, y int16, count uint8, alpha uint8, state any) {
	buffer := state.(*pixelBuffer)
	for i := 0; i < int(count); i++ {
		px, py := int(x) + i, int(y)
		if px < 0 || px >= buffer.width || py < 0 || py >= buffer.height {
			panic(fmt.Sprintf("callback out of bounds at %d,%d", px, py))
		}
		buffer.alphas[py*buffer.width + px] = alpha
	}
}

// Rendering a glyph into a zeroed buffer must reproduce the original
// pixels, including any trailing background rows elided by the
// encoder's fill terminator.
func TestRenderRoundTrip(t *testing.T) {
	font, data := buildTestFont(t)
	for i := 0; i < data.NumGlyphs(); i++ {
		glyph := data.GlyphEntry(i)
		buffer := newPixelBuffer(int(font.Width()), int(font.Height()))
		width := font.RenderGlyph(0, 0, rune(glyph.Chars[0]), writeToBuffer, buffer)
		if width != glyph.Width {
			t.Fatalf("glyph %d: rendered width %d, expected %d", i, width, glyph.Width)
		}
		for j, alpha := range buffer.alphas {
			if alpha != glyph.Data[j]*0x11 {
				t.Fatalf("glyph %d pixel %d: alpha %d, expected %d", i, j, alpha, glyph.Data[j]*0x11)
			}
		}
	}
}

// Records the exact callback invocation sequence.
type callTrace struct {
	calls []string
}

func recordCall(x, y int16, count uint8, alpha uint8, state any) {
	trace := state.(*callTrace)
	trace.calls = append(trace.calls, fmt.Sprintf("%d,%d,%d,%d", x, y, count, alpha))
}

// Rendering an unmapped character must produce the exact callback
// trace of the fallback character.
func TestRenderFallbackGlyph(t *testing.T) {
	font, _ := buildTestFont(t)

	var direct, fallback callTrace
	directWidth := font.RenderGlyph(3, 7, font.FallbackChar(), recordCall, &direct)
	fallbackWidth := font.RenderGlyph(3, 7, 0xFFFF, recordCall, &fallback)
	if directWidth != fallbackWidth {
		t.Fatalf("widths differ: %d vs %d", directWidth, fallbackWidth)
	}
	if !slices.Equal(direct.calls, fallback.calls) {
		t.Fatalf("traces differ:\n%v\n%v", direct.calls, fallback.calls)
	}
}

// Hand-assembled serialized font: 2x2 bounding box, no dictionary,
// one range starting at 'A' holding the given glyph streams.
func rawTestFontData(glyphStreams ...[]byte) []byte {
	le := func(value int) []byte { return []byte{uint8(value), uint8(value >> 8)} }
	data := []byte{'r', 'l', 'e', 'f', 'n', 't', rlefont.FormatVersion}
	data = append(data, 1, 'T') // name
	data = append(data, 1, 't') // short name
	data = append(data, 2, 2, 0, 2, 3) // width, height, baselines, line height
	data = append(data, le(0)...)      // flags
	data = append(data, le('A')...)    // fallback char
	data = append(data, 0, 0)          // rle / total dict counts
	data = append(data, le(0)...)      // dictionary offsets (bounding entry)
	data = append(data, le(0)...)      // dictionary data length
	data = append(data, 1)             // range count
	data = append(data, le('A')...)
	data = append(data, le(len(glyphStreams))...)
	var glyphData []byte
	var offsets []int
	for _, stream := range glyphStreams {
		offsets = append(offsets, len(glyphData))
		glyphData = append(glyphData, 2) // advance width
		glyphData = append(glyphData, stream...)
	}
	for _, offset := range offsets { data = append(data, le(offset)...) }
	data = append(data, le(len(glyphData))...)
	data = append(data, glyphData...)
	return data
}

// Reserved codewords must be skipped: injecting one into a glyph
// stream leaves the rendered output unchanged.
func TestRenderSkipsReservedCodewords(t *testing.T) {
	plain, err := rlefont.ParseBytes(rawTestFontData([]byte{15, 0, 15, 16}))
	if err != nil { t.Fatalf("parse failed: %v", err) }
	injected, err := rlefont.ParseBytes(rawTestFontData([]byte{15, 17, 0, 15, 23, 16}))
	if err != nil { t.Fatalf("parse failed: %v", err) }

	var plainTrace, injectedTrace callTrace
	plain.RenderGlyph(0, 0, 'A', recordCall, &plainTrace)
	injected.RenderGlyph(0, 0, 'A', recordCall, &injectedTrace)
	if !slices.Equal(plainTrace.calls, injectedTrace.calls) {
		t.Fatalf("traces differ:\n%v\n%v", plainTrace.calls, injectedTrace.calls)
	}
}

// A corrupt font whose ref entries reference each other must not
// recurse forever.
func TestRenderDepthCap(t *testing.T) {
	le := func(value int) []byte { return []byte{uint8(value), uint8(value >> 8)} }
	data := []byte{'r', 'l', 'e', 'f', 'n', 't', rlefont.FormatVersion}
	data = append(data, 1, 'T')
	data = append(data, 1, 't')
	data = append(data, 2, 2, 0, 2, 3)
	data = append(data, le(0)...)
	data = append(data, le('A')...)
	data = append(data, 0, 2) // two ref entries, zero rle entries
	data = append(data, le(0)...)
	data = append(data, le(1)...)
	data = append(data, le(2)...) // offsets: entry 0 = [25], entry 1 = [24]
	data = append(data, le(2)...)
	data = append(data, 25, 24) // mutually recursive entries
	data = append(data, 1)
	data = append(data, le('A')...)
	data = append(data, le(1)...)
	data = append(data, le(0)...)
	data = append(data, le(3)...)
	data = append(data, 2, 24, 16) // width, ref into the cycle, fill

	font, err := rlefont.ParseBytes(data)
	if err != nil { t.Fatalf("parse failed: %v", err) }
	var trace callTrace
	font.RenderGlyph(0, 0, 'A', recordCall, &trace) // must terminate
}
