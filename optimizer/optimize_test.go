package optimizer

import "testing"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/encoder"

// Builds a compressible font: 16 glyphs of 8x8 pixels built from
// repeating row patterns, starting with an empty dictionary.
func optimizerTestFont() *datafile.DataFile {
	rows := []datafile.Pixels{
		{15, 15, 15, 15, 15, 15, 15, 15},
		{15, 0, 0, 0, 0, 0, 0, 15},
		{0, 0, 15, 15, 15, 15, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0},
	}
	var glyphs []datafile.GlyphEntry
	for i := 0; i < 16; i++ {
		pixels := make(datafile.Pixels, 0, 64)
		for row := 0; row < 8; row++ {
			pixels = append(pixels, rows[(i + row) % len(rows)]...)
		}
		glyphs = append(glyphs, datafile.GlyphEntry{
			Chars: []uint16{uint16('A' + i)}, Width: 8, Data: pixels,
		})
	}
	fontInfo := datafile.FontInfo{
		Name: "optimizer", MaxWidth: 8, MaxHeight: 8, DefaultChar: 'A',
	}
	return datafile.New(nil, glyphs, fontInfo)
}

// The encoded size must never increase, and on a repetitive font
// with an empty dictionary the search must find actual savings.
func TestOptimizeShrinksFont(t *testing.T) {
	data := optimizerTestFont()
	startSize := encoder.EncodedSizeOf(data)

	result := Optimize(data, 100, nil)
	if result.Iterations != 100 {
		t.Fatalf("ran %d iterations, expected 100", result.Iterations)
	}
	if result.StartSize != startSize {
		t.Fatalf("start size %d, expected %d", result.StartSize, startSize)
	}
	if result.EndSize > result.StartSize {
		t.Fatalf("size increased from %d to %d", result.StartSize, result.EndSize)
	}
	if result.EndSize != encoder.EncodedSizeOf(data) {
		t.Fatalf("reported end size %d, actual %d", result.EndSize, encoder.EncodedSizeOf(data))
	}
	if result.Accepted == 0 || result.EndSize >= startSize {
		t.Fatalf("no savings found on a repetitive font (start %d, end %d)", startSize, result.EndSize)
	}

	// every glyph still round trips after the mutations
	encoder.Encode(data, true)
}

// Runs are deterministic for a given seed.
func TestOptimizeDeterminism(t *testing.T) {
	first := optimizerTestFont()
	first.SetSeed(777)
	second := optimizerTestFont()
	second.SetSeed(777)

	resultA := Optimize(first, 40, nil)
	resultB := Optimize(second, 40, nil)
	if resultA.EndSize != resultB.EndSize || resultA.Accepted != resultB.Accepted {
		t.Fatalf("same seed diverged: %+v vs %+v", resultA, resultB)
	}
	if first.Seed() != second.Seed() {
		t.Fatalf("persisted seeds diverged: %d vs %d", first.Seed(), second.Seed())
	}

	third := optimizerTestFont()
	third.SetSeed(778)
	Optimize(third, 40, nil)
	if third.Seed() == first.Seed() {
		t.Fatal("different seeds produced the same seed trajectory")
	}
}

// The stop callback halts the run between iterations.
func TestOptimizeStops(t *testing.T) {
	data := optimizerTestFont()
	countdown := 5
	result := Optimize(data, 1000, func() bool {
		countdown -= 1
		return countdown < 0
	})
	if result.Iterations != 5 {
		t.Fatalf("ran %d iterations, expected 5", result.Iterations)
	}
}

// Optimization with a glyphless data file is a no-op instead of a
// panic.
func TestOptimizeEmptyFont(t *testing.T) {
	data := datafile.New(nil, nil, datafile.FontInfo{Name: "empty", MaxWidth: 4, MaxHeight: 4})
	result := Optimize(data, 10, nil)
	if result.Iterations != 0 || result.StartSize != result.EndSize {
		t.Fatalf("unexpected result for empty font: %+v", result)
	}
}
