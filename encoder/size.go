package encoder

import "github.com/tinne26/rlefont/datafile"

// Returns the on-wire byte cost of the encoded font: entry and glyph
// payloads plus two bytes of offset table per dictionary entry and,
// per glyph, two offset bytes and one advance width byte. This is
// the scalar objective the optimizer minimizes.
func EncodedSize(encoded *EncodedFont) int {
	total := 0
	for _, entry := range encoded.RLEDict {
		total += len(entry)
		if len(entry) != 0 { total += 2 }
	}
	for _, entry := range encoded.RefDict {
		total += len(entry)
		if len(entry) != 0 { total += 2 }
	}
	for _, glyph := range encoded.Glyphs {
		total += len(glyph) + 3
	}
	return total
}

// Encodes the data file and reports its size.
func EncodedSizeOf(data *datafile.DataFile) int {
	return EncodedSize(Encode(data, false))
}
