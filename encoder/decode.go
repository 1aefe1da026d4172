package encoder

// Encoder-side glyph decoding, used to verify round trips and to
// rescore dictionary entries. The runtime renderer in the root
// package is the deployed counterpart; this one reconstructs the
// flat pixel sequence instead of driving a callback.

import "fmt"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/internal"

// Decodes the glyph at the given index back into its pixel
// sequence, always MaxWidth*MaxHeight values.
func DecodeGlyph(encoded *EncodedFont, index int, fontInfo *datafile.FontInfo) datafile.Pixels {
	glyphSize := int(fontInfo.MaxWidth) * int(fontInfo.MaxHeight)
	pixels := make(datafile.Pixels, 0, glyphSize)
	for _, code := range encoded.Glyphs[index] {
		pixels = expandCodeword(encoded, pixels, code, glyphSize, 0)
	}
	// restore the zeros elided by the fill terminator
	for len(pixels) < glyphSize {
		pixels = append(pixels, 0)
	}
	return pixels
}

func expandCodeword(encoded *EncodedFont, pixels datafile.Pixels, code uint8, glyphSize, depth int) datafile.Pixels {
	if depth > internal.MaxExpansionDepth {
		panic("dictionary expansion recurses past the depth cap (ordering broken)")
	}
	switch {
	case code <= internal.MaxAlpha:
		pixels = append(pixels, code)
	case code == internal.RefFillZeros:
		for len(pixels) < glyphSize {
			pixels = append(pixels, 0)
		}
	case code < internal.DictStart:
		// reserved, never emitted by the encoder
	default:
		index := int(code) - internal.DictStart
		if index >= encoded.NumDictEntries() {
			panic(fmt.Sprintf("codeword %d references entry %d of %d", code, index, encoded.NumDictEntries()))
		}
		if index < len(encoded.RLEDict) {
			pixels = expandRLE(pixels, encoded.RLEDict[index])
		} else {
			for _, refCode := range encoded.RefDict[index - len(encoded.RLEDict)] {
				pixels = expandCodeword(encoded, pixels, refCode, glyphSize, depth + 1)
			}
		}
	}
	return pixels
}
