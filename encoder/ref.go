package encoder

import "fmt"

import "github.com/tinne26/rlefont/internal"

// Reference coding: a sequence of single byte codewords, each either
// a literal pixel (0..15), the fill-with-zeros terminator, or a
// dictionary reference (DictStart onwards).

// Appends the reference coded form of the given pixels. When
// fillZeros is true (glyphs), trailing zero pixels are elided and
// replaced by the RefFillZeros terminator; dictionary entries are
// coded in full instead, since the terminator is glyph scoped.
// allowRefs gates matching through ref coded dictionary entries.
func (self *dictTrie) appendRef(buffer []byte, pixels []uint8, allowRefs, fillZeros bool) []byte {
	end := len(pixels)
	if fillZeros {
		for end > 0 && pixels[end - 1] == 0 { end -= 1 }
	}

	pos := 0
	for pos < end {
		// matches may run past end into the stripped zero tail; the
		// terminator below only fires when pixels remain uncovered
		length, codeword := self.match(pixels[pos : ], allowRefs)
		if length == 0 {
			panic(fmt.Sprintf("dictionary trie found no match at pixel %d (literals missing?)", pos))
		}
		buffer = append(buffer, uint8(codeword))
		pos += length
	}
	if pos < len(pixels) {
		buffer = append(buffer, internal.RefFillZeros)
	}
	return buffer
}
