package encoder

// Encoding driver: sorts the dictionary, builds the matcher trie and
// emits the byte streams for every dictionary entry and glyph.

import "fmt"
import "sort"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/internal"

// The compressed form of a whole font: one byte stream per
// dictionary entry and per glyph. Streams carry no offset or width
// headers; those are assembled by the range packer and exporters.
type EncodedFont struct {
	RLEDict [][]byte
	RefDict [][]byte
	Glyphs  [][]byte

	// Maps emission order (codeword - DictStart) back to indices in
	// the source dictionary. RLE entries first, then ref entries.
	Order []int
}

func (self *EncodedFont) NumDictEntries() int {
	return len(self.RLEDict) + len(self.RefDict)
}

// Returns the emitted entry for the given emission-order index.
func (self *EncodedFont) DictEntryData(index int) []byte {
	if index < len(self.RLEDict) { return self.RLEDict[index] }
	return self.RefDict[index - len(self.RLEDict)]
}

// Stable ordering for emission: non-empty entries first, and among
// those, RLE entries before ref entries. The result defines the
// codeword numbering, which is what makes references from ref
// entries to RLE entries always point backwards.
func sortedDictOrder(dictionary []datafile.DictEntry) []int {
	order := make([]int, 0, len(dictionary))
	for i := range dictionary {
		if len(dictionary[i].Replacement) > 0 { order = append(order, i) }
	}
	sort.SliceStable(order, func(a, b int) bool {
		return !dictionary[order[a]].RefEncode && dictionary[order[b]].RefEncode
	})
	return order
}

// Encodes the dictionary and every glyph of the data file. With
// verify set, every glyph is decoded back and compared against its
// source pixels; a mismatch panics, as it can only be caused by a
// defect in the codec itself.
func Encode(data *datafile.DataFile, verify bool) *EncodedFont {
	var encoded EncodedFont
	dictionary := data.Dictionary()
	encoded.Order = sortedDictOrder(dictionary)
	if len(encoded.Order) > internal.MaxDictSize {
		panic("dictionary overflows the codeword space")
	}

	// build the matcher trie over the sorted entries
	totalPixels := 0
	for _, dictIndex := range encoded.Order {
		totalPixels += len(dictionary[dictIndex].Replacement)
	}
	trie := newDictTrie(totalPixels)
	for i, dictIndex := range encoded.Order {
		entry := &dictionary[dictIndex]
		trie.insert(entry.Replacement, int16(internal.DictStart + i), entry.RefEncode)
	}

	// emit the dictionary entries, RLE coded ones first
	for _, dictIndex := range encoded.Order {
		entry := &dictionary[dictIndex]
		if entry.RefEncode { continue }
		encoded.RLEDict = append(encoded.RLEDict, appendRLE(nil, entry.Replacement))
	}
	for _, dictIndex := range encoded.Order {
		entry := &dictionary[dictIndex]
		if !entry.RefEncode { continue }
		encoded.RefDict = append(encoded.RefDict, trie.appendRef(nil, entry.Replacement, false, false))
	}

	// emit the glyphs
	for i := 0; i < data.NumGlyphs(); i++ {
		glyph := data.GlyphEntry(i)
		encoded.Glyphs = append(encoded.Glyphs, trie.appendRef(nil, glyph.Data, true, true))
	}

	if verify {
		for i := 0; i < data.NumGlyphs(); i++ {
			decoded := DecodeGlyph(&encoded, i, data.FontInfo())
			if !pixelsEqual(decoded, data.GlyphEntry(i).Data) {
				panic(fmt.Sprintf("glyph %d corrupted by encoding (codec defect)", i))
			}
		}
	}
	return &encoded
}

func pixelsEqual(a, b datafile.Pixels) bool {
	if len(a) != len(b) { return false }
	for i := range a {
		if a[i] != b[i] { return false }
	}
	return true
}
