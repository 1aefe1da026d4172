package datafile

// The working representation of a font while it is being compressed:
// metadata, the mutable dictionary and the glyph table. Data files
// are produced by the importers, mutated by the optimizer and read
// by the encoder. They are not used at render time.

import "github.com/tinne26/rlefont/internal"

// Number of slots in the dictionary. Unused slots hold empty
// replacements and are dropped at encoding time.
const DictionarySize = internal.MaxDictSize

// A flat sequence of pixel alpha values in raster order. Each value
// is in [0, 15]; 1-bit fonts only ever use 0 and 15.
type Pixels []uint8

// One hex digit per pixel, uppercase.
func (self Pixels) String() string {
	return string(internal.AppendHexPixels(nil, self))
}

// Font-wide metadata.
type FontInfo struct {
	Name string
	MaxWidth  uint8
	MaxHeight uint8
	BaselineX int8
	BaselineY int8
	LineHeight uint8
	Flags uint16
	DefaultChar uint16
}

// A reusable pixel sequence the encoder can refer to by a single
// codeword.
type DictEntry struct {
	// Usefulness weight maintained by the optimizer. Higher scores
	// survive longer; the lowest scored entry is the first one
	// replaced when trying new candidates.
	Score int32

	// False: the entry is stored with RLE coding. True: the entry is
	// stored as a sequence of references to other entries, and may
	// only reference RLE entries and ref entries sorted before it.
	RefEncode bool

	// The pixels this entry expands to. Empty marks an unused slot.
	Replacement Pixels
}

// One glyph and the set of character codes that map to it. A single
// entry can serve multiple characters once duplicates are merged.
type GlyphEntry struct {
	Chars []uint16
	Width uint8 // advance width, can be below FontInfo.MaxWidth
	Data  Pixels // always MaxWidth*MaxHeight values
}

type DataFile struct {
	dictionary []DictEntry
	glyphTable []GlyphEntry
	fontInfo   FontInfo
	seed uint32
	lowScoreIndex int
}

// Builds a data file from parts. The dictionary is padded with empty
// entries up to [DictionarySize]; passing more than that panics.
func New(dictionary []DictEntry, glyphs []GlyphEntry, fontInfo FontInfo) *DataFile {
	if len(dictionary) > DictionarySize { panic("dictionary exceeds capacity") }
	var datafile DataFile
	datafile.dictionary = make([]DictEntry, DictionarySize)
	copy(datafile.dictionary, dictionary)
	datafile.glyphTable = glyphs
	datafile.fontInfo = fontInfo
	datafile.seed = DefaultSeed
	datafile.updateLowScoreIndex()
	return &datafile
}

const DefaultSeed = 1234

// --- accessors ---

func (self *DataFile) FontInfo() *FontInfo { return &self.fontInfo }

// The full dictionary, including empty slots. Callers must not
// mutate entries directly; use [DataFile.SetDictEntry] so the low
// score tracking stays valid.
func (self *DataFile) Dictionary() []DictEntry { return self.dictionary }

func (self *DataFile) DictEntry(index int) *DictEntry { return &self.dictionary[index] }

func (self *DataFile) NumGlyphs() int { return len(self.glyphTable) }

func (self *DataFile) GlyphEntry(index int) *GlyphEntry { return &self.glyphTable[index] }

func (self *DataFile) GlyphTable() []GlyphEntry { return self.glyphTable }

// The random seed used by the optimizer. Persisted with the data
// file so optimization runs are reproducible.
func (self *DataFile) Seed() uint32 { return self.seed }

func (self *DataFile) SetSeed(seed uint32) { self.seed = seed }

// Index of the lowest scored dictionary entry, maintained
// incrementally so replacement candidates are found in O(1).
func (self *DataFile) LowScoreIndex() int { return self.lowScoreIndex }

// Replaces the dictionary entry at the given index and updates the
// lowest score tracking.
func (self *DataFile) SetDictEntry(index int, entry DictEntry) {
	self.dictionary[index] = entry
	if index == self.lowScoreIndex || self.dictionary[self.lowScoreIndex].Score > entry.Score {
		self.updateLowScoreIndex()
	}
}

func (self *DataFile) updateLowScoreIndex() {
	lowest := 0
	for i := 1; i < len(self.dictionary); i++ {
		if self.dictionary[i].Score < self.dictionary[lowest].Score { lowest = i }
	}
	self.lowScoreIndex = lowest
}

// Returns a new data file keeping only the characters accepted by
// the given predicate. Glyphs left without any character are
// dropped; the dictionary and metadata carry over unchanged.
func (self *DataFile) FilterChars(allowed func(char uint16) bool) *DataFile {
	var filtered []GlyphEntry
	for i := range self.glyphTable {
		glyph := self.glyphTable[i]
		var chars []uint16
		for _, char := range glyph.Chars {
			if allowed(char) { chars = append(chars, char) }
		}
		if len(chars) == 0 { continue }
		glyph.Chars = chars
		filtered = append(filtered, glyph)
	}
	result := New(self.dictionary, filtered, self.fontInfo)
	result.SetSeed(self.seed)
	return result
}

// Renders the glyph at the given index as ascii art, one character
// per pixel, for debugging.
func (self *DataFile) GlyphToText(index int) string {
	const shades = " .,-=oxOX@"
	glyph := &self.glyphTable[index]
	var result []byte
	for y := 0; y < int(self.fontInfo.MaxHeight); y++ {
		for x := 0; x < int(self.fontInfo.MaxWidth); x++ {
			pixel := glyph.Data[y*int(self.fontInfo.MaxWidth) + x]
			result = append(result, shades[int(pixel)*(len(shades) - 1)/15])
		}
		result = append(result, '\n')
	}
	return string(result)
}
