package importer

// Shared post-processing for imported glyph tables: every importer
// rasterizes into a common grid, then the table is cropped to the
// union bounding box, deduplicated and given a seed dictionary.

import "github.com/tinne26/rlefont/datafile"

// Merges glyphs with identical pixels and advance width into single
// entries serving all their character codes. Order is preserved.
func EliminateDuplicates(glyphTable []datafile.GlyphEntry) []datafile.GlyphEntry {
	type glyphKey struct {
		width uint8
		data string
	}
	firstSeen := make(map[glyphKey]int)
	result := glyphTable[ : 0]
	for i := range glyphTable {
		key := glyphKey{glyphTable[i].Width, string(glyphTable[i].Data)}
		original, seen := firstSeen[key]
		if seen {
			result[original].Chars = append(result[original].Chars, glyphTable[i].Chars...)
		} else {
			firstSeen[key] = len(result)
			result = append(result, glyphTable[i])
		}
	}
	return result
}

type bbox struct {
	left, top, right, bottom int // right/bottom inclusive
	any bool
}

func (self *bbox) update(x, y int) {
	if !self.any {
		self.left, self.right, self.top, self.bottom = x, x, y, y
		self.any = true
		return
	}
	if x < self.left { self.left = x }
	if x > self.right { self.right = x }
	if y < self.top { self.top = y }
	if y > self.bottom { self.bottom = y }
}

// Crops all glyphs to the union bounding box of their set pixels and
// shifts the baseline to match. Fonts whose glyphs are all empty are
// cropped to a single pixel.
func CropGlyphs(glyphTable []datafile.GlyphEntry, fontInfo *datafile.FontInfo) {
	oldWidth, oldHeight := int(fontInfo.MaxWidth), int(fontInfo.MaxHeight)
	var box bbox
	for i := range glyphTable {
		for y := 0; y < oldHeight; y++ {
			for x := 0; x < oldWidth; x++ {
				if glyphTable[i].Data[y*oldWidth + x] != 0 { box.update(x, y) }
			}
		}
	}
	if !box.any { box.update(0, 0) }

	newWidth := box.right - box.left + 1
	newHeight := box.bottom - box.top + 1
	for i := range glyphTable {
		cropped := make(datafile.Pixels, 0, newWidth*newHeight)
		for y := 0; y < newHeight; y++ {
			for x := 0; x < newWidth; x++ {
				cropped = append(cropped, glyphTable[i].Data[(box.top + y)*oldWidth + (box.left + x)])
			}
		}
		glyphTable[i].Data = cropped
	}

	fontInfo.MaxWidth = uint8(newWidth)
	fontInfo.MaxHeight = uint8(newHeight)
	fontInfo.BaselineX -= int8(box.left)
	fontInfo.BaselineY -= int8(box.top)
}

// Builds the initial dictionary for a freshly imported font: runs of
// background and full alpha pixels at exponentially spaced lengths.
// Runs are what the RLE entries store best, and they give the
// optimizer a useful starting point to mutate. At most half the
// dictionary is seeded, the rest is left for the search to fill.
func seedDictionary(fontInfo *datafile.FontInfo) []datafile.DictEntry {
	glyphSize := int(fontInfo.MaxWidth) * int(fontInfo.MaxHeight)
	var dictionary []datafile.DictEntry
	for length := 2; length <= glyphSize && len(dictionary) < datafile.DictionarySize/2 - 1; length += max(length/2, 1) {
		zeros := make(datafile.Pixels, length)
		ones := make(datafile.Pixels, length)
		for i := range ones { ones[i] = 15 }
		dictionary = append(dictionary,
			datafile.DictEntry{Replacement: zeros},
			datafile.DictEntry{Replacement: ones})
	}
	return dictionary
}
