package importer

import "github.com/zachomedia/go-bdf"

import "github.com/tinne26/rlefont/datafile"

// Imports a BDF bitmap font. The glyphs keep their pixel size; alpha
// is 0 or 15, as BDF bitmaps are 1-bit.
func LoadBDF(data []byte) (*datafile.DataFile, error) {
	bdfFont, err := bdf.Parse(data)
	if err != nil { return nil, err }

	runes := make([]rune, 0, len(bdfFont.Characters))
	for i := range bdfFont.Characters {
		runes = append(runes, bdfFont.Characters[i].Encoding)
	}

	var fontInfo datafile.FontInfo
	fontInfo.Name = bdfFont.Name
	fontInfo.DefaultChar = uint16(bdfFont.DefaultChar)
	return rasterizeFace(bdfFont.NewFace(), runes, fontInfo)
}
