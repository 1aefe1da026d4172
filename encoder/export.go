package encoder

// Assembly of the runtime font: the encoded streams and the range
// packing laid out in the serialized form the root package parses.

import "errors"
import "fmt"

import "github.com/tinne26/rlefont"
import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/internal"

var ErrDictDataTooLarge = errors.New("dictionary data exceeds uint16 offset space")

// Encodes the data file (with round trip verification) and appends
// the serialized runtime font. shortName should be a short
// identifier-like name, typically derived from the output file name.
func AppendFontData(buffer []byte, data *datafile.DataFile, shortName string) ([]byte, error) {
	encoded := Encode(data, true)
	fontInfo := data.FontInfo()

	buffer = append(buffer, 'r', 'l', 'e', 'f', 'n', 't')
	buffer = internal.AppendUint8(buffer, internal.FormatVersion)
	buffer = internal.AppendShortString(buffer, clampShortString(fontInfo.Name))
	buffer = internal.AppendShortString(buffer, clampShortString(shortName))
	buffer = append(buffer, fontInfo.MaxWidth, fontInfo.MaxHeight,
		uint8(fontInfo.BaselineX), uint8(fontInfo.BaselineY), fontInfo.LineHeight)
	buffer = internal.AppendUint16LE(buffer, fontInfo.Flags)
	buffer = internal.AppendUint16LE(buffer, SelectFallbackChar(data))

	// dictionary: offsets table with one trailing entry bounding the
	// last, then the concatenated entry data
	totalDict := encoded.NumDictEntries()
	buffer = append(buffer, uint8(len(encoded.RLEDict)), uint8(totalDict))
	dictDataLen := 0
	for i := 0; i < totalDict; i++ {
		dictDataLen += len(encoded.DictEntryData(i))
	}
	if dictDataLen > internal.MaxRangeDataSize { return nil, ErrDictDataTooLarge }
	offset := 0
	for i := 0; i < totalDict; i++ {
		buffer = internal.AppendUint16LE(buffer, uint16(offset))
		offset += len(encoded.DictEntryData(i))
	}
	buffer = internal.AppendUint16LE(buffer, uint16(offset))
	buffer = internal.AppendUint16LE(buffer, uint16(dictDataLen))
	for i := 0; i < totalDict; i++ {
		buffer = append(buffer, encoded.DictEntryData(i)...)
	}

	// character ranges, each with its own offsets table and glyph
	// data blob; glyphs shared by multiple characters of the range
	// are stored once
	ranges := ComputeCharRanges(data, func(glyphIndex int) int {
		return len(encoded.Glyphs[glyphIndex]) + 1
	})
	if len(ranges) > 255 {
		return nil, fmt.Errorf("%d character ranges exceed the range count byte", len(ranges))
	}
	buffer = internal.AppendUint8(buffer, uint8(len(ranges)))
	for _, r := range ranges {
		buffer = internal.AppendUint16LE(buffer, r.FirstChar)
		buffer = internal.AppendUint16LE(buffer, r.CharCount)

		glyphOffsets := make([]uint16, 0, len(r.GlyphIndices))
		var glyphData []byte
		alreadyEncoded := make(map[int]uint16)
		for _, glyphIndex := range r.GlyphIndices {
			dataOffset, found := alreadyEncoded[glyphIndex]
			if !found {
				dataOffset = uint16(len(glyphData))
				alreadyEncoded[glyphIndex] = dataOffset
				glyphData = append(glyphData, data.GlyphEntry(glyphIndex).Width)
				glyphData = append(glyphData, encoded.Glyphs[glyphIndex]...)
			}
			glyphOffsets = append(glyphOffsets, dataOffset)
		}
		for _, dataOffset := range glyphOffsets {
			buffer = internal.AppendUint16LE(buffer, dataOffset)
		}
		buffer = internal.AppendUint16LE(buffer, uint16(len(glyphData)))
		buffer = append(buffer, glyphData...)
	}
	return buffer, nil
}

// Encodes the data file and builds the runtime [rlefont.Font] for
// it, verifying every glyph round trips.
func BuildFont(data *datafile.DataFile, shortName string) (*rlefont.Font, error) {
	serialized, err := AppendFontData(nil, data, shortName)
	if err != nil { return nil, err }
	return rlefont.ParseBytes(serialized)
}

func clampShortString(str string) string {
	if len(str) > 255 { return str[ : 255] }
	return str
}
