package rlefont

import "fmt"
import "io"
import "errors"

import "github.com/tinne26/rlefont/internal"

var fontSignature = []byte{'r', 'l', 'e', 'f', 'n', 't'}

var ErrNoRanges = errors.New("font contains no character ranges")

// Helper to step through serialized font data with bounds checking.
type fontDataReader struct {
	data []byte
	index int
}

func (self *fontDataReader) newError(details string) error {
	return fmt.Errorf("invalid font data (at byte %d): %s", self.index, details)
}

func (self *fontDataReader) readUint8() (uint8, error) {
	if self.index >= len(self.data) { return 0, self.newError("unexpected end of data") }
	value := self.data[self.index]
	self.index += 1
	return value, nil
}

func (self *fontDataReader) readUint16() (uint16, error) {
	if self.index + 2 > len(self.data) { return 0, self.newError("unexpected end of data") }
	value := internal.DecodeUint16LE(self.data[self.index : ])
	self.index += 2
	return value, nil
}

func (self *fontDataReader) readShortStr() (string, error) {
	length, err := self.readUint8()
	if err != nil { return "", err }
	if self.index + int(length) > len(self.data) {
		return "", self.newError("string exceeds data bounds")
	}
	str := string(self.data[self.index : self.index + int(length)])
	self.index += int(length)
	return str, nil
}

func (self *fontDataReader) readBytes(count int) ([]byte, error) {
	if self.index + count > len(self.data) {
		return nil, self.newError("field exceeds data bounds")
	}
	slice := self.data[self.index : self.index + count]
	self.index += count
	return slice, nil
}

func (self *fontDataReader) readUint16Slice(count int) ([]uint16, error) {
	raw, err := self.readBytes(count*2)
	if err != nil { return nil, err }
	values := make([]uint16, count)
	for i := 0; i < count; i++ {
		values[i] = internal.DecodeUint16LE(raw[i*2 : ])
	}
	return values, nil
}

// Parses a serialized font. See [ParseBytes]() if the data is
// already in memory.
func Parse(reader io.Reader) (*Font, error) {
	data, err := io.ReadAll(reader)
	if err != nil { return nil, err }
	return ParseBytes(data)
}

// Parses a serialized font from a byte slice. The resulting [Font]
// references the given data, which must not be mutated afterwards.
func ParseBytes(data []byte) (*Font, error) {
	var font Font
	var parser fontDataReader
	parser.data = data

	// signature and version
	signature, err := parser.readBytes(len(fontSignature))
	if err != nil { return nil, err }
	for i, value := range signature {
		if value != fontSignature[i] { return nil, parser.newError("invalid signature") }
	}
	version, err := parser.readUint8()
	if err != nil { return nil, err }
	if version != FormatVersion {
		return nil, fmt.Errorf("unsupported font format version %d (expected %d)", version, FormatVersion)
	}

	// header
	font.name, err = parser.readShortStr()
	if err != nil { return nil, err }
	font.shortName, err = parser.readShortStr()
	if err != nil { return nil, err }
	metrics, err := parser.readBytes(5)
	if err != nil { return nil, err }
	font.width, font.height = metrics[0], metrics[1]
	font.baselineX, font.baselineY = int8(metrics[2]), int8(metrics[3])
	font.lineHeight = metrics[4]
	if font.width == 0 || font.height == 0 {
		return nil, parser.newError("glyph bounding box must be at least 1x1")
	}
	font.flags, err = parser.readUint16()
	if err != nil { return nil, err }
	font.fallbackChar, err = parser.readUint16()
	if err != nil { return nil, err }

	// dictionary
	counts, err := parser.readBytes(2)
	if err != nil { return nil, err }
	font.rleCount, font.dictCount = counts[0], counts[1]
	if font.rleCount > font.dictCount {
		return nil, parser.newError("rle entry count exceeds total dictionary size")
	}
	font.dictOffsets, err = parser.readUint16Slice(int(font.dictCount) + 1)
	if err != nil { return nil, err }
	dictDataLen, err := parser.readUint16()
	if err != nil { return nil, err }
	if uint16(font.dictOffsets[font.dictCount]) != dictDataLen {
		return nil, parser.newError("dictionary offsets inconsistent with data length")
	}
	for i := uint8(0); i < font.dictCount; i++ {
		if font.dictOffsets[i] > font.dictOffsets[i + 1] {
			return nil, parser.newError("dictionary offsets not monotonically increasing")
		}
	}
	font.dictData, err = parser.readBytes(int(dictDataLen))
	if err != nil { return nil, err }

	// character ranges
	rangeCount, err := parser.readUint8()
	if err != nil { return nil, err }
	if rangeCount == 0 { return nil, ErrNoRanges }
	font.ranges = make([]CharRange, rangeCount)
	for i := uint8(0); i < rangeCount; i++ {
		r := &font.ranges[i]
		r.FirstChar, err = parser.readUint16()
		if err != nil { return nil, err }
		r.CharCount, err = parser.readUint16()
		if err != nil { return nil, err }
		if r.CharCount == 0 { return nil, parser.newError("empty character range") }
		r.GlyphOffsets, err = parser.readUint16Slice(int(r.CharCount))
		if err != nil { return nil, err }
		glyphDataLen, err := parser.readUint16()
		if err != nil { return nil, err }
		r.GlyphData, err = parser.readBytes(int(glyphDataLen))
		if err != nil { return nil, err }
		for _, offset := range r.GlyphOffsets {
			if int(offset) >= len(r.GlyphData) {
				return nil, parser.newError("glyph offset exceeds glyph data")
			}
		}
	}
	if parser.index != len(parser.data) {
		return nil, parser.newError("trailing bytes after font data")
	}

	font.defaultGlyph = font.findGlyphStrict(font.fallbackChar)
	if font.defaultGlyph == nil {
		// fall back to the first glyph of the first range
		font.defaultGlyph = font.ranges[0].GlyphData[font.ranges[0].GlyphOffsets[0] : ]
	}
	return &font, nil
}

// Like findGlyph, but returns nil instead of the default glyph when
// the character is not mapped. Used during parsing, before the
// default glyph is resolved.
func (self *Font) findGlyphStrict(char uint16) []byte {
	for i := 0; i < len(self.ranges); i++ {
		r := &self.ranges[i]
		index := char - r.FirstChar
		if char >= r.FirstChar && index < r.CharCount {
			return r.GlyphData[r.GlyphOffsets[index] : ]
		}
	}
	return nil
}

// Serializes the font in the format understood by [Parse]().
func (self *Font) AppendTo(buffer []byte) []byte {
	buffer = append(buffer, fontSignature...)
	buffer = internal.AppendUint8(buffer, FormatVersion)
	buffer = internal.AppendShortString(buffer, self.name)
	buffer = internal.AppendShortString(buffer, self.shortName)
	buffer = append(buffer, self.width, self.height, uint8(self.baselineX), uint8(self.baselineY), self.lineHeight)
	buffer = internal.AppendUint16LE(buffer, self.flags)
	buffer = internal.AppendUint16LE(buffer, self.fallbackChar)
	buffer = append(buffer, self.rleCount, self.dictCount)
	for _, offset := range self.dictOffsets {
		buffer = internal.AppendUint16LE(buffer, offset)
	}
	buffer = internal.AppendUint16LE(buffer, uint16(len(self.dictData)))
	buffer = append(buffer, self.dictData...)
	buffer = internal.AppendUint8(buffer, uint8(len(self.ranges)))
	for i := 0; i < len(self.ranges); i++ {
		r := &self.ranges[i]
		buffer = internal.AppendUint16LE(buffer, r.FirstChar)
		buffer = internal.AppendUint16LE(buffer, r.CharCount)
		for _, offset := range r.GlyphOffsets {
			buffer = internal.AppendUint16LE(buffer, offset)
		}
		buffer = internal.AppendUint16LE(buffer, uint16(len(r.GlyphData)))
		buffer = append(buffer, r.GlyphData...)
	}
	return buffer
}

// Writes the serialized font to the given writer.
func (self *Font) Export(writer io.Writer) error {
	_, err := writer.Write(self.AppendTo(nil))
	return err
}
