package datafile

// Data files are persisted as newline delimited text, one record per
// line, so they survive version control and hand editing during long
// optimization runs.

import "bufio"
import "fmt"
import "io"
import "strconv"
import "strings"

import "github.com/tinne26/rlefont/internal"

// Version of the working file format.
const TextFormatVersion = 1

// Writes the data file as newline delimited text. Empty dictionary
// slots are omitted. See [Load]() for the format.
func (self *DataFile) Save(writer io.Writer) error {
	w := bufio.NewWriter(writer)
	fmt.Fprintf(w, "Version %d\n", TextFormatVersion)
	fmt.Fprintf(w, "FontName %s\n", self.fontInfo.Name)
	fmt.Fprintf(w, "MaxWidth %d\n", self.fontInfo.MaxWidth)
	fmt.Fprintf(w, "MaxHeight %d\n", self.fontInfo.MaxHeight)
	fmt.Fprintf(w, "BaselineX %d\n", self.fontInfo.BaselineX)
	fmt.Fprintf(w, "BaselineY %d\n", self.fontInfo.BaselineY)
	fmt.Fprintf(w, "LineHeight %d\n", self.fontInfo.LineHeight)
	fmt.Fprintf(w, "Flags %d\n", self.fontInfo.Flags)
	fmt.Fprintf(w, "DefaultChar %d\n", self.fontInfo.DefaultChar)
	fmt.Fprintf(w, "RandomSeed %d\n", self.seed)

	for i := range self.dictionary {
		entry := &self.dictionary[i]
		if len(entry.Replacement) == 0 { continue }
		fmt.Fprintf(w, "DictEntry %d %d %s\n", entry.Score,
			internal.BoolToUint8(entry.RefEncode), entry.Replacement.String())
	}

	for i := range self.glyphTable {
		glyph := &self.glyphTable[i]
		var chars strings.Builder
		for j, char := range glyph.Chars {
			if j != 0 { chars.WriteByte(',') }
			chars.WriteString(strconv.Itoa(int(char)))
		}
		fmt.Fprintf(w, "Glyph %s %d %s\n", chars.String(), glyph.Width, glyph.Data.String())
	}
	return w.Flush()
}

// Parses a data file in the text format written by [DataFile.Save]:
//
//	Version 1
//	FontName <rest of line>
//	MaxWidth/MaxHeight/LineHeight/Flags/DefaultChar <unsigned>
//	BaselineX/BaselineY <signed>
//	RandomSeed <u32>
//	DictEntry <score> <ref_encode 0|1> <hex pixels>
//	Glyph <char,char,...> <width> <hex pixels>
//
// Any malformed line stops the load and returns an error naming the
// line number.
func Load(reader io.Reader) (*DataFile, error) {
	var fontInfo FontInfo
	var dictionary []DictEntry
	var glyphTable []GlyphEntry
	var seed uint32 = DefaultSeed

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum += 1
		line := scanner.Text()
		if strings.TrimSpace(line) == "" { continue }
		tag, rest, _ := strings.Cut(line, " ")

		var err error
		switch tag {
		case "Version":
			var version uint64
			version, err = parseUint(rest, 16)
			if err == nil && version != TextFormatVersion {
				err = fmt.Errorf("unsupported version %d", version)
			}
		case "FontName":
			fontInfo.Name = rest
		case "MaxWidth":
			fontInfo.MaxWidth, err = parseUint8(rest)
		case "MaxHeight":
			fontInfo.MaxHeight, err = parseUint8(rest)
		case "BaselineX":
			fontInfo.BaselineX, err = parseInt8(rest)
		case "BaselineY":
			fontInfo.BaselineY, err = parseInt8(rest)
		case "LineHeight":
			fontInfo.LineHeight, err = parseUint8(rest)
		case "Flags":
			var value uint64
			value, err = parseUint(rest, 16)
			fontInfo.Flags = uint16(value)
		case "DefaultChar":
			var value uint64
			value, err = parseUint(rest, 16)
			fontInfo.DefaultChar = uint16(value)
		case "RandomSeed":
			var value uint64
			value, err = parseUint(rest, 32)
			seed = uint32(value)
		case "DictEntry":
			var entry DictEntry
			entry, err = parseDictEntry(rest)
			if err == nil && len(dictionary) >= DictionarySize {
				err = fmt.Errorf("more than %d dictionary entries", DictionarySize)
			}
			dictionary = append(dictionary, entry)
		case "Glyph":
			var glyph GlyphEntry
			glyph, err = parseGlyph(rest, &fontInfo)
			glyphTable = append(glyphTable, glyph)
		default:
			err = fmt.Errorf("unknown record tag %q", tag)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil { return nil, err }
	if fontInfo.MaxWidth == 0 || fontInfo.MaxHeight == 0 {
		return nil, fmt.Errorf("missing or zero MaxWidth/MaxHeight")
	}

	result := New(dictionary, glyphTable, fontInfo)
	result.SetSeed(seed)
	return result, nil
}

func parseUint(field string, bits int) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(field), 10, bits)
}

func parseUint8(field string) (uint8, error) {
	value, err := parseUint(field, 8)
	return uint8(value), err
}

func parseInt8(field string) (int8, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(field), 10, 8)
	return int8(value), err
}

func parseDictEntry(rest string) (DictEntry, error) {
	var entry DictEntry
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return entry, fmt.Errorf("DictEntry expects 3 fields, got %d", len(fields))
	}
	score, err := strconv.ParseInt(fields[0], 10, 32)
	if err != nil { return entry, err }
	refEncode, err := strconv.ParseUint(fields[1], 10, 8)
	if err != nil { return entry, err }
	err = internal.BoolErrCheck(uint8(refEncode))
	if err != nil { return entry, err }
	pixels, err := internal.ParseHexPixels(fields[2])
	if err != nil { return entry, err }

	entry.Score = int32(score)
	entry.RefEncode = (refEncode == 1)
	entry.Replacement = pixels
	return entry, nil
}

func parseGlyph(rest string, fontInfo *FontInfo) (GlyphEntry, error) {
	var glyph GlyphEntry
	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return glyph, fmt.Errorf("Glyph expects 3 fields, got %d", len(fields))
	}
	for _, field := range strings.Split(fields[0], ",") {
		char, err := strconv.ParseUint(field, 10, 16)
		if err != nil { return glyph, err }
		glyph.Chars = append(glyph.Chars, uint16(char))
	}
	width, err := parseUint8(fields[1])
	if err != nil { return glyph, err }
	pixels, err := internal.ParseHexPixels(fields[2])
	if err != nil { return glyph, err }
	expected := int(fontInfo.MaxWidth) * int(fontInfo.MaxHeight)
	if len(pixels) != expected {
		return glyph, fmt.Errorf("glyph has %d pixels, font bounding box needs %d", len(pixels), expected)
	}

	glyph.Width = width
	glyph.Data = pixels
	return glyph, nil
}
