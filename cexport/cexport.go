package cexport

// Emits a compressed font as C source, the form consumed by embedded
// decoders: the dictionary tables, per-range glyph tables and the
// top-level font struct, all as const arrays.

import "fmt"
import "io"
import "strings"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/encoder"
import "github.com/tinne26/rlefont/internal"

// Turns an output basename into a valid C identifier.
func filenameToIdentifier(name string) string {
	var builder strings.Builder
	for _, char := range name {
		switch {
		case char >= 'a' && char <= 'z', char >= '0' && char <= '9':
			builder.WriteRune(char)
		case char >= 'A' && char <= 'Z':
			builder.WriteRune(char - 'A' + 'a')
		default:
			builder.WriteByte('_')
		}
	}
	identifier := builder.String()
	if identifier == "" || (identifier[0] >= '0' && identifier[0] <= '9') {
		identifier = "font_" + identifier
	}
	return identifier
}

// Writes a const array initializer as line wrapped hex values.
func writeConstTable(w io.Writer, values []int, ctype, name string, hexWidth int) {
	valuesPerLine := 16
	if hexWidth > 2 { valuesPerLine = 8 }
	fmt.Fprintf(w, "static const %s %s[] = {\n", ctype, name)
	for i, value := range values {
		if i % valuesPerLine == 0 { fmt.Fprint(w, "    ") }
		fmt.Fprintf(w, "0x%0*x, ", hexWidth, value)
		if i % valuesPerLine == valuesPerLine - 1 || i == len(values) - 1 { fmt.Fprint(w, "\n") }
	}
	fmt.Fprint(w, "};\n\n")
}

// Writes the C header declaring the font.
func WriteHeader(w io.Writer, name string, data *datafile.DataFile) error {
	name = filenameToIdentifier(name)
	_, err := fmt.Fprintf(w,
		"/* Automatically generated font definition for '%s'. */\n"+
		"#ifndef _%s_H_\n"+
		"#define _%s_H_\n"+
		"\n"+
		"#include \"rlefont.h\"\n"+
		"\n"+
		"/* The font definition */\n"+
		"extern const struct rlefont_s rlefont_%s;\n"+
		"\n"+
		"#endif\n", name, strings.ToUpper(name), strings.ToUpper(name), name)
	return err
}

// Encodes the data file (with verification) and writes the C source
// with every table and the font struct.
func WriteSource(w io.Writer, name string, data *datafile.DataFile) error {
	name = filenameToIdentifier(name)
	encoded := encoder.Encode(data, true)
	fontInfo := data.FontInfo()

	fmt.Fprint(w, "/* Automatically generated font definition. */\n")
	fmt.Fprintf(w, "#include \"%s.h\"\n\n", name)
	fmt.Fprintf(w, "#ifndef RLEFONT_VERSION_%d_SUPPORTED\n", internal.FormatVersion)
	fmt.Fprint(w, "#error The font file is not compatible with this version of the decoder.\n")
	fmt.Fprint(w, "#endif\n\n")

	writeDictionary(w, encoded)

	ranges := encoder.ComputeCharRanges(data, func(glyphIndex int) int {
		return len(encoded.Glyphs[glyphIndex]) + 1
	})
	for i, r := range ranges {
		writeCharRange(w, data, encoded, &r, i)
	}

	fmt.Fprint(w, "static const struct rlefont_char_range_s char_ranges[] = {\n")
	for i, r := range ranges {
		fmt.Fprintf(w, "    {%d, %d, glyph_offsets_%d, glyph_data_%d},\n",
			r.FirstChar, r.CharCount, i, i)
	}
	fmt.Fprint(w, "};\n\n")

	_, err := fmt.Fprintf(w,
		"const struct rlefont_s rlefont_%s = {\n"+
		"    \"%s\",\n"+
		"    \"%s\",\n"+
		"    %d, /* width */\n"+
		"    %d, /* height */\n"+
		"    %d, /* baseline x */\n"+
		"    %d, /* baseline y */\n"+
		"    %d, /* line height */\n"+
		"    %d, /* flags */\n"+
		"    %d, /* fallback character */\n"+
		"    %d, /* char range count */\n"+
		"    char_ranges,\n"+
		"    dictionary_data,\n"+
		"    dictionary_offsets,\n"+
		"    %d, /* rle dict entry count */\n"+
		"    %d, /* total dict entry count */\n"+
		"};\n",
		name, escapeCString(fontInfo.Name), name,
		fontInfo.MaxWidth, fontInfo.MaxHeight,
		fontInfo.BaselineX, fontInfo.BaselineY,
		fontInfo.LineHeight, fontInfo.Flags,
		encoder.SelectFallbackChar(data), len(ranges),
		len(encoded.RLEDict), encoded.NumDictEntries())
	return err
}

// Writes dictionary_data and dictionary_offsets. The offsets table
// has one extra entry bounding the last dictionary entry.
func writeDictionary(w io.Writer, encoded *encoder.EncodedFont) {
	var offsets, tableData []int
	for i := 0; i < encoded.NumDictEntries(); i++ {
		offsets = append(offsets, len(tableData))
		for _, value := range encoded.DictEntryData(i) {
			tableData = append(tableData, int(value))
		}
	}
	offsets = append(offsets, len(tableData))

	writeConstTable(w, tableData, "uint8_t", "dictionary_data", 2)
	writeConstTable(w, offsets, "uint16_t", "dictionary_offsets", 4)
}

// Writes glyph_data_N and glyph_offsets_N for one character range.
// Glyphs shared by several characters are emitted once.
func writeCharRange(w io.Writer, data *datafile.DataFile, encoded *encoder.EncodedFont,
                    r *encoder.CharRange, rangeIndex int) {
	var offsets, tableData []int
	alreadyEncoded := make(map[int]int)
	for _, glyphIndex := range r.GlyphIndices {
		offset, found := alreadyEncoded[glyphIndex]
		if !found {
			offset = len(tableData)
			alreadyEncoded[glyphIndex] = offset
			tableData = append(tableData, int(data.GlyphEntry(glyphIndex).Width))
			for _, value := range encoded.Glyphs[glyphIndex] {
				tableData = append(tableData, int(value))
			}
		}
		offsets = append(offsets, offset)
	}

	writeConstTable(w, tableData, "uint8_t", fmt.Sprintf("glyph_data_%d", rangeIndex), 2)
	writeConstTable(w, offsets, "uint16_t", fmt.Sprintf("glyph_offsets_%d", rangeIndex), 4)
}

func escapeCString(str string) string {
	str = strings.ReplaceAll(str, "\\", "\\\\")
	return strings.ReplaceAll(str, "\"", "\\\"")
}
