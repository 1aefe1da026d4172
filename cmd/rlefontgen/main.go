package main

// Command line front end for the font compressor: import fonts into
// working data files, optimize their dictionaries and export the
// result as C source for embedded decoders.

import "fmt"
import "os"
import "os/signal"
import "path/filepath"
import "strconv"
import "strings"
import "sync/atomic"
import "time"

import "github.com/sirupsen/logrus"

import "github.com/tinne26/rlefont"
import "github.com/tinne26/rlefont/cexport"
import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/encoder"
import "github.com/tinne26/rlefont/importer"
import "github.com/tinne26/rlefont/optimizer"

const usage = `Usage:
   import <fontfile> <size>        Import a .ttf/.otf font into a data file.
   import_bdf <bdffile>            Import a .bdf font into a data file.
   export <datfile> <basename>     Export to .c and .h source code.
   filter <datfile> <range> ...    Remove everything except specified characters.
   size <datfile>                  Check the encoded size of the data file.
   optimize <datfile> [iterations] Optimize the data file dictionary.
   show_encoded <datfile>          Show the encoded data for debugging.
   show_glyph <datfile> <index>    Show the glyph at index ("largest" allowed).
`

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	args := os.Args[1 : ]
	var err error
	switch {
	case len(args) == 3 && args[0] == "import":
		err = cmdImport(args[1], args[2])
	case len(args) == 2 && args[0] == "import_bdf":
		err = cmdImportBDF(args[1])
	case len(args) == 3 && args[0] == "export":
		err = cmdExport(args[1], args[2])
	case len(args) >= 3 && args[0] == "filter":
		err = cmdFilter(args[1], args[2 : ])
	case len(args) == 2 && args[0] == "size":
		err = cmdSize(args[1])
	case len(args) >= 2 && len(args) <= 3 && args[0] == "optimize":
		err = cmdOptimize(args[1], args[2 : ])
	case len(args) == 2 && args[0] == "show_encoded":
		err = cmdShowEncoded(args[1])
	case len(args) == 3 && args[0] == "show_glyph":
		err = cmdShowGlyph(args[1], args[2])
	default:
		fmt.Print(usage)
		os.Exit(1)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

func stripExtension(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

func loadDataFile(filename string) (*datafile.DataFile, error) {
	file, err := os.Open(filename)
	if err != nil { return nil, err }
	defer file.Close()
	return datafile.Load(file)
}

// Data files are always saved through a temporary file and a rename,
// so an interrupted save can't destroy hours of optimization.
func saveDataFile(data *datafile.DataFile, filename string) error {
	temp, err := os.CreateTemp(filepath.Dir(filename), ".rlefont-*.tmp")
	if err != nil { return err }
	err = data.Save(temp)
	if closeErr := temp.Close(); err == nil { err = closeErr }
	if err != nil {
		os.Remove(temp.Name())
		return err
	}
	return os.Rename(temp.Name(), filename)
}

func cmdImport(src, sizeField string) error {
	sizePx, err := strconv.Atoi(sizeField)
	if err != nil { return fmt.Errorf("invalid size %q: %w", sizeField, err) }
	fontData, err := os.ReadFile(src)
	if err != nil { return err }

	dest := stripExtension(src) + strconv.Itoa(sizePx) + ".dat"
	logrus.WithFields(logrus.Fields{"src": src, "dest": dest}).Info("importing font")

	data, err := importer.LoadOpenType(fontData, sizePx)
	if err != nil { return err }
	err = saveDataFile(data, dest)
	if err != nil { return err }
	logrus.WithField("glyphs", data.NumGlyphs()).Info("import done")
	return nil
}

func cmdImportBDF(src string) error {
	fontData, err := os.ReadFile(src)
	if err != nil { return err }

	dest := stripExtension(src) + ".dat"
	logrus.WithFields(logrus.Fields{"src": src, "dest": dest}).Info("importing font")

	data, err := importer.LoadBDF(fontData)
	if err != nil { return err }
	err = saveDataFile(data, dest)
	if err != nil { return err }
	logrus.WithField("glyphs", data.NumGlyphs()).Info("import done")
	return nil
}

func cmdExport(src, basename string) error {
	data, err := loadDataFile(src)
	if err != nil { return err }

	header, err := os.Create(basename + ".h")
	if err != nil { return err }
	err = cexport.WriteHeader(header, basename, data)
	if closeErr := header.Close(); err == nil { err = closeErr }
	if err != nil { return err }
	logrus.WithField("file", basename + ".h").Info("wrote header")

	source, err := os.Create(basename + ".c")
	if err != nil { return err }
	err = cexport.WriteSource(source, basename, data)
	if closeErr := source.Close(); err == nil { err = closeErr }
	if err != nil { return err }
	logrus.WithField("file", basename + ".c").Info("wrote source")
	return nil
}

// Parses character ranges like "65", "0x20-0x7E".
func parseCharRanges(fields []string) (map[uint16]bool, error) {
	allowed := make(map[uint16]bool)
	for _, field := range fields {
		first, last, isRange := strings.Cut(field, "-")
		start, err := strconv.ParseUint(first, 0, 16)
		if err != nil { return nil, fmt.Errorf("invalid range %q: %w", field, err) }
		end := start
		if isRange {
			end, err = strconv.ParseUint(last, 0, 16)
			if err != nil { return nil, fmt.Errorf("invalid range %q: %w", field, err) }
		}
		for char := start; char <= end; char++ {
			allowed[uint16(char)] = true
		}
	}
	return allowed, nil
}

func cmdFilter(src string, rangeFields []string) error {
	allowed, err := parseCharRanges(rangeFields)
	if err != nil { return err }
	data, err := loadDataFile(src)
	if err != nil { return err }

	logrus.WithField("glyphs", data.NumGlyphs()).Info("before filtering")
	data = data.FilterChars(func(char uint16) bool { return allowed[char] })
	logrus.WithField("glyphs", data.NumGlyphs()).Info("after filtering")
	return saveDataFile(data, src)
}

func cmdSize(src string) error {
	data, err := loadDataFile(src)
	if err != nil { return err }
	fmt.Printf("Current size of %s is %d bytes\n", src, encoder.EncodedSizeOf(data))
	return nil
}

const optimizeChunk = 1 // iterations between saves

func cmdOptimize(src string, extra []string) error {
	limit := 100
	if len(extra) == 1 {
		var err error
		limit, err = strconv.Atoi(extra[0])
		if err != nil { return fmt.Errorf("invalid iteration count %q: %w", extra[0], err) }
	}

	data, err := loadDataFile(src)
	if err != nil { return err }
	oldSize := encoder.EncodedSizeOf(data)
	logrus.WithField("size", oldSize).Info("original size")
	logrus.Info("press ctrl-C at any time to stop; results are saved after every chunk")

	// the stop flag lets the in-flight iterations finish so the data
	// file is saved in a consistent state
	var stopFlag atomic.Bool
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	go func() {
		<-interrupts
		signal.Stop(interrupts)
		stopFlag.Store(true)
		logrus.Info("stopping after the current chunk")
	}()

	done := 0
	startTime := time.Now()
	for (limit == 0 || done < limit) && !stopFlag.Load() {
		chunk := optimizeChunk
		if limit != 0 && limit - done < chunk { chunk = limit - done }
		result := optimizer.Optimize(data, chunk, stopFlag.Load)
		done += result.Iterations

		newSize := result.EndSize
		elapsed := time.Since(startTime).Seconds() + 1
		logrus.WithFields(logrus.Fields{
			"iteration":     done,
			"size":          newSize,
			"bytes_per_min": int(float64(oldSize - newSize) * 60 / elapsed),
		}).Info("optimizing")

		err = saveDataFile(data, src)
		if err != nil { return err }
	}
	return nil
}

func cmdShowEncoded(src string) error {
	data, err := loadDataFile(src)
	if err != nil { return err }
	encoded := encoder.Encode(data, false)

	codeword := rlefont.DictStart
	for _, entry := range encoded.RLEDict {
		fmt.Printf("Dict RLE %d: % 02x\n", codeword, entry)
		codeword += 1
	}
	for _, entry := range encoded.RefDict {
		fmt.Printf("Dict Ref %d: % 02x\n", codeword, entry)
		codeword += 1
	}
	for i, glyph := range encoded.Glyphs {
		fmt.Printf("Glyph %d: % 02x\n", i, glyph)
	}
	return nil
}

func cmdShowGlyph(src, indexField string) error {
	data, err := loadDataFile(src)
	if err != nil { return err }

	var index int
	if indexField == "largest" {
		encoded := encoder.Encode(data, false)
		maxLen := -1
		for i, glyph := range encoded.Glyphs {
			if len(glyph) > maxLen { maxLen, index = len(glyph), i }
		}
		fmt.Printf("Index %d, length %d\n", index, maxLen)
	} else {
		index, err = strconv.Atoi(indexField)
		if err != nil { return fmt.Errorf("invalid glyph index %q: %w", indexField, err) }
	}
	if index < 0 || index >= data.NumGlyphs() {
		return fmt.Errorf("no such glyph %d", index)
	}
	fmt.Print(data.GlyphToText(index))
	return nil
}
