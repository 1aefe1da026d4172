package optimizer

// Iterative search over the dictionary content: rescore the entries
// from their real usage, propose a replacement for the weakest slot,
// keep it only when the whole encoded font gets smaller. The glyph
// table and font metadata are never touched.

import "math/rand"

import "github.com/sirupsen/logrus"

import "github.com/tinne26/rlefont/datafile"
import "github.com/tinne26/rlefont/encoder"
import "github.com/tinne26/rlefont/internal"

// Longest replacement extracted from a glyph in one proposal.
const maxProposalLength = 32

// Summary of an [Optimize] run.
type Result struct {
	Iterations int // iterations actually executed
	Accepted   int // proposals that shrank the font and were kept
	StartSize  int
	EndSize    int
}

// Runs up to the given number of optimization iterations on the
// data file. The stop callback is checked between iterations; pass
// nil to always run to the iteration limit. The data file is in a
// consistent state whenever Optimize returns, and its random seed is
// refreshed every iteration so interrupted runs resume where they
// left off.
//
// The encoded size never increases: every proposal that fails to
// shrink the font is reverted.
func Optimize(data *datafile.DataFile, iterations int, stop func() bool) Result {
	var result Result
	rng := rand.New(rand.NewSource(int64(data.Seed())))
	encoded := encoder.Encode(data, false)
	result.StartSize = encoder.EncodedSize(encoded)
	result.EndSize = result.StartSize
	if data.NumGlyphs() == 0 { return result }

	for i := 0; i < iterations; i++ {
		if stop != nil && stop() { break }
		result.Iterations += 1

		rescoreDictionary(data, encoded)
		candidate := propose(data, rng)
		lowIndex := data.LowScoreIndex()
		previous := *data.DictEntry(lowIndex)
		data.SetDictEntry(lowIndex, candidate)

		trialSize, ok := trialEncode(data)
		if ok && trialSize < result.EndSize {
			result.Accepted += 1
			logrus.WithFields(logrus.Fields{
				"size": trialSize, "saved": result.EndSize - trialSize,
			}).Debug("accepted dictionary proposal")
			result.EndSize = trialSize
		} else {
			data.SetDictEntry(lowIndex, previous)
		}
		encoded = encoder.Encode(data, false)
		data.SetSeed(rng.Uint32())
	}
	return result
}

// Re-scores every dictionary entry as the net byte savings it
// produces: (replacement length - 1) per emission, minus the entry's
// own storage cost. Entries that cost more than they save end up
// with negative scores and become replacement candidates.
func rescoreDictionary(data *datafile.DataFile, encoded *encoder.EncodedFont) {
	usage := make([]int, encoded.NumDictEntries())
	countUsage := func(stream []byte) {
		for _, code := range stream {
			if code >= internal.DictStart { usage[int(code) - internal.DictStart] += 1 }
		}
	}
	for _, stream := range encoded.RefDict { countUsage(stream) }
	for _, stream := range encoded.Glyphs { countUsage(stream) }

	scored := make([]bool, len(data.Dictionary()))
	for emitIndex, dictIndex := range encoded.Order {
		entry := *data.DictEntry(dictIndex)
		savings := (len(entry.Replacement) - 1) * usage[emitIndex]
		cost := len(encoded.DictEntryData(emitIndex)) + 2
		entry.Score = int32(savings - cost)
		data.SetDictEntry(dictIndex, entry)
		scored[dictIndex] = true
	}
	for i := range data.Dictionary() {
		if scored[i] { continue }
		entry := *data.DictEntry(i)
		entry.Score = 0
		data.SetDictEntry(i, entry)
	}
}

// Generates a candidate replacement: usually a random substring of a
// random glyph, sometimes the concatenation of two existing entries
// as a ref coded entry.
func propose(data *datafile.DataFile, rng *rand.Rand) datafile.DictEntry {
	if rng.Intn(4) == 0 {
		candidate, ok := proposeConcat(data, rng)
		if ok { return candidate }
	}
	return proposeSubstring(data, rng)
}

func proposeSubstring(data *datafile.DataFile, rng *rand.Rand) datafile.DictEntry {
	glyph := data.GlyphEntry(rng.Intn(data.NumGlyphs()))
	maxLength := min(maxProposalLength, len(glyph.Data))
	length := maxLength
	if maxLength > 2 { length = 2 + rng.Intn(maxLength - 1) }
	start := rng.Intn(len(glyph.Data) - length + 1)

	replacement := make(datafile.Pixels, length)
	copy(replacement, glyph.Data[start : start + length])
	return datafile.DictEntry{Replacement: replacement}
}

func proposeConcat(data *datafile.DataFile, rng *rand.Rand) (datafile.DictEntry, bool) {
	var nonEmpty []int
	for i, entry := range data.Dictionary() {
		if len(entry.Replacement) > 0 { nonEmpty = append(nonEmpty, i) }
	}
	if len(nonEmpty) < 2 { return datafile.DictEntry{}, false }

	first := data.DictEntry(nonEmpty[rng.Intn(len(nonEmpty))])
	second := data.DictEntry(nonEmpty[rng.Intn(len(nonEmpty))])
	replacement := make(datafile.Pixels, 0, len(first.Replacement) + len(second.Replacement))
	replacement = append(replacement, first.Replacement...)
	replacement = append(replacement, second.Replacement...)
	return datafile.DictEntry{RefEncode: true, Replacement: replacement}, true
}

// Encodes the data file, turning any panic from a codec defect into
// a rejected trial so the search can revert and keep going.
func trialEncode(data *datafile.DataFile) (size int, ok bool) {
	defer func() {
		problem := recover()
		if problem != nil {
			logrus.WithField("problem", problem).Warn("trial encode failed, reverting proposal")
			ok = false
		}
	}()
	return encoder.EncodedSizeOf(data), true
}
