package rlefont

import "github.com/tinne26/rlefont/internal"

const FormatVersion = internal.FormatVersion

// Codeword space layout. Codewords below [DictStart] are reserved:
// 0..15 are literal pixel alphas, [RefFillZeros] terminates a glyph
// by filling the rest with background, 17..23 are unused. Codewords
// from [DictStart] up address dictionary entries.
const DictStart = internal.DictStart
const RefFillZeros = internal.RefFillZeros

// Maximum number of dictionary entries an encoded font can hold.
const MaxDictSize = internal.MaxDictSize
