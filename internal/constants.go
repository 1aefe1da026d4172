package internal

// Wire format version, bumped on any incompatible change to the
// encoded font layout.
const FormatVersion = 4

// Number of reserved codewords before the dictionary entries.
const DictStart = 24

// Special codeword meaning "fill with zeros to the end of the glyph".
const RefFillZeros = 16

// Dictionary capacity. Codewords are single bytes, so after the
// reserved range every remaining value can address one entry.
const MaxDictSize = 256 - DictStart

// RLE opcodes, stored in the top two bits of each dictionary byte.
const (
	RLECodeMask uint8 = 0xC0
	RLEValMask  uint8 = 0x3F
	RLEZeros    uint8 = 0x00 // N zero pixels
	RLE64Zeros  uint8 = 0x40 // (N + 1)*64 zero pixels
	RLEOnes     uint8 = 0x80 // (N + 1) full alpha pixels
	RLEShade    uint8 = 0xC0 // ((N >> 4) + 1) pixels of alpha (N & 0xF)
)

// Alpha values are 4 bits on the wire.
const MaxAlpha = 15

// Cap on recursive dictionary expansion while decoding. The
// dictionary ordering makes deeper chains impossible in well formed
// fonts, so hitting this means the data is corrupt.
const MaxExpansionDepth = 16

// Character range packing limits: a new range starts when the gap
// between consecutive character codes reaches RangeGapLimit, or when
// the accumulated glyph data would no longer be addressable through
// uint16 offsets.
const RangeGapLimit = 8
const MaxRangeDataSize = 65535
