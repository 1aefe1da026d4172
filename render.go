package rlefont

import "github.com/tinne26/rlefont/internal"

// Callback invoked by [Font.RenderGlyph] for each horizontal run of
// pixels sharing the same alpha, in raster order (top to bottom,
// left to right).
//
// x, y:  coordinates of the first pixel of the run.
// count: number of pixels to fill towards the right.
// alpha: opaqueness of the pixels, 0 for background, 255 for text.
// state: the free variable passed to [Font.RenderGlyph].
//
// Background runs may be skipped entirely instead of being reported
// with alpha 0, so callbacks must not rely on full coverage.
type PixelCallback func(x, y int16, count uint8, alpha uint8, state any)

// Tracks the position of the next pixel to be written and the bounds
// of the glyph being rendered.
type renderState struct {
	xBegin int16
	xEnd   int16
	x, y   int16
	yEnd   int16
	callback PixelCallback
	state any
}

// Reports a run of count pixels through the callback, splitting it
// at the right edge of the glyph rectangle as many times as needed.
func (self *renderState) writePixels(count int, alpha uint8) {
	for self.x + int16(count) >= self.xEnd {
		rowLen := self.xEnd - self.x
		self.callback(self.x, self.y, uint8(rowLen), alpha, self.state)
		count -= int(rowLen)
		self.x = self.xBegin
		self.y += 1
	}
	if count > 0 {
		self.callback(self.x, self.y, uint8(count), alpha, self.state)
		self.x += int16(count)
	}
}

// Advances the cursor over count background pixels without invoking
// the callback.
func (self *renderState) skipPixels(count int) {
	self.x += int16(count)
	for self.x >= self.xEnd {
		self.x -= self.xEnd - self.xBegin
		self.y += 1
	}
}

// Expands a single codeword. Dictionary references recurse up to
// [internal.MaxExpansionDepth] levels; in well formed fonts the
// dictionary ordering keeps chains far shorter, so deeper recursion
// only happens on corrupt data and is cut silently.
func (self *Font) writeCodeword(rstate *renderState, code uint8, depth int) {
	switch {
	case code <= internal.MaxAlpha:
		rstate.writePixels(1, code * 0x11)
	case code == RefFillZeros:
		rstate.y = rstate.yEnd
	case code < DictStart:
		// reserved, skipped for forward compatibility
	default:
		self.writeDictEntry(rstate, code - DictStart, depth)
	}
}

func (self *Font) writeDictEntry(rstate *renderState, index uint8, depth int) {
	if index >= self.dictCount { return } // out of range, treat as reserved
	if depth >= internal.MaxExpansionDepth { return }

	data := self.dictEntry(index)
	if index < self.rleCount {
		writeRLEEntry(rstate, data)
	} else {
		for _, code := range data {
			self.writeCodeword(rstate, code, depth + 1)
		}
	}
}

// Expands an RLE coded dictionary entry. Zero runs advance the
// cursor without touching the callback.
func writeRLEEntry(rstate *renderState, data []byte) {
	for _, code := range data {
		value := code & internal.RLEValMask
		switch code & internal.RLECodeMask {
		case internal.RLEZeros:
			rstate.skipPixels(int(value))
		case internal.RLE64Zeros:
			rstate.skipPixels((int(value) + 1) * 64)
		case internal.RLEOnes:
			rstate.writePixels(int(value) + 1, 255)
		case internal.RLEShade:
			count := (value >> 4) + 1
			alpha := (value & 0xF) * 0x11
			rstate.writePixels(int(count), alpha)
		}
	}
}

// Decodes and renders a single character. The glyph's bounding box
// is placed with its top-left corner at (x0, y0) and every pixel run
// is reported through the callback. Characters the font doesn't map
// render the fallback glyph instead.
//
// Returns the advance width of the character.
func (self *Font) RenderGlyph(x0, y0 int, char rune, callback PixelCallback, state any) uint8 {
	var rstate renderState
	rstate.xBegin = int16(x0)
	rstate.xEnd   = int16(x0) + int16(self.width)
	rstate.x = int16(x0)
	rstate.y = int16(y0)
	rstate.yEnd = int16(y0) + int16(self.height)
	rstate.callback = callback
	rstate.state = state

	glyph := self.findGlyph(uint16(char))
	width := glyph[0]
	pos := 1
	for rstate.y < rstate.yEnd && pos < len(glyph) {
		self.writeCodeword(&rstate, glyph[pos], 0)
		pos += 1
	}
	return width
}
