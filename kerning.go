package rlefont

// Automatic kerning works without any kerning tables: it renders the
// edge profiles of the two glyphs and computes how much the pair can
// be tightened while preserving a proportional visual gap.

// Space between characters, percent of glyph width.
const kerningSpacePercent = 15

// Space between characters, pixels.
const kerningSpacePx = 3

// Maximum kerning adjustment, percent of glyph width.
const kerningMaxPercent = 20

// Number of kerning zones the glyph height is divided into.
const kerningZones = 16

const noEdge = 32767

// Tracks the edge of a glyph as it is rendered.
type kerningState struct {
	edgePos [kerningZones]int16
	zoneHeight int16
	rightEdge bool
}

// Pixel callback that records the leftmost or rightmost covered
// pixel of each zone.
func fitEdge(x, y int16, count uint8, alpha uint8, state any) {
	if alpha < 128 { return }
	s := state.(*kerningState)
	zone := y / s.zoneHeight
	if zone >= kerningZones { zone = kerningZones - 1 }
	if s.rightEdge {
		x += int16(count) - 1
		if s.edgePos[zone] == noEdge || x > s.edgePos[zone] { s.edgePos[zone] = x }
	} else {
		if x < s.edgePos[zone] { s.edgePos[zone] = x }
	}
}

// Computes the kerning adjustment to apply between the given pair of
// characters, in pixels. The result is zero or negative: automatic
// kerning only ever tightens pairs. Pairs involving whitespace or
// empty glyphs return zero.
func (self *Font) ComputeKerning(c1, c2 rune) int {
	var leftEdge, rightEdge kerningState
	zoneHeight := int16(self.height) / kerningZones
	if zoneHeight < 1 { zoneHeight = 1 }
	leftEdge.zoneHeight, rightEdge.zoneHeight = zoneHeight, zoneHeight
	rightEdge.rightEdge = true
	for i := 0; i < kerningZones; i++ {
		leftEdge.edgePos[i] = noEdge
		rightEdge.edgePos[i] = noEdge
	}

	// analyze the facing edges of both glyphs
	w1 := int(self.RenderGlyph(0, 0, c1, fitEdge, &rightEdge))
	w2 := int(self.RenderGlyph(0, 0, c2, fitEdge, &leftEdge))

	// find the minimum horizontal space between the glyphs
	minSpace := noEdge
	for i := 0; i < kerningZones; i++ {
		if leftEdge.edgePos[i] == noEdge || rightEdge.edgePos[i] == noEdge { continue }
		space := w1 - int(rightEdge.edgePos[i]) + int(leftEdge.edgePos[i])
		if space < minSpace { minSpace = space }
	}
	if minSpace == noEdge { return 0 } // no facing edges (whitespace etc.)

	// compute the adjustment of the glyph position
	normalSpace := (w1 + w2)/2*kerningSpacePercent/100 + kerningSpacePx
	adjust := normalSpace - minSpace
	maxAdjust := -max(w1, w2)*kerningMaxPercent/100
	if adjust > 0 { adjust = 0 }
	if adjust < maxAdjust { adjust = maxAdjust }
	return adjust
}
