package rlefont

import "unicode/utf8"

// Horizontal alignment for [Font.DrawString].
type Align uint8
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func isSpace(char rune) bool {
	return char == ' ' || char == '\n' || char == '\t' || char == '\r'
}

// Returns the width of the string in pixels. When kern is true the
// automatic kerning adjustments between consecutive characters are
// included, which requires decoding every glyph pair and is notably
// slower.
func (self *Font) StringWidth(text string, kern bool) int {
	width := 0
	prev := rune(0)
	for _, char := range text {
		if kern && prev != 0 { width += self.ComputeKerning(prev, char) }
		width += int(self.CharWidth(char))
		prev = char
	}
	return width
}

// Returns text with trailing whitespace removed.
func stripSpaces(text string) string {
	end := 0
	for i, char := range text {
		if !isSpace(char) { end = i + utf8.RuneLen(char) }
	}
	return text[ : end]
}

// Renders a single line of text with the left edge at x0. The y0
// coordinate is the top of the glyph bounding boxes; x0 is
// interpreted relative to the baseline position.
func (self *Font) renderLeft(x0, y0 int, text string, callback PixelCallback, state any) {
	x := x0 - int(self.baselineX)
	prev := rune(0)
	for _, char := range text {
		if prev != 0 { x += self.ComputeKerning(prev, char) }
		x += int(self.RenderGlyph(x, y0, char, callback, state))
		prev = char
	}
}

// Renders a single line of text with the right edge at x0, drawing
// the characters from last to first.
func (self *Font) renderRight(x0, y0 int, text string, callback PixelCallback, state any) {
	x := x0 - int(self.baselineX)
	next := rune(0)
	for pos := len(text); pos > 0; {
		char, size := utf8.DecodeLastRuneInString(text[ : pos])
		pos -= size
		x -= int(self.CharWidth(char))
		if next != 0 { x -= self.ComputeKerning(char, next) }
		self.RenderGlyph(x, y0, char, callback, state)
		next = char
	}
}

// Renders a single line of aligned text through the pixel callback.
// Depending on the alignment, x0 is the left edge, center or right
// edge of the rendered text. Trailing whitespace is not drawn.
func (self *Font) DrawString(x0, y0 int, align Align, text string, callback PixelCallback, state any) {
	text = stripSpaces(text)
	switch align {
	case AlignLeft:
		self.renderLeft(x0, y0, text, callback, state)
	case AlignCenter:
		x0 -= self.StringWidth(text, false) / 2
		self.renderLeft(x0, y0, text, callback, state)
	case AlignRight:
		self.renderRight(x0, y0, text, callback, state)
	}
}
