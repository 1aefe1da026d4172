package rlefont

import "unicode/utf8"

// The spacing of tab stops, in space character widths.
const tabSize = 8

// A single word and the whitespace after it.
type wordLen struct {
	word  int // pixel width of the word
	space int // pixel width of the whitespace after it
	start int // byte offset of the word in the source text
	end   int // byte offset past the word and its whitespace
}

// Measures the word starting at pos. The returned bool is true when
// the word ends the line (linebreak or end of text).
func (self *Font) nextWordLen(text string, pos int) (wordLen, bool) {
	result := wordLen{start: pos, end: pos}

	for pos < len(text) {
		char, size := utf8.DecodeRuneInString(text[pos : ])
		if isSpace(char) { break }
		result.word += int(self.CharWidth(char))
		pos += size
	}
	for pos < len(text) {
		char, size := utf8.DecodeRuneInString(text[pos : ])
		if !isSpace(char) { break }
		pos += size
		if char == ' ' {
			result.space += int(self.CharWidth(' '))
		} else if char == '\t' {
			result.space += int(self.CharWidth(' ')) * tabSize
		} else if char == '\n' {
			result.end = pos
			return result, true
		}
	}
	result.end = pos
	return result, pos >= len(text)
}

// The rendered length of a single line being assembled.
type lineLen struct {
	start int  // byte offset of the line start
	end   int  // byte offset past the last appended word
	width int  // width of all words + whitespace on the line
	linebreak bool // line ends in an explicit linebreak
	lastWord  wordLen
	lastWord2 wordLen // second to last word
}

// Appends the word at the line's end offset if it fits within the
// given width. Returns false without consuming anything otherwise.
func (self *Font) appendWord(width int, current *lineLen, text string) bool {
	word, linebreak := self.nextWordLen(text, current.end)
	if current.width + word.word > width { return false }
	current.lastWord2 = current.lastWord
	current.lastWord = word
	current.linebreak = linebreak
	current.width += word.word + word.space
	current.end = word.end
	return true
}

func sqSlack(x int) int { return x * x }

// Balances two adjacent lines by moving the last word of the
// previous line down when that reduces the total squared slack.
func tuneLines(current, previous *lineLen, maxWidth int) {
	if previous.lastWord.start == previous.start { return } // single-word line

	// widths if the lines are rendered as is
	curW1 := current.width - current.lastWord.space
	prevW1 := previous.width - previous.lastWord.space
	delta1 := sqSlack(maxWidth - prevW1) + sqSlack(maxWidth - curW1)

	// widths if the last word is moved down
	curW2 := current.width + previous.lastWord.word
	prevW2 := previous.width - previous.lastWord.word -
	          previous.lastWord.space - previous.lastWord2.space
	delta2 := sqSlack(maxWidth - prevW2) + sqSlack(maxWidth - curW2)

	if delta1 > delta2 && curW2 <= maxWidth {
		previous.width -= previous.lastWord.word + previous.lastWord.space
		current.width += previous.lastWord.word + previous.lastWord.space
		current.start = previous.lastWord.start
		previous.end = previous.lastWord.start
		previous.lastWord = previous.lastWord2
	}
}

// Splits text into lines at most width pixels wide, breaking at
// whitespace and explicit linebreaks, and calls each() for every
// resulting line (including its trailing whitespace). Adjacent line
// lengths are balanced by moving single words when that evens out
// the slack. A word wider than the given width gets a line of its
// own and overflows it.
func (self *Font) WordWrap(width int, text string, each func(line string)) {
	var current, previous lineLen

	for current.end < len(text) {
		appended := self.appendWord(width, &current, text)
		if !appended && current.end == current.start {
			// single word wider than the line, force it through
			word, linebreak := self.nextWordLen(text, current.end)
			current.lastWord2 = current.lastWord
			current.lastWord = word
			current.linebreak = linebreak
			current.width += word.word + word.space
			current.end = word.end
			appended = true
		}

		if !appended || current.linebreak {
			if previous.end > previous.start {
				if !previous.linebreak && !current.linebreak {
					tuneLines(&current, &previous, width)
				}
				each(text[previous.start : previous.end])
			}
			previous = current
			current = lineLen{start: previous.end, end: previous.end}
		}
	}

	// dispatch the last lines
	if previous.end > previous.start { each(text[previous.start : previous.end]) }
	if current.end > current.start { each(text[current.start : current.end]) }
}
