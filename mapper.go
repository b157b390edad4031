package linecoords

import "github.com/npillmayer/linecoords/lineindex"

// ByteToCharPosition converts a byte position of the engine into a
// character position. pos is clamped to the document. A byte position
// inside a multi-byte character maps to the position after that character.
func (d *Document) ByteToCharPosition(pos int) int {
	pos = clamp(pos, 0, d.engine.Len())
	line := d.engine.LineFromPosition(pos)
	byteStart := d.engine.PositionFromLine(line)
	return d.index.CharPositionFromLine(line) + d.charCount(byteStart, pos-byteStart)
}

// CharToBytePosition converts a character position into a byte position of
// the engine. pos is clamped to the document.
//
// For lines without wide characters this is O(1). Otherwise the line is
// walked character by character, up to pos.
func (d *Document) CharToBytePosition(pos int) int {
	pos = clamp(pos, 0, d.TextLength())
	line := d.index.LineFromCharPosition(pos)
	byteStart := d.engine.PositionFromLine(line)
	pos -= d.index.CharPositionFromLine(line)
	if !d.LineContainsWideChar(line) {
		return byteStart + pos
	}
	for ; pos > 0; pos-- {
		byteStart = d.engine.PositionAfter(byteStart)
	}
	return byteStart
}

// LineContainsWideChar reports whether line contains a character which is
// encoded with more than one byte. The answer is cached per line until the
// line changes.
func (d *Document) LineContainsWideChar(line int) bool {
	line = clamp(line, 0, d.Count()-1)
	w := d.index.Wide(line)
	if w == lineindex.WideUnknown {
		w = lineindex.WideYes
		if d.engine.LineLength(line) == d.index.CharLineLength(line) {
			w = lineindex.WideNo
		}
		d.index.SetWide(line, w)
	}
	return w == lineindex.WideYes
}
