package linecoords

// TextRange returns length characters starting at character position pos.
// The range is clipped to the document.
func (d *Document) TextRange(pos, length int) string {
	start, end := d.byteRange(pos, length)
	return string(d.engine.Range(start, end-start))
}

// InsertText inserts text at character position pos. The engine has to be
// an Editor.
func (d *Document) InsertText(pos int, text string) error {
	ed, ok := d.engine.(Editor)
	if !ok {
		return ErrReadOnly
	}
	return ed.InsertText(d.CharToBytePosition(pos), text)
}

// DeleteRange deletes length characters starting at character position pos.
// The engine has to be an Editor.
func (d *Document) DeleteRange(pos, length int) error {
	ed, ok := d.engine.(Editor)
	if !ok {
		return ErrReadOnly
	}
	start, end := d.byteRange(pos, length)
	return ed.DeleteRange(start, end-start)
}

// ReplaceRange replaces length characters starting at character position
// pos with text. The engine has to be an Editor.
func (d *Document) ReplaceRange(pos, length int, text string) error {
	ed, ok := d.engine.(Editor)
	if !ok {
		return ErrReadOnly
	}
	start, end := d.byteRange(pos, length)
	return ed.ReplaceRange(start, end-start, text)
}

// CharPositionToLineColumn splits character position pos into a line and a
// character column within that line.
func (d *Document) CharPositionToLineColumn(pos int) (line, col int) {
	pos = clamp(pos, 0, d.TextLength())
	line = d.index.LineFromCharPosition(pos)
	return line, pos - d.index.CharPositionFromLine(line)
}

// LineColumnToCharPosition returns the character position of column col of
// line. Both are clamped, col to the length of the line.
func (d *Document) LineColumnToCharPosition(line, col int) int {
	line = clamp(line, 0, d.Count()-1)
	col = clamp(col, 0, d.index.CharLineLength(line))
	return d.index.CharPositionFromLine(line) + col
}

// byteRange converts the character range [pos,pos+length) to bytes.
func (d *Document) byteRange(pos, length int) (start, end int) {
	pos = clamp(pos, 0, d.TextLength())
	length = clamp(length, 0, d.TextLength()-pos)
	return d.CharToBytePosition(pos), d.CharToBytePosition(pos + length)
}
