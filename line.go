package linecoords

import "fmt"

// Line is a read-only view of a single line of a document. A Line is only
// valid until the next modification of the document.
type Line struct {
	doc   *Document
	index int
}

// Line returns line i of d. i is clamped to the document.
func (d *Document) Line(i int) Line {
	return Line{doc: d, index: clamp(i, 0, d.Count()-1)}
}

// Lines returns all lines of d.
func (d *Document) Lines() []Line {
	lines := make([]Line, d.Count())
	for i := range lines {
		lines[i] = Line{doc: d, index: i}
	}
	return lines
}

// Index returns the zero-based line number.
func (l Line) Index() int {
	return l.index
}

// Position returns the character position of the start of the line.
func (l Line) Position() int {
	return l.doc.index.CharPositionFromLine(l.index)
}

// EndPosition returns the character position after the line, including its
// line end.
func (l Line) EndPosition() int {
	return l.doc.index.CharPositionFromLine(l.index + 1)
}

// Length returns the number of characters of the line, including its line end.
func (l Line) Length() int {
	return l.doc.index.CharLineLength(l.index)
}

// ByteRange returns the byte position and the byte length of the line in
// the engine.
func (l Line) ByteRange() (start, length int) {
	e := l.doc.engine
	return e.PositionFromLine(l.index), e.LineLength(l.index)
}

// Text returns the text of the line, including its line end.
func (l Line) Text() string {
	return string(l.doc.engine.Range(l.ByteRange()))
}

// ContainsWideChar reports whether the line contains characters encoded with
// more than one byte.
func (l Line) ContainsWideChar() bool {
	return l.doc.LineContainsWideChar(l.index)
}

func (l Line) String() string {
	return fmt.Sprintf("line{%d @%d+%d}", l.index, l.Position(), l.Length())
}
