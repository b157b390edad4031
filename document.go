package linecoords

import (
	"fmt"

	"github.com/npillmayer/linecoords/lineindex"
)

// Document mirrors the lines of an engine in character space.
//
// A Document is created by Attach. It is the only writer of its line index,
// which it updates from the engine's modification notifications.
type Document struct {
	engine   Engine
	index    *lineindex.Index
	remove   func() // unsubscribes from the engine
	detached bool
}

// Attach creates a document for e and builds its line index from the
// current content of e. If e is Observable, the document subscribes to its
// notifications; otherwise clients have to pass every modification of e to
// Notify.
func Attach(e Engine) *Document {
	assert(e != nil, "linecoords.Attach: engine is nil")
	d := &Document{
		engine: e,
		index:  lineindex.New(),
	}
	d.RebuildLineData()
	if o, ok := e.(Observable); ok {
		d.remove = o.AddListener(d)
	}
	return d
}

// Detach stops the document from following modifications of its engine.
// The line index is left as it is and will be outdated after the next edit.
func (d *Document) Detach() {
	if d.remove != nil {
		d.remove()
		d.remove = nil
	}
	d.detached = true
}

// Engine returns the engine d is attached to.
func (d *Document) Engine() Engine {
	return d.engine
}

// Count returns the number of lines.
func (d *Document) Count() int {
	return d.index.Count()
}

// TextLength returns the length of the document in characters.
func (d *Document) TextLength() int {
	return d.index.TextLength()
}

// CharPositionFromLine returns the character position where line starts.
// For line == Count() the text length is returned.
func (d *Document) CharPositionFromLine(line int) int {
	return d.index.CharPositionFromLine(clamp(line, 0, d.Count()))
}

// LineFromCharPosition returns the line containing character position pos.
func (d *Document) LineFromCharPosition(pos int) int {
	return d.index.LineFromCharPosition(clamp(pos, 0, d.TextLength()))
}

// CharLineLength returns the length of line in characters, including its
// line end.
func (d *Document) CharLineLength(line int) int {
	return d.index.CharLineLength(clamp(line, 0, d.Count()-1))
}

// Check verifies the line index against the engine: the number of lines
// and the character length of every line have to agree. If the engine is a
// CharSeeker, every line start has to map to the engine's line start as
// well. Check decodes the whole document and is meant for tests and
// diagnostics.
func (d *Document) Check() error {
	if d.Count() != d.engine.LineCount() {
		return fmt.Errorf("%w: %d lines, engine has %d", ErrIndexMismatch, d.Count(), d.engine.LineCount())
	}
	for line := 0; line < d.Count(); line++ {
		start, length := d.engine.PositionFromLine(line), d.engine.LineLength(line)
		if want := d.charCount(start, length); d.index.CharLineLength(line) != want {
			return fmt.Errorf("%w: line %d has length %d, engine has %d", ErrIndexMismatch,
				line, d.index.CharLineLength(line), want)
		}
	}
	if cs, ok := d.engine.(CharSeeker); ok {
		for line := 0; line <= d.Count(); line++ {
			start := d.index.CharPositionFromLine(line)
			if got, want := cs.PositionFromChar(start), d.engine.PositionFromLine(line); got != want {
				return fmt.Errorf("%w: line %d starts at char %d, which is byte %d, engine has %d",
					ErrIndexMismatch, line, start, got, want)
			}
		}
	}
	return nil
}

// charCount counts the characters of the engine's bytes [start,start+length).
func (d *Document) charCount(start, length int) int {
	if length <= 0 {
		return 0
	}
	if rc, ok := d.engine.(RangeCounter); ok {
		return rc.CountCharsInRange(start, start+length)
	}
	return d.engine.CountChars(d.engine.Range(start, length))
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
