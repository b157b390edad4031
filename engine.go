package linecoords

import "github.com/npillmayer/linecoords/engine"

// Engine is the text-storage engine a Document mirrors. All positions are
// byte positions.
//
// *engine.Buffer implements Engine, RangeCounter, Editor and Observable.
type Engine interface {
	Len() int                      // length of the document in bytes
	LineCount() int                // number of lines, at least 1
	LineFromPosition(pos int) int  // line containing byte pos
	PositionFromLine(line int) int // byte position of the start of line
	LineLength(line int) int       // bytes of line, including its line end
	PositionAfter(pos int) int     // position of the character after the one at pos
	Range(pos, length int) []byte  // bytes [pos,pos+length)
	CountChars(text []byte) int    // decodes text and counts its characters
}

// RangeCounter is implemented by engines able to count the characters of a
// byte range without handing out the bytes.
type RangeCounter interface {
	CountCharsInRange(start, end int) int
}

// CharSeeker is implemented by engines able to find the byte position of a
// character position themselves. Check uses it to verify line starts.
type CharSeeker interface {
	PositionFromChar(pos int) int
}

// Editor is implemented by engines which allow clients to edit text.
type Editor interface {
	InsertText(pos int, text string) error
	DeleteRange(pos, length int) error
	ReplaceRange(pos, length int, text string) error
}

// Observable is implemented by engines which deliver modification
// notifications to listeners.
type Observable interface {
	AddListener(l engine.Listener) (remove func())
}

var _ interface {
	Engine
	RangeCounter
	CharSeeker
	Editor
	Observable
} = (*engine.Buffer)(nil)
