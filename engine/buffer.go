package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/linecoords/chunk"
)

// Buffer is a UTF-8 text buffer addressed by byte positions.
//
// The zero value is an empty buffer ready to use.
type Buffer struct {
	chunks []chunk.Chunk
	prefix []chunk.Summary // prefix[i] sums chunks[:i]
	valid  int             // prefix[:valid+1] is up to date

	listeners    []listenerEntry
	nextListener int
	notifying    bool

	history   history
	bulk      int  // nesting depth of BeginBulk
	bulkDirty bool // content changed during bulk mode
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// NewFromString creates a buffer holding text.
func NewFromString(text string) (*Buffer, error) {
	b := New()
	parts, err := chunk.Split([]byte(text))
	if err != nil {
		return nil, err
	}
	b.chunks = parts
	b.invalidate(0)
	return b, nil
}

// --- Prefix summaries ------------------------------------------------------

// invalidate marks the prefix sums from chunk k onwards as stale.
func (b *Buffer) invalidate(k int) {
	if n := len(b.chunks) + 1; cap(b.prefix) >= n {
		b.prefix = b.prefix[:n]
	} else {
		p := make([]chunk.Summary, n, n+n/4)
		copy(p, b.prefix)
		b.prefix = p
	}
	b.prefix[0] = chunk.Summary{}
	if k < b.valid {
		b.valid = k
	}
	if b.valid > len(b.chunks) {
		b.valid = len(b.chunks)
	}
}

// repair brings all prefix sums up to date.
func (b *Buffer) repair() {
	if len(b.prefix) != len(b.chunks)+1 {
		b.invalidate(0)
	}
	for ; b.valid < len(b.chunks); b.valid++ {
		b.prefix[b.valid+1] = b.prefix[b.valid].Add(b.chunks[b.valid].Summary())
	}
}

func (b *Buffer) total() chunk.Summary {
	b.repair()
	return b.prefix[len(b.chunks)]
}

// seek returns the index of the chunk holding unit number target of
// dimension dim, or len(chunks) if target is at or beyond the end.
func (b *Buffer) seek(dim chunk.Dimension, target int) int {
	b.repair()
	return sort.Search(len(b.chunks), func(i int) bool {
		return dim(b.prefix[i+1]) > target
	})
}

// locate returns the chunk holding byte pos together with the chunk-local
// offset. For pos == Len() the last chunk and its length are returned.
func (b *Buffer) locate(pos int) (k, local int) {
	k = b.seek(chunk.ByteDimension, pos)
	if k == len(b.chunks) {
		if k == 0 {
			return 0, 0
		}
		k--
	}
	return k, pos - b.prefix[k].Bytes
}

// --- Queries ---------------------------------------------------------------

// Len returns the length of the document in bytes.
func (b *Buffer) Len() int {
	return b.total().Bytes
}

// LineCount returns the number of lines. An empty document has one line.
func (b *Buffer) LineCount() int {
	return b.total().Lines + 1
}

// LineFromPosition returns the line containing byte pos. pos is clamped to
// the document.
func (b *Buffer) LineFromPosition(pos int) int {
	pos = b.clamp(pos)
	if pos == 0 {
		return 0
	}
	k, local := b.locate(pos)
	return b.prefix[k].Lines + b.chunks[k].NewlinesBefore(local)
}

// PositionFromLine returns the byte position where line starts. Lines
// beyond the last line start at the end of the document.
func (b *Buffer) PositionFromLine(line int) int {
	if line <= 0 {
		return 0
	}
	n := line - 1 // number of the newline terminating the previous line
	k := b.seek(chunk.LineDimension, n)
	if k == len(b.chunks) {
		return b.Len()
	}
	return b.prefix[k].Bytes + b.chunks[k].NthNewline(n-b.prefix[k].Lines) + 1
}

// LineLength returns the length of line in bytes, including its line end.
func (b *Buffer) LineLength(line int) int {
	if line < 0 || line >= b.LineCount() {
		return 0
	}
	return b.PositionFromLine(line+1) - b.PositionFromLine(line)
}

// PositionAfter returns the position of the character following the
// character at pos. At the end of the document, the end is returned.
func (b *Buffer) PositionAfter(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos >= b.Len() {
		return b.Len()
	}
	k, local := b.locate(pos)
	return b.prefix[k].Bytes + b.chunks[k].NextCharBoundary(local)
}

// CountChars decodes UTF-8 text and returns the number of characters.
func (b *Buffer) CountChars(text []byte) int {
	return utf8.RuneCount(text)
}

// CountCharsInRange returns the number of characters in the byte range
// [start,end), without copying the range.
func (b *Buffer) CountCharsInRange(start, end int) int {
	start, end = b.clamp(start), b.clamp(end)
	if end <= start {
		return 0
	}
	return b.charsBefore(end) - b.charsBefore(start)
}

func (b *Buffer) charsBefore(pos int) int {
	if pos == 0 {
		return 0
	}
	k, local := b.locate(pos)
	return b.prefix[k].Chars + b.chunks[k].CharsBefore(local)
}

// Range returns a copy of length bytes starting at pos. The range is
// clipped to the document.
func (b *Buffer) Range(pos, length int) []byte {
	pos = b.clamp(pos)
	end := b.clamp(pos + length)
	if end <= pos {
		return []byte{}
	}
	out := make([]byte, 0, end-pos)
	k, local := b.locate(pos)
	for at := pos; at < end; k++ {
		c := b.chunks[k]
		to := c.Len()
		if rest := end - at; local+rest < to {
			to = local + rest
		}
		out = c.AppendRange(out, local, to)
		at += to - local
		local = 0
	}
	return out
}

// IsCharBoundary reports whether pos is a valid position between two
// characters (or at one of the document ends).
func (b *Buffer) IsCharBoundary(pos int) bool {
	if pos < 0 || pos > b.Len() {
		return false
	}
	if pos == b.Len() {
		return true
	}
	k, local := b.locate(pos)
	return b.chunks[k].IsCharBoundary(local)
}

// Text returns the complete document.
func (b *Buffer) Text() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	for _, c := range b.chunks {
		sb.WriteString(c.String())
	}
	return sb.String()
}

// PositionFromChar returns the byte position where character number pos
// starts. pos is clamped to the document.
func (b *Buffer) PositionFromChar(pos int) int {
	if pos <= 0 {
		return 0
	}
	k := b.seek(chunk.CharDimension, pos)
	if k == len(b.chunks) {
		return b.Len()
	}
	return b.prefix[k].Bytes + b.chunks[k].NthChar(pos-b.prefix[k].Chars)
}

// ChunkCount returns the number of chunks the text is split into.
func (b *Buffer) ChunkCount() int {
	return len(b.chunks)
}

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if l := b.Len(); pos > l {
		return l
	}
	return pos
}
