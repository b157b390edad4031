package engine

import (
	"bytes"
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/npillmayer/linecoords/chunk"
)

// InsertText inserts text at byte position pos.
func (b *Buffer) InsertText(pos int, text string) error {
	return b.ReplaceRange(pos, 0, text)
}

// DeleteRange deletes length bytes starting at byte position pos.
func (b *Buffer) DeleteRange(pos, length int) error {
	return b.ReplaceRange(pos, length, "")
}

// ReplaceRange replaces length bytes starting at byte position pos with text.
// Listeners receive a single modification. Both ends of the replaced range
// have to be character boundaries.
func (b *Buffer) ReplaceRange(pos, length int, text string) error {
	if err := b.checkEdit(pos, length, text); err != nil {
		return err
	}
	if length == 0 && len(text) == 0 {
		return nil
	}
	old := b.replace(pos, length, []byte(text))
	op := operation{pos: pos, oldText: string(old), newText: text}
	if b.bulk > 0 {
		b.bulkDirty = true
		return nil
	}
	b.history.record(op)
	b.notify(op.modification(0))
	return nil
}

// SetText replaces the whole document. Listeners are not told what changed,
// but receive a single ModReset modification.
func (b *Buffer) SetText(text string) error {
	if err := b.checkEdit(0, b.Len(), text); err != nil {
		return err
	}
	old := b.replace(0, b.Len(), []byte(text))
	if b.bulk > 0 {
		b.bulkDirty = true
		return nil
	}
	b.history.record(operation{pos: 0, oldText: string(old), newText: text})
	b.notify(Modification{Type: ModReset})
	return nil
}

// Append adds text at the end of the document.
func (b *Buffer) Append(text string) error {
	return b.InsertText(b.Len(), text)
}

// BeginBulk starts a bulk update. Until the matching EndBulk, edits are
// neither reported to listeners nor recorded in the undo history. Bulk
// updates may be nested.
func (b *Buffer) BeginBulk() {
	b.bulk++
}

// EndBulk ends a bulk update. If the content has changed, listeners receive
// a single ModReset modification, and the undo history is cleared.
func (b *Buffer) EndBulk() {
	if b.bulk == 0 {
		return
	}
	b.bulk--
	if b.bulk > 0 || !b.bulkDirty {
		return
	}
	b.bulkDirty = false
	b.history.clear()
	b.notify(Modification{Type: ModReset})
}

func (b *Buffer) checkEdit(pos, length int, text string) error {
	if b.notifying {
		return ErrReentrantEdit
	}
	if pos < 0 || length < 0 || pos+length > b.Len() {
		return fmt.Errorf("%w: range %d+%d, length is %d", ErrIndexOutOfBounds, pos, length, b.Len())
	}
	if !b.IsCharBoundary(pos) || !b.IsCharBoundary(pos+length) {
		return ErrNotCharBoundary
	}
	if !utf8.ValidString(text) {
		return ErrInvalidUTF8
	}
	return nil
}

// replace exchanges the bytes [pos,pos+length) for text and returns the
// replaced bytes. Arguments have been validated.
func (b *Buffer) replace(pos, length int, text []byte) []byte {
	old := b.Range(pos, length)
	if len(b.chunks) == 0 {
		parts, err := chunk.Split(text)
		assert(err == nil, "engine: cannot split validated text")
		b.chunks = parts
		b.invalidate(0)
		return old
	}
	first, local := b.locate(pos)
	last, end := first, local+length
	if length > 0 {
		last, end = b.locate(pos + length - 1)
		end++
	}
	// re-chunk the surrounding text, merging small leftovers with the next chunk
	buf := make([]byte, 0, local+len(text)+chunk.MaxBase)
	buf = b.chunks[first].AppendRange(buf, 0, local)
	buf = append(buf, text...)
	buf = b.chunks[last].AppendRange(buf, end, b.chunks[last].Len())
	if len(buf) < chunk.MinBase && last+1 < len(b.chunks) {
		last++
		buf = b.chunks[last].AppendTo(buf)
	}
	parts, err := chunk.Split(buf)
	assert(err == nil, "engine: cannot split validated text")
	b.chunks = slices.Replace(b.chunks, first, last+1, parts...)
	b.invalidate(first)
	tracer().Debugf("engine: replaced %d bytes at %d with %d bytes, %d chunks", length, pos, len(text), len(b.chunks))
	return old
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}

func countLines(text []byte) int {
	return bytes.Count(text, []byte{'\n'})
}
