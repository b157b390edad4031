package lineindex

import (
	"fmt"
	"strings"
)

// Index holds the character-space start of every line of a document.
//
// The zero value is not usable; clients create an index with New.
//
// Record i is up to date if i <= stepLine. For every record after stepLine,
// stepDelta has to be added to get the effective start of the line.
type Index struct {
	recs      records
	stepLine  int
	stepDelta int
}

// New creates an index for an empty document: a single line of length 0,
// followed by the terminal record.
func New() *Index {
	x := &Index{}
	x.Reset()
	return x
}

// Reset drops all lines and re-initializes the index for an empty document.
func (x *Index) Reset() {
	x.recs.reset()
	x.recs.insert(0, Record{})
	x.recs.insert(1, Record{}) // terminal
	x.stepLine = 0
	x.stepDelta = 0
}

// Count returns the number of lines, not counting the terminal record.
func (x *Index) Count() int {
	return x.recs.Len() - 1
}

// TextLength returns the length of the document in characters, i.e. the
// effective start of the terminal record.
func (x *Index) TextLength() int {
	return x.CharPositionFromLine(x.Count())
}

// Step returns the current step line and the pending step delta.
func (x *Index) Step() (line, delta int) {
	return x.stepLine, x.stepDelta
}

// MoveStep collapses the pending step delta onto all records between the
// current step line and target, then sets the step line to target.
// Calling it twice with the same target is a no-op.
func (x *Index) MoveStep(target int) {
	assert(target >= 0 && target < x.recs.Len(), "lineindex.MoveStep: line out of range")
	if x.stepDelta == 0 {
		x.stepLine = target
		return
	}
	for x.stepLine < target {
		x.stepLine++
		x.recs.at(x.stepLine).Start += x.stepDelta
	}
	for x.stepLine > target {
		x.recs.at(x.stepLine).Start -= x.stepDelta
		x.stepLine--
	}
	x.dropStepAtEnd()
}

// dropStepAtEnd clears the step delta if no record is left to carry it.
func (x *Index) dropStepAtEnd() {
	if x.stepLine == x.recs.Len()-1 {
		x.stepDelta = 0
	}
}

// AdjustLineLength changes the length of line index by delta characters.
// All subsequent lines move by delta. The wide-character flag of the line is
// invalidated.
func (x *Index) AdjustLineLength(index, delta int) {
	assert(index >= 0 && index < x.Count(), "lineindex.AdjustLineLength: line out of range")
	x.MoveStep(index)
	x.stepDelta += delta
	x.recs.at(index).Wide = WideUnknown
	assert(x.CharLineLength(index) >= 0, "lineindex.AdjustLineLength: negative line length")
}

// InsertPerLine records a new line break: a new line of the given length is
// inserted at index, and the line formerly at index (possibly the terminal
// record) moves behind it.
func (x *Index) InsertPerLine(index, length int) {
	assert(index > 0 && index <= x.Count(), "lineindex.InsertPerLine: line out of range")
	assert(length >= 0, "lineindex.InsertPerLine: negative line length")
	x.MoveStep(index)
	rec := x.recs.at(index)
	start := rec.Start
	rec.Start += length
	x.recs.insert(index, Record{Start: start})
	// record index+1 is up to date now, all records after it move by length
	x.stepDelta += length
	x.stepLine++
	x.dropStepAtEnd()
}

// DeletePerLine removes line index, which must not be the first line. The
// characters of the removed line vanish from the document, i.e. all
// subsequent lines move by the length of the removed line.
func (x *Index) DeletePerLine(index int) {
	assert(index > 0 && index < x.Count(), "lineindex.DeletePerLine: line out of range")
	x.MoveStep(index)
	x.stepDelta -= x.CharLineLength(index)
	x.recs.remove(index)
	x.stepLine--
}

// CharPositionFromLine returns the effective start of line index. index may
// be Count(), denoting the terminal record.
func (x *Index) CharPositionFromLine(index int) int {
	assert(index >= 0 && index < x.recs.Len(), "lineindex.CharPositionFromLine: line out of range")
	start := x.recs.at(index).Start
	if index > x.stepLine {
		start += x.stepDelta
	}
	return start
}

// CharLineLength returns the length of line index in characters, including
// its line end.
func (x *Index) CharLineLength(index int) int {
	assert(index >= 0 && index < x.Count(), "lineindex.CharLineLength: line out of range")
	start := x.recs.at(index).Start
	next := x.recs.at(index + 1).Start
	switch {
	case index+1 <= x.stepLine:
		return next - start
	case index <= x.stepLine:
		return next + x.stepDelta - start
	default: // both records carry the step delta, which cancels out
		return next - start
	}
}

// LineFromCharPosition returns the greatest line whose effective start is
// less than or equal to pos.
func (x *Index) LineFromCharPosition(pos int) int {
	assert(pos >= 0 && pos <= x.TextLength(), "lineindex.LineFromCharPosition: position out of range")
	low, high := 0, x.Count()-1
	for low < high {
		mid := low + (high-low+1)/2
		if x.CharPositionFromLine(mid) <= pos {
			low = mid
		} else {
			high = mid - 1
		}
	}
	return low
}

// Wide returns the cached wide-character flag of line index.
func (x *Index) Wide(index int) Wide {
	assert(index >= 0 && index < x.Count(), "lineindex.Wide: line out of range")
	return x.recs.at(index).Wide
}

// SetWide caches the wide-character flag of line index.
func (x *Index) SetWide(index int, w Wide) {
	assert(index >= 0 && index < x.Count(), "lineindex.SetWide: line out of range")
	x.recs.at(index).Wide = w
}

// String lists the effective line starts, for debugging.
func (x *Index) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "index{lines=%d, step=%d/%+d:", x.Count(), x.stepLine, x.stepDelta)
	for i := 0; i <= x.Count(); i++ {
		fmt.Fprintf(&b, " %d", x.CharPositionFromLine(i))
	}
	b.WriteString("}")
	return b.String()
}
