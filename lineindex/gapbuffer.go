package lineindex

// Record is the per-line bookkeeping of the index.
type Record struct {
	Start int  // character offset of the line start, not including a pending step
	Wide  Wide // does the line contain wide characters?
}

// records is a gap buffer of line records. Insertions and removals are cheap
// close to the gap, and the gap follows the edit position.
type records struct {
	buf      []Record
	gapStart int // first slot of the gap
	gapEnd   int // first slot after the gap
}

const minGap = 16

func (r *records) Len() int {
	return len(r.buf) - (r.gapEnd - r.gapStart)
}

// at returns a pointer to record i. The pointer is valid until the next
// insertion or removal.
func (r *records) at(i int) *Record {
	if i >= r.gapStart {
		i += r.gapEnd - r.gapStart
	}
	return &r.buf[i]
}

func (r *records) insert(i int, rec Record) {
	r.moveGap(i)
	if r.gapStart == r.gapEnd {
		r.grow()
	}
	r.buf[r.gapStart] = rec
	r.gapStart++
}

func (r *records) remove(i int) {
	r.moveGap(i)
	r.buf[r.gapEnd] = Record{}
	r.gapEnd++
}

func (r *records) reset() {
	r.buf = r.buf[:0]
	r.gapStart, r.gapEnd = 0, 0
}

// moveGap moves the gap so that it starts right before logical position i.
func (r *records) moveGap(i int) {
	switch {
	case i < r.gapStart:
		n := r.gapStart - i
		copy(r.buf[r.gapEnd-n:r.gapEnd], r.buf[i:r.gapStart])
		r.gapStart -= n
		r.gapEnd -= n
	case i > r.gapStart:
		n := i - r.gapStart
		copy(r.buf[r.gapStart:r.gapStart+n], r.buf[r.gapEnd:r.gapEnd+n])
		r.gapStart += n
		r.gapEnd += n
	}
}

func (r *records) grow() {
	gap := len(r.buf)
	if gap < minGap {
		gap = minGap
	}
	buf := make([]Record, len(r.buf)+gap)
	copy(buf, r.buf[:r.gapStart])
	tail := len(r.buf) - r.gapEnd
	copy(buf[len(buf)-tail:], r.buf[r.gapEnd:])
	r.gapEnd = len(buf) - tail
	r.buf = buf
}
