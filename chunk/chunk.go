package chunk

import (
	"math/bits"
	"unicode/utf8"
)

// Bitmap indexes byte-local properties inside a chunk.
//
// Bit i corresponds to byte offset i in chunk-local coordinates.
type Bitmap = uint64

const (
	// MaxBase is the maximum chunk payload length in bytes.
	MaxBase = 64
	// MinBase is the occupancy below which engines try to merge a chunk
	// with its neighbour.
	MinBase = MaxBase / 2
)

// Chunk stores text and bitmap indexes for fast local coordinate math.
//
// The chunk is immutable by convention: editing produces new chunks.
type Chunk struct {
	chars    Bitmap
	newlines Bitmap
	text     [MaxBase]byte
	n        uint8
}

// New creates a chunk from UTF-8 text.
//
// Returns an error if the text is not valid UTF-8 or exceeds MaxBase bytes.
func New(text string) (Chunk, error) {
	return NewBytes([]byte(text))
}

// NewBytes creates a chunk from UTF-8 bytes. The input is copied.
//
// Returns an error if the bytes are not valid UTF-8 or exceed MaxBase bytes.
// A byte slice starting or ending in the middle of a rune is invalid UTF-8.
func NewBytes(text []byte) (Chunk, error) {
	if len(text) > MaxBase {
		return Chunk{}, ErrChunkTooLarge
	}
	if !utf8.Valid(text) {
		return Chunk{}, ErrInvalidUTF8
	}
	var c Chunk
	c.n = uint8(copy(c.text[:], text))
	for i := 0; i < len(text); {
		c.chars |= bit(i)
		if text[i] == '\n' {
			c.newlines |= bit(i)
		}
		_, w := utf8.DecodeRune(text[i:])
		i += w
	}
	return c, nil
}

// Split cuts UTF-8 bytes into chunks of at most MaxBase bytes.
//
// Boundaries are adjusted so no chunk starts or ends in the middle of a rune.
func Split(text []byte) ([]Chunk, error) {
	if len(text) == 0 {
		return nil, nil
	}
	if !utf8.Valid(text) {
		return nil, ErrInvalidUTF8
	}
	parts := make([]Chunk, 0, 1+len(text)/MaxBase)
	for i := 0; i < len(text); {
		end := i + MaxBase
		if end >= len(text) {
			end = len(text)
		} else {
			for end > i && !utf8.RuneStart(text[end]) {
				end--
			}
			if end == i {
				return nil, ErrInvalidUTF8
			}
		}
		c, err := NewBytes(text[i:end])
		if err != nil {
			return nil, err
		}
		parts = append(parts, c)
		i = end
	}
	return parts, nil
}

// Len returns the text length in bytes.
func (c Chunk) Len() int {
	return int(c.n)
}

// String returns the chunk text.
func (c Chunk) String() string {
	return string(c.text[:c.n])
}

// AppendTo appends the bytes in [0,Len()) to dst and returns the extended slice.
func (c Chunk) AppendTo(dst []byte) []byte {
	return append(dst, c.text[:c.n]...)
}

// AppendRange appends the bytes in [from,to) to dst.
func (c Chunk) AppendRange(dst []byte, from, to int) []byte {
	return append(dst, c.text[from:to]...)
}

// Chars returns the UTF-8 character-start bitmap.
func (c Chunk) Chars() Bitmap {
	return c.chars
}

// Newlines returns the newline bitmap.
func (c Chunk) Newlines() Bitmap {
	return c.newlines
}

// IsCharBoundary reports whether offset is a UTF-8 boundary inside this chunk.
func (c Chunk) IsCharBoundary(offset int) bool {
	if offset == c.Len() {
		return true
	}
	if offset < 0 || offset > c.Len() {
		return false
	}
	return c.chars&bit(offset) != 0
}

// CharsBefore counts the runes starting before byte offset.
func (c Chunk) CharsBefore(offset int) int {
	return bits.OnesCount64(c.chars & prefixMask(offset))
}

// NewlinesBefore counts the newlines before byte offset.
func (c Chunk) NewlinesBefore(offset int) int {
	return bits.OnesCount64(c.newlines & prefixMask(offset))
}

// NthNewline returns the byte offset of newline number n (counting from 0),
// or -1 if the chunk has no such newline.
func (c Chunk) NthNewline(n int) int {
	return nthBit(c.newlines&prefixMask(c.Len()), n)
}

// NthChar returns the byte offset where rune number n (counting from 0)
// starts. For n equal to the number of runes, Len() is returned; for larger
// n the result is -1.
func (c Chunk) NthChar(n int) int {
	m := c.chars & prefixMask(c.Len())
	if n == bits.OnesCount64(m) {
		return c.Len()
	}
	return nthBit(m, n)
}

// NextCharBoundary returns the start of the rune following the rune at
// offset, or Len() if offset is inside the last rune.
func (c Chunk) NextCharBoundary(offset int) int {
	m := c.chars & prefixMask(c.Len()) &^ prefixMask(offset+1)
	if m == 0 {
		return c.Len()
	}
	return bits.TrailingZeros64(m)
}

// --- Bitmap helpers --------------------------------------------------------

func bit(offset int) Bitmap {
	if offset < 0 || offset >= MaxBase {
		return 0
	}
	return Bitmap(1) << uint(offset)
}

func prefixMask(offset int) Bitmap {
	switch {
	case offset <= 0:
		return 0
	case offset >= MaxBase:
		return ^Bitmap(0)
	default:
		return (Bitmap(1) << uint(offset)) - 1
	}
}

// nthBit returns the position of set bit number n of m, or -1.
func nthBit(m Bitmap, n int) int {
	if n < 0 {
		return -1
	}
	for ; n > 0 && m != 0; n-- {
		m &= m - 1
	}
	if m == 0 {
		return -1
	}
	return bits.TrailingZeros64(m)
}
