package chunk

// Summary aggregates chunk-level text metrics.
//
// Engines keep prefix sums of summaries to route byte, character and line
// queries to a single chunk.
type Summary struct {
	Bytes int
	Chars int
	Lines int // number of newlines
}

// Summary returns aggregate metrics for this chunk.
func (c Chunk) Summary() Summary {
	n := c.Len()
	return Summary{
		Bytes: n,
		Chars: c.CharsBefore(n),
		Lines: c.NewlinesBefore(n),
	}
}

// Add combines two summaries.
func (s Summary) Add(other Summary) Summary {
	return Summary{
		Bytes: s.Bytes + other.Bytes,
		Chars: s.Chars + other.Chars,
		Lines: s.Lines + other.Lines,
	}
}

// Dimension selects one metric of a summary, used for seeking.
type Dimension func(Summary) int

// Dimensions to seek by.
var (
	ByteDimension Dimension = func(s Summary) int { return s.Bytes }
	CharDimension Dimension = func(s Summary) int { return s.Chars }
	LineDimension Dimension = func(s Summary) int { return s.Lines }
)
