package lineindex

// Wide tells whether a line contains wide characters, i.e. characters encoded
// with more than one byte. The flag is computed lazily and has to be
// distinguishable from "not yet computed".
type Wide uint8

const (
	// WideUnknown signals that the line has not been classified yet, or that
	// its length has changed since the last classification.
	WideUnknown Wide = iota
	// WideNo signals that every character of the line is encoded as one byte.
	WideNo
	// WideYes signals that at least one character of the line is encoded with
	// more than one byte.
	WideYes
)

func (w Wide) String() string {
	switch w {
	case WideNo:
		return "no"
	case WideYes:
		return "yes"
	}
	return "unknown"
}
