/*
Package linecoords translates between the byte positions of a text engine
and the character positions seen by clients of a text editor.

Text engines usually store text in a variable-width encoding and address
it by byte offsets. Editor APIs, on the other hand, speak in characters.
Converting between the two by decoding the document from the start is
O(n) for every conversion, which is prohibitive for an editor translating
positions on every keystroke.

A Document therefore mirrors the lines of an engine: for every line it
knows where the line starts in character space (see package lineindex).
A conversion then finds the line of a position and only has to decode
within that line. Lines known to contain only single-byte characters are
converted by plain arithmetic.

The line index is updated incrementally from the engine's modification
notifications:

	buf := engine.New()
	doc := linecoords.Attach(buf) // subscribes to buf
	buf.InsertText(0, "Grüße\nWorld")
	doc.ByteToCharPosition(8)     // => 6

Documents are not safe for concurrent use. Notifications have to be
delivered in edit order, on the goroutine owning the engine, and queries
must not interleave with an edit in progress.

Positions passed to Document methods are clamped to the document. The line
index underneath treats invalid arguments as programming errors and panics.

_________________________________________________________________________

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package linecoords

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// CoordError is an error type for the linecoords module
type CoordError string

func (e CoordError) Error() string {
	return string(e)
}

// ErrReadOnly is flagged if a document is asked to edit text, but its engine
// does not implement Editor.
const ErrReadOnly = CoordError("engine does not support editing")

// ErrIndexMismatch is flagged by Check if the line index disagrees with the
// engine.
const ErrIndexMismatch = CoordError("line index out of sync with engine")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
