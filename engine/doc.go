/*
Package engine implements a text-storage engine: a byte buffer holding UTF-8
text, with byte-oriented line queries, edit primitives, synchronous
modification notifications and an undo history.

The engine knows nothing about character positions beyond what a single
line needs. Clients needing character coordinates for a whole document
mirror the engine's lines and listen to its notifications (see package
linecoords).

Text is stored as a sequence of chunks (see package chunk). Prefix sums of
chunk summaries route byte, line and character queries to a single chunk by
binary search; after an edit they are repaired lazily, starting from the
first chunk touched. Repairing is linear in the number of chunks following
that chunk, so an edit near the start of a large document costs O(chunks)
on the next query.

Lines are terminated by '\n'. A document always has at least one line.

Notifications are delivered synchronously, after the buffer content has
changed. Listeners must not edit the buffer while being notified.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'linecoords'
func tracer() tracing.Trace {
	return tracing.Select("linecoords")
}
