/*
Package textfile loads UTF-8 text files into an engine buffer.

Files are read in fragments by a prefetching goroutine and appended to the
buffer as a single bulk update, so a document attached to the buffer
rebuilds its line data once, after the file is complete. Clients may
subscribe to the progress of a load.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'linecoords'
func tracer() tracing.Trace {
	return tracing.Select("linecoords")
}
