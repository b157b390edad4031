/*
Package lineindex keeps track of where every line of a document starts,
measured in characters, while the document is edited.

The index stores one record per line plus a terminal record one past the
last line. Each record holds the character offset of its line start and a
tri-state flag telling whether the line contains characters which need more
than one byte in the storage encoding of the text engine.

Edits tend to cluster around the caret. The records are therefore held in a
gap buffer, and shifting all line starts after an edited line is deferred:
the index remembers a step line and a step delta, and every record after
the step line has to be read with the delta added. Moving the step
collapses the delta onto the records passed over. For edits close to each
other this makes every edit O(1) amortized, instead of O(lines).

All index and position arguments are preconditions. Clients violating them
get a panic, as the index is meant to live behind an API which validates
and clamps positions.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package lineindex

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
