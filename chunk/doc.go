/*
Package chunk provides small fixed-capacity blocks of UTF-8 text.

A chunk carries two bitmaps over its bytes: one marking the start of every
rune, one marking every newline. Block-local questions like "how many
characters precede byte offset i" or "where is the third newline" are
answered with a popcount or a few bit operations, without decoding the text.

Text engines store a document as a sequence of chunks and keep per-chunk
summaries (bytes, characters, newlines) to route queries to a single chunk.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package chunk
