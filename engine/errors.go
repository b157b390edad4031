package engine

import (
	"errors"

	"github.com/npillmayer/linecoords/chunk"
)

var (
	// ErrIndexOutOfBounds signals a byte position or range outside the document.
	ErrIndexOutOfBounds = errors.New("engine: index out of bounds")
	// ErrNotCharBoundary signals a byte position inside a multi-byte rune.
	ErrNotCharBoundary = errors.New("engine: position is not a char boundary")
	// ErrInvalidUTF8 signals invalid UTF-8 input text.
	ErrInvalidUTF8 = chunk.ErrInvalidUTF8
	// ErrReentrantEdit signals an edit attempted from within a notification.
	ErrReentrantEdit = errors.New("engine: edit during notification")
	// ErrBulkInProgress is returned by Undo and Redo during a bulk update.
	ErrBulkInProgress = errors.New("engine: undo history unavailable during bulk update")
	// ErrNothingToUndo is returned by Undo if the undo history is empty.
	ErrNothingToUndo = errors.New("engine: nothing to undo")
	// ErrNothingToRedo is returned by Redo if there is no undone action.
	ErrNothingToRedo = errors.New("engine: nothing to redo")
)
