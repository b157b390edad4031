package engine

// operation is a single undoable edit: oldText at pos has been replaced by
// newText.
type operation struct {
	pos     int
	oldText string
	newText string
}

func (op operation) invert() operation {
	return operation{pos: op.pos, oldText: op.newText, newText: op.oldText}
}

// modification describes op to listeners, with additional flags.
func (op operation) modification(flags ModType) Modification {
	m := Modification{Type: flags, Position: op.pos}
	if len(op.oldText) > 0 {
		m.Type |= ModDeleteText
		m.Deleted = Edit{
			Length:     len(op.oldText),
			LinesAdded: -countLines([]byte(op.oldText)),
			Text:       []byte(op.oldText),
		}
	}
	if len(op.newText) > 0 {
		m.Type |= ModInsertText
		m.Inserted = Edit{
			Length:     len(op.newText),
			LinesAdded: countLines([]byte(op.newText)),
			Text:       []byte(op.newText),
		}
	}
	return m
}

// history keeps groups of operations. A group is undone and redone as a unit.
type history struct {
	undo  [][]operation
	redo  [][]operation
	group []operation
	depth int // nesting of BeginUndoAction
}

func (h *history) record(op operation) {
	h.redo = nil
	if h.depth > 0 {
		h.group = append(h.group, op)
		return
	}
	h.undo = append(h.undo, []operation{op})
}

func (h *history) closeGroup() {
	h.depth = 0
	if len(h.group) > 0 {
		h.undo = append(h.undo, h.group)
		h.group = nil
	}
}

func (h *history) clear() {
	h.undo, h.redo, h.group = nil, nil, nil
	h.depth = 0
}

// BeginUndoAction starts a group of edits which will be undone as a unit.
// Groups may be nested; only the outermost group is recorded.
func (b *Buffer) BeginUndoAction() {
	b.history.depth++
}

// EndUndoAction ends a group of edits started with BeginUndoAction.
func (b *Buffer) EndUndoAction() {
	h := &b.history
	if h.depth == 0 {
		return
	}
	if h.depth--; h.depth == 0 {
		h.closeGroup()
	}
}

// CanUndo reports whether there is an edit to undo.
func (b *Buffer) CanUndo() bool {
	return b.bulk == 0 && (len(b.history.undo) > 0 || len(b.history.group) > 0)
}

// CanRedo reports whether there is an undone edit to redo.
func (b *Buffer) CanRedo() bool {
	return b.bulk == 0 && len(b.history.redo) > 0
}

// EmptyUndoBuffer forgets all undo and redo information.
func (b *Buffer) EmptyUndoBuffer() {
	b.history.clear()
}

// Undo reverts the most recent group of edits. Every reverted edit is
// reported to listeners, flagged with ModUndo. An open undo group is closed
// first. Undo is not available during a bulk update.
func (b *Buffer) Undo() error {
	if b.notifying {
		return ErrReentrantEdit
	}
	if b.bulk > 0 {
		return ErrBulkInProgress
	}
	h := &b.history
	h.closeGroup()
	if len(h.undo) == 0 {
		return ErrNothingToUndo
	}
	group := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	for i := len(group) - 1; i >= 0; i-- {
		b.apply(group[i].invert(), ModUndo)
	}
	h.redo = append(h.redo, group)
	return nil
}

// Redo re-applies the most recently undone group of edits. Every edit is
// reported to listeners, flagged with ModRedo. Redo is not available
// during a bulk update.
func (b *Buffer) Redo() error {
	if b.notifying {
		return ErrReentrantEdit
	}
	if b.bulk > 0 {
		return ErrBulkInProgress
	}
	h := &b.history
	if len(h.redo) == 0 {
		return ErrNothingToRedo
	}
	group := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	for _, op := range group {
		b.apply(op, ModRedo)
	}
	h.undo = append(h.undo, group)
	return nil
}

func (b *Buffer) apply(op operation, flags ModType) {
	b.replace(op.pos, len(op.oldText), []byte(op.newText))
	b.notify(op.modification(flags))
}
