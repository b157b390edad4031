package linecoords

import "github.com/npillmayer/linecoords/engine"

// RebuildLineData discards the line index and rebuilds it from the current
// content of the engine. It has to be called after every change of the
// engine which has not been reported to Notify.
func (d *Document) RebuildLineData() {
	d.index.Reset()
	all := engine.Edit{
		Length:     d.engine.Len(),
		LinesAdded: d.engine.LineCount() - 1,
	}
	d.trackInsertText(0, all, false)
	T().Debugf("linecoords: rebuilt line data, %d lines, %d chars", d.Count(), d.TextLength())
}

// Notify updates the line index for a modification of the engine. It has to
// be called synchronously for every modification, in edit order and after
// the engine has applied it. Documents created by Attach for an Observable
// engine are subscribed automatically.
func (d *Document) Notify(m engine.Modification) {
	if d.detached {
		return
	}
	T().Debugf("linecoords: %s", m)
	if m.Type.Has(engine.ModReset) {
		d.RebuildLineData()
		return
	}
	count := d.Count()
	replace := m.Type.Has(engine.ModDeleteText | engine.ModInsertText)
	if m.Type.Has(engine.ModDeleteText) {
		d.trackDeleteText(m.Position, m.Deleted)
	}
	if m.Type.Has(engine.ModInsertText) {
		// For a replacement the deleted half has been measured against an
		// engine which already contains the inserted text.
		d.trackInsertText(m.Position, m.Inserted, replace)
	}
	assert(d.Count() == count+m.LinesAdded(), "linecoords: line count disagrees with modification")
	assert(d.Count() == d.engine.LineCount(), "linecoords: line count disagrees with engine after modification")
}

// trackInsertText updates the index for ins, inserted at byte position pos.
// If remeasure is set, the start line is reconciled by measuring it in the
// engine, even if no lines have been added.
func (d *Document) trackInsertText(pos int, ins engine.Edit, remeasure bool) {
	startLine := d.engine.LineFromPosition(pos)
	if ins.LinesAdded == 0 && !remeasure {
		d.index.AdjustLineLength(startLine, d.charCount(pos, ins.Length))
		return
	}
	// the tail of the start line has changed as well
	byteStart := d.engine.PositionFromLine(startLine)
	byteLength := d.engine.LineLength(startLine)
	d.index.AdjustLineLength(startLine, d.charCount(byteStart, byteLength)-d.index.CharLineLength(startLine))
	for i := 1; i <= ins.LinesAdded; i++ {
		line := startLine + i
		byteStart += byteLength
		byteLength = d.engine.LineLength(line)
		d.index.InsertPerLine(line, d.charCount(byteStart, byteLength))
	}
}

// trackDeleteText updates the index for del, deleted at byte position pos.
func (d *Document) trackDeleteText(pos int, del engine.Edit) {
	startLine := d.engine.LineFromPosition(pos)
	if del.LinesAdded == 0 {
		assert(len(del.Text) == del.Length, "linecoords: deletion does not carry the deleted text")
		d.index.AdjustLineLength(startLine, -d.engine.CountChars(del.Text))
		return
	}
	// lines following startLine have been merged into it
	byteStart := d.engine.PositionFromLine(startLine)
	byteLength := d.engine.LineLength(startLine)
	d.index.AdjustLineLength(startLine, d.charCount(byteStart, byteLength)-d.index.CharLineLength(startLine))
	for i := 0; i < -del.LinesAdded; i++ {
		d.index.DeletePerLine(startLine + 1)
	}
}
