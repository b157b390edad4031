package linecoords

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/npillmayer/linecoords/engine"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// modelLines splits text into lines, each including its line end, and
// returns their character lengths.
func modelLines(text string) []int {
	var lengths []int
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			return append(lengths, utf8.RuneCountInString(text))
		}
		lengths = append(lengths, utf8.RuneCountInString(text[:i+1]))
		text = text[i+1:]
	}
}

func assertMatchesModel(t *testing.T, doc *Document, text string) {
	t.Helper()
	lengths := modelLines(text)
	if doc.Count() != len(lengths) {
		t.Fatalf("line count mismatch: got=%d want=%d (%q)", doc.Count(), len(lengths), text)
	}
	start := 0
	for line, l := range lengths {
		if got := doc.CharPositionFromLine(line); got != start {
			t.Fatalf("CharPositionFromLine(%d): got=%d want=%d (%q)", line, got, start, text)
		}
		if got := doc.CharLineLength(line); got != l {
			t.Fatalf("CharLineLength(%d): got=%d want=%d (%q)", line, got, l, text)
		}
		start += l
	}
	if doc.TextLength() != start || doc.CharPositionFromLine(doc.Count()) != start {
		t.Fatalf("text length mismatch: got=%d want=%d", doc.TextLength(), start)
	}
	if err := doc.Check(); err != nil {
		t.Fatal(err)
	}
}

func newDocument(t *testing.T, text string) (*engine.Buffer, *Document) {
	t.Helper()
	buf, err := engine.NewFromString(text)
	if err != nil {
		t.Fatal(err)
	}
	return buf, Attach(buf)
}

// must fails t if an edit returns an error.
func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func TestInsertIntoEmptyDocument(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	buf, doc := newDocument(t, "")
	if doc.Count() != 1 || doc.TextLength() != 0 {
		t.Fatalf("expected a single empty line, have %d lines, %d chars", doc.Count(), doc.TextLength())
	}
	if err := buf.InsertText(0, "Hello\nWorld"); err != nil {
		t.Fatal(err)
	}
	if doc.Count() != 2 {
		t.Fatalf("expected 2 lines, have %d", doc.Count())
	}
	if doc.CharPositionFromLine(0) != 0 || doc.CharLineLength(0) != 6 {
		t.Errorf("line 0: expected @0+6, have @%d+%d", doc.CharPositionFromLine(0), doc.CharLineLength(0))
	}
	if doc.CharPositionFromLine(1) != 6 || doc.CharLineLength(1) != 5 {
		t.Errorf("line 1: expected @6+5, have @%d+%d", doc.CharPositionFromLine(1), doc.CharLineLength(1))
	}
	if doc.CharPositionFromLine(2) != 11 {
		t.Errorf("expected terminal at 11, have %d", doc.CharPositionFromLine(2))
	}
	// deleting the line break merges both lines
	if err := doc.DeleteRange(5, 1); err != nil {
		t.Fatal(err)
	}
	if doc.Count() != 1 || doc.CharLineLength(0) != 10 || doc.CharPositionFromLine(1) != 10 {
		t.Errorf("expected a single line of length 10, have %s", doc.index)
	}
	assertMatchesModel(t, doc, "HelloWorld")
}

// countingEngine counts the per-character walks of a document.
type countingEngine struct {
	*engine.Buffer
	walks int
}

func (e *countingEngine) PositionAfter(pos int) int {
	e.walks++
	return e.Buffer.PositionAfter(pos)
}

func TestWideLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, _ := engine.NewFromString("abc\nöxyz\nend")
	e := &countingEngine{Buffer: buf}
	doc := Attach(e)
	if doc.CharLineLength(1) != 5 || buf.LineLength(1) != 6 {
		t.Fatalf("expected line 1 to have 5 chars in 6 bytes, have %d in %d",
			doc.CharLineLength(1), buf.LineLength(1))
	}
	if !doc.LineContainsWideChar(1) {
		t.Errorf("expected line 1 to contain a wide character")
	}
	if got := doc.CharToBytePosition(doc.CharPositionFromLine(1) + 1); got != buf.PositionFromLine(1)+2 {
		t.Errorf("expected char after 'ö' at byte %d, have %d", buf.PositionFromLine(1)+2, got)
	}
	if e.walks != 1 {
		t.Errorf("expected a single character walk, have %d", e.walks)
	}
	e.walks = 0
	for p := 0; p <= 4; p++ {
		if got := doc.CharToBytePosition(p); got != p {
			t.Errorf("CharToBytePosition(%d): got=%d", p, got)
		}
	}
	if doc.LineContainsWideChar(0) || doc.LineContainsWideChar(2) {
		t.Errorf("expected lines 0 and 2 to be narrow")
	}
	if got := doc.CharToBytePosition(doc.TextLength()); got != buf.Len() {
		t.Errorf("expected end of text at byte %d, have %d", buf.Len(), got)
	}
	if e.walks != 0 {
		t.Errorf("expected narrow lines to be converted without walking, have %d walks", e.walks)
	}
}

func TestWideFlagInvalidatedByEdit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "plain\ntext")
	if doc.LineContainsWideChar(0) {
		t.Fatalf("expected line 0 to be narrow")
	}
	if err := buf.InsertText(2, "€"); err != nil {
		t.Fatal(err)
	}
	if !doc.LineContainsWideChar(0) {
		t.Errorf("expected line 0 to turn wide after inserting '€'")
	}
	if got := doc.CharToBytePosition(4); got != 6 {
		t.Errorf("expected char position 4 at byte 6, have %d", got)
	}
	if err := buf.DeleteRange(2, 3); err != nil {
		t.Fatal(err)
	}
	if doc.LineContainsWideChar(0) {
		t.Errorf("expected line 0 to be narrow again")
	}
}

func TestLineIndexProperties(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	_, doc := newDocument(t, "Grüße\n\nzwei Zeilen\näöü\n\n€ und ¥\nlast")
	for i := 0; i < doc.Count(); i++ {
		if doc.CharPositionFromLine(i) > doc.CharPositionFromLine(i+1) {
			t.Errorf("line starts not monotonic at line %d", i)
		}
		if got := doc.LineFromCharPosition(doc.CharPositionFromLine(i)); got != i {
			t.Errorf("LineFromCharPosition(CharPositionFromLine(%d)) = %d", i, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "Grüße\nworld\n€ und ¥ 😀\n")
	for p := 0; p <= doc.TextLength(); p++ {
		if got := doc.ByteToCharPosition(doc.CharToBytePosition(p)); got != p {
			t.Errorf("char round trip of %d yields %d", p, got)
		}
	}
	for b := 0; b <= buf.Len(); b++ {
		if !buf.IsCharBoundary(b) {
			continue
		}
		if got := doc.CharToBytePosition(doc.ByteToCharPosition(b)); got != b {
			t.Errorf("byte round trip of %d yields %d", b, got)
		}
	}
}

func TestPositionsAreClamped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "äb\ncd")
	if doc.ByteToCharPosition(-3) != 0 || doc.ByteToCharPosition(100) != doc.TextLength() {
		t.Errorf("expected byte positions to be clamped")
	}
	if doc.CharToBytePosition(-1) != 0 || doc.CharToBytePosition(100) != buf.Len() {
		t.Errorf("expected char positions to be clamped")
	}
	if doc.LineFromCharPosition(100) != 1 || doc.CharLineLength(7) != 2 || doc.CharPositionFromLine(-2) != 0 {
		t.Errorf("expected line queries to be clamped")
	}
	if doc.TextRange(3, 100) != "cd" {
		t.Errorf("expected text range to be clipped, have %q", doc.TextRange(3, 100))
	}
}

func TestLineAndColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	_, doc := newDocument(t, "Grüße\nWelt")
	line, col := doc.CharPositionToLineColumn(8)
	if line != 1 || col != 2 {
		t.Errorf("expected position 8 at 1:2, have %d:%d", line, col)
	}
	if p := doc.LineColumnToCharPosition(1, 2); p != 8 {
		t.Errorf("expected 1:2 at position 8, have %d", p)
	}
	if p := doc.LineColumnToCharPosition(0, 99); p != 6 {
		t.Errorf("expected column to be clamped to the line, have %d", p)
	}
	l := doc.Line(0)
	if l.Text() != "Grüße\n" || l.Length() != 6 || l.EndPosition() != 6 || !l.ContainsWideChar() {
		t.Errorf("unexpected line 0: %s %q", l, l.Text())
	}
	if start, length := l.ByteRange(); start != 0 || length != 8 {
		t.Errorf("expected line 0 at bytes 0+8, have %d+%d", start, length)
	}
	if lines := doc.Lines(); len(lines) != 2 || lines[1].Text() != "Welt" || lines[1].Position() != 6 {
		t.Errorf("unexpected lines %v", lines)
	}
}

// Lines which change their tail and gain new lines are re-measured, lines
// which only change length are adjusted by the length of the insertion.
// Both have to agree.
func TestInsertionPathsAgree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	text := "first line\nzweite Zeile üb\nthird"
	for _, insert := range []string{"XYZ", "ä\nneu\n€", "\n", "tail ö\n", "\nhead"} {
		for pos := 0; pos <= len(text); pos++ {
			if pos < len(text) && !utf8.RuneStart(text[pos]) {
				continue
			}
			buf, doc := newDocument(t, text)
			if err := buf.InsertText(pos, insert); err != nil {
				t.Fatal(err)
			}
			assertMatchesModel(t, doc, text[:pos]+insert+text[pos:])
			fresh := Attach(buf)
			fresh.Detach()
			for line := 0; line <= doc.Count(); line++ {
				if doc.CharPositionFromLine(line) != fresh.CharPositionFromLine(line) {
					t.Fatalf("insert %q at %d: line %d starts at %d, rebuilt index has %d", insert, pos,
						line, doc.CharPositionFromLine(line), fresh.CharPositionFromLine(line))
				}
			}
		}
	}
}

func TestReplaceAndUndo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "ab\ncd\nef")
	if err := buf.ReplaceRange(1, 6, "X\nÿ\nY"); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "aX\nÿ\nYf")
	if err := doc.ReplaceRange(1, 5, "€"); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "a€f")
	if err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "aX\nÿ\nYf")
	if err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "ab\ncd\nef")
	if err := buf.Redo(); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "aX\nÿ\nYf")
	buf.BeginUndoAction()
	must(t, doc.InsertText(0, "1\n"))
	must(t, doc.DeleteRange(doc.TextLength()-1, 1))
	buf.EndUndoAction()
	assertMatchesModel(t, doc, "1\naX\nÿ\nY")
	if err := buf.Undo(); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "aX\nÿ\nYf")
}

func TestResetAndBulk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "one\ntwo")
	if err := buf.SetText("ä\nö\nü\n"); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "ä\nö\nü\n")
	buf.BeginBulk()
	must(t, buf.Append("more\n"))
	must(t, buf.InsertText(0, "x"))
	buf.EndBulk()
	assertMatchesModel(t, doc, "xä\nö\nü\nmore\n")
}

func TestUndoDuringBulk(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "ab\ncd")
	must(t, buf.InsertText(5, "\nzz"))
	buf.BeginBulk()
	must(t, buf.InsertText(0, "1\n2\n"))
	if err := buf.Undo(); !errors.Is(err, engine.ErrBulkInProgress) {
		t.Fatalf("expected ErrBulkInProgress, have %v", err)
	}
	if buf.Text() != "1\n2\nab\ncd\nzz" {
		t.Errorf("expected text to be untouched by a rejected undo, have %q", buf.Text())
	}
	buf.EndBulk()
	assertMatchesModel(t, doc, "1\n2\nab\ncd\nzz")
}

// readOnlyEngine hides everything but the queries of an engine.
type readOnlyEngine struct {
	b *engine.Buffer
}

func (e readOnlyEngine) Len() int                      { return e.b.Len() }
func (e readOnlyEngine) LineCount() int                { return e.b.LineCount() }
func (e readOnlyEngine) LineFromPosition(pos int) int  { return e.b.LineFromPosition(pos) }
func (e readOnlyEngine) PositionFromLine(line int) int { return e.b.PositionFromLine(line) }
func (e readOnlyEngine) LineLength(line int) int       { return e.b.LineLength(line) }
func (e readOnlyEngine) PositionAfter(pos int) int     { return e.b.PositionAfter(pos) }
func (e readOnlyEngine) Range(pos, length int) []byte  { return e.b.Range(pos, length) }
func (e readOnlyEngine) CountChars(text []byte) int    { return e.b.CountChars(text) }

func TestManualNotification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, _ := engine.NewFromString("Grüße\nWelt")
	doc := Attach(readOnlyEngine{b: buf})
	if err := doc.InsertText(0, "x"); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, have %v", err)
	}
	remove := buf.AddListener(engine.ListenerFunc(doc.Notify))
	defer remove()
	if err := buf.InsertText(buf.Len(), "\nü"); err != nil {
		t.Fatal(err)
	}
	assertMatchesModel(t, doc, "Grüße\nWelt\nü")
	doc.Detach()
	must(t, buf.InsertText(0, "\n"))
	if doc.Count() != 3 {
		t.Errorf("expected a detached document to ignore edits, have %d lines", doc.Count())
	}
	if err := doc.Check(); !errors.Is(err, ErrIndexMismatch) {
		t.Errorf("expected a detached document to be out of sync, have %v", err)
	}
	doc.RebuildLineData()
	if err := doc.Check(); err != nil {
		t.Error(err)
	}
}

func TestInconsistentNotificationPanics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, _ := engine.NewFromString("abc")
	doc := Attach(readOnlyEngine{b: buf})
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected a notification contradicting the engine to panic")
		}
	}()
	doc.Notify(engine.Modification{
		Type:     engine.ModInsertText,
		Position: 1,
		Inserted: engine.Edit{Length: 1, LinesAdded: 1, Text: []byte("\n")},
	})
}

func TestDetach(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	buf, doc := newDocument(t, "abc")
	doc.Detach()
	must(t, buf.InsertText(3, "\ndef"))
	if doc.Count() != 1 || doc.TextLength() != 3 {
		t.Errorf("expected detached document to keep its index, have %d lines", doc.Count())
	}
}

func randomText(r *rand.Rand, max int) string {
	alphabet := []rune("ab \n\nä€😀")
	n := r.Intn(max + 1)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		sb.WriteRune(alphabet[r.Intn(len(alphabet))])
	}
	return sb.String()
}

func TestRandomizedEditsAgainstModel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "linecoords")
	defer teardown()
	//
	r := rand.New(rand.NewSource(42))
	buf, doc := newDocument(t, "")
	text := []rune{}
	for step := 0; step < 2000; step++ {
		pos := r.Intn(len(text) + 1)
		length := r.Intn(len(text) - pos + 1)
		var err error
		switch r.Intn(5) {
		case 0, 1:
			ins := randomText(r, 12)
			err = doc.InsertText(pos, ins)
			text = append(text[:pos], append([]rune(ins), text[pos:]...)...)
		case 2:
			err = doc.DeleteRange(pos, length)
			text = append(text[:pos], text[pos+length:]...)
		case 3:
			ins := randomText(r, 8)
			err = doc.ReplaceRange(pos, length, ins)
			text = append(text[:pos], append([]rune(ins), text[pos+length:]...)...)
		default:
			if buf.CanUndo() {
				err = buf.Undo()
				text = []rune(buf.Text())
			}
		}
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		assertMatchesModel(t, doc, string(text))
		if step%50 == 0 {
			p := r.Intn(len(text) + 1)
			if got := doc.ByteToCharPosition(doc.CharToBytePosition(p)); got != p {
				t.Fatalf("step %d: round trip of %d yields %d", step, p, got)
			}
		}
	}
}

func FuzzEdits(f *testing.F) {
	f.Add("Hello\nWorld", uint(3), uint(4), "ä\n€")
	f.Add("", uint(0), uint(0), "\n\n")
	f.Add("Grüße\n\nx", uint(5), uint(2), "")
	f.Fuzz(func(t *testing.T, text string, pos, length uint, insert string) {
		if !utf8.ValidString(text) || !utf8.ValidString(insert) {
			return
		}
		buf, doc := newDocument(t, text)
		runes := []rune(text)
		p := int(pos % uint(len(runes)+1))
		l := int(length % uint(len(runes)-p+1))
		if err := doc.ReplaceRange(p, l, insert); err != nil {
			t.Fatal(err)
		}
		assertMatchesModel(t, doc, string(runes[:p])+insert+string(runes[p+l:]))
		if !buf.CanUndo() {
			return
		}
		if err := buf.Undo(); err != nil {
			t.Fatal(err)
		}
		assertMatchesModel(t, doc, text)
	})
}
