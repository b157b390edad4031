package engine

import (
	"fmt"
	"strings"
)

// ModType flags the kind of a modification.
type ModType uint32

const (
	// ModInsertText flags that text has been inserted.
	ModInsertText ModType = 1 << iota
	// ModDeleteText flags that text has been deleted.
	ModDeleteText
	// ModUndo flags that the modification is the result of an undo.
	ModUndo
	// ModRedo flags that the modification is the result of a redo.
	ModRedo
	// ModReset flags that the content has been replaced wholesale without an
	// incremental description. Listeners have to re-read the buffer.
	ModReset
)

// Has reports whether all flags of f are set in t.
func (t ModType) Has(f ModType) bool {
	return t&f == f
}

func (t ModType) String() string {
	var names []string
	for _, f := range []struct {
		flag ModType
		name string
	}{
		{ModInsertText, "insert"}, {ModDeleteText, "delete"}, {ModUndo, "undo"},
		{ModRedo, "redo"}, {ModReset, "reset"},
	} {
		if t.Has(f.flag) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "|")
}

// Edit describes the deleted or the inserted half of a modification.
type Edit struct {
	Length     int    // number of bytes
	LinesAdded int    // lines added; negative if lines have been removed
	Text       []byte // the bytes deleted or inserted
}

// Modification is delivered to listeners after the buffer has been changed.
//
// A replacement is reported as a single modification carrying both
// ModDeleteText and ModInsertText. Its deleted half happened first, but the
// buffer reflects both halves when the notification is delivered.
type Modification struct {
	Type     ModType
	Position int  // byte position of the edit
	Deleted  Edit // valid if Type has ModDeleteText
	Inserted Edit // valid if Type has ModInsertText
}

// LinesAdded returns the net number of lines added by m.
func (m Modification) LinesAdded() int {
	return m.Deleted.LinesAdded + m.Inserted.LinesAdded
}

func (m Modification) String() string {
	return fmt.Sprintf("mod{%s @%d, -%d/%+d, +%d/%+d}", m.Type, m.Position,
		m.Deleted.Length, m.Deleted.LinesAdded, m.Inserted.Length, m.Inserted.LinesAdded)
}

// Listener is notified synchronously about every modification of a buffer.
type Listener interface {
	Notify(m Modification)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(m Modification)

// Notify calls f(m).
func (f ListenerFunc) Notify(m Modification) {
	f(m)
}

type listenerEntry struct {
	id int
	l  Listener
}

// AddListener subscribes l to modifications of b. The returned function
// unsubscribes l.
func (b *Buffer) AddListener(l Listener) (remove func()) {
	b.nextListener++
	id := b.nextListener
	b.listeners = append(b.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range b.listeners {
			if e.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *Buffer) notify(m Modification) {
	tracer().Debugf("engine: %s", m)
	b.notifying = true
	defer func() { b.notifying = false }()
	for _, e := range b.listeners {
		e.l.Notify(m)
	}
}
