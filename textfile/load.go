package textfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/guiguan/caster"
	"github.com/npillmayer/linecoords/engine"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// prefetch is the number of fragments read ahead of the buffer.
const prefetch = 4

// Progress is published to subscribers of a Loader after every fragment.
type Progress struct {
	Loaded int64 // bytes appended so far
	Size   int64 // size of the file
}

// Loader reads a text file fragment by fragment.
type Loader struct {
	path     string         // file name
	info     os.FileInfo    // result from Stat(path)
	fragSize int64          // length of a fragment in bytes
	cast     *caster.Caster // broadcaster for load progress
}

// fragment is a piece of the file's content, read by the prefetcher.
type fragment struct {
	pos  int64
	text []byte
	err  error
}

// Open prepares loading a file, which must be a regular file. Clients may
// recommend a fragment size; 0 lets Open choose one from the size of the file.
func Open(name string, fragSize int64) (*Loader, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", name)
	}
	if fragSize <= 0 || fragSize > tenKb {
		fragSize = defaultFragSize(fi.Size())
	}
	return &Loader{
		path:     name,
		info:     fi,
		fragSize: fragSize,
		cast:     caster.New(nil),
	}, nil
}

func defaultFragSize(size int64) int64 {
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	}
	return sixKb
}

// Size returns the size of the file in bytes, as found by Open.
func (l *Loader) Size() int64 {
	return l.info.Size()
}

// FragmentSize returns the number of bytes read at a time.
func (l *Loader) FragmentSize() int64 {
	return l.fragSize
}

// Subscribe returns a channel of Progress messages. The channel is closed
// after the load has finished or ctx is done. Subscribers have to drain the
// channel, as loading waits for them.
func (l *Loader) Subscribe(ctx context.Context) (<-chan Progress, bool) {
	sub, ok := l.cast.Sub(ctx, prefetch)
	if !ok {
		return nil, false
	}
	ch := make(chan Progress, prefetch)
	go func() {
		defer close(ch)
		for msg := range sub {
			if p, ok := msg.(Progress); ok {
				ch <- p
			}
		}
	}()
	return ch, true
}

// LoadInto appends the content of the file to buf, as a single bulk update.
// The file has to be valid UTF-8. On error, buf keeps the text loaded so
// far. A Loader may be used only once.
func (l *Loader) LoadInto(ctx context.Context, buf *engine.Buffer) error {
	defer l.cast.Close()
	file, err := os.Open(l.path) // just open for read access
	if err != nil {
		return err
	}
	defer file.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	frags := l.prefetch(ctx, file)
	buf.BeginBulk()
	defer buf.EndBulk()
	var carry []byte // incomplete character at the end of the previous fragment
	var loaded int64
	for frag := range frags {
		if frag.err != nil {
			return frag.err
		}
		text := append(carry, frag.text...)
		text, carry = splitIncomplete(text)
		if err := buf.Append(string(text)); err != nil {
			return fmt.Errorf("fragment at %d of %s: %w", frag.pos, l.path, err)
		}
		loaded += int64(len(frag.text))
		tracer().Debugf("textfile: loaded %d of %d bytes", loaded, l.Size())
		l.cast.Pub(Progress{Loaded: loaded, Size: l.Size()})
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(carry) > 0 {
		return fmt.Errorf("%s ends in the middle of a character: %w", l.path, engine.ErrInvalidUTF8)
	}
	return nil
}

// prefetch reads the fragments of file in the background.
func (l *Loader) prefetch(ctx context.Context, file *os.File) <-chan fragment {
	ch := make(chan fragment, prefetch)
	go func() {
		defer close(ch)
		size := l.Size()
		for pos := int64(0); pos < size; pos += l.fragSize {
			frag := fragment{pos: pos, text: make([]byte, min(l.fragSize, size-pos))}
			cnt, err := file.ReadAt(frag.text, pos)
			if err != nil && !errors.Is(err, io.EOF) {
				frag.err = fmt.Errorf("error loading text fragment: %w", err)
			} else if cnt < len(frag.text) {
				frag.err = fmt.Errorf("not all bytes loaded for text fragment at %d", pos)
			}
			select {
			case ch <- frag:
			case <-ctx.Done():
				return
			}
			if frag.err != nil {
				return
			}
		}
	}()
	return ch
}

// splitIncomplete splits off a trailing incomplete UTF-8 sequence.
func splitIncomplete(b []byte) (complete, rest []byte) {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i], append([]byte(nil), b[i:]...)
			}
			break
		}
	}
	return b, nil
}

// Load reads a text file into a new buffer.
func Load(name string, fragSize int64) (*engine.Buffer, error) {
	l, err := Open(name, fragSize)
	if err != nil {
		return nil, err
	}
	buf := engine.New()
	if err := l.LoadInto(context.Background(), buf); err != nil {
		return nil, err
	}
	return buf, nil
}
