package servo

import "io"

// Notifier is the single output capability of the controller. Every
// response and notice goes through it.
type Notifier interface {
	Notify(line string)
}

// Fanout mirrors each line, CRLF-terminated, to every sink in order.
// Sink errors are counted and otherwise ignored: a stalled stream must not
// stop the others.
type Fanout struct {
	sinks  []io.Writer
	buf    []byte
	errors uint32
}

func NewFanout(sinks ...io.Writer) *Fanout {
	return &Fanout{sinks: sinks, buf: make([]byte, 0, 80)}
}

func (f *Fanout) Notify(line string) {
	f.buf = append(f.buf[:0], line...)
	f.buf = append(f.buf, '\r', '\n')
	for _, w := range f.sinks {
		if _, err := w.Write(f.buf); err != nil {
			f.errors++
		}
	}
}

// Errors counts failed sink writes.
func (f *Fanout) Errors() uint32 { return f.errors }

// NotifyFunc adapts a function to Notifier.
type NotifyFunc func(line string)

func (fn NotifyFunc) Notify(line string) { fn(line) }
