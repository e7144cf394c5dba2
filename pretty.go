package logging

import (
	"io"
	"sync"
)

// PrettySink writes each record's Pretty form to an io.Writer, one record
// per write. Write errors are dropped.
type PrettySink struct {
	mu sync.Mutex
	w  io.Writer
}

var _ Sink = (*PrettySink)(nil)

func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{w: w}
}

func (p *PrettySink) Log(rec Record) {
	if p == nil || p.w == nil {
		return
	}
	text := rec.Pretty() + "\n"

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = io.WriteString(p.w, text)
}
