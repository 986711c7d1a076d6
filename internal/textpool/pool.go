// Package textpool provides the pooled text buffers each pipeline run
// borrows for emission. A buffer is acquired at the start of a run,
// exclusively owned until the run ends, and released on every exit path,
// including the fatal one. The pool itself is safe for concurrent
// acquire/release by independent runs.
package textpool

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Buffer is a growable text accumulator. It is owned by exactly one run
// between Acquire and Release and must not be used after Release.
type Buffer struct {
	b strings.Builder
}

func (buf *Buffer) WriteString(s string) {
	buf.b.WriteString(s)
}

// WriteByte appends c. The returned error is always nil; the signature
// satisfies io.ByteWriter.
func (buf *Buffer) WriteByte(c byte) error {
	return buf.b.WriteByte(c)
}

// WriteRune appends the UTF-8 encoding of r, mirroring strings.Builder.
func (buf *Buffer) WriteRune(r rune) (int, error) {
	return buf.b.WriteRune(r)
}

// Len returns the number of accumulated bytes.
func (buf *Buffer) Len() int {
	return buf.b.Len()
}

// String copies the accumulated text out. Callers capture this before
// releasing the buffer; the returned string does not alias the buffer.
func (buf *Buffer) String() string {
	return buf.b.String()
}

// Reset discards the accumulated text, keeping nothing from the prior run.
func (buf *Buffer) Reset() {
	buf.b.Reset()
}

// Pool hands out Buffers with a strict one-release-per-acquisition
// discipline. Acquired/Released counters exist so tests (and leak checks)
// can verify the discipline held across runs that end normally, with
// diagnostics, or by fatal failure.
type Pool struct {
	p        sync.Pool
	acquired atomic.Int64
	released atomic.Int64
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		p: sync.Pool{
			New: func() any { return new(Buffer) },
		},
	}
}

// Acquire borrows a buffer. The buffer is empty.
func (p *Pool) Acquire() *Buffer {
	p.acquired.Add(1)
	buf := p.p.Get().(*Buffer)
	buf.Reset()
	return buf
}

// Release returns a buffer to the pool. Releasing nil is a no-op so that
// deferred releases on early-exit paths stay unconditional.
func (p *Pool) Release(buf *Buffer) {
	if buf == nil {
		return
	}
	p.released.Add(1)
	buf.Reset()
	p.p.Put(buf)
}

// Stats returns the total acquisitions and releases so far.
func (p *Pool) Stats() (acquired, released int64) {
	return p.acquired.Load(), p.released.Load()
}

// Default is the process-wide pool used by the public API. Runs never
// share a borrowed buffer, only the pool itself.
var Default = NewPool()
