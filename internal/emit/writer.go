// Package emit renders a parsed script tree into minified text. Two
// emitters exist: Standard (the shortest general rendering) and
// JSONStrict (a rendering constrained to the data-interchange subset,
// which fails on anything else). Both write into the run's pooled buffer;
// the orchestrator picks one per run.
package emit

import (
	"squish/internal/sourcemap"
	"squish/internal/textpool"
)

// writer writes tokens with the minimal whitespace the grammar allows,
// tracking the last emitted byte so adjacent tokens never fuse into a
// different token (`typeof x`, `a+ ++b`).
type writer struct {
	buf    *textpool.Buffer
	mapper sourcemap.Mapper
	last   byte
}

func newWriter(buf *textpool.Buffer, mapper sourcemap.Mapper) *writer {
	return &writer{buf: buf, mapper: mapper}
}

func (w *writer) col() int {
	return w.buf.Len()
}

// token writes s, inserting a separating space when the previous byte and
// the first byte of s would otherwise merge.
func (w *writer) token(s string) {
	if s == "" {
		return
	}
	if needSpace(w.last, s[0]) {
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(s)
	w.last = s[len(s)-1]
}

// byteTok writes a single punctuation byte that can never fuse with its
// left neighbor.
func (w *writer) byteTok(c byte) {
	w.buf.WriteByte(c)
	w.last = c
}

func needSpace(last, next byte) bool {
	if last == 0 {
		return false
	}
	if isWordByte(last) && isWordByte(next) {
		return true
	}
	// +/- runs: a+ ++b, a- --b, 1- -2
	if (last == '+' && next == '+') || (last == '-' && next == '-') {
		return true
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c >= 0x80
}
