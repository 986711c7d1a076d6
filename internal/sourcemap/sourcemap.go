// Package sourcemap collects generated-to-source position mappings during
// emission and renders them as a V3 source map. The pipeline only depends
// on the two small contracts (Mapper, Finalizer); V3Map is the shipped
// implementation of both.
package sourcemap

import (
	"encoding/json"

	"squish/internal/source"
	"squish/internal/textpool"
)

// Mapper receives one callback per mapped token during emission.
type Mapper interface {
	AddMapping(genLine, genCol int, span source.Span, name string)
}

// Finalizer runs once after standard emission, appending trailing
// metadata (the mapping-reference comment) to the output buffer using the
// configured line terminator.
type Finalizer interface {
	EndFile(buf *textpool.Buffer, lineTerminator string)
}

// V3Map accumulates mappings for one generated file and marshals the V3
// source map format. Create one per run; it is not safe for concurrent
// use.
type V3Map struct {
	file    string
	url     string
	sources []string
	srcIdx  map[string]int
	names   []string
	nameIdx map[string]int
	segs    []segment
}

type segment struct {
	genLine, genCol int
	srcIdx          int
	srcLine, srcCol int
	nameIdx         int // -1 when unnamed
}

// NewV3Map creates a map for one generated file. url is what the trailing
// sourceMappingURL comment points at.
func NewV3Map(file, url string) *V3Map {
	return &V3Map{
		file:    file,
		url:     url,
		srcIdx:  make(map[string]int),
		nameIdx: make(map[string]int),
	}
}

// AddSource registers the source file mappings refer to and returns its
// index. Registering the same path twice returns the original index.
func (m *V3Map) AddSource(path string) int {
	if idx, ok := m.srcIdx[path]; ok {
		return idx
	}
	idx := len(m.sources)
	m.sources = append(m.sources, path)
	m.srcIdx[path] = idx
	return idx
}

// AddMapping implements Mapper. The span's file must have been registered
// through AddSource; positions are resolved lazily at marshal time, so the
// raw byte offset is stored here.
func (m *V3Map) AddMapping(genLine, genCol int, span source.Span, name string) {
	nameIdx := -1
	if name != "" {
		idx, ok := m.nameIdx[name]
		if !ok {
			idx = len(m.names)
			m.names = append(m.names, name)
			m.nameIdx[name] = idx
		}
		nameIdx = idx
	}
	m.segs = append(m.segs, segment{
		genLine: genLine,
		genCol:  genCol,
		srcIdx:  0,
		srcLine: int(span.Start), // byte offset; converted by Resolve
		srcCol:  0,
		nameIdx: nameIdx,
	})
}

// Resolve rewrites stored byte offsets into 0-based line/column pairs
// using the run's FileSet. Call once, after emission and before Marshal.
func (m *V3Map) Resolve(fs *source.FileSet, id source.FileID) {
	for i := range m.segs {
		off := uint32(m.segs[i].srcLine)
		start, _ := fs.Resolve(source.Span{File: id, Start: off, End: off})
		m.segs[i].srcLine = int(start.Line) - 1
		m.segs[i].srcCol = int(start.Col) - 1
	}
}

// EndFile implements Finalizer, appending the mapping-reference comment.
func (m *V3Map) EndFile(buf *textpool.Buffer, lineTerminator string) {
	if m.url == "" {
		return
	}
	if lineTerminator == "" {
		lineTerminator = "\n"
	}
	buf.WriteString(lineTerminator)
	buf.WriteString("//# sourceMappingURL=")
	buf.WriteString(m.url)
}

type v3JSON struct {
	Version  int      `json:"version"`
	File     string   `json:"file"`
	Sources  []string `json:"sources"`
	Names    []string `json:"names"`
	Mappings string   `json:"mappings"`
}

// Marshal renders the collected mappings as V3 source map JSON.
func (m *V3Map) Marshal() ([]byte, error) {
	sources := m.sources
	if sources == nil {
		sources = []string{}
	}
	names := m.names
	if names == nil {
		names = []string{}
	}
	return json.Marshal(v3JSON{
		Version:  3,
		File:     m.file,
		Sources:  sources,
		Names:    names,
		Mappings: m.encodeMappings(),
	})
}

// encodeMappings renders the segment list as base64 VLQ runs, one
// semicolon-separated group per generated line, fields delta-encoded per
// the V3 format.
func (m *V3Map) encodeMappings() string {
	var out []byte
	line := 0
	prevGenCol, prevSrc, prevLine, prevCol, prevName := 0, 0, 0, 0, 0
	first := true

	for _, s := range m.segs {
		for line < s.genLine {
			out = append(out, ';')
			line++
			prevGenCol = 0
			first = true
		}
		if !first {
			out = append(out, ',')
		}
		first = false

		out = appendVLQ(out, s.genCol-prevGenCol)
		prevGenCol = s.genCol
		out = appendVLQ(out, s.srcIdx-prevSrc)
		prevSrc = s.srcIdx
		out = appendVLQ(out, s.srcLine-prevLine)
		prevLine = s.srcLine
		out = appendVLQ(out, s.srcCol-prevCol)
		prevCol = s.srcCol
		if s.nameIdx >= 0 {
			out = appendVLQ(out, s.nameIdx-prevName)
			prevName = s.nameIdx
		}
	}
	return string(out)
}

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

func appendVLQ(out []byte, v int) []byte {
	u := v << 1
	if v < 0 {
		u = (-v << 1) | 1
	}
	for {
		digit := u & 0x1f
		u >>= 5
		if u > 0 {
			digit |= 0x20
		}
		out = append(out, base64Chars[digit])
		if u == 0 {
			return out
		}
	}
}
