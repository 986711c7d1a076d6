package sourcemap

import (
	"encoding/json"
	"testing"

	"squish/internal/source"
	"squish/internal/textpool"
)

func TestEndFileAppendsMappingComment(t *testing.T) {
	m := NewV3Map("out.js", "out.js.map")
	pool := textpool.NewPool()
	buf := pool.Acquire()
	defer pool.Release(buf)
	buf.WriteString("var x=1;")

	m.EndFile(buf, "\n")
	if got := buf.String(); got != "var x=1;\n//# sourceMappingURL=out.js.map" {
		t.Fatalf("buffer = %q", got)
	}
}

func TestEndFileUsesConfiguredTerminator(t *testing.T) {
	m := NewV3Map("out.js", "m.map")
	pool := textpool.NewPool()
	buf := pool.Acquire()
	defer pool.Release(buf)
	buf.WriteString("x")

	m.EndFile(buf, "\r\n")
	if got := buf.String(); got != "x\r\n//# sourceMappingURL=m.map" {
		t.Fatalf("buffer = %q", got)
	}
}

func TestMarshalShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.js", []byte("var foo = 1;\nvar bar = 2;"))

	m := NewV3Map("a.min.js", "a.min.js.map")
	m.AddSource("a.js")
	m.AddMapping(0, 4, source.Span{File: id, Start: 4, End: 7}, "foo")
	m.AddMapping(0, 10, source.Span{File: id, Start: 17, End: 20}, "bar")
	m.Resolve(fs, id)

	raw, err := m.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Version  int      `json:"version"`
		File     string   `json:"file"`
		Sources  []string `json:"sources"`
		Names    []string `json:"names"`
		Mappings string   `json:"mappings"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Version != 3 || decoded.File != "a.min.js" {
		t.Fatalf("header = %+v", decoded)
	}
	if len(decoded.Sources) != 1 || decoded.Sources[0] != "a.js" {
		t.Fatalf("sources = %v", decoded.Sources)
	}
	if len(decoded.Names) != 2 {
		t.Fatalf("names = %v", decoded.Names)
	}
	if decoded.Mappings == "" {
		t.Fatal("mappings empty")
	}
}

func TestVLQEncoding(t *testing.T) {
	tests := []struct {
		v    int
		want string
	}{
		{0, "A"},
		{1, "C"},
		{-1, "D"},
		{16, "gB"},
		{-16, "hB"},
	}
	for _, tt := range tests {
		if got := string(appendVLQ(nil, tt.v)); got != tt.want {
			t.Fatalf("vlq(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
