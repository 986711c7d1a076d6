package diagfmt

import (
	"strings"
	"testing"

	"squish/internal/diag"
	"squish/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestPretty(t *testing.T) {
	content := []byte("var x = ;\nvar y = 2;\n")
	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.SynExpectExpression, File: "a.js", Message: "expected expression", Span: span(8, 9)},
		{Severity: diag.SevWarning, Code: diag.CSSEmptyDeclaration, File: "b.css", Message: "declaration has no value"},
	}
	var b strings.Builder
	Pretty(&b, diags, map[string][]byte{"a.js": content}, PrettyOpts{})

	want := "a.js:1:9: error SYN2002: expected expression\n" +
		"b.css: warning CSS4006: declaration has no value\n"
	if b.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", b.String(), want)
	}
}

func TestPrettyContext(t *testing.T) {
	content := []byte("var x = ;\n")
	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.SynExpectExpression, File: "a.js", Message: "expected expression", Span: span(8, 9)},
	}
	var b strings.Builder
	Pretty(&b, diags, map[string][]byte{"a.js": content}, PrettyOpts{Context: true})

	want := "a.js:1:9: error SYN2002: expected expression\n" +
		"  var x = ;\n" +
		"          ^\n"
	if b.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", b.String(), want)
	}
}

func TestLineCol(t *testing.T) {
	content := []byte("ab\ncde\nf")
	tests := []struct {
		off       uint32
		line, col uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{5, 2, 3},
		{7, 3, 1},
	}
	for _, tt := range tests {
		line, col := lineCol(content, tt.off)
		if line != tt.line || col != tt.col {
			t.Fatalf("lineCol(%d) = %d:%d, want %d:%d", tt.off, line, col, tt.line, tt.col)
		}
	}
}
