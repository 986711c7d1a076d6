package parser

import (
	"testing"

	"squish/internal/diag"
	"squish/internal/source"
)

func preprocess(t *testing.T, src string, defines []string) (string, *diag.Sink) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input", []byte(src))
	sink := diag.NewSink("input", diag.SevError)
	out := Preprocess(fs.Get(id), defines, sink)
	return string(out), sink
}

func TestPreprocessPassThrough(t *testing.T) {
	src := "var x = 1;\nvar y = 2;\n"
	out, sink := preprocess(t, src, nil)
	if out != src {
		t.Fatalf("out = %q", out)
	}
	if sink.Len() != 0 {
		t.Fatalf("diagnostics: %v", sink.Snapshot())
	}
}

func TestPreprocessIfElse(t *testing.T) {
	src := "///#IF DEBUG\nlog();\n///#ELSE\nquiet();\n///#END\ndone();\n"

	out, sink := preprocess(t, src, nil)
	if out != "quiet();\ndone();\n" {
		t.Fatalf("undefined branch: %q", out)
	}
	if sink.Len() != 0 {
		t.Fatalf("diagnostics: %v", sink.Snapshot())
	}

	out, _ = preprocess(t, src, []string{"DEBUG"})
	if out != "log();\ndone();\n" {
		t.Fatalf("defined branch: %q", out)
	}
}

func TestPreprocessDefineDirective(t *testing.T) {
	src := "///#DEFINE X\n///#IF X\nkeep();\n///#END\n"
	out, sink := preprocess(t, src, nil)
	if out != "keep();\n" {
		t.Fatalf("out = %q", out)
	}
	if sink.Len() != 0 {
		t.Fatalf("diagnostics: %v", sink.Snapshot())
	}
}

func TestPreprocessNestedIf(t *testing.T) {
	src := "///#IF A\n///#IF B\nboth();\n///#END\nonlyA();\n///#END\n"
	out, _ := preprocess(t, src, []string{"A"})
	if out != "onlyA();\n" {
		t.Fatalf("out = %q", out)
	}
	out, _ = preprocess(t, src, []string{"A", "B"})
	if out != "both();\nonlyA();\n" {
		t.Fatalf("out = %q", out)
	}
}

func TestPreprocessUnbalancedDirectives(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"stray else", "///#ELSE\nx();\n"},
		{"stray end", "///#END\nx();\n"},
		{"unclosed if", "///#IF A\nx();\n"},
		{"unknown word", "///#FROB\nx();\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sink := preprocess(t, tt.src, nil)
			if sink.Len() != 1 {
				t.Fatalf("diagnostics = %d, want 1: %v", sink.Len(), sink.Snapshot())
			}
			if sink.Snapshot()[0].Code != diag.SynBadDirective {
				t.Fatalf("code = %v", sink.Snapshot()[0].Code)
			}
		})
	}
}
