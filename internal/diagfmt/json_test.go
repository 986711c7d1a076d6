package diagfmt

import (
	"encoding/json"
	"strings"
	"testing"

	"squish/internal/diag"
)

func TestJSON(t *testing.T) {
	content := []byte("var x = ;\n")
	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.SynExpectExpression, File: "a.js", Message: "expected expression", Span: span(8, 9)},
	}

	var b strings.Builder
	if err := JSON(&b, diags, map[string][]byte{"a.js": content}, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, len = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "error" || d.Code != "SYN2002" {
		t.Fatalf("severity/code: %s/%s", d.Severity, d.Code)
	}
	if d.Location.StartByte != 8 || d.Location.StartLine != 1 || d.Location.StartCol != 9 {
		t.Fatalf("location: %+v", d.Location)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	diags := []diag.Diagnostic{
		{Severity: diag.SevError, Code: diag.SynUnexpectedToken, File: "a.js", Message: "one"},
		{Severity: diag.SevError, Code: diag.SynUnexpectedToken, File: "a.js", Message: "two"},
		{Severity: diag.SevError, Code: diag.SynUnexpectedToken, File: "a.js", Message: "three"},
	}

	var b strings.Builder
	if err := JSON(&b, diags, nil, JSONOpts{Max: 2}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal([]byte(b.String()), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 3 {
		t.Fatalf("Count = %d, want the untruncated total", out.Count)
	}
	if len(out.Diagnostics) != 2 {
		t.Fatalf("len = %d", len(out.Diagnostics))
	}
}
