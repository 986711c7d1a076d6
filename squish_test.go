package squish

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"squish/internal/diag"
	"squish/internal/sourcemap"
	"squish/internal/textpool"
)

func TestMinifyScript(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"var", "var x = 1;", "var x=1;"},
		{"func", "function add(a, b) { return a + b; }", "function add(a,b){return a+b}"},
		{"empty", "", ""},
		{"comments", "// lead\nvar x = 1; /* tail */", "var x=1;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := MinifyScript([]byte(tt.src), nil)
			if err != nil {
				t.Fatalf("MinifyScript: %v", err)
			}
			if res.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
			}
			if res.Text != tt.want {
				t.Fatalf("Text = %q, want %q", res.Text, tt.want)
			}
		})
	}
}

func TestMinifyScriptSyntaxError(t *testing.T) {
	res, err := MinifyScript([]byte("var x = ;"), nil)
	if err != nil {
		t.Fatalf("MinifyScript: %v", err)
	}
	if !res.HasErrors() {
		t.Fatal("expected a diagnostic")
	}
	d := res.Diagnostics[0]
	if d.Severity != diag.SevError {
		t.Fatalf("severity = %d", d.Severity)
	}
	if d.Span.Empty() {
		t.Fatal("diagnostic has no span")
	}
	if d.File != "input" {
		t.Fatalf("file = %q", d.File)
	}
}

func TestNilSource(t *testing.T) {
	a0, r0 := textpool.Default.Stats()

	if _, err := MinifyScript(nil, nil); !errors.Is(err, ErrNoSource) {
		t.Fatalf("script err = %v", err)
	}
	if _, err := MinifyStyleSheet(nil, nil); !errors.Is(err, ErrNoSource) {
		t.Fatalf("style err = %v", err)
	}

	a1, r1 := textpool.Default.Stats()
	if a1 != a0 || r1 != r0 {
		t.Fatalf("nil source touched the pool: %d/%d -> %d/%d", a0, r0, a1, r1)
	}
}

func TestPreprocessOnly(t *testing.T) {
	src := "///#DEFINE DEBUG\n" +
		"///#IF DEBUG\n" +
		"var a = 1;\n" +
		"///#ELSE\n" +
		"var b = 2;\n" +
		"///#END\n" +
		"var c = 3;\n"

	// Format is ignored in preprocess-only mode.
	res, err := MinifyScript([]byte(src), &Options{PreprocessOnly: true, Format: FormatJSON})
	if err != nil {
		t.Fatalf("MinifyScript: %v", err)
	}
	if res.Text != "var a = 1;\nvar c = 3;\n" {
		t.Fatalf("Text = %q", res.Text)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestDefinesOption(t *testing.T) {
	src := "///#IF TRACE\nvar t = 1;\n///#END\nvar x = 2;\n"

	res, err := MinifyScript([]byte(src), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "var x=2;" {
		t.Fatalf("without define: %q", res.Text)
	}

	res, err = MinifyScript([]byte(src), &Options{Defines: []string{"TRACE"}})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "var t=1;var x=2;" {
		t.Fatalf("with define: %q", res.Text)
	}
}

func TestJSONFormat(t *testing.T) {
	res, err := MinifyScript([]byte(`({"a": 1, "b": [true, null]});`), &Options{Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if res.Text != `{"a":1,"b":[true,null]}` {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestJSONFormatRejected(t *testing.T) {
	res, err := MinifyScript([]byte("f();"), &Options{Format: FormatJSON})
	if err != nil {
		t.Fatal(err)
	}
	var hits []diag.Diagnostic
	for _, d := range res.Diagnostics {
		if d.Code == diag.EmitNotJSON {
			hits = append(hits, d)
		}
	}
	if len(hits) != 1 {
		t.Fatalf("want exactly one rejection diagnostic, got %v", res.Diagnostics)
	}
	if hits[0].Severity != diag.SevError {
		t.Fatalf("severity = %d", hits[0].Severity)
	}
	if hits[0].Message != "invalid output for requested format" {
		t.Fatalf("message = %q", hits[0].Message)
	}
}

func TestSymbolMap(t *testing.T) {
	m := sourcemap.NewV3Map("out.js", "out.js.map")
	res, err := MinifyScript([]byte("answer = 42;"), &Options{SymbolMap: m, LineTerminator: "\n"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Text != "answer=42;\n//# sourceMappingURL=out.js.map" {
		t.Fatalf("Text = %q", res.Text)
	}

	raw, err := m.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"version":3`, `"names":["answer"]`, `"sources":["input"]`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("map %s missing %s", raw, want)
		}
	}
}

type explodingFinalizer struct{}

func (explodingFinalizer) EndFile(*textpool.Buffer, string) {
	panic("finalizer exploded")
}

func TestFatalFailure(t *testing.T) {
	a0, r0 := textpool.Default.Stats()

	res, err := MinifyScript([]byte("var x = 1;"), &Options{SymbolMap: explodingFinalizer{}})
	if res != nil {
		t.Fatalf("fatal run produced a result: %+v", res)
	}
	var fe *FatalError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v", err)
	}
	found := false
	for _, d := range fe.Diagnostics {
		if d.Severity == diag.SevError && strings.Contains(d.Message, "finalizer exploded") {
			found = true
		}
	}
	if !found {
		t.Fatalf("fatal diagnostic missing: %v", fe.Diagnostics)
	}

	a1, r1 := textpool.Default.Stats()
	if a1-a0 != r1-r0 {
		t.Fatalf("pool leaked on the fatal path: +%d acquired, +%d released", a1-a0, r1-r0)
	}
}

func TestPoolBalance(t *testing.T) {
	a0, r0 := textpool.Default.Stats()

	inputs := []string{"var x = 1;", "var x = ;", "", "f();"}
	for _, src := range inputs {
		if _, err := MinifyScript([]byte(src), nil); err != nil {
			t.Fatal(err)
		}
		if _, err := MinifyScript([]byte(src), &Options{Format: FormatJSON}); err != nil {
			t.Fatal(err)
		}
	}
	MinifyScript([]byte("var x = 1;"), &Options{SymbolMap: explodingFinalizer{}})

	a1, r1 := textpool.Default.Stats()
	if a1-a0 != r1-r0 {
		t.Fatalf("pool imbalance: +%d acquired, +%d released", a1-a0, r1-r0)
	}
}

func TestMinifyStyleSheet(t *testing.T) {
	res, err := MinifyStyleSheet([]byte("a{color:red}"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if res.Text != "a{color:red}" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestStyleWarningLevel(t *testing.T) {
	src := []byte("a{color:;border:1px}")

	res, err := MinifyStyleSheet(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("level 0 kept warnings: %v", res.Diagnostics)
	}
	if res.Text != "a{border:1px}" {
		t.Fatalf("Text = %q", res.Text)
	}

	res, err = MinifyStyleSheet(src, &StyleOptions{WarningLevel: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != diag.CSSEmptyDeclaration {
		t.Fatalf("level 1 diagnostics: %v", res.Diagnostics)
	}
}

func TestStyleEmbeddedExpression(t *testing.T) {
	res, err := MinifyStyleSheet([]byte("a{width:expression( document.body.clientWidth + 10 )}"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	if res.Text != "a{width:expression(document.body.clientWidth+10)}" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestStyleEmbeddedExpressionError(t *testing.T) {
	res, err := MinifyStyleSheet([]byte("a{width:expression( + )}"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasErrors() {
		t.Fatal("expected forwarded script diagnostics")
	}
	// the raw fragment survives when the nested run fails
	if res.Text != "a{width:expression(+)}" {
		t.Fatalf("Text = %q", res.Text)
	}
}

func TestConcurrentRuns(t *testing.T) {
	a0, r0 := textpool.Default.Stats()

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				res, err := MinifyScript([]byte("var x = 1;"), nil)
				if err != nil || res.Text != "var x=1;" {
					errs <- "script run diverged"
					return
				}
				res, err = MinifyStyleSheet([]byte("a { color : #FF0000 }"), nil)
				if err != nil || res.Text != "a{color:#f00}" {
					errs <- "style run diverged"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Fatal(msg)
	}

	a1, r1 := textpool.Default.Stats()
	if a1-a0 != r1-r0 {
		t.Fatalf("pool imbalance under concurrency: +%d acquired, +%d released", a1-a0, r1-r0)
	}
}
