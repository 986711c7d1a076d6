package css

import (
	"strings"
	"testing"

	"squish/internal/diag"
	"squish/internal/source"
)

func run(t *testing.T, src string, opts Options) (string, bool, *diag.Sink) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("input", []byte(src)))
	sink := diag.NewSink("input", diag.SevHint)
	opts.Reporter = sink
	text, ok := Minify(file, opts)
	return text, ok, sink
}

func TestMinify(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"a{color:red}", "a{color:red}"},
		{"a { color : red ; }", "a{color:red}"},
		{"a{color:red;;background:blue;}", "a{color:red;background:blue}"},
		{"div > p , a { margin : 0 ; }", "div>p,a{margin:0}"},
		{".x  .y{border:1px  solid  black}", ".x .y{border:1px solid black}"},
		{"a{margin:0px 10.50px 0.5em 0%}", "a{margin:0 10.5px .5em 0%}"},
		{"a{color:#FF0000}", "a{color:#f00}"},
		{"a{color:#AbCdEf}", "a{color:#abcdef}"},
		{"#id a{color:red}", "#id a{color:red}"},
		{"a{background:url( images/a.png )}", "a{background:url(images/a.png)}"},
		{"a{color:red !important}", "a{color:red!important}"},
		{"a{COLOR:red}", "a{color:red}"},
		{"/* note */a{color:red}/* tail */", "a{color:red}"},
		{"@import url(base.css);\na{color:red}", "@import url(base.css);a{color:red}"},
		{"@media screen and (min-width: 100px) { a { color : red } }",
			"@media screen and (min-width:100px){a{color:red}}"},
		{"@font-face { font-family : Custom ; src : url(c.woff) ; }",
			"@font-face{font-family:Custom;src:url(c.woff)}"},
		{"a:hover{color:red}", "a:hover{color:red}"},
		{"a[href=\"x\"]{color:red}", "a[href=\"x\"]{color:red}"},
		{"a{font-family:\"My Font\", serif}", "a{font-family:\"My Font\",serif}"},
		{"a{filter:alpha( opacity = 50 )}", "a{filter:alpha(opacity=50)}"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, ok, sink := run(t, tt.src, Options{})
			if !ok || sink.HasErrors() {
				t.Fatalf("minify %q reported errors: %v", tt.src, sink.Snapshot())
			}
			if got != tt.want {
				t.Fatalf("minify(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestColorNames(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"a{color:#ff0000}", "a{color:red}"},
		{"a{color:white}", "a{color:#fff}"},
		{"a{color:BLACK}", "a{color:#000}"},
		{"a{color:blue}", "a{color:blue}"},
		{"a{color:#c0c0c0}", "a{color:silver}"},
	}
	for _, tt := range tests {
		got, ok, _ := run(t, tt.src, Options{ColorNames: true})
		if !ok {
			t.Fatalf("minify %q failed", tt.src)
		}
		if got != tt.want {
			t.Fatalf("minify(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEmbeddedExpression(t *testing.T) {
	calls := 0
	opts := Options{
		ExprMinifier: func(src string) (string, bool) {
			calls++
			return strings.ReplaceAll(src, " ", ""), true
		},
	}
	got, ok, _ := run(t, "a{width:expression( document.body.clientWidth + 10 )}", opts)
	if !ok {
		t.Fatal("minify failed")
	}
	if calls != 1 {
		t.Fatalf("expression callback ran %d times", calls)
	}
	want := "a{width:expression(document.body.clientWidth+10)}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEmbeddedExpressionFallback(t *testing.T) {
	opts := Options{
		ExprMinifier: func(string) (string, bool) { return "", false },
	}
	got, ok, _ := run(t, "a{width:expression(1 + 2)}", opts)
	if !ok {
		t.Fatal("minify failed")
	}
	if got != "a{width:expression(1 + 2)}" {
		t.Fatalf("got %q", got)
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"a{color red}", diag.CSSExpectColon},
		{"a{color:red", diag.CSSUnclosedBlock},
		{"}a{color:red}", diag.CSSUnexpectedToken},
		{"a{content:\"abc", diag.CSSUnterminatedString},
		{"a{color:red}/* tail", diag.CSSUnterminatedComment},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, ok, sink := run(t, tt.src, Options{})
			if ok {
				t.Fatalf("minify %q reported no error", tt.src)
			}
			found := false
			for _, d := range sink.Snapshot() {
				if d.Code == tt.code {
					found = true
					if d.Span.Empty() && d.Code != diag.CSSUnclosedBlock {
						t.Fatalf("diagnostic %v has empty span", d.Code)
					}
				}
			}
			if !found {
				t.Fatalf("missing %v in %v", tt.code, sink.Snapshot())
			}
		})
	}
}

func TestEmptyDeclarationWarns(t *testing.T) {
	got, ok, sink := run(t, "a{color:;background:blue}", Options{})
	if !ok {
		t.Fatalf("unexpected hard error: %v", sink.Snapshot())
	}
	if got != "a{background:blue}" {
		t.Fatalf("got %q", got)
	}
	found := false
	for _, d := range sink.Snapshot() {
		if d.Code == diag.CSSEmptyDeclaration && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing empty-declaration warning in %v", sink.Snapshot())
	}
}

func TestShortenNumber(t *testing.T) {
	tests := []struct{ in, want string }{
		{"0", "0"},
		{"0px", "0"},
		{"0%", "0%"},
		{"10.50px", "10.5px"},
		{"0.5em", ".5em"},
		{"12PT", "12pt"},
		{"1.0", "1"},
	}
	for _, tt := range tests {
		if got := shortenNumber(tt.in); got != tt.want {
			t.Fatalf("shortenNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestShortenHex(t *testing.T) {
	tests := []struct {
		in    string
		names bool
		want  string
	}{
		{"#FF0000", false, "#f00"},
		{"#ff0000", true, "red"},
		{"#AbC", false, "#abc"},
		{"#abcdef", false, "#abcdef"},
		{"#header", false, "#header"},
		{"#ffff", false, "#ffff"},
	}
	for _, tt := range tests {
		if got := shortenHex(tt.in, tt.names); got != tt.want {
			t.Fatalf("shortenHex(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
