package emit

import (
	"testing"

	"squish/internal/ast"
	"squish/internal/diag"
	"squish/internal/lexer"
	"squish/internal/parser"
	"squish/internal/source"
	"squish/internal/textpool"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("input", []byte(src))
	file := fs.Get(id)
	sink := diag.NewSink("input", diag.SevError)
	lx := lexer.New(file, lexer.Options{Reporter: sink})
	prog := parser.ParseFile(file, lx, parser.Options{Reporter: sink})
	if prog == nil || sink.Len() != 0 {
		t.Fatalf("parse %q failed: %v", src, sink.Snapshot())
	}
	return prog
}

func minify(t *testing.T, src string) string {
	t.Helper()
	prog := parseProgram(t, src)
	pool := textpool.NewPool()
	buf := pool.Acquire()
	defer pool.Release(buf)
	if !Standard(nil).Emit(buf, prog) {
		t.Fatalf("standard emit failed for %q", src)
	}
	return buf.String()
}

func TestStandardEmit(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"var x = 1;", "var x=1;"},
		{"var a = 1, b;", "var a=1,b;"},
		{"a = 1 + 2 * 3;", "a=1+2*3;"},
		{"a = (1 + 2) * 3;", "a=(1+2)*3;"},
		{"a = 1 - (2 - 3);", "a=1-(2-3);"},
		{"if (a) { b(); }", "if(a){b()}"},
		{"if (a) b(); else c();", "if(a)b();else c();"},
		{"while (a < 10) { a++; }", "while(a<10){a++}"},
		{"for (var i = 0; i < n; i++) f(i);", "for(var i=0;i<n;i++)f(i);"},
		{"for (var k in obj) f(k);", "for(var k in obj)f(k);"},
		{"do { x(); } while (a);", "do{x()}while(a);"},
		{"function f(a, b) { return a + b; }", "function f(a,b){return a+b}"},
		{"return;", "return;"},
		{"typeof x;", "typeof x;"},
		{"a + +b;", "a+ +b;"},
		{"a - -b;", "a- -b;"},
		{"x = a ? b : c;", "x=a?b:c;"},
		{"o = { a: 1, \"b c\": 2, \"d\": 3 };", "o={a:1,\"b c\":2,d:3};"},
		{"arr = [1, 2, 3];", "arr=[1,2,3];"},
		{"v = obj.prop[0](arg);", "v=obj.prop[0](arg);"},
		{"n = new Date();", "n=new Date();"},
		{"s = 'it\\'s';", "s=\"it's\";"},
		{"x = 0.50;", "x=.5;"},
		{"x = 1000000;", "x=1e6;"},
		{"x = 0x00FF;", "x=255;"},
		{"throw new Error(\"no\");", "throw new Error(\"no\");"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := minify(t, tt.src); got != tt.want {
				t.Fatalf("minify(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

// Statements that merely end in a `}` (object or function literals in
// expression position) still need their separator; only syntactic blocks
// may elide it.
func TestSeparatorAfterBlockValuedStatement(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"var f = function () {}; var y = 1;", "var f=function(){};var y=1;"},
		{"o = { a: 1 }; x = 2;", "o={a:1};x=2;"},
		{"if (a) o = { b: 2 }; else c();", "if(a)o={b:2};else c();"},
		{"{ o = { a: 1 }; x = 2; }", "{o={a:1};x=2}"},
		{"function f() {} var y = 1;", "function f(){}var y=1;"},
		{"if (a) { b(); } c();", "if(a){b()}c();"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := minify(t, tt.src); got != tt.want {
				t.Fatalf("minify(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestDanglingElseGetsBraced(t *testing.T) {
	got := minify(t, "if (a) { if (b) c(); } else d();")
	if got != "if(a){if(b)c()}else d();" {
		t.Fatalf("got %q", got)
	}
}

func TestEmptyStatementsDropped(t *testing.T) {
	if got := minify(t, ";;var x = 1;;"); got != "var x=1;" {
		t.Fatalf("got %q", got)
	}
}

func TestObjectExpressionStatementParenthesized(t *testing.T) {
	got := minify(t, "({ a: 1 }).b = 2;")
	if got != "({a:1}.b=2);" {
		t.Fatalf("got %q", got)
	}
}

func TestJSONStrictAccepts(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"({\"a\": 1, \"b\": [true, false, null]});", `{"a":1,"b":[true,false,null]}`},
		{"[1, -2.5, \"x\"];", `[1,-2.5,"x"]`},
		{"\"plain\";", `"plain"`},
		{"42;", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, tt.src)
			pool := textpool.NewPool()
			buf := pool.Acquire()
			defer pool.Release(buf)
			if !JSONStrict().Emit(buf, prog) {
				t.Fatalf("json emit failed for %q", tt.src)
			}
			if got := buf.String(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONStrictRejectsNonData(t *testing.T) {
	tests := []string{
		"a + 1;",
		"f();",
		"var x = 1;",
		"[1, f()];",
	}
	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			prog := parseProgram(t, src)
			pool := textpool.NewPool()
			buf := pool.Acquire()
			defer pool.Release(buf)
			if JSONStrict().Emit(buf, prog) {
				t.Fatalf("json emit accepted %q", src)
			}
		})
	}
}

func TestRenderNumber(t *testing.T) {
	tests := []struct {
		raw  string
		v    float64
		want string
	}{
		{"1", 1, "1"},
		{"0.5", 0.5, ".5"},
		{"1.50", 1.5, "1.5"},
		{"1000000", 1e6, "1e6"},
		{"1e+3", 1000, "1000"},
		{"0xFF", 255, "255"},
		{"0xFFFFF", 1048575, "0xfffff"},
	}
	for _, tt := range tests {
		if got := renderNumber(tt.raw, tt.v); got != tt.want {
			t.Fatalf("renderNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
