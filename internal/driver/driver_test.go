package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"squish"
	"squish/internal/pipeline"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	js := writeInput(t, dir, "a.js", "var x = 1;")
	css := writeInput(t, dir, "b.css", "a { color : red }")

	results, err := Run(context.Background(), []string{css, js}, Config{Suffix: ".min"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}

	// sorted path order: a.js before b.css
	if results[0].Path != js || results[1].Path != css {
		t.Fatalf("order: %s, %s", results[0].Path, results[1].Path)
	}
	if results[0].Text != "var x=1;" {
		t.Fatalf("js text = %q", results[0].Text)
	}
	if results[1].Text != "a{color:red}" {
		t.Fatalf("css text = %q", results[1].Text)
	}

	for _, r := range results {
		if r.HasErrors() {
			t.Fatalf("%s: %v %v", r.Path, r.Err, r.Diagnostics)
		}
		got, err := os.ReadFile(r.OutPath)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != r.Text {
			t.Fatalf("%s content mismatch", r.OutPath)
		}
	}
	if filepath.Base(results[0].OutPath) != "a.min.js" {
		t.Fatalf("out name = %s", results[0].OutPath)
	}
}

func TestRunMissingFile(t *testing.T) {
	results, err := Run(context.Background(), []string{filepath.Join(t.TempDir(), "absent.js")}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Err == nil {
		t.Fatal("expected a read error in the result")
	}
}

func TestCacheHit(t *testing.T) {
	dir := t.TempDir()
	js := writeInput(t, dir, "a.js", "var x = 1;")
	cache := &DiskCache{dir: filepath.Join(dir, "cache")}
	cfg := Config{Cache: cache}

	first, err := Run(context.Background(), []string{js}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].Cached {
		t.Fatal("first run hit the cache")
	}

	second, err := Run(context.Background(), []string{js}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached {
		t.Fatal("second run missed the cache")
	}
	if second[0].Text != first[0].Text {
		t.Fatalf("cached text %q != %q", second[0].Text, first[0].Text)
	}

	// changed content must miss
	writeInput(t, dir, "a.js", "var y = 2;")
	third, err := Run(context.Background(), []string{js}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatal("changed content hit the cache")
	}
	if third[0].Text != "var y=2;" {
		t.Fatalf("text = %q", third[0].Text)
	}
}

func TestFingerprintInvalidates(t *testing.T) {
	content := []byte("var x = 1;")
	a := KeyFor(content, (&Config{}).fingerprint("a.js"))
	b := KeyFor(content, (&Config{Script: &squish.Options{Defines: []string{"DEBUG"}}}).fingerprint("a.js"))
	if a == b {
		t.Fatal("option change did not change the cache key")
	}
}

func TestProgressEvents(t *testing.T) {
	dir := t.TempDir()
	js := writeInput(t, dir, "a.js", "var x = 1;")

	ch := make(chan pipeline.Event, 64)
	_, err := Run(context.Background(), []string{js}, Config{
		Jobs:     1,
		Progress: pipeline.ChannelSink{Ch: ch},
	})
	if err != nil {
		t.Fatal(err)
	}
	close(ch)

	counts := map[pipeline.Stage]map[pipeline.Status]int{}
	for evt := range ch {
		if evt.File != js {
			t.Fatalf("event for %q", evt.File)
		}
		if counts[evt.Stage] == nil {
			counts[evt.Stage] = map[pipeline.Status]int{}
		}
		counts[evt.Stage][evt.Status]++
	}
	if counts[pipeline.StageRead][pipeline.StatusQueued] != 1 ||
		counts[pipeline.StageRead][pipeline.StatusDone] != 1 ||
		counts[pipeline.StageMinify][pipeline.StatusDone] != 1 {
		t.Fatalf("event counts: %v", counts)
	}
	// no write stage without an output target
	if len(counts[pipeline.StageWrite]) != 0 {
		t.Fatalf("unexpected write events: %v", counts)
	}
}

func TestOutPath(t *testing.T) {
	tests := []struct {
		cfg  Config
		in   string
		want string
	}{
		{Config{}, "src/a.js", ""},
		{Config{Suffix: ".min"}, "src/a.js", filepath.Join("src", "a.min.js")},
		{Config{OutDir: "out"}, "src/a.js", filepath.Join("out", "a.js")},
		{Config{OutDir: "out", Suffix: ".min"}, "src/b.css", filepath.Join("out", "b.min.css")},
	}
	for _, tt := range tests {
		if got := tt.cfg.outPath(tt.in); got != tt.want {
			t.Fatalf("outPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
