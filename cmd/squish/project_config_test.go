package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindSquishTomlWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	manifest := filepath.Join(root, "squish.toml")
	if err := os.WriteFile(manifest, []byte("[script]\nwarn = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	path, ok, err := findSquishToml(nested)
	if err != nil {
		t.Fatalf("findSquishToml: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found from nested dir")
	}
	if path != manifest {
		t.Errorf("path = %q, want %q", path, manifest)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
[script]
warn = 2
format = "json"
defines = ["DEBUG", "TRACE"]

[style]
color_names = true

[output]
suffix = ".min"

[cache]
enabled = true
`
	if err := os.WriteFile(filepath.Join(dir, "squish.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, ok, err := loadProjectConfig(dir)
	if err != nil {
		t.Fatalf("loadProjectConfig: %v", err)
	}
	if !ok {
		t.Fatal("expected manifest to be found")
	}
	if cfg.Script.Warn != 2 {
		t.Errorf("Script.Warn = %d, want 2", cfg.Script.Warn)
	}
	if cfg.Script.Format != "json" {
		t.Errorf("Script.Format = %q, want %q", cfg.Script.Format, "json")
	}
	if len(cfg.Script.Defines) != 2 || cfg.Script.Defines[0] != "DEBUG" {
		t.Errorf("Script.Defines = %v", cfg.Script.Defines)
	}
	if !cfg.Style.ColorNames {
		t.Error("Style.ColorNames should be true")
	}
	if cfg.Output.Suffix != ".min" {
		t.Errorf("Output.Suffix = %q, want %q", cfg.Output.Suffix, ".min")
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled should be true")
	}
}

func TestLoadProjectConfigRejectsBadFormat(t *testing.T) {
	dir := t.TempDir()
	content := "[script]\nformat = \"pretty\"\n"
	if err := os.WriteFile(filepath.Join(dir, "squish.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadProjectConfig(dir); err == nil {
		t.Fatal("expected error for invalid [script].format")
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		value   string
		want    uiMode
		wantErr bool
	}{
		{"auto", uiModeAuto, false},
		{"", uiModeAuto, false},
		{"on", uiModeOn, false},
		{"OFF", uiModeOff, false},
		{" On ", uiModeOn, false},
		{"yes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tt.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("readUIMode(%q): %v", tt.value, err)
			continue
		}
		if got != tt.want {
			t.Errorf("readUIMode(%q) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
