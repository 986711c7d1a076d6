// Package driver minifies batches of files concurrently, with a disk
// cache keyed by content digest so unchanged inputs skip re-minification.
// Per-file progress flows through a pipeline.ProgressSink.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"squish"
	"squish/internal/diag"
	"squish/internal/pipeline"
)

// Config shapes one batch run.
type Config struct {
	// Script configures runs over script files; nil uses defaults.
	Script *squish.Options
	// Style configures runs over stylesheet files; nil uses defaults.
	Style *squish.StyleOptions

	// OutDir receives outputs by base name. Empty with a Suffix writes
	// next to each input; empty with no Suffix keeps results in memory.
	OutDir string
	// Suffix is inserted before the extension: "a.js" -> "a.min.js".
	Suffix string

	// Jobs bounds parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Cache, when set, short-circuits unchanged inputs.
	Cache *DiskCache

	// Progress receives stage events; nil discards them.
	Progress pipeline.ProgressSink
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path        string
	OutPath     string // empty when nothing was written
	Text        string
	Diagnostics []diag.Diagnostic
	Err         error
	Cached      bool
	InSize      int
	Timing      pipeline.Timings
}

// HasErrors reports whether the run produced diagnostics or failed.
func (r *FileResult) HasErrors() bool {
	return r.Err != nil || len(r.Diagnostics) > 0
}

// Run minifies every path, in parallel up to cfg.Jobs. Results come back
// in sorted path order. Per-file failures land in the FileResult; the
// returned error reports only cancellation and infrastructure failures.
func Run(ctx context.Context, paths []string, cfg Config) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	files := append([]string(nil), paths...)
	sort.Strings(files)

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range files {
		cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusQueued})
	}

	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = cfg.runFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// IsStylePath reports whether the batch treats path as a stylesheet.
func IsStylePath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

func (cfg *Config) runFile(path string) FileResult {
	res := FileResult{Path: path}

	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusWorking})
	start := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusError, Err: err})
		res.Err = err
		return res
	}
	res.InSize = len(content)
	res.Timing.Set(pipeline.StageRead, time.Since(start))
	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageRead, Status: pipeline.StatusDone, Elapsed: res.Timing.Duration(pipeline.StageRead)})

	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageMinify, Status: pipeline.StatusWorking})
	start = time.Now()
	if err := cfg.minify(path, content, &res); err != nil {
		cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageMinify, Status: pipeline.StatusError, Err: err})
		res.Err = err
		return res
	}
	res.Timing.Set(pipeline.StageMinify, time.Since(start))
	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageMinify, Status: pipeline.StatusDone, Elapsed: res.Timing.Duration(pipeline.StageMinify)})

	out := cfg.outPath(path)
	if out == "" {
		return res
	}
	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusWorking})
	start = time.Now()
	if err := os.WriteFile(out, []byte(res.Text), 0o644); err != nil {
		cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusError, Err: err})
		res.Err = err
		return res
	}
	res.OutPath = out
	res.Timing.Set(pipeline.StageWrite, time.Since(start))
	cfg.emit(pipeline.Event{File: path, Stage: pipeline.StageWrite, Status: pipeline.StatusDone, Elapsed: res.Timing.Duration(pipeline.StageWrite)})
	return res
}

func (cfg *Config) minify(path string, content []byte, res *FileResult) error {
	key := KeyFor(content, cfg.fingerprint(path))
	cacheable := cfg.cacheable(path)

	if cacheable {
		var payload cachePayload
		if hit, err := cfg.Cache.get(key, &payload); err == nil && hit {
			res.Text = payload.Text
			res.Diagnostics = payload.Diagnostics
			res.Cached = true
			return nil
		}
	}

	var (
		r   *squish.Result
		err error
	)
	if IsStylePath(path) {
		opts := squish.StyleOptions{}
		if cfg.Style != nil {
			opts = *cfg.Style
		}
		opts.FileName = path
		r, err = squish.MinifyStyleSheet(content, &opts)
	} else {
		opts := squish.Options{}
		if cfg.Script != nil {
			opts = *cfg.Script
		}
		opts.FileName = path
		r, err = squish.MinifyScript(content, &opts)
	}
	if err != nil {
		return fmt.Errorf("minify %s: %w", path, err)
	}
	res.Text = r.Text
	res.Diagnostics = r.Diagnostics

	if cacheable {
		// best effort; a failed write just means no hit next time
		_ = cfg.Cache.put(key, &cachePayload{
			Schema:      cacheSchemaVersion,
			Text:        r.Text,
			Diagnostics: r.Diagnostics,
			HadErrors:   r.HasErrors(),
		})
	}
	return nil
}

// cacheable excludes runs whose output is not a pure function of content
// and fingerprint: a symbol-map collaborator accumulates external state.
func (cfg *Config) cacheable(path string) bool {
	if cfg.Cache == nil {
		return false
	}
	if !IsStylePath(path) && cfg.Script != nil && cfg.Script.SymbolMap != nil {
		return false
	}
	return true
}

// fingerprint folds every option that shapes the output into the cache
// key, so changed settings invalidate naturally.
func (cfg *Config) fingerprint(path string) string {
	if IsStylePath(path) {
		s := squish.StyleOptions{}
		if cfg.Style != nil {
			s = *cfg.Style
		}
		script := ""
		if s.Script != nil {
			script = scriptFingerprint(*s.Script)
		}
		return fmt.Sprintf("css|warn=%d|colors=%t|term=%q|script=%s",
			s.WarningLevel, s.ColorNames, s.LineTerminator, script)
	}
	o := squish.Options{}
	if cfg.Script != nil {
		o = *cfg.Script
	}
	return "js|" + scriptFingerprint(o)
}

func scriptFingerprint(o squish.Options) string {
	return fmt.Sprintf("warn=%d|fmt=%d|pre=%t|defines=%s|term=%q|maxerr=%d",
		o.WarningLevel, o.Format, o.PreprocessOnly,
		strings.Join(o.Defines, ","), o.LineTerminator, o.MaxErrors)
}

func (cfg *Config) outPath(path string) string {
	base := filepath.Base(path)
	if cfg.Suffix != "" {
		ext := filepath.Ext(base)
		base = strings.TrimSuffix(base, ext) + cfg.Suffix + ext
	}
	switch {
	case cfg.OutDir != "":
		return filepath.Join(cfg.OutDir, base)
	case cfg.Suffix != "":
		return filepath.Join(filepath.Dir(path), base)
	default:
		return ""
	}
}

func (cfg *Config) emit(evt pipeline.Event) {
	if cfg.Progress != nil {
		cfg.Progress.OnEvent(evt)
	}
}
