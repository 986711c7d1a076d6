package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"squish/internal/diag"
	"squish/internal/diagfmt"
	"squish/internal/driver"
)

// batchSettings are the flags common to the js and css commands, merged
// with squish.toml defaults.
type batchSettings struct {
	outDir   string
	suffix   string
	jobs     int
	useCache bool
	useTUI   bool
	useColor bool
	quiet    bool
	maxDiags int
}

func readBatchSettings(cmd *cobra.Command, project projectConfig) (batchSettings, error) {
	var s batchSettings
	var err error

	if s.outDir, err = cmd.Flags().GetString("out"); err != nil {
		return s, err
	}
	if s.suffix, err = cmd.Flags().GetString("suffix"); err != nil {
		return s, err
	}
	if s.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return s, err
	}
	if s.useCache, err = cmd.Flags().GetBool("cache"); err != nil {
		return s, err
	}
	if !cmd.Flags().Changed("out") && project.Output.Dir != "" {
		s.outDir = project.Output.Dir
	}
	if !cmd.Flags().Changed("suffix") && project.Output.Suffix != "" {
		s.suffix = project.Output.Suffix
	}
	if !cmd.Flags().Changed("cache") && project.Cache.Enabled {
		s.useCache = true
	}

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return s, err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return s, err
	}
	s.useTUI = shouldUseTUI(mode)

	colorValue, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return s, err
	}
	if s.useColor, err = readColorMode(colorValue); err != nil {
		return s, err
	}
	color.NoColor = !s.useColor

	if s.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return s, err
	}
	if s.maxDiags, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return s, err
	}
	return s, nil
}

// runBatch drives the whole run: minify every file, report diagnostics,
// and either write outputs or print the minified text to stdout.
func runBatch(cmd *cobra.Command, files []string, cfg driver.Config, s batchSettings) error {
	if s.useCache {
		cache, err := driver.OpenDiskCache("squish")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		cfg.Cache = cache
	}

	var (
		results []driver.FileResult
		err     error
	)
	hasTarget := s.outDir != "" || s.suffix != ""
	if s.useTUI && hasTarget && len(files) > 1 {
		results, err = runBatchWithUI(cmd.Context(), "squish "+cmd.Name(), files, cfg)
	} else {
		results, err = driver.Run(cmd.Context(), files, cfg)
	}
	if err != nil {
		return err
	}

	failed := 0
	var diags []diag.Diagnostic
	contents := map[string][]byte{}
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Path, res.Err)
			continue
		}
		if res.HasErrors() {
			diags = append(diags, res.Diagnostics...)
			if content, readErr := os.ReadFile(res.Path); readErr == nil {
				contents[res.Path] = content
			}
		}
		for _, d := range res.Diagnostics {
			if d.Severity == diag.SevError {
				failed++
				break
			}
		}
	}
	dropped := 0
	if s.maxDiags > 0 && len(diags) > s.maxDiags {
		dropped = len(diags) - s.maxDiags
		diags = diags[:s.maxDiags]
	}
	diagfmt.Pretty(os.Stderr, diags, contents, diagfmt.PrettyOpts{
		Color:   s.useColor,
		Context: true,
	})
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "...and %d more diagnostics\n", dropped)
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !hasTarget {
			fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		} else if !s.quiet && res.OutPath != "" && !s.useTUI {
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", res.Path, res.OutPath)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}
