package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"squish"
	"squish/internal/driver"
	"squish/internal/sourcemap"
)

var jsCmd = &cobra.Command{
	Use:          "js [flags] <file>...",
	Short:        "Minify script files",
	Long:         "Minify script files. Without --out or --suffix the result goes to stdout.",
	Args:         cobra.MinimumNArgs(1),
	RunE:         jsExecution,
	SilenceUsage: true,
}

func init() {
	jsCmd.Flags().Uint("warn", 0, "keep diagnostics up to this severity (0=errors only)")
	jsCmd.Flags().String("format", "standard", "output format (standard|json)")
	jsCmd.Flags().Bool("preprocess-only", false, "resolve conditional comments and stop")
	jsCmd.Flags().StringArray("define", nil, "predefine a conditional-comment symbol (repeatable)")
	jsCmd.Flags().String("map", "", "write a source map to this path (single input only)")
	jsCmd.Flags().Uint("max-errors", 0, "stop parsing after this many errors (0=unlimited)")
	jsCmd.Flags().String("out", "", "write outputs into this directory")
	jsCmd.Flags().String("suffix", "", `insert a suffix before the extension, e.g. ".min"`)
	jsCmd.Flags().Int("jobs", 0, "parallel workers (0=all cores)")
	jsCmd.Flags().Bool("cache", false, "reuse cached results for unchanged inputs")
	jsCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func jsExecution(cmd *cobra.Command, args []string) error {
	project, _, err := loadProjectConfig(".")
	if err != nil {
		return err
	}
	settings, err := readBatchSettings(cmd, project)
	if err != nil {
		return err
	}

	opts, err := readScriptOptions(cmd, project)
	if err != nil {
		return err
	}

	mapPath, err := cmd.Flags().GetString("map")
	if err != nil {
		return err
	}
	var symbolMap *sourcemap.V3Map
	if mapPath != "" {
		if len(args) != 1 {
			return fmt.Errorf("--map requires exactly one input file")
		}
		outName := filepath.Base(args[0])
		symbolMap = sourcemap.NewV3Map(outName, filepath.Base(mapPath))
		opts.SymbolMap = symbolMap
	}

	cfg := driver.Config{
		Script: opts,
		OutDir: settings.outDir,
		Suffix: settings.suffix,
		Jobs:   settings.jobs,
	}
	if err := runBatch(cmd, args, cfg, settings); err != nil {
		return err
	}

	if symbolMap != nil {
		data, err := symbolMap.Marshal()
		if err != nil {
			return fmt.Errorf("failed to build source map: %w", err)
		}
		if err := os.WriteFile(mapPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write source map: %w", err)
		}
	}
	return nil
}

// readScriptOptions merges js flags with squish.toml [script] defaults.
func readScriptOptions(cmd *cobra.Command, project projectConfig) (*squish.Options, error) {
	opts := &squish.Options{}

	warn, err := cmd.Flags().GetUint("warn")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("warn") {
		warn = project.Script.Warn
	}
	opts.WarningLevel = int(warn)

	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("format") && project.Script.Format != "" {
		formatValue = project.Script.Format
	}
	switch strings.ToLower(formatValue) {
	case "standard":
		opts.Format = squish.FormatStandard
	case "json":
		opts.Format = squish.FormatJSON
	default:
		return nil, fmt.Errorf("invalid --format value %q (expected standard|json)", formatValue)
	}

	if opts.PreprocessOnly, err = cmd.Flags().GetBool("preprocess-only"); err != nil {
		return nil, err
	}
	if opts.Defines, err = cmd.Flags().GetStringArray("define"); err != nil {
		return nil, err
	}
	if len(opts.Defines) == 0 {
		opts.Defines = project.Script.Defines
	}
	if opts.MaxErrors, err = cmd.Flags().GetUint("max-errors"); err != nil {
		return nil, err
	}
	return opts, nil
}
