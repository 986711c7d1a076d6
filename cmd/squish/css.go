package main

import (
	"github.com/spf13/cobra"

	"squish"
	"squish/internal/driver"
)

var cssCmd = &cobra.Command{
	Use:          "css [flags] <file>...",
	Short:        "Minify stylesheet files",
	Long:         "Minify stylesheet files. Without --out or --suffix the result goes to stdout.",
	Args:         cobra.MinimumNArgs(1),
	RunE:         cssExecution,
	SilenceUsage: true,
}

func init() {
	cssCmd.Flags().Uint("warn", 0, "keep diagnostics up to this severity (0=errors only)")
	cssCmd.Flags().Bool("color-names", false, "swap color literals for their shortest spelling")
	cssCmd.Flags().String("out", "", "write outputs into this directory")
	cssCmd.Flags().String("suffix", "", `insert a suffix before the extension, e.g. ".min"`)
	cssCmd.Flags().Int("jobs", 0, "parallel workers (0=all cores)")
	cssCmd.Flags().Bool("cache", false, "reuse cached results for unchanged inputs")
	cssCmd.Flags().String("ui", "auto", "progress view (auto|on|off)")
}

func cssExecution(cmd *cobra.Command, args []string) error {
	project, _, err := loadProjectConfig(".")
	if err != nil {
		return err
	}
	settings, err := readBatchSettings(cmd, project)
	if err != nil {
		return err
	}

	opts := &squish.StyleOptions{}
	warn, err := cmd.Flags().GetUint("warn")
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("warn") {
		warn = project.Style.Warn
	}
	opts.WarningLevel = int(warn)

	if opts.ColorNames, err = cmd.Flags().GetBool("color-names"); err != nil {
		return err
	}
	if !cmd.Flags().Changed("color-names") && project.Style.ColorNames {
		opts.ColorNames = true
	}

	cfg := driver.Config{
		Style:  opts,
		OutDir: settings.outDir,
		Suffix: settings.suffix,
		Jobs:   settings.jobs,
	}
	return runBatch(cmd, args, cfg, settings)
}
