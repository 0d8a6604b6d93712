package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/cfix/internal/reflow"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/repair"
	"github.com/gnolang/cfix/scanner"
)

var (
	dryRun      bool
	toStdout    bool
	inPlace     bool
	reflowFixed bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [paths...]",
	Short: "Repair files, writing name_fixed.c next to each name.c",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		config, err := repair.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		engine, err := newEngine(config)
		if err != nil {
			logger.Fatal("Failed to initialize repair engine", zap.Error(err))
		}

		opts := fixOptions{
			dryRun:   dryRun,
			toStdout: toStdout,
			inPlace:  inPlace,
			reflow:   reflowFixed || config.Reflow.Enabled,
			indent:   config.Reflow.Indent,
		}
		runAutoFix(ctx, logger, engine, args, opts)
	},
}

func init() {
	fixCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report the fixes without writing any file")
	fixCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the repaired text instead of writing files")
	fixCmd.Flags().BoolVar(&inPlace, "in-place", false, "Overwrite the input files instead of writing name_fixed.c")
	fixCmd.Flags().BoolVar(&reflowFixed, "reflow", false, "Re-indent the repaired text")
	fixCmd.MarkFlagsMutuallyExclusive("stdout", "in-place")
}

type fixOptions struct {
	dryRun   bool
	toStdout bool
	inPlace  bool
	reflow   bool
	indent   int
}

func runAutoFix(ctx context.Context, logger *zap.Logger, engine repair.RepairEngine, paths []string, opts fixOptions) {
	results, err := repair.ProcessFiles(ctx, logger, engine, paths, tt.ModeFix, batchOptions(), repair.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printResults(logger, results, jsonOutput, outPath)

	for _, result := range results {
		text := result.Text
		if opts.reflow {
			indent := reflow.DefaultIndent
			if opts.indent > 0 {
				indent = strings.Repeat(" ", opts.indent)
			}
			text = reflow.Format(text, reflow.Options{Indent: indent})
		}

		switch {
		case opts.dryRun:
			continue
		case opts.toStdout:
			fmt.Print(text)
			continue
		}

		target := scanner.FixedPath(result.Filename)
		if opts.inPlace {
			target = result.Filename
		}
		if err := writeFixed(target, text); err != nil {
			logger.Error("error writing fixed file", zap.String("path", target), zap.Error(err))
			continue
		}
		if !jsonOutput {
			fmt.Printf("Auto-fixed code saved to: %s\n", target)
		}
	}
}

func writeFixed(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(text), mode)
}
