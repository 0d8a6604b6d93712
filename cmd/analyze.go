package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/cfix/formatter"
	"github.com/gnolang/cfix/internal"
	"github.com/gnolang/cfix/internal/semantic"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/repair"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [paths...]",
	Short: "Repair in memory, then check declarations and uses",
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

		if failed := runAnalyze(ctx, logger, engine, semantic.New(), args); failed {
			os.Exit(1)
		}
	},
}

// runAnalyze prints repair issues and semantic findings per file. It
// reports whether any file could not be checked.
func runAnalyze(ctx context.Context, logger *zap.Logger, engine repair.RepairEngine, checker semantic.Checker, paths []string) bool {
	files, err := collectFiles(paths)
	if err != nil {
		logger.Error("Error collecting files", zap.Error(err))
		return true
	}

	failed := false
	for _, path := range files {
		analysis, err := repair.Analyze(ctx, engine, checker, path)
		if err != nil {
			logger.Error("Error analyzing file", zap.String("file", path), zap.Error(err))
			failed = true
			continue
		}

		fmt.Println("--- Syntax/Heuristic Issues ---")
		fmt.Print(formatter.GenerateFormattedIssue(analysis.File.Issues, internal.NewSourceCode(analysis.File.Source)))

		fmt.Println("--- Semantic Analysis ---")
		if analysis.ParseErr != nil {
			failed = true
			fmt.Print(formatter.GenerateFormattedIssue([]tt.Issue{repair.ParseFailureIssue(analysis.ParseErr)}, internal.NewSourceCode(analysis.File.Text)))
			continue
		}
		fmt.Print(formatter.GenerateFormattedIssue(analysis.Semantic, internal.NewSourceCode(analysis.File.Text)))
		fmt.Printf("%s: analysis complete (%d finding(s))\n", path, len(analysis.Semantic))
	}
	return failed
}
