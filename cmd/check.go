package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/repair"
)

var (
	ignoreRules string
	jsonOutput  bool
	outPath     string
	jobs        int
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report syntax problems without changing any file",
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

		runCheck(ctx, logger, engine, args, jsonOutput, outPath)
	},
}

func init() {
	for _, c := range []*cobra.Command{checkCmd, fixCmd} {
		c.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
		c.Flags().BoolVar(&jsonOutput, "json", false, "Output issues in JSON format")
		c.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
		c.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of files processed at once (default: number of CPUs)")
	}
}

func newEngine(config repair.Config) (repair.RepairEngine, error) {
	engine, err := repair.NewWithConfig(config)
	if err != nil {
		return nil, err
	}
	if ignoreRules != "" {
		for _, rule := range strings.Split(ignoreRules, ",") {
			engine.IgnoreRule(strings.TrimSpace(rule))
		}
	}
	return engine, nil
}

func batchOptions() repair.Options {
	return repair.Options{Jobs: jobs, Progress: os.Stderr}
}

func runCheck(ctx context.Context, logger *zap.Logger, engine repair.RepairEngine, paths []string, isJson bool, jsonOutput string) {
	results, err := repair.ProcessFiles(ctx, logger, engine, paths, tt.ModeCheck, batchOptions(), repair.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printResults(logger, results, isJson, jsonOutput)

	if hasFindings(results) {
		os.Exit(1)
	}
}
