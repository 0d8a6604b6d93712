package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gnolang/cfix/formatter"
	"github.com/gnolang/cfix/internal"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/scanner"
	"go.uber.org/zap"
)

func printResults(logger *zap.Logger, results []tt.FileResult, isJson bool, jsonOutput string) {
	if isJson {
		writeJSON(logger, results, jsonOutput)
		return
	}

	for _, result := range results {
		if len(result.Issues) == 0 {
			continue
		}
		fmt.Print(formatter.GenerateFormattedIssue(result.Issues, internal.NewSourceCode(result.Source)))
	}
}

func writeJSON(logger *zap.Logger, results []tt.FileResult, jsonOutput string) {
	d, err := formatter.FormatJSON(results)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.String("file", jsonOutput), zap.Error(err))
	}
}

// hasFindings reports whether any issue is more than informational.
func hasFindings(results []tt.FileResult) bool {
	for _, r := range results {
		for _, issue := range r.Issues {
			if issue.Severity == tt.SeverityError || issue.Severity == tt.SeverityWarning {
				return true
			}
		}
	}
	return false
}

// collectFiles expands directories into the C sources below them.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(path))
			continue
		}
		found, err := scanner.New(path).Scan()
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}
