package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/cfix/formatter"
	"github.com/gnolang/cfix/internal"
	"github.com/gnolang/cfix/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [paths...]",
	Short: "Point out loops and recursion that may deserve a better algorithm",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		files, err := collectFiles(args)
		if err != nil {
			logger.Fatal("Error collecting files", zap.Error(err))
		}

		for _, path := range files {
			content, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", path), zap.Error(err))
				continue
			}
			issues := suggest.Analyze(path, string(content))
			fmt.Print(formatter.GenerateFormattedIssue(issues, internal.NewSourceCode(string(content))))
		}
	},
}
