package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnolang/cfix/internal"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/repair"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Check C sources again every time they are saved",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		config, err := repair.LoadConfig(cfgFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		engine, err := repair.NewWithConfig(config)
		if err != nil {
			logger.Fatal("Failed to initialize repair engine", zap.Error(err))
		}

		w, err := internal.NewWatcher(engine, tt.ModeCheck, logger, func(result tt.FileResult) {
			printResults(logger, []tt.FileResult{result}, false, "")
		}, args...)
		if err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("watching %d path(s), press Ctrl+C to stop\n", len(args))
		if err := w.Watch(ctx); err != nil {
			logger.Error("watch stopped", zap.Error(err))
		}
	},
}
