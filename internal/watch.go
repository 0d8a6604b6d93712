package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	tt "github.com/gnolang/cfix/internal/types"
	"go.uber.org/zap"
)

// settleDelay groups the bursts of write events editors produce on save.
const settleDelay = 100 * time.Millisecond

// Watcher re-runs the engine on C sources whenever they are written.
type Watcher struct {
	engine  *Engine
	mode    tt.Mode
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	onFile  func(tt.FileResult)

	mu       sync.Mutex
	watching bool
}

// NewWatcher creates a watcher over dirs. onFile receives the result of
// every re-run; it may be nil, in which case results are only logged.
func NewWatcher(engine *Engine, mode tt.Mode, logger *zap.Logger, onFile func(tt.FileResult), dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return fw.Add(path)
			}
			return nil
		})
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	return &Watcher{
		engine:  engine,
		mode:    mode,
		logger:  logger,
		watcher: fw,
		onFile:  onFile,
	}, nil
}

// Watch blocks until ctx is cancelled or the underlying watcher fails.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return errors.New("already watching")
	}
	w.watching = true
	w.mu.Unlock()

	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) || !IsSourceFile(event.Name) {
		return
	}

	time.Sleep(settleDelay)
	result, err := w.engine.Run(event.Name, w.mode)
	if err != nil {
		w.logger.Error("error repairing file", zap.String("path", event.Name), zap.Error(err))
		return
	}
	w.reportIssues(result)
}

func (w *Watcher) reportIssues(result tt.FileResult) {
	if w.onFile != nil {
		w.onFile(result)
	}

	if len(result.Issues) == 0 {
		w.logger.Info("no issues found", zap.String("path", result.Filename))
		return
	}

	w.logger.Info("found issues", zap.String("path", result.Filename), zap.Int("count", len(result.Issues)))
	for _, issue := range result.Issues {
		w.logger.Debug("issue", zap.String("rule", issue.Rule), zap.String("message", issue.Message))
	}
}

// IsSourceFile reports whether path names a C source or header.
func IsSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".c", ".h":
		return true
	}
	return false
}
