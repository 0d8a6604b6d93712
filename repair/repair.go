// Package repair is the public entry point of the repair pipeline. It
// loads configuration, builds an engine and runs it over files and
// directories.
package repair

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gnolang/cfix/internal"
	"github.com/gnolang/cfix/internal/semantic"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/scanner"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParseFailureHint follows every downstream parse failure.
const ParseFailureHint = "run cfix fix first and re-check the repaired file"

type RepairEngine interface {
	Run(filePath string, mode tt.Mode) (tt.FileResult, error)
	RunSource(source []byte, mode tt.Mode) (tt.FileResult, error)
	IgnoreRule(rule string)
}

// Processor repairs a single file.
type Processor func(engine RepairEngine, path string, mode tt.Mode) (tt.FileResult, error)

// New builds an engine from the configuration file at configurationPath.
// An empty path uses the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	config, err := LoadConfig(configurationPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(config)
}

// NewWithConfig builds an engine from an already loaded configuration.
func NewWithConfig(config Config) (*internal.Engine, error) {
	engine, err := internal.NewEngine(config.Rules)
	if err != nil {
		return nil, err
	}

	if !config.Cache.Enabled {
		return engine, nil
	}
	cache, err := internal.NewCache(config.Cache.Dir)
	if err != nil {
		return nil, err
	}
	if config.Cache.MaxAge > 0 {
		cache.SetMaxAge(config.Cache.MaxAge)
	}
	if config.path != "" {
		if err := cache.SetDependencies(config.path); err != nil {
			return nil, err
		}
	}
	engine.UseCache(cache)
	return engine, nil
}

// Options tunes batch processing.
type Options struct {
	// Jobs bounds the number of files repaired at once. Zero means one per CPU.
	Jobs int
	// Progress receives the progress bar for directories. Nil disables it.
	Progress io.Writer
}

func ProcessSource(engine RepairEngine, source []byte, mode tt.Mode) (tt.FileResult, error) {
	return engine.RunSource(source, mode)
}

func ProcessFile(engine RepairEngine, filePath string, mode tt.Mode) (tt.FileResult, error) {
	return engine.Run(filePath, mode)
}

// ProcessFiles processes every path in order and concatenates the results.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine RepairEngine,
	paths []string,
	mode tt.Mode,
	opts Options,
	processor Processor,
) ([]tt.FileResult, error) {
	var all []tt.FileResult
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, mode, opts, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return all, err
		}
		all = append(all, results...)
	}

	return all, nil
}

// ProcessPath repairs a file, or every C source below a directory. Files
// of a directory are processed concurrently and returned sorted by path.
// A file that fails to process is logged and skipped.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine RepairEngine,
	path string,
	mode tt.Mode,
	opts Options,
	processor Processor,
) ([]tt.FileResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		result, err := processor(engine, path, mode)
		if err != nil {
			return nil, err
		}
		return []tt.FileResult{result}, nil
	}

	files, err := scanner.New(path).Scan()
	if err != nil {
		return nil, fmt.Errorf("error scanning %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	// each goroutine owns its index, so no lock is needed
	results := make([]*tt.FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := processor(engine, file.Path, mode)
			if bar != nil {
				bar.Describe(filepath.Base(file.Path))
				_ = bar.Add(1)
			}
			if err != nil {
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", file.Path), zap.Error(err))
				}
				return nil
			}
			results[i] = &result
			return nil
		})
	}

	err = g.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	out := make([]tt.FileResult, 0, len(files))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, err
}

// Analysis is the outcome of repairing a file and checking the repaired
// text.
type Analysis struct {
	File     tt.FileResult
	Semantic []tt.Issue
	// ParseErr is set when the checker could not parse the repaired text.
	ParseErr *semantic.ParseError
}

// Analyze repairs the file at path in fix mode and runs checker over the
// repaired text. The file on disk is not modified. A parse failure is
// reported in the result rather than as an error, and no further repair
// is attempted.
func Analyze(ctx context.Context, engine RepairEngine, checker semantic.Checker, path string) (Analysis, error) {
	result, err := engine.Run(path, tt.ModeFix)
	if err != nil {
		return Analysis{}, err
	}

	analysis := Analysis{File: result}
	issues, err := checker.Check(ctx, path, []byte(result.Text))
	var perr *semantic.ParseError
	switch {
	case errors.As(err, &perr):
		analysis.ParseErr = perr
	case err != nil:
		return analysis, fmt.Errorf("error checking %s: %w", path, err)
	default:
		analysis.Semantic = issues
	}
	return analysis, nil
}

// ParseFailureIssue converts a parse failure into a reportable issue.
func ParseFailureIssue(perr *semantic.ParseError) tt.Issue {
	issue := tt.Issue{
		Rule:     "parse",
		Kind:     tt.KindDownstreamParseFailure,
		Severity: tt.SeverityError,
		Filename: perr.Filename,
		Message:  perr.Error() + "; " + ParseFailureHint,
	}
	issue.Start.Filename, issue.Start.Line, issue.Start.Column = perr.Filename, perr.Line, 1
	issue.End = issue.Start
	return issue
}
