package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnolang/cfix/internal/semantic"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/gnolang/cfix/repair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const brokenSource = "int main() {\n    int a\n  return 0;\n}\n"

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func defaultEngine(t *testing.T) repair.RepairEngine {
	t.Helper()
	engine, err := repair.NewWithConfig(repair.DefaultConfig())
	require.NoError(t, err)
	return engine
}

func TestHasFindings(t *testing.T) {
	t.Parallel()
	withSeverity := func(s tt.Severity) []tt.FileResult {
		return []tt.FileResult{{RepairResult: tt.RepairResult{Issues: []tt.Issue{{Severity: s}}}}}
	}

	assert.False(t, hasFindings(nil))
	assert.False(t, hasFindings(withSeverity(tt.SeverityInfo)))
	assert.True(t, hasFindings(withSeverity(tt.SeverityWarning)))
	assert.True(t, hasFindings(withSeverity(tt.SeverityError)))
}

func TestCollectFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	a := writeSource(t, dir, "a.c", "")
	b := writeSource(t, dir, "b.h", "")
	writeSource(t, dir, "readme.md", "")
	single := writeSource(t, t.TempDir(), "single.c", "")

	files, err := collectFiles([]string{single, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{single, a, b}, files)

	_, err = collectFiles([]string{filepath.Join(dir, "missing.c")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunAutoFix(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		opts      fixOptions
		wantFixed string
		wantInput string
	}{
		{
			name:      "writes fixed copy",
			wantFixed: "int main() {\n    int a;\n  return 0;\n}\n",
			wantInput: brokenSource,
		},
		{
			name:      "in place",
			opts:      fixOptions{inPlace: true},
			wantInput: "int main() {\n    int a;\n  return 0;\n}\n",
		},
		{
			name:      "dry run",
			opts:      fixOptions{dryRun: true},
			wantInput: brokenSource,
		},
		{
			name:      "reflow",
			opts:      fixOptions{reflow: true, indent: 2},
			wantFixed: "int main() {\n  int a;\n  return 0;\n}\n",
			wantInput: brokenSource,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeSource(t, t.TempDir(), "prog.c", brokenSource)

			runAutoFix(context.Background(), zap.NewNop(), defaultEngine(t), []string{path}, tc.opts)

			input, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInput, string(input))

			fixed, err := os.ReadFile(filepath.Join(filepath.Dir(path), "prog_fixed.c"))
			if tc.wantFixed == "" {
				assert.ErrorIs(t, err, os.ErrNotExist)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFixed, string(fixed))
		})
	}
}

func TestWriteFixedKeepsMode(t *testing.T) {
	t.Parallel()
	path := writeSource(t, t.TempDir(), "run.c", "")
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, writeFixed(path, "int a;\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRunAnalyze(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := writeSource(t, dir, "good.c", brokenSource)
	bad := writeSource(t, t.TempDir(), "bad.c", "int main() {\n    int a b;\n}\n")

	assert.False(t, runAnalyze(context.Background(), zap.NewNop(), defaultEngine(t), semantic.New(), []string{good}))
	assert.True(t, runAnalyze(context.Background(), zap.NewNop(), defaultEngine(t), semantic.New(), []string{bad}))
	assert.True(t, runAnalyze(context.Background(), zap.NewNop(), defaultEngine(t), semantic.New(),
		[]string{filepath.Join(dir, "missing.c")}))

	// the analysed file is never rewritten
	content, err := os.ReadFile(good)
	require.NoError(t, err)
	assert.Equal(t, brokenSource, string(content))
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	logger, err := newLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = newLogger("loud")
	assert.Error(t, err)
}
