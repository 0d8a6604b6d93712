package repair

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnolang/cfix/internal/semantic"
	tt "github.com/gnolang/cfix/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRepairEngine struct {
	mock.Mock
}

func (m *mockRepairEngine) Run(filePath string, mode tt.Mode) (tt.FileResult, error) {
	args := m.Called(filePath, mode)
	return args.Get(0).(tt.FileResult), args.Error(1)
}

func (m *mockRepairEngine) RunSource(source []byte, mode tt.Mode) (tt.FileResult, error) {
	args := m.Called(source, mode)
	return args.Get(0).(tt.FileResult), args.Error(1)
}

func (m *mockRepairEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) Check(ctx context.Context, filename string, src []byte) ([]tt.Issue, error) {
	args := m.Called(filename, string(src))
	issues, _ := args.Get(0).([]tt.Issue)
	return issues, args.Error(1)
}

func resultFor(path, rule string) tt.FileResult {
	pos := token.Position{Filename: path, Line: 1, Column: 1}
	return tt.FileResult{
		Filename: path,
		RepairResult: tt.RepairResult{
			Issues: []tt.Issue{{Rule: rule, Filename: path, Start: pos, End: pos, Message: "Test issue"}},
		},
	}
}

func createTempFiles(t *testing.T, dir string, fileNames ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(fileNames))
	for _, fileName := range fileNames {
		filePath := filepath.Join(dir, fileName)
		require.NoError(t, os.WriteFile(filePath, []byte("int x;\n"), 0o644))
		paths = append(paths, filePath)
	}
	return paths
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expected := resultFor("test.c", "test-rule")
	mockEngine := new(mockRepairEngine)
	mockEngine.On("Run", "test.c", tt.ModeCheck).Return(expected, nil)

	result, err := ProcessFile(mockEngine, "test.c", tt.ModeCheck)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	expected := resultFor("", "test-rule")
	mockEngine := new(mockRepairEngine)
	mockEngine.On("RunSource", []byte("int x"), tt.ModeFix).Return(expected, nil)

	result, err := ProcessSource(mockEngine, []byte("int x"), tt.ModeFix)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockEngine.AssertExpectations(t)
}

func TestProcessPath(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	tempDir := t.TempDir()

	paths := createTempFiles(t, tempDir, "b.c", "a.h", "notes.txt")

	mockEngine := new(mockRepairEngine)
	mockEngine.On("Run", paths[0], tt.ModeCheck).Return(resultFor(paths[0], "rule1"), nil)
	mockEngine.On("Run", paths[1], tt.ModeCheck).Return(resultFor(paths[1], "rule2"), nil)

	results, err := ProcessPath(context.Background(), logger, mockEngine, tempDir, tt.ModeCheck, Options{Jobs: 2}, ProcessFile)

	require.NoError(t, err)
	require.Len(t, results, 2)
	// sorted by path, text files skipped
	assert.Equal(t, paths[1], results[0].Filename)
	assert.Equal(t, paths[0], results[1].Filename)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathSkipsFailedFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "bad.c", "good.c")

	mockEngine := new(mockRepairEngine)
	mockEngine.On("Run", paths[0], tt.ModeCheck).Return(tt.FileResult{}, errors.New("boom"))
	mockEngine.On("Run", paths[1], tt.ModeCheck).Return(resultFor(paths[1], "rule"), nil)

	results, err := ProcessPath(context.Background(), zap.NewNop(), mockEngine, tempDir, tt.ModeCheck, Options{}, ProcessFile)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, paths[1], results[0].Filename)
}

func TestProcessPathMissing(t *testing.T) {
	t.Parallel()
	_, err := ProcessPath(context.Background(), nil, new(mockRepairEngine),
		filepath.Join(t.TempDir(), "missing.c"), tt.ModeCheck, Options{}, ProcessFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestProcessPathContextCancellation(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	for i := 0; i < 10; i++ {
		createTempFiles(t, tempDir, fmt.Sprintf("test%d.c", i))
	}

	engine, err := NewWithConfig(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := ProcessPath(ctx, nil, engine, tempDir, tt.ModeCheck, Options{Jobs: 1}, ProcessFile)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestProcessFiles(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	paths := createTempFiles(t, tempDir, "one.c", "two.c")

	mockEngine := new(mockRepairEngine)
	mockEngine.On("Run", paths[0], tt.ModeFix).Return(resultFor(paths[0], "rule1"), nil)
	mockEngine.On("Run", paths[1], tt.ModeFix).Return(resultFor(paths[1], "rule2"), nil)

	results, err := ProcessFiles(context.Background(), zap.NewNop(), mockEngine, paths, tt.ModeFix, Options{}, ProcessFile)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, paths[0], results[0].Filename)
	assert.Equal(t, paths[1], results[1].Filename)
	mockEngine.AssertExpectations(t)
}

func TestProcessFilesRealEngine(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prog.c")
	require.NoError(t, os.WriteFile(path, []byte("int main() {\n    int a\n    return 0;\n}\n"), 0o644))

	engine, err := NewWithConfig(DefaultConfig())
	require.NoError(t, err)

	results, err := ProcessFiles(context.Background(), nil, engine, []string{path}, tt.ModeFix, Options{}, ProcessFile)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "int main() {\n    int a;\n    return 0;\n}\n", results[0].Text)
	require.NotEmpty(t, results[0].Issues)
	assert.Equal(t, path, results[0].Issues[0].Filename)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()
	semanticIssue := tt.Issue{Rule: semantic.UnusedVariable, Kind: tt.KindSemantic, Message: "unused"}

	tests := []struct {
		name         string
		checkIssues  []tt.Issue
		checkErr     error
		wantSemantic []tt.Issue
		wantParse    bool
		wantErr      bool
	}{
		{
			name:         "semantic findings",
			checkIssues:  []tt.Issue{semanticIssue},
			wantSemantic: []tt.Issue{semanticIssue},
		},
		{
			name:      "parse failure",
			checkErr:  &semantic.ParseError{Filename: "a.c", Line: 2, Msg: "expected ';', found 'b'"},
			wantParse: true,
		},
		{
			name:     "checker error",
			checkErr: context.Canceled,
			wantErr:  true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fixed := tt.FileResult{Filename: "a.c", RepairResult: tt.RepairResult{Text: "int b;\n"}}
			mockEngine := new(mockRepairEngine)
			mockEngine.On("Run", "a.c", tt.ModeFix).Return(fixed, nil)
			checker := new(mockChecker)
			checker.On("Check", "a.c", "int b;\n").Return(tc.checkIssues, tc.checkErr)

			analysis, err := Analyze(context.Background(), mockEngine, checker, "a.c")
			if tc.wantErr {
				assert.ErrorIs(t, err, tc.checkErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, fixed, analysis.File)
			assert.Equal(t, tc.wantSemantic, analysis.Semantic)
			assert.Equal(t, tc.wantParse, analysis.ParseErr != nil)
			mockEngine.AssertExpectations(t)
			checker.AssertExpectations(t)
		})
	}
}

func TestAnalyzeRealChecker(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prog.c")
	src := "int main() {\n    int a = 1 printf(\"%d\", a);\n    return 0;\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	engine, err := NewWithConfig(DefaultConfig())
	require.NoError(t, err)

	analysis, err := Analyze(context.Background(), engine, semantic.New(), path)
	require.NoError(t, err)
	assert.Nil(t, analysis.ParseErr)
	assert.Empty(t, analysis.Semantic)

	// the file on disk is untouched
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(content))
}

func TestParseFailureIssue(t *testing.T) {
	t.Parallel()
	issue := ParseFailureIssue(&semantic.ParseError{Filename: "a.c", Line: 3, Msg: "expected ';', found 'return'"})

	assert.Equal(t, tt.KindDownstreamParseFailure, issue.Kind)
	assert.Equal(t, tt.SeverityError, issue.Severity)
	assert.Equal(t, 3, issue.Start.Line)
	assert.Equal(t, "a.c:3: expected ';', found 'return'; "+ParseFailureHint, issue.Message)
}
