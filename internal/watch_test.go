package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	tt "github.com/gnolang/cfix/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestIsSourceFile(t *testing.T) {
	t.Parallel()
	tests := []struct {
		path string
		want bool
	}{
		{"main.c", true},
		{"dir/list.h", true},
		{"main.cpp", false},
		{"notes.txt", false},
		{"Makefile", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, IsSourceFile(tc.path), tc.path)
	}
}

func TestWatcher(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	path := filepath.Join(sub, "prog.c")
	require.NoError(t, os.WriteFile(path, []byte("int a;\n"), 0o644))

	results := make(chan tt.FileResult, 8)
	w, err := NewWatcher(newTestEngine(t, nil), tt.ModeCheck, zap.NewNop(),
		func(r tt.FileResult) { results <- r }, dir)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(sub, "notes.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("int a\n"), 0o644))

	select {
	case r := <-results:
		assert.Equal(t, path, r.Filename)
		assert.Equal(t, []string{"possible missing semicolon at line 1: int a"}, messages(r.Issues))
	case <-time.After(5 * time.Second):
		t.Fatal("no result from watcher")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	t.Parallel()
	_, err := NewWatcher(newTestEngine(t, nil), tt.ModeCheck, zap.NewNop(), nil,
		filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
