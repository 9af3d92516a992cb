package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// homeDirs are the directories focus expects under $HOME.
var homeDirs = []string{
	filepath.Join(".config", "focus"),
	filepath.Join(".local", "share", "focus"),
}

// EnsureHomeDirs creates the focus config and data directories under homeDir.
func EnsureHomeDirs(homeDir string) error {
	for _, dir := range homeDirs {
		if err := os.MkdirAll(filepath.Join(homeDir, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// SetupTestHome points HOME at a fresh temp directory with the focus
// directories in place and returns it.
func SetupTestHome(t testing.TB) string {
	t.Helper()

	homeDir := t.TempDir()
	if err := EnsureHomeDirs(homeDir); err != nil {
		t.Fatalf("setup home dir: %v", err)
	}
	t.Setenv("HOME", homeDir)
	return homeDir
}
