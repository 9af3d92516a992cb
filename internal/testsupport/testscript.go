// Package testsupport wires the focus binary into testscript suites.
package testsupport

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/amonks/focus/session"
	"github.com/amonks/focus/task"
	"github.com/rogpeppe/go-internal/testscript"
)

var buildFocus = sync.OnceValues(func() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	binDir, err := os.MkdirTemp("", "focus-bin-")
	if err != nil {
		return "", err
	}

	bin := filepath.Join(binDir, "focus")
	cmd := exec.Command("go", "build", "-o", bin, "./cmd/focus")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("build focus: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return bin, nil
})

// BuildFocus compiles cmd/focus once per test binary and returns its path.
func BuildFocus(t testing.TB) string {
	t.Helper()

	bin, err := buildFocus()
	if err != nil {
		t.Fatal(err)
	}
	return bin
}

// SetupScriptEnv points $FOCUS at the built binary and gives each script
// its own HOME. Scripts run as user "tester" in UTC without color.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	home := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(home); err != nil {
		return err
	}
	for key, value := range map[string]string{
		"FOCUS":    BuildFocus(t),
		"HOME":     home,
		"USER":     "tester",
		"TZ":       "UTC",
		"NO_COLOR": "1",
	} {
		env.Setenv(key, value)
	}
	return nil
}

// CmdEnvSet implements "envset VAR FILE", storing the trimmed file
// contents in VAR.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg || len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}
	ts.Setenv(args[0], strings.TrimSpace(ts.ReadFile(args[1])))
}

// CmdTaskID implements "taskid FILE TITLE VAR" over the output of
// "focus task list --format json".
func CmdTaskID(ts *testscript.TestScript, neg bool, args []string) {
	lookupID(ts, neg, args, "taskid FILE TITLE VAR", func(t task.Task) (string, string) {
		return t.Title, t.ID
	})
}

// CmdSessionID implements "sessionid FILE NOTES VAR" over the output of
// "focus session list --format json".
func CmdSessionID(ts *testscript.TestScript, neg bool, args []string) {
	lookupID(ts, neg, args, "sessionid FILE NOTES VAR", func(s session.Session) (string, string) {
		return s.Notes, s.ID
	})
}

// lookupID decodes a JSON list of T from args[0] and sets args[2] to the
// ID of the first item whose key equals args[1].
func lookupID[T any](ts *testscript.TestScript, neg bool, args []string, usage string, keyID func(T) (string, string)) {
	if neg || len(args) != 3 {
		ts.Fatalf("usage: %s", usage)
	}

	var items []T
	if err := json.Unmarshal([]byte(ts.ReadFile(args[0])), &items); err != nil {
		ts.Fatalf("parse %s: %v", args[0], err)
	}
	for _, item := range items {
		if key, id := keyID(item); key == args[1] {
			ts.Setenv(args[2], id)
			return
		}
	}
	ts.Fatalf("no entry %q in %s", args[1], args[0])
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}
