// Package editor opens task drafts in the user's editor.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// command resolves the editor invocation from $VISUAL, then $EDITOR,
// then vi. Values may carry arguments, as in "code --wait".
func command() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	return []string{"vi"}
}

// Edit runs the editor on path attached to the current terminal and
// waits for it to exit.
func Edit(path string) error {
	argv := append(command(), path)
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("editor %s exited with status %d", argv[0], exitErr.ExitCode())
	default:
		return fmt.Errorf("run editor %s: %w", argv[0], err)
	}
}
