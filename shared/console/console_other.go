//go:build !windows

package console

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive returns true if stderr is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}
