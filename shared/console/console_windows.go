//go:build windows

package console

import (
	"os"

	"golang.org/x/sys/windows"
)

// IsInteractive returns true if stderr is attached to a terminal.
func IsInteractive() bool {
	handle := windows.Handle(os.Stderr.Fd())

	var mode uint32
	return windows.GetConsoleMode(handle, &mode) == nil
}
