package utils

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal returns true if stdout is a terminal. Spinners and other
// animated output are suppressed when it is not.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
