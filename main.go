package main

import (
	"errors"
	"fmt"
	"os"

	"audio-workflow/cmd"
	werrors "audio-workflow/internal/errors"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		code, known := exitStatus(err)
		if !known {
			fmt.Println(err)
		}
		os.Exit(code)
	}
}

// exitStatus maps an error to the documented exit code. Known errors have
// already been displayed by the command layer; unknown ones (flag parse
// errors and the like) still need printing.
func exitStatus(err error) (int, bool) {
	var stepErr *werrors.StepError
	switch {
	case errors.As(err, &stepErr):
		return 1, true
	case errors.Is(err, werrors.ErrConfigNotFound),
		errors.Is(err, werrors.ErrConfigInvalid):
		return 2, true
	case errors.Is(err, werrors.ErrMissingCredentials),
		errors.Is(err, werrors.ErrUnknownDatabase),
		errors.Is(err, werrors.ErrUnknownWorkflow),
		errors.Is(err, werrors.ErrUnknownStep),
		errors.Is(err, werrors.ErrMissingDependency):
		return 3, true
	case errors.Is(err, werrors.ErrInputNotFound):
		return 4, true
	}
	return 1, false
}
