// Package errors provides typed error values for the audio-workflow CLI.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Configuration errors: config file missing or unparsable
//     (ErrConfigNotFound, ErrConfigInvalid)
//   - Validation errors: request cannot be satisfied (ErrMissingCredentials,
//     ErrUnknownDatabase, ErrUnknownWorkflow, ErrUnknownStep)
//   - Input errors: missing run inputs (ErrInputNotFound, ErrMissingDependency)
//
// StepError is the one structured error type: it wraps the failure of an
// external tool with the step name, exit code, and captured stderr.
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, err := os.Stat(path); os.IsNotExist(err) {
//	    return nil, errors.ErrConfigNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Run(ctx, opts)
//	if errors.Is(err, werrors.ErrUnknownDatabase) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: no id for %q", errors.ErrUnknownDatabase, name)
package errors
