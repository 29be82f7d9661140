// Package workflows implements the top-level operations behind the CLI.
//
// Each operation follows the same convention: an Options struct describing
// the request, a function taking (ctx, opts), and a Result struct the
// command layer renders. The command layer owns all terminal output;
// workflows only compute and return.
//
//   - Run executes one audio workflow: configuration resolution, pre-flight
//     validation, sequenced tool execution, artifact cleanup, and run
//     history logging.
//   - Doctor checks the environment without running anything: configuration,
//     tool availability, credentials, and directory writability.
//   - History reads back recorded runs with filtering and ordering options.
//
// Workflows return typed errors from the internal/errors package, allowing
// the command layer to match on error kinds for exit codes and messaging.
// Anything injectable for testing (process runner, PATH lookup) is a field
// on the Options struct.
package workflows
