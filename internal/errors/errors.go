package errors

import "errors"

// Configuration errors indicate problems locating or parsing configuration.
var (
	// ErrConfigNotFound indicates an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigInvalid indicates a configuration file could not be parsed.
	ErrConfigInvalid = errors.New("configuration file is invalid")
)

// Validation errors indicate the merged configuration cannot satisfy the request.
var (
	// ErrMissingCredentials indicates a required API key is absent from the environment.
	ErrMissingCredentials = errors.New("required credentials are missing")

	// ErrUnknownDatabase indicates the requested database name resolves to no identifier.
	ErrUnknownDatabase = errors.New("unknown database")

	// ErrUnknownWorkflow indicates the requested workflow is not defined.
	ErrUnknownWorkflow = errors.New("unknown workflow")

	// ErrUnknownStep indicates a workflow references an unrecognized step kind.
	ErrUnknownStep = errors.New("unknown workflow step")
)

// Input errors indicate problems with the files a run operates on.
var (
	// ErrInputNotFound indicates the audio input file does not exist.
	ErrInputNotFound = errors.New("input file not found")

	// ErrMissingDependency indicates a step's required input artifact was never produced.
	ErrMissingDependency = errors.New("required artifact is missing")
)
