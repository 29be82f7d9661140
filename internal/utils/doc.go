// Package utils provides shared utility functions for audio-workflow.
//
// This package contains general-purpose helpers used across multiple packages.
// Functions are organized into logical groups:
//
// # String Utilities
//
// Functions for deriving names from file paths:
//   - Stem: base name of a path without its extension
//   - DeriveTitle: page title from an audio file name
//   - FormatPaths: formats file paths for human-readable output
//
// # System Utilities
//
// Functions for interacting with the operating system:
//   - GetUsername: returns the current system username
//
// # Terminal Utilities
//
// Functions for terminal detection:
//   - IsTerminal: checks whether stdout is a terminal
package utils
