// Package pipeline executes the ordered steps of a workflow against one
// audio input.
//
// A Step is a typed name for one of the three external tools (transcribe,
// deepcast, notion-upload). The Sequencer walks a workflow's step list
// strictly in order, invoking one tool per step through the injected
// tools.Runner, and stops at the first failure. Each step validates its
// preconditions (deepcast needs a registered transcript) and its
// postconditions (the promised output file must exist afterward).
//
// RunContext owns the files a run produces. Every artifact a step creates
// is registered on it, and Cleanup — which callers run on success, failure,
// and interrupt alike — removes the intermediates unless keep-files was
// requested. The notion-upload log is always kept.
//
// Artifact names derive from the audio file's stem: meeting.wav produces
// meeting.transcript, meeting-deepcast.md, and meeting.notion-upload.log
// in the resolved output directory.
package pipeline
