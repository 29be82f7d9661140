package pipeline

import (
	"os"
	"path/filepath"

	logger "audio-workflow/internal/logging"
	"audio-workflow/internal/utils"
)

// Artifact is one file produced during a run. Artifacts with Keep set
// survive cleanup regardless of the keep-files flag.
type Artifact struct {
	Path string
	Keep bool
}

// RunContext carries the mutable state of one pipeline invocation. It is
// the only place artifact lifecycle decisions are made: every produced
// file is registered here, and Cleanup decides what survives.
type RunContext struct {
	AudioFile  string
	Title      string
	Workflow   string
	DatabaseID string
	OutputDir  string
	KeepFiles  bool

	artifacts []Artifact
	lastText  string
}

// TranscriptPath is where the transcribe step must leave its output.
func (rc *RunContext) TranscriptPath() string {
	return filepath.Join(rc.OutputDir, utils.Stem(rc.AudioFile)+".transcript")
}

// DeepcastPath is where the deepcast step must leave its output.
func (rc *RunContext) DeepcastPath() string {
	return filepath.Join(rc.OutputDir, utils.Stem(rc.AudioFile)+"-deepcast.md")
}

// UploadLogPath is where the sequencer writes the notion-upload tool's
// captured output. The log is always kept.
func (rc *RunContext) UploadLogPath() string {
	return filepath.Join(rc.OutputDir, utils.Stem(rc.AudioFile)+".notion-upload.log")
}

// RegisterArtifact records a produced file for cleanup bookkeeping.
func (rc *RunContext) RegisterArtifact(path string, keep bool) {
	rc.artifacts = append(rc.artifacts, Artifact{Path: path, Keep: keep})
}

// registerText records a textual artifact and remembers it as the input
// for a later notion-upload step.
func (rc *RunContext) registerText(path string) {
	rc.RegisterArtifact(path, false)
	rc.lastText = path
}

func (rc *RunContext) hasArtifact(path string) bool {
	for _, a := range rc.artifacts {
		if a.Path == path {
			return true
		}
	}
	return false
}

// Artifacts returns a copy of the registered artifact records.
func (rc *RunContext) Artifacts() []Artifact {
	out := make([]Artifact, len(rc.artifacts))
	copy(out, rc.artifacts)
	return out
}

// ArtifactPaths returns the registered artifact paths in creation order.
func (rc *RunContext) ArtifactPaths() []string {
	paths := make([]string, 0, len(rc.artifacts))
	for _, a := range rc.artifacts {
		paths = append(paths, a.Path)
	}
	return paths
}

// Cleanup removes the intermediate artifacts of this run. It runs after
// success, failure, and interruption alike. Artifacts marked Keep and the
// whole set under --keep-files are left alone. Removal errors are reported
// but never escalate: a file we could not delete must not fail the run.
func (rc *RunContext) Cleanup(log logger.Logger) {
	for _, a := range rc.artifacts {
		if a.Keep || rc.KeepFiles {
			continue
		}
		if err := os.Remove(a.Path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.WarnfAlways("could not remove %s: %v", a.Path, err)
			continue
		}
		log.Debugf("removed intermediate file %s", a.Path)
	}
}
