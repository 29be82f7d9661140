package pipeline

import (
	"fmt"

	werrors "audio-workflow/internal/errors"
)

// Step identifies one external-tool invocation kind. The step name is also
// the name of the binary the sequencer invokes.
type Step string

const (
	StepTranscribe   Step = "transcribe"
	StepDeepcast     Step = "deepcast"
	StepNotionUpload Step = "notion-upload"
)

// AllSteps lists every known step kind in canonical pipeline order.
func AllSteps() []Step {
	return []Step{StepTranscribe, StepDeepcast, StepNotionUpload}
}

// ParseStep converts a configuration string into a Step.
func ParseStep(s string) (Step, error) {
	switch Step(s) {
	case StepTranscribe, StepDeepcast, StepNotionUpload:
		return Step(s), nil
	}
	return "", fmt.Errorf("%w: %q", werrors.ErrUnknownStep, s)
}

func (s Step) String() string {
	return string(s)
}

// NeedsOpenAI reports whether the step's tool requires OPENAI_API_KEY.
func (s Step) NeedsOpenAI() bool {
	return s == StepTranscribe || s == StepDeepcast
}

// NeedsNotion reports whether the step's tool requires NOTION_API_KEY.
func (s Step) NeedsNotion() bool {
	return s == StepNotionUpload
}

// StepOptions carries optional tuning for the deepcast step. Values come
// from the selected workflow's configuration, falling back to the
// OPENAI_MODEL and OPENAI_TEMPERATURE environment defaults. Empty fields
// are omitted from the tool invocation.
type StepOptions struct {
	Model       string
	Temperature string
}
