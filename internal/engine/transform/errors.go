package transform

import (
	"errors"
	"fmt"
)

// ErrStepFailed indicates a step could not be applied to a document.
var ErrStepFailed = errors.New("step failed")

// StepError describes why a step did not apply.
type StepError struct {
	Step   Step
	Reason string
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Step, e.Reason)
}

// Unwrap returns ErrStepFailed.
func (e *StepError) Unwrap() error {
	return ErrStepFailed
}

func fail(step Step, format string, args ...any) error {
	return &StepError{Step: step, Reason: fmt.Sprintf(format, args...)}
}
