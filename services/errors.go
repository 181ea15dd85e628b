package services

import "fmt"

// StageError marks which pipeline stage failed. Errors cross component
// boundaries by return value only; the trigger caller sees one descriptive
// error string.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s errored: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}
