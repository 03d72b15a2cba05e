package pipeline

import "fmt"

// ErrorKind classifies a pipeline failure by the stage responsibility it
// violates. Every kind is fatal: the run aborts immediately and no later
// stage executes.
type ErrorKind int

const (
	// KindArgument is malformed or missing run configuration.
	KindArgument ErrorKind = iota

	// KindLoad is a failure to read the input volume.
	KindLoad

	// KindWrite is a failure to write the output volume.
	KindWrite
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindLoad:
		return "load"
	case KindWrite:
		return "write"
	}
	return "unknown"
}

// StageError is a classified pipeline failure. Callers inspect the kind via
// errors.As to distinguish argument, load, and write failures without
// parsing messages.
type StageError struct {
	Kind  ErrorKind
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Stage, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *StageError) Unwrap() error {
	return e.Err
}

func argumentErr(stage string, err error) error {
	return &StageError{Kind: KindArgument, Stage: stage, Err: err}
}

func loadErr(stage string, err error) error {
	return &StageError{Kind: KindLoad, Stage: stage, Err: err}
}

func writeErr(stage string, err error) error {
	return &StageError{Kind: KindWrite, Stage: stage, Err: err}
}
