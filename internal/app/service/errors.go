package service

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation means a required request field is missing.
	KindValidation
	// KindFetch means the blog content could not be retrieved.
	KindFetch
	// KindGeneration means the model call failed.
	KindGeneration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindFetch:
		return "fetch"
	case KindGeneration:
		return "generation"
	default:
		return "unknown"
	}
}

// ErrMissingFields is wrapped by validation failures.
var ErrMissingFields = errors.New("all fields required")

// Error is returned by the pipeline for every failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}
