package app

import (
	"strings"

	"github.com/google/uuid"
)

// Operation tracks one CLI invocation for logging and metrics.
type Operation struct {
	ID         string
	Name       string
	Parameters string
	Status     string // "success" or "error"
}

// NewOperation creates an operation with a fresh random ID.
func NewOperation(name string, parameters ...string) *Operation {
	return &Operation{
		ID:         uuid.New().String(),
		Name:       name,
		Parameters: strings.Join(parameters, " "),
		Status:     "success",
	}
}

// Observe marks the operation failed if err is non-nil and returns err unchanged.
func (op *Operation) Observe(err error) error {
	if err != nil {
		op.Status = "error"
	}
	return err
}

// Failed reports whether any observed step failed.
func (op *Operation) Failed() bool {
	return op.Status == "error"
}
