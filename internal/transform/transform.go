package transform

import (
	"fmt"

	"github.com/rgehrsitz/iitgo/internal/domain"
)

// RequestTransform is a what-if edit of a calculation request. Transforms
// are composable: each one receives the output of the previous one and
// never mutates its input.
type RequestTransform interface {
	// Apply returns a modified copy of base.
	Apply(base *domain.CalculationRequest) (*domain.CalculationRequest, error)

	// Name returns the registry identifier, e.g. "elect_bonus_method".
	Name() string

	// Description returns a human-readable summary of the edit.
	Description() string

	// Validate checks the parameters against base without applying them.
	Validate(base *domain.CalculationRequest) error
}

// ApplyTransforms applies transforms in order and returns the final request.
// The base request is left untouched.
func ApplyTransforms(base *domain.CalculationRequest, transforms []RequestTransform) (*domain.CalculationRequest, error) {
	if base == nil {
		return nil, fmt.Errorf("base request cannot be nil")
	}

	current := copyRequest(base)
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

func copyRequest(r *domain.CalculationRequest) *domain.CalculationRequest {
	c := *r
	return &c
}

// TransformError reports a transform that could not be validated or applied.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
