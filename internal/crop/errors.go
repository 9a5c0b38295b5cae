package crop

import (
	"errors"
	"fmt"
)

// Validation causes carried by ValidationError
var (
	ErrMissingField = errors.New("field is missing")
	ErrBlankField   = errors.New("field is blank")
	ErrNotNumeric   = errors.New("value is not a number")
	ErrNotFinite    = errors.New("value is not finite")
)

// ValidationError reports a form field that could not be turned into a measurement
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("validation error: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("validation error: %s=%q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Pipeline stages named by TransformError
const (
	StageMinMax     = "minmax_scaler"
	StageStandard   = "standard_scaler"
	StageClassifier = "classifier"
)

// TransformError reports a failure inside the scaling or classification stages
type TransformError struct {
	Stage string
	Err   error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform error: %s: %v", e.Stage, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
