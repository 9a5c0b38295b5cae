package crop

import (
	"context"
)

// FieldNames are the form fields in the order the scalers and model were fit with.
// "Phosporus" is the field name the form has always posted.
var FieldNames = [FeatureCount]string{
	"Nitrogen",
	"Phosporus",
	"Potassium",
	"Temperature",
	"Humidity",
	"Ph",
	"Rainfall",
}

// FeatureCount is the width of every vector flowing through the pipeline
const FeatureCount = 7

// Messages rendered into the page
const (
	successSuffix = " is the best crop to be cultivated right there"
	MissMessage   = "Sorry, we could not determine the best crop to be cultivated with the provided data."
	ErrorMessage  = "An error occurred during prediction. Please try again."
)

// Outcome statuses
const (
	StatusSuccess = "success"
	StatusMiss    = "miss"
	StatusError   = "error"
)

// FeatureVector holds the seven measurements in FieldNames order
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// SuccessMessage renders the message for a resolved crop
func SuccessMessage(crop string) string {
	return crop + successSuffix
}

// PredictInput is one form submission
type PredictInput struct {
	Values     map[string]string
	ClientAddr string
	RequestID  string
}

// Outcome is the result of one prediction request. Message is always set.
type Outcome struct {
	Message  string
	Status   string
	ClassID  int
	Crop     string
	Features FeatureVector
	Err      error
}

// Service defines the interface for crop prediction
type Service interface {
	Predict(ctx context.Context, input PredictInput) *Outcome
}
