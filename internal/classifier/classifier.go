package classifier

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when a vector does not match the model's input width
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Classifier maps a scaled feature vector to a single class id
type Classifier interface {
	Predict(features []float64) (int, error)
	Dim() int
	Name() string
}

// Kinds understood by the artifact loader
const (
	KindDecisionTree       = "decision_tree"
	KindRandomForest       = "random_forest"
	KindLogisticRegression = "logistic_regression"
)

func checkInput(name string, dim int, features []float64) error {
	if len(features) != dim {
		return fmt.Errorf("%w: %s expects %d features, got %d", ErrDimensionMismatch, name, dim, len(features))
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: feature %d is not finite", name, i)
		}
	}
	return nil
}
