package classifier

import (
	"errors"
	"fmt"
	"math"
)

// LogisticParams is the exported state of a fitted multinomial logistic regression
type LogisticParams struct {
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// LogisticRegression picks the class with the highest linear decision score
type LogisticRegression struct {
	classes   []int
	coef      [][]float64
	intercept []float64
	nFeatures int
}

func NewLogisticRegression(params LogisticParams) (*LogisticRegression, error) {
	if len(params.Classes) < 2 {
		return nil, errors.New("logistic regression needs at least two classes")
	}
	if len(params.Coef) != len(params.Classes) || len(params.Intercept) != len(params.Classes) {
		return nil, fmt.Errorf("logistic regression has %d classes, %d coefficient rows and %d intercepts",
			len(params.Classes), len(params.Coef), len(params.Intercept))
	}

	nFeatures := len(params.Coef[0])
	if nFeatures == 0 {
		return nil, errors.New("logistic regression has no input features")
	}

	coef := make([][]float64, len(params.Coef))
	for i, row := range params.Coef {
		if len(row) != nFeatures {
			return nil, fmt.Errorf("coefficient row %d has %d features, expected %d", i, len(row), nFeatures)
		}
		for _, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, fmt.Errorf("coefficient row %d is not finite", i)
			}
		}
		coef[i] = append([]float64(nil), row...)
	}

	for i, b := range params.Intercept {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("intercept %d is not finite", i)
		}
	}

	return &LogisticRegression{
		classes:   append([]int(nil), params.Classes...),
		coef:      coef,
		intercept: append([]float64(nil), params.Intercept...),
		nFeatures: nFeatures,
	}, nil
}

func (lr *LogisticRegression) Predict(features []float64) (int, error) {
	if err := checkInput(lr.Name(), lr.nFeatures, features); err != nil {
		return 0, err
	}

	bestIdx, bestScore := 0, math.Inf(-1)
	for k, row := range lr.coef {
		score := lr.intercept[k]
		for i, w := range row {
			score += w * features[i]
		}
		if score > bestScore {
			bestIdx, bestScore = k, score
		}
	}

	return lr.classes[bestIdx], nil
}

func (lr *LogisticRegression) Dim() int {
	return lr.nFeatures
}

func (lr *LogisticRegression) Name() string {
	return KindLogisticRegression
}
