// Package scaler implements the fitted feature scalers applied before classification.
//
// Both scalers are exported offline as JSON parameters and are read-only once loaded,
// so a single instance is shared by every request.
package scaler

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when a vector does not match the fitted width
var ErrDimensionMismatch = errors.New("dimension mismatch")

// Transformer maps a feature vector to a scaled vector of the same width
type Transformer interface {
	Transform(features []float64) ([]float64, error)
	Dim() int
	Kind() string
}

// Kinds understood by the artifact loader
const (
	KindMinMax   = "minmax_scaler"
	KindStandard = "standard_scaler"
)

// zeroRange mirrors the threshold used when the scalers were fit
const zeroRange = 1e-10

// MinMaxParams is the exported state of a fitted min-max scaler
type MinMaxParams struct {
	DataMin      []float64  `json:"data_min"`
	DataMax      []float64  `json:"data_max"`
	FeatureRange [2]float64 `json:"feature_range"`
	Clip         bool       `json:"clip"`
}

// MinMaxScaler maps each feature to the fitted feature range: x*scale + min
type MinMaxScaler struct {
	scale []float64
	min   []float64
	lo    float64
	hi    float64
	clip  bool
}

// NewMinMaxScaler validates params and precomputes per-feature scale and offset
func NewMinMaxScaler(params MinMaxParams) (*MinMaxScaler, error) {
	if len(params.DataMin) == 0 {
		return nil, errors.New("min-max scaler has no features")
	}
	if len(params.DataMin) != len(params.DataMax) {
		return nil, fmt.Errorf("min-max scaler data_min has %d features, data_max has %d", len(params.DataMin), len(params.DataMax))
	}

	lo, hi := params.FeatureRange[0], params.FeatureRange[1]
	if lo == 0 && hi == 0 {
		lo, hi = 0, 1
	}
	if lo >= hi {
		return nil, fmt.Errorf("invalid feature range [%v, %v]", lo, hi)
	}

	scale := make([]float64, len(params.DataMin))
	offset := make([]float64, len(params.DataMin))
	for i := range params.DataMin {
		dataMin, dataMax := params.DataMin[i], params.DataMax[i]
		if !isFinite(dataMin) || !isFinite(dataMax) {
			return nil, fmt.Errorf("min-max scaler feature %d has non-finite bounds", i)
		}
		if dataMax < dataMin {
			return nil, fmt.Errorf("min-max scaler feature %d has data_max < data_min", i)
		}

		dataRange := dataMax - dataMin
		// Constant features keep their offset and are not stretched
		if dataRange < zeroRange {
			dataRange = 1
		}
		scale[i] = (hi - lo) / dataRange
		offset[i] = lo - dataMin*scale[i]
	}

	return &MinMaxScaler{
		scale: scale,
		min:   offset,
		lo:    lo,
		hi:    hi,
		clip:  params.Clip,
	}, nil
}

// Transform applies min-max scaling to a feature vector
func (m *MinMaxScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(m.scale) {
		return nil, fmt.Errorf("%w: min-max scaler expects %d features, got %d", ErrDimensionMismatch, len(m.scale), len(features))
	}

	scaled := make([]float64, len(features))
	for i, val := range features {
		scaled[i] = val*m.scale[i] + m.min[i]
		if m.clip {
			scaled[i] = math.Max(m.lo, math.Min(m.hi, scaled[i]))
		}
	}

	return scaled, nil
}

func (m *MinMaxScaler) Dim() int {
	return len(m.scale)
}

func (m *MinMaxScaler) Kind() string {
	return KindMinMax
}

// StandardParams is the exported state of a fitted standardization scaler
type StandardParams struct {
	Mean     []float64 `json:"mean"`
	Scale    []float64 `json:"scale"`
	WithMean *bool     `json:"with_mean,omitempty"`
	WithStd  *bool     `json:"with_std,omitempty"`
}

// StandardScaler applies z-score standardization: (x - mean) / scale
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler validates params and resolves the with_mean/with_std switches
func NewStandardScaler(params StandardParams) (*StandardScaler, error) {
	width := len(params.Mean)
	if width == 0 {
		width = len(params.Scale)
	}
	if width == 0 {
		return nil, errors.New("standard scaler has no features")
	}

	withMean := params.WithMean == nil || *params.WithMean
	withStd := params.WithStd == nil || *params.WithStd

	mean := make([]float64, width)
	if withMean {
		if len(params.Mean) != width {
			return nil, fmt.Errorf("standard scaler mean has %d features, expected %d", len(params.Mean), width)
		}
		copy(mean, params.Mean)
	}

	scale := make([]float64, width)
	for i := range scale {
		scale[i] = 1
	}
	if withStd {
		if len(params.Scale) != width {
			return nil, fmt.Errorf("standard scaler scale has %d features, expected %d", len(params.Scale), width)
		}
		for i, s := range params.Scale {
			if !isFinite(s) || s < 0 {
				return nil, fmt.Errorf("standard scaler feature %d has invalid scale %v", i, s)
			}
			// Prevent division by zero for constant features
			if s < zeroRange {
				s = 1
			}
			scale[i] = s
		}
	}

	for i, m := range mean {
		if !isFinite(m) {
			return nil, fmt.Errorf("standard scaler feature %d has non-finite mean", i)
		}
	}

	return &StandardScaler{mean: mean, scale: scale}, nil
}

// Transform applies z-score standardization to a feature vector
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(features) != len(s.mean) {
		return nil, fmt.Errorf("%w: standard scaler expects %d features, got %d", ErrDimensionMismatch, len(s.mean), len(features))
	}

	scaled := make([]float64, len(features))
	for i, val := range features {
		scaled[i] = (val - s.mean[i]) / s.scale[i]
	}

	return scaled, nil
}

func (s *StandardScaler) Dim() int {
	return len(s.mean)
}

func (s *StandardScaler) Kind() string {
	return KindStandard
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
