package crop

import (
	"math"
	"strconv"
	"strings"
)

// RawFeatures returns the submitted strings in FieldNames order.
// A missing field is a *ValidationError; values are not yet checked.
func RawFeatures(raw map[string]string) ([FeatureCount]string, error) {
	var values [FeatureCount]string
	for i, name := range FieldNames {
		value, ok := raw[name]
		if !ok {
			return values, &ValidationError{Field: name, Err: ErrMissingField}
		}
		values[i] = value
	}
	return values, nil
}

// ParseFeatures converts the submitted form values into a FeatureVector
func ParseFeatures(raw map[string]string) (FeatureVector, error) {
	values, err := RawFeatures(raw)
	if err != nil {
		return FeatureVector{}, err
	}
	return parseValues(values)
}

func parseValues(values [FeatureCount]string) (FeatureVector, error) {
	var vec FeatureVector
	for i, value := range values {
		name := FieldNames[i]

		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return FeatureVector{}, &ValidationError{Field: name, Value: value, Err: ErrBlankField}
		}

		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return FeatureVector{}, &ValidationError{Field: name, Value: value, Err: ErrNotNumeric}
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return FeatureVector{}, &ValidationError{Field: name, Value: value, Err: ErrNotFinite}
		}

		vec[i] = f
	}
	return vec, nil
}
