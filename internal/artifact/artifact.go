// Package artifact loads the exported scalers, classifier and label table the
// prediction pipeline runs on. Everything is loaded once at startup and shared
// read-only afterwards.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/crop-recommender/config"
	"github.com/dustin/crop-recommender/internal/classifier"
	"github.com/dustin/crop-recommender/internal/scaler"
	"github.com/dustin/crop-recommender/pkg/logger"
)

// Default artifact locations, relative to the working directory
const (
	DefaultModelPath          = "model.json"
	DefaultStandardScalerPath = "standscaler.json"
	DefaultMinMaxScalerPath   = "minmaxscaler.json"
)

// Set is the immutable bundle of loaded artifacts handed to the prediction service
type Set struct {
	minMax   scaler.Transformer
	standard scaler.Transformer
	model    classifier.Classifier
	labels   *LabelTable
}

// NewSet checks that the three transforms agree on their input width
func NewSet(minMax, standard scaler.Transformer, model classifier.Classifier, labels *LabelTable) (*Set, error) {
	if minMax == nil || standard == nil || model == nil {
		return nil, errors.New("artifact set requires both scalers and a model")
	}
	if labels == nil {
		labels = DefaultLabels()
	}

	if minMax.Dim() != standard.Dim() || standard.Dim() != model.Dim() {
		return nil, fmt.Errorf("artifact dimensions disagree: min-max %d, standard %d, model %d",
			minMax.Dim(), standard.Dim(), model.Dim())
	}

	return &Set{
		minMax:   minMax,
		standard: standard,
		model:    model,
		labels:   labels,
	}, nil
}

func (s *Set) MinMax() scaler.Transformer {
	return s.minMax
}

func (s *Set) Standard() scaler.Transformer {
	return s.standard
}

func (s *Set) Model() classifier.Classifier {
	return s.model
}

func (s *Set) Labels() *LabelTable {
	return s.labels
}

// Dim is the shared input width of every artifact in the set
func (s *Set) Dim() int {
	return s.model.Dim()
}

// Load reads all artifacts named by cfg. Any failure is returned; there is no partial set.
func Load(cfg *config.ArtifactConfig, dim int, log *logger.Logger) (*Set, error) {
	log = log.WithComponent("artifact-loader")

	// Set defaults for empty config values
	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = DefaultModelPath
	}

	standardPath := cfg.StandardScalerPath
	if standardPath == "" {
		standardPath = DefaultStandardScalerPath
	}

	minMaxPath := cfg.MinMaxScalerPath
	if minMaxPath == "" {
		minMaxPath = DefaultMinMaxScalerPath
	}

	minMax, err := LoadScaler(minMaxPath, scaler.KindMinMax)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded min-max scaler from " + minMaxPath)

	standard, err := LoadScaler(standardPath, scaler.KindStandard)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded standard scaler from " + standardPath)

	model, err := LoadClassifier(modelPath)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded " + model.Name() + " model from " + modelPath)

	labels := DefaultLabels()
	if cfg.LabelsPath != "" {
		labels, err = LoadLabels(cfg.LabelsPath)
		if err != nil {
			return nil, err
		}
		log.Info(fmt.Sprintf("Loaded %d crop labels from %s", labels.Len(), cfg.LabelsPath))
	}

	set, err := NewSet(minMax, standard, model, labels)
	if err != nil {
		return nil, err
	}
	if set.Dim() != dim {
		return nil, fmt.Errorf("artifacts expect %d features, service provides %d", set.Dim(), dim)
	}

	return set, nil
}

// envelope carries the artifact kind alongside its parameters
type envelope struct {
	Kind string `json:"kind"`
}

type scalerDecoder func(data []byte) (scaler.Transformer, error)

type classifierDecoder func(data []byte) (classifier.Classifier, error)

var scalerDecoders = map[string]scalerDecoder{
	scaler.KindMinMax: func(data []byte) (scaler.Transformer, error) {
		var params scaler.MinMaxParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, err
		}
		return scaler.NewMinMaxScaler(params)
	},
	scaler.KindStandard: func(data []byte) (scaler.Transformer, error) {
		var params scaler.StandardParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, err
		}
		return scaler.NewStandardScaler(params)
	},
}

var classifierDecoders = map[string]classifierDecoder{
	classifier.KindDecisionTree: func(data []byte) (classifier.Classifier, error) {
		var params classifier.TreeParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, err
		}
		return classifier.NewDecisionTree(params)
	},
	classifier.KindRandomForest: func(data []byte) (classifier.Classifier, error) {
		var params classifier.ForestParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, err
		}
		return classifier.NewRandomForest(params)
	},
	classifier.KindLogisticRegression: func(data []byte) (classifier.Classifier, error) {
		var params classifier.LogisticParams
		if err := json.Unmarshal(data, &params); err != nil {
			return nil, err
		}
		return classifier.NewLogisticRegression(params)
	},
}

// LoadScaler reads a scaler artifact and requires it to be of the expected kind,
// so swapped scaler files are caught at startup
func LoadScaler(path string, kind string) (scaler.Transformer, error) {
	data, gotKind, err := readEnvelope(path)
	if err != nil {
		return nil, err
	}
	if gotKind != kind {
		return nil, fmt.Errorf("artifact %s: expected kind %q, got %q", path, kind, gotKind)
	}

	decode, ok := scalerDecoders[kind]
	if !ok {
		return nil, fmt.Errorf("artifact %s: unsupported scaler kind %q", path, kind)
	}

	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return s, nil
}

// LoadClassifier reads a model artifact of any supported kind
func LoadClassifier(path string) (classifier.Classifier, error) {
	data, kind, err := readEnvelope(path)
	if err != nil {
		return nil, err
	}

	decode, ok := classifierDecoders[kind]
	if !ok {
		return nil, fmt.Errorf("artifact %s: unsupported model kind %q", path, kind)
	}

	c, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return c, nil
}

func readEnvelope(path string) ([]byte, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, "", fmt.Errorf("failed to decode artifact %s: %w", path, err)
	}
	if env.Kind == "" {
		return nil, "", fmt.Errorf("artifact %s has no kind", path)
	}

	return data, env.Kind, nil
}
