package crop

import (
	"context"
	"fmt"

	"github.com/dustin/crop-recommender/internal/artifact"
	"github.com/dustin/crop-recommender/internal/history"
	"github.com/dustin/crop-recommender/internal/observability"
	"github.com/dustin/crop-recommender/pkg/logger"
	"github.com/jonboulle/clockwork"
)

// service implements the Service interface. It holds no per-request state.
type service struct {
	artifacts *artifact.Set
	recorder  history.Recorder
	metrics   *observability.Metrics
	clock     clockwork.Clock
	logger    *logger.Logger
}

// NewService creates a prediction service over a loaded artifact set
func NewService(set *artifact.Set, recorder history.Recorder, metrics *observability.Metrics, clock clockwork.Clock, log *logger.Logger) (Service, error) {
	if set == nil {
		return nil, fmt.Errorf("prediction service requires an artifact set")
	}
	if set.Dim() != FeatureCount {
		return nil, fmt.Errorf("artifacts expect %d features, form provides %d", set.Dim(), FeatureCount)
	}

	// Set defaults for optional collaborators
	if recorder == nil {
		recorder = history.NopRecorder{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &service{
		artifacts: set,
		recorder:  recorder,
		metrics:   metrics,
		clock:     clock,
		logger:    log.WithComponent("crop-service"),
	}, nil
}

func (s *service) Predict(ctx context.Context, input PredictInput) *Outcome {
	start := s.clock.Now()

	outcome := s.run(input)

	if s.metrics != nil {
		s.metrics.Predictions.WithLabelValues(outcome.Status).Inc()
		s.metrics.PredictionDuration.Observe(s.clock.Since(start).Seconds())
	}

	s.record(ctx, input, outcome)

	return outcome
}

func (s *service) run(input PredictInput) *Outcome {
	raw, err := RawFeatures(input.Values)
	if err != nil {
		return s.fail(err, FeatureVector{})
	}

	s.logger.Info(fmt.Sprintf("Received Input: %q from IP: %s", raw[:], input.ClientAddr))

	features, err := parseValues(raw)
	if err != nil {
		return s.fail(err, FeatureVector{})
	}

	classID, err := s.classify(features)
	if err != nil {
		return s.fail(err, features)
	}

	outcome := &Outcome{
		Status:   StatusMiss,
		Message:  MissMessage,
		ClassID:  classID,
		Features: features,
	}
	if crop, ok := s.artifacts.Labels().Lookup(classID); ok {
		outcome.Status = StatusSuccess
		outcome.Crop = crop
		outcome.Message = SuccessMessage(crop)
	}

	s.logger.Info("Prediction Output: " + outcome.Message)

	return outcome
}

// classify runs min-max scaling, then standardization, then the model
func (s *service) classify(features FeatureVector) (int, error) {
	scaled, err := s.artifacts.MinMax().Transform(features.Slice())
	if err != nil {
		return 0, &TransformError{Stage: StageMinMax, Err: err}
	}

	standardized, err := s.artifacts.Standard().Transform(scaled)
	if err != nil {
		return 0, &TransformError{Stage: StageStandard, Err: err}
	}

	classID, err := s.artifacts.Model().Predict(standardized)
	if err != nil {
		return 0, &TransformError{Stage: StageClassifier, Err: err}
	}

	return classID, nil
}

func (s *service) fail(err error, features FeatureVector) *Outcome {
	s.logger.Error("Error during prediction: " + err.Error())

	return &Outcome{
		Status:   StatusError,
		Message:  ErrorMessage,
		Features: features,
		Err:      err,
	}
}

// record persists the outcome; a failure here never changes what the user sees
func (s *service) record(ctx context.Context, input PredictInput, outcome *Outcome) {
	rec := &history.Record{
		Nitrogen:    outcome.Features[0],
		Phosphorus:  outcome.Features[1],
		Potassium:   outcome.Features[2],
		Temperature: outcome.Features[3],
		Humidity:    outcome.Features[4],
		Ph:          outcome.Features[5],
		Rainfall:    outcome.Features[6],
		Status:      outcome.Status,
		ClassID:     outcome.ClassID,
		Crop:        outcome.Crop,
		Message:     outcome.Message,
		ClientIP:    input.ClientAddr,
		RequestID:   input.RequestID,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if outcome.Err != nil {
		rec.Error = outcome.Err.Error()
	}

	if err := s.recorder.Record(ctx, rec); err != nil {
		s.logger.Warn("Failed to record prediction " + input.RequestID + ": " + err.Error())
		s.countHistoryWrite("error")
		return
	}

	if _, nop := s.recorder.(history.NopRecorder); !nop {
		s.countHistoryWrite("ok")
	}
}

func (s *service) countHistoryWrite(outcome string) {
	if s.metrics != nil {
		s.metrics.HistoryWrites.WithLabelValues(outcome).Inc()
	}
}
