package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"

	"github.com/ivf-outcome-server/internal/domain"
)

// Input-domain limits enforced by the validator.
const (
	minAge = 18.0
	maxAge = 50.0
	minAMH = 0.0
	maxAMH = 50.0
)

// PredictorService wraps the pure prediction cascade with structured logging
// and an in-process result cache. The cache is sound because the cascade is
// deterministic: identical inputs always produce identical results.
type PredictorService struct {
	logger *logrus.Logger
	cache  *lru.Cache
}

// NewPredictorService creates a new predictor service. cacheSize <= 0
// disables the result cache.
func NewPredictorService(logger *logrus.Logger, cacheSize int) (*PredictorService, error) {
	svc := &PredictorService{logger: logger}

	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		svc.cache = cache
	}

	return svc, nil
}

// Predict runs the full cascade for one set of inputs. It never returns an
// error: invalid input yields the zeroed error-result convention.
func (s *PredictorService) Predict(inputs domain.PredictionInputs) domain.PredictionResults {
	key := InputKey(inputs)

	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			s.logger.WithField("input_key", key).Debug("Prediction served from cache")
			return cached.(domain.PredictionResults)
		}
	}

	results := ComputePrediction(inputs)

	s.logger.WithFields(logrus.Fields{
		"age":               inputs.Age,
		"amh_level":         inputs.AMHLevel,
		"diagnosis":         inputs.DiagnosisType.String(),
		"predicted_oocytes": results.ExpectedOocytes.Predicted,
		"confidence":        results.ConfidenceLevel.String(),
	}).Info("Prediction completed")

	if s.cache != nil {
		s.cache.Add(key, results)
	}

	return results
}

// ComputePrediction is the engine proper: a pure function over the inputs and
// the static coefficient tables. Control flow is strictly linear; no stage
// reads ahead or mutates shared state.
func ComputePrediction(inputs domain.PredictionInputs) domain.PredictionResults {
	if msg, ok := validateInputs(inputs); !ok {
		return errorResults(msg)
	}

	oocytes := estimateOocyteYield(inputs)
	fertilization, mature := estimateFertilization(inputs, oocytes.Predicted)
	fertilized := selectedFertilized(fertilization)
	blastocysts, day3 := estimateDevelopment(inputs, fertilized)
	euploidy := estimateEuploidy(inputs, blastocysts.Predicted)

	flow := assembleCascade(
		oocytes.Predicted,
		mature,
		fertilized,
		day3,
		blastocysts.Predicted,
		euploidy.ExpectedEuploidBlastocysts,
	)

	return domain.PredictionResults{
		ExpectedOocytes:       oocytes,
		ExpectedFertilization: fertilization,
		ExpectedBlastocysts:   blastocysts,
		EuploidyRates:         euploidy,
		CascadeFlow:           flow,
		ConfidenceLevel:       overallConfidence(inputs),
		ClinicalNotes:         clinicalNotes(inputs, oocytes.Predicted),
		References:            References(),
	}
}

// validateInputs range-checks age and AMH. Validation failure is a normal,
// representable outcome, not a fault.
func validateInputs(in domain.PredictionInputs) (string, bool) {
	if in.Age < minAge || in.Age > maxAge {
		return fmt.Sprintf("Age %.1f is outside the supported range of %.0f to %.0f years.", in.Age, minAge, maxAge), false
	}
	if in.AMHLevel < minAMH || in.AMHLevel > maxAMH {
		return fmt.Sprintf("AMH level %.2f ng/mL is outside the supported range of %.0f to %.0f.", in.AMHLevel, minAMH, maxAMH), false
	}
	return "", true
}

// errorResults builds the fully-populated sentinel result: all numeric fields
// zeroed, low confidence, the validation message as the only clinical note.
func errorResults(message string) domain.PredictionResults {
	return domain.PredictionResults{
		ExpectedFertilization: domain.FertilizationEstimate{
			RecommendedProcedure: domain.CONVENTIONAL_IVF,
		},
		ConfidenceLevel: domain.LOW,
		ClinicalNotes:   []string{message},
		References:      References(),
	}
}

// InputKey derives a stable cache key from the canonical JSON encoding of
// the inputs.
func InputKey(in domain.PredictionInputs) string {
	data, err := json.Marshal(in)
	if err != nil {
		// PredictionInputs contains only scalars; Marshal cannot fail.
		return fmt.Sprintf("%+v", in)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
