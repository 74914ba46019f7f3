package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivf-outcome-server/internal/domain"
)

func TestEstimateDevelopment_TypicalPatient(t *testing.T) {
	inputs := domain.PredictionInputs{
		Age:           32,
		AMHLevel:      2.5,
		DiagnosisType: domain.UNEXPLAINED,
	}

	estimate, day3 := estimateDevelopment(inputs, 10.0)

	assert.InDelta(t, 9.3, day3, 1e-9)
	assert.InDelta(t, 52.0, estimate.DevelopmentRatePercent, 0.01)
	assert.InDelta(t, 9.3*0.52, estimate.Predicted, 1e-9)
	assert.LessOrEqual(t, estimate.Range.High, day3, "blastocysts cannot exceed Day-3 embryos")
	assert.GreaterOrEqual(t, estimate.Range.Low, 0.0)
}

func TestEstimateDevelopment_ZeroFertilized(t *testing.T) {
	inputs := domain.PredictionInputs{Age: 32, AMHLevel: 2.5, DiagnosisType: domain.UNEXPLAINED}

	estimate, day3 := estimateDevelopment(inputs, 0)

	assert.Zero(t, day3)
	assert.Zero(t, estimate.Predicted)
	assert.Zero(t, estimate.DevelopmentRatePercent)
}

func TestEstimateDevelopment_RateStaysWithinClamps(t *testing.T) {
	for _, d := range domain.AllDiagnoses() {
		for _, age := range []float64{20, 33, 36, 39, 42, 47} {
			for _, amh := range []float64{0.2, 1.2, 3.0, 8.0} {
				inputs := domain.PredictionInputs{Age: age, AMHLevel: amh, DiagnosisType: d}
				estimate, day3 := estimateDevelopment(inputs, 8.0)

				assert.GreaterOrEqual(t, estimate.DevelopmentRatePercent, 30.0)
				assert.LessOrEqual(t, estimate.DevelopmentRatePercent, 70.0)
				assert.LessOrEqual(t, estimate.Predicted, day3)
			}
		}
	}
}

func TestEstimateDevelopment_OlderPatientsLoseMore(t *testing.T) {
	young := domain.PredictionInputs{Age: 28, AMHLevel: 2.5, DiagnosisType: domain.UNEXPLAINED}
	older := domain.PredictionInputs{Age: 44, AMHLevel: 2.5, DiagnosisType: domain.UNEXPLAINED}

	youngEstimate, youngDay3 := estimateDevelopment(young, 10.0)
	olderEstimate, olderDay3 := estimateDevelopment(older, 10.0)

	assert.Greater(t, youngDay3, olderDay3)
	assert.Greater(t, youngEstimate.Predicted, olderEstimate.Predicted)
	assert.Greater(t, youngEstimate.DevelopmentRatePercent, olderEstimate.DevelopmentRatePercent)
}
