package service

import (
	"math"

	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/tables"
)

// Clamps owned by the oocyte yield stage.
const (
	amhContributionCap  = 20.0
	estrogenFloor       = 100.0
	estrogenCeiling     = 5000.0
	oocyteCeiling       = 50.0
	ciZFactor           = 1.64 // 90% one-sided z-factor
	follicleEstrogenRef = 200.0
)

// estimateOocyteYield computes the predicted oocyte count and its confidence
// interval from age, AMH, estrogen, diagnosis and prior-cycle history.
func estimateOocyteYield(in domain.PredictionInputs) domain.OocyteEstimate {
	row := tables.OocyteYieldForAge(in.Age)

	// AMH contribution is capped to prevent runaway predictions for extreme
	// AMH values.
	amhAdjusted := row.Baseline + math.Min(amhContributionCap, in.AMHLevel*row.AMHMultiplier)

	reserve := tables.ReserveForAMH(in.AMHLevel)

	estrogen := clamp(in.EstrogenLevel, estrogenFloor, estrogenCeiling)
	ratio := 0.0
	if amhAdjusted > 0 {
		ratio = estrogen / (amhAdjusted * follicleEstrogenRef)
	}
	response := tables.EstrogenResponseForRatio(ratio)

	profile := tables.ProfileForDiagnosis(in.DiagnosisType)
	diagnosisMultiplier := clamp(profile.Oocyte, 0.3, 1.5)

	cycleMultiplier := priorCycleAdjustment(in.PriorCycles, in.AMHLevel)

	predicted := clamp(
		amhAdjusted*reserve.ResponseMultiplier*response.QuantityFactor*diagnosisMultiplier*cycleMultiplier,
		0, oocyteCeiling,
	)

	variance := 0.25 * predicted
	if in.Age < 25 || in.Age > 42 {
		variance *= 1.20
	}
	if in.AMHLevel < 1.0 || in.AMHLevel > 8.0 {
		variance *= 1.15
	}
	if in.DiagnosisType == domain.DIMINISHED_OVARIAN_RESERVE {
		variance *= 1.30
	}

	median := tables.MedianOocytesForAge(in.Age)

	return domain.OocyteEstimate{
		Predicted: predicted,
		Range: domain.Range{
			Low:  math.Max(0, predicted-ciZFactor*variance),
			High: predicted + ciZFactor*variance,
		},
		PercentileLabel: tables.PercentileLabel(predicted / median),
	}
}

// priorCycleAdjustment derives a multiplier from the number of previous IVF
// attempts, conditioned on reserve. Repeat cycles with good reserve benefit
// slightly from protocol tuning; repeat cycles with poor reserve do not.
func priorCycleAdjustment(cycles int, amh float64) float64 {
	var m float64
	switch {
	case cycles <= 0:
		m = 1.0
	case cycles == 1:
		if amh > 1.0 {
			m = 1.08
		} else {
			m = 1.03
		}
	case cycles == 2:
		if amh > 2.0 {
			m = 1.05
		} else {
			m = 0.98
		}
	case cycles <= 4:
		if amh > 3.0 {
			m = 1.0
		} else {
			m = 0.92
		}
	default:
		m = 0.85
	}
	return clamp(m, 0.7, 1.2)
}
