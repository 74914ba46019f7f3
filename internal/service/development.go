package service

import (
	"math"

	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/tables"
)

// estimateDevelopment applies the Day-3 cleavage rate and the age/quality
// adjusted blastulation rate. The blastocyst rate applies to Day-3 embryos,
// not to the original fertilized count.
//
// Returns the estimate plus the Day-3 embryo count for the cascade ledger.
func estimateDevelopment(in domain.PredictionInputs, fertilizedEmbryos float64) (domain.BlastocystEstimate, float64) {
	if fertilizedEmbryos <= 0 {
		return domain.BlastocystEstimate{}, 0
	}

	day3 := fertilizedEmbryos * tables.CleavageRateForAge(in.Age)
	if day3 <= 0 {
		return domain.BlastocystEstimate{}, 0
	}

	row := tables.DevelopmentForAge(in.Age)
	amhQuality := clamp(tables.ReserveForAMH(in.AMHLevel).QualityFactor, 0.8, 1.1)
	diagnosisQuality := clamp(tables.ProfileForDiagnosis(in.DiagnosisType).Quality, 0.7, 1.1)

	blastocystRate := clamp(
		row.BlastocystRate/row.QualityIndex*amhQuality*diagnosisQuality,
		0.30, 0.70,
	)

	blastocysts := day3 * blastocystRate
	se := 0.20 * blastocysts

	return domain.BlastocystEstimate{
		Predicted: blastocysts,
		Range: domain.Range{
			Low:  math.Max(0, blastocysts-ciZFactor*se),
			High: math.Min(day3, blastocysts+ciZFactor*se),
		},
		DevelopmentRatePercent: blastocystRate * 100,
	}, day3
}
