package service

import (
	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/tables"
)

// estimateEuploidy converts the blastocyst count into expected chromosomally
// normal counts using the age-dependent aneuploidy risk.
func estimateEuploidy(in domain.PredictionInputs, blastocysts float64) domain.EuploidyEstimate {
	row := tables.DevelopmentForAge(in.Age)

	rate := clamp(1-row.AneuploidyRisk, 0.10, 0.95)

	// Chromosomal competence tracks reserve; past 40 the AMH benefit shrinks.
	competence := 0.98
	if in.AMHLevel > 1.0 {
		competence = 1.02
	}
	if in.Age > 40 && competence > 1.01 {
		competence = 1.01
	}
	competence = clamp(competence, 0.95, 1.05)
	rate *= competence

	rate *= clamp(tables.ProfileForDiagnosis(in.DiagnosisType).Euploidy, 0.9, 1.05)
	rate = clamp(rate, 0.05, 0.90)

	variance := clamp(tables.EuploidyVarianceForAge(in.Age), 0.02, 0.15)

	expected := 0.0
	if blastocysts > 0 {
		expected = blastocysts * rate
	}

	return domain.EuploidyEstimate{
		EuploidPercentage: rate * 100,
		Range: domain.Range{
			Low:  clamp(rate-variance, 0.05, 0.90) * 100,
			High: clamp(rate+variance, 0.05, 0.90) * 100,
		},
		ExpectedEuploidBlastocysts: expected,
	}
}
