package service

import (
	"fmt"

	"github.com/ivf-outcome-server/internal/domain"
	"github.com/ivf-outcome-server/internal/tables"
)

// estimateFertilization splits the oocyte yield into mature/immature and
// computes fertilization outcomes for BOTH procedures, not just the
// recommended one. The recommendation itself is carried as a typed Procedure
// so downstream stages never inspect explanation text.
//
// Returns the estimate plus the mature oocyte count for the cascade ledger.
func estimateFertilization(in domain.PredictionInputs, totalOocytes float64) (domain.FertilizationEstimate, float64) {
	mature := 0.0
	if totalOocytes > 0 {
		mature = totalOocytes * tables.MaturationRateForAge(in.Age)
	}

	row := tables.FertilizationRatesForAge(in.Age)
	profile := tables.ProfileForDiagnosis(in.DiagnosisType)
	diagnosisFert := clamp(profile.Fertilization, 0.6, 1.1)
	amhQuality := clamp(tables.ReserveForAMH(in.AMHLevel).QualityFactor, 0.9, 1.05)

	conventionalRate := clamp(row.ConventionalRate*diagnosisFert*amhQuality, 0.30, 0.80)

	icsiRate := row.ICSIRate * diagnosisFert * amhQuality
	if in.DiagnosisType == domain.MALE_FACTOR_SEVERE {
		icsiRate *= 1.05
	}
	icsiRate = clamp(icsiRate, 0.50, 0.95)

	conventional := procedureResult(mature, conventionalRate, 0.15, "conventional IVF")
	icsi := procedureResult(mature, icsiRate, 0.12, "ICSI")

	recommended, explanation := recommendProcedure(in, conventionalRate, icsiRate)

	return domain.FertilizationEstimate{
		ConventionalIVF:      conventional,
		ICSI:                 icsi,
		RecommendedProcedure: recommended,
		Explanation:          explanation,
	}, mature
}

// procedureResult builds a single-procedure outcome. The interval is clamped
// to [0, matureOocytes]: a fertilization stage cannot produce more embryos
// than mature oocytes.
func procedureResult(mature, rate, standardErrorPct float64, label string) domain.ProcedureResult {
	predicted := mature * rate
	se := standardErrorPct * predicted
	return domain.ProcedureResult{
		Predicted: predicted,
		Range: domain.Range{
			Low:  clamp(predicted-ciZFactor*se, 0, mature),
			High: clamp(predicted+ciZFactor*se, 0, mature),
		},
		FertilizationRatePercent: rate * 100,
		Explanation: fmt.Sprintf("Approximately %.1f fertilized embryos expected with %s at a %.0f%% fertilization rate.",
			predicted, label, rate*100),
	}
}

// recommendProcedure selects the fertilization procedure. The decision is
// diagnosis-driven, with age as a secondary factor for unexplained
// infertility.
func recommendProcedure(in domain.PredictionInputs, conventionalRate, icsiRate float64) (domain.Procedure, string) {
	ratePointDiff := (icsiRate - conventionalRate) * 100

	switch in.DiagnosisType {
	case domain.MALE_FACTOR_SEVERE:
		return domain.ICSI, fmt.Sprintf(
			"ICSI is recommended for severe male factor infertility; it improves the expected fertilization rate by %.0f percentage points over conventional insemination.",
			ratePointDiff)
	case domain.MALE_FACTOR_MILD:
		return domain.ICSI, fmt.Sprintf(
			"ICSI is recommended for male factor infertility; expected fertilization rate is %.0f percentage points higher than conventional IVF.",
			ratePointDiff)
	case domain.UNEXPLAINED:
		if in.Age > 37 {
			return domain.ICSI, fmt.Sprintf(
				"With unexplained infertility at age %.0f, ICSI is recommended to reduce the risk of total fertilization failure (%.0f percentage point rate advantage).",
				in.Age, ratePointDiff)
		}
		return domain.CONVENTIONAL_IVF, fmt.Sprintf(
			"Conventional IVF is recommended for unexplained infertility at this age; the %.0f percentage point ICSI advantage does not justify the added intervention.",
			ratePointDiff)
	default:
		return domain.CONVENTIONAL_IVF, fmt.Sprintf(
			"Conventional IVF is recommended; there is no sperm-related indication for ICSI (expected rate difference %.0f percentage points).",
			ratePointDiff)
	}
}

// selectedFertilized returns the fertilized embryo count the cascade carries
// forward, taken from whichever procedure was recommended.
func selectedFertilized(est domain.FertilizationEstimate) float64 {
	if est.RecommendedProcedure == domain.ICSI {
		return est.ICSI.Predicted
	}
	return est.ConventionalIVF.Predicted
}
