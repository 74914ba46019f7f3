// Package tables holds the coefficient tables driving the prediction cascade.
// This is the authoritative source of truth for every rate and multiplier the
// engine uses; stage logic lives in internal/service and treats this data as
// immutable.
//
// Every table is an ordered slice of half-open ranges [Min, Max). Lookups scan
// rows in order and return the first containing match; a value outside every
// defined range returns the table's fallback row, which for the age-keyed
// tables is the oldest band and for the AMH table the highest band.
package tables

import (
	"github.com/ivf-outcome-server/internal/domain"
)

// OocyteYieldRow maps an age band to the baseline oocyte count and the
// multiplier applied to AMH when computing the AMH contribution.
type OocyteYieldRow struct {
	MinAge        float64
	MaxAge        float64
	Baseline      float64
	AMHMultiplier float64
}

var oocyteYieldTable = []OocyteYieldRow{
	{18, 25, 16.5, 2.2},
	{25, 30, 15.8, 2.0},
	{30, 35, 14.3, 1.8},
	{35, 38, 12.1, 1.6},
	{38, 41, 9.4, 1.4},
	{41, 43, 6.8, 1.2},
	{43, 46, 4.5, 1.0},
	{46, 51, 2.8, 0.8}, // fallback
}

// OocyteYieldForAge returns the baseline and AMH multiplier for an age.
func OocyteYieldForAge(age float64) OocyteYieldRow {
	for _, row := range oocyteYieldTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row
		}
	}
	return oocyteYieldTable[len(oocyteYieldTable)-1]
}

// DevelopmentRow maps an age band to the blastocyst development coefficients
// and the aneuploidy risk used by the euploidy stage.
type DevelopmentRow struct {
	MinAge         float64
	MaxAge         float64
	BlastocystRate float64
	QualityIndex   float64
	AneuploidyRisk float64
}

var developmentTable = []DevelopmentRow{
	{18, 30, 0.55, 1.00, 0.25},
	{30, 35, 0.52, 1.00, 0.32},
	{35, 38, 0.48, 1.05, 0.42},
	{38, 41, 0.42, 1.10, 0.55},
	{41, 43, 0.36, 1.15, 0.68},
	{43, 51, 0.30, 1.20, 0.80}, // fallback
}

// DevelopmentForAge returns the development coefficients for an age.
func DevelopmentForAge(age float64) DevelopmentRow {
	for _, row := range developmentTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row
		}
	}
	return developmentTable[len(developmentTable)-1]
}

// ReserveRow maps an AMH band to an ovarian reserve category and its
// response/quality coefficients.
type ReserveRow struct {
	MinAMH             float64
	MaxAMH             float64
	Category           string
	ResponseMultiplier float64
	QualityFactor      float64
}

var reserveTable = []ReserveRow{
	{0, 0.5, "severely diminished reserve", 0.60, 0.85},
	{0.5, 1.0, "diminished reserve", 0.80, 0.92},
	{1.0, 1.5, "low-normal reserve", 0.90, 0.97},
	{1.5, 4.0, "normal reserve", 1.00, 1.00},
	{4.0, 6.8, "high reserve", 1.10, 1.02},
	{6.8, 51, "very high reserve (PCOS-range)", 1.20, 0.95}, // fallback
}

// ReserveForAMH returns the reserve category row for an AMH level.
func ReserveForAMH(amh float64) ReserveRow {
	for _, row := range reserveTable {
		if amh >= row.MinAMH && amh < row.MaxAMH {
			return row
		}
	}
	return reserveTable[len(reserveTable)-1]
}

// FertilizationRow maps an age band to the per-procedure base rates.
type FertilizationRow struct {
	MinAge           float64
	MaxAge           float64
	ICSIRate         float64
	ConventionalRate float64
}

var fertilizationTable = []FertilizationRow{
	{18, 35, 0.80, 0.65},
	{35, 38, 0.78, 0.62},
	{38, 41, 0.75, 0.58},
	{41, 43, 0.72, 0.54},
	{43, 51, 0.70, 0.50}, // fallback
}

// FertilizationRatesForAge returns the base fertilization rates for an age.
func FertilizationRatesForAge(age float64) FertilizationRow {
	for _, row := range fertilizationTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row
		}
	}
	return fertilizationTable[len(fertilizationTable)-1]
}

type maturationRow struct {
	MinAge float64
	MaxAge float64
	Rate   float64
}

var maturationTable = []maturationRow{
	{18, 35, 0.82},
	{35, 38, 0.80},
	{38, 41, 0.77},
	{41, 43, 0.74},
	{43, 51, 0.70}, // fallback
}

// MaturationRateForAge returns the mature oocyte fraction for an age.
func MaturationRateForAge(age float64) float64 {
	for _, row := range maturationTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row.Rate
		}
	}
	return maturationTable[len(maturationTable)-1].Rate
}

type cleavageRow struct {
	MinAge float64
	MaxAge float64
	Rate   float64
}

var cleavageTable = []cleavageRow{
	{18, 30, 0.95},
	{30, 35, 0.93},
	{35, 38, 0.90},
	{38, 41, 0.86},
	{41, 43, 0.82},
	{43, 51, 0.78}, // fallback
}

// CleavageRateForAge returns the Day-3 cleavage rate for an age.
func CleavageRateForAge(age float64) float64 {
	for _, row := range cleavageTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row.Rate
		}
	}
	return cleavageTable[len(cleavageTable)-1].Rate
}

// DiagnosisProfile carries the four multipliers applied per diagnosis.
type DiagnosisProfile struct {
	Oocyte        float64
	Fertilization float64
	Quality       float64
	Euploidy      float64
}

var diagnosisTable = map[domain.DiagnosisType]DiagnosisProfile{
	domain.UNEXPLAINED:                {1.00, 1.00, 1.00, 1.00},
	domain.MALE_FACTOR_MILD:           {1.00, 0.92, 1.00, 1.00},
	domain.MALE_FACTOR_SEVERE:         {1.00, 0.75, 1.00, 1.00},
	domain.OVULATORY:                  {1.15, 0.95, 0.95, 0.98},
	domain.TUBAL:                      {1.00, 1.00, 1.00, 1.00},
	domain.ENDOMETRIOSIS:              {0.85, 0.95, 0.90, 0.97},
	domain.DIMINISHED_OVARIAN_RESERVE: {0.70, 0.95, 0.85, 0.92},
	domain.OTHER:                      {0.95, 0.95, 0.95, 0.98},
}

// ProfileForDiagnosis returns the multiplier profile for a diagnosis. An
// unknown diagnosis takes the OTHER row, the most conservative defined entry.
func ProfileForDiagnosis(d domain.DiagnosisType) DiagnosisProfile {
	if profile, ok := diagnosisTable[d]; ok {
		return profile
	}
	return diagnosisTable[domain.OTHER]
}

type medianRow struct {
	MinAge float64
	MaxAge float64
	Median float64
}

// Population median oocyte yield by age, used only for the percentile label.
var medianYieldTable = []medianRow{
	{18, 25, 15},
	{25, 30, 14},
	{30, 35, 12},
	{35, 38, 10},
	{38, 41, 8},
	{41, 43, 6},
	{43, 51, 4}, // fallback
}

// MedianOocytesForAge returns the population median yield for an age.
func MedianOocytesForAge(age float64) float64 {
	for _, row := range medianYieldTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row.Median
		}
	}
	return medianYieldTable[len(medianYieldTable)-1].Median
}

// EstrogenResponseRow buckets the ratio estrogen/(expectedFollicles*200)
// into a stimulation-response category with quantity and quality factors.
type EstrogenResponseRow struct {
	MinRatio       float64
	MaxRatio       float64
	Label          string
	QuantityFactor float64
	QualityFactor  float64
}

var estrogenResponseTable = []EstrogenResponseRow{
	{0, 0.4, "severe under-response", 0.70, 0.90},
	{0.4, 0.7, "under-response", 0.85, 0.95},
	{0.7, 1.3, "normal response", 1.00, 1.00},
	{1.3, 2.0, "elevated response", 1.08, 0.95},
	{2.0, 3.0, "over-response", 1.12, 0.90},
	{3.0, 1e9, "severe over-response (OHSS risk)", 1.15, 0.85}, // fallback
}

// EstrogenResponseForRatio returns the response bucket for a ratio.
func EstrogenResponseForRatio(ratio float64) EstrogenResponseRow {
	for _, row := range estrogenResponseTable {
		if ratio >= row.MinRatio && ratio < row.MaxRatio {
			return row
		}
	}
	return estrogenResponseTable[len(estrogenResponseTable)-1]
}

type euploidyVarianceRow struct {
	MinAge   float64
	MaxAge   float64
	Variance float64
}

var euploidyVarianceTable = []euploidyVarianceRow{
	{18, 30, 0.06},
	{30, 35, 0.08},
	{35, 38, 0.10},
	{38, 41, 0.12},
	{41, 43, 0.14},
	{43, 51, 0.16}, // fallback
}

// EuploidyVarianceForAge returns the raw euploidy confidence variance for an
// age. The euploidy stage clamps it to [0.02, 0.15] before use.
func EuploidyVarianceForAge(age float64) float64 {
	for _, row := range euploidyVarianceTable {
		if age >= row.MinAge && age < row.MaxAge {
			return row.Variance
		}
	}
	return euploidyVarianceTable[len(euploidyVarianceTable)-1].Variance
}

// PercentileLabel maps the ratio of predicted yield to the population median
// onto a descriptive label.
func PercentileLabel(ratio float64) string {
	switch {
	case ratio < 0.5:
		return "below 25th percentile"
	case ratio < 0.8:
		return "25th to 40th percentile"
	case ratio < 1.2:
		return "average response (40th to 60th percentile)"
	case ratio < 1.5:
		return "60th to 75th percentile"
	case ratio < 2.0:
		return "above 75th percentile"
	default:
		return "excellent response"
	}
}
