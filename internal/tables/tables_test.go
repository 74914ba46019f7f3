package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivf-outcome-server/internal/domain"
)

func TestOocyteYieldForAge(t *testing.T) {
	tests := []struct {
		name         string
		age          float64
		wantBaseline float64
	}{
		{"Youngest band", 18, 16.5},
		{"Lower boundary is inclusive", 30, 14.3},
		{"Upper boundary belongs to next band", 35, 12.1},
		{"Mid band", 39.5, 9.4},
		{"Oldest defined band", 44, 4.5},
		{"Above all bands falls back to oldest", 55, 2.8},
		{"Below all bands falls back to oldest", 10, 2.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := OocyteYieldForAge(tt.age)
			assert.Equal(t, tt.wantBaseline, row.Baseline)
		})
	}
}

func TestOocyteYieldTable_BaselineDecreasesWithAge(t *testing.T) {
	for i := 1; i < len(oocyteYieldTable); i++ {
		assert.Less(t, oocyteYieldTable[i].Baseline, oocyteYieldTable[i-1].Baseline,
			"baseline must strictly decrease across age bands")
		assert.Equal(t, oocyteYieldTable[i].MinAge, oocyteYieldTable[i-1].MaxAge,
			"age bands must be contiguous")
	}
}

func TestDevelopmentForAge(t *testing.T) {
	tests := []struct {
		name     string
		age      float64
		wantRate float64
		wantRisk float64
	}{
		{"Young patient", 28, 0.55, 0.25},
		{"Band boundary", 35, 0.48, 0.42},
		{"Oldest band", 44, 0.30, 0.80},
		{"Fallback above table", 60, 0.30, 0.80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := DevelopmentForAge(tt.age)
			assert.Equal(t, tt.wantRate, row.BlastocystRate)
			assert.Equal(t, tt.wantRisk, row.AneuploidyRisk)
		})
	}
}

func TestDevelopmentTable_AneuploidyRiskIncreasesWithAge(t *testing.T) {
	for i := 1; i < len(developmentTable); i++ {
		assert.Greater(t, developmentTable[i].AneuploidyRisk, developmentTable[i-1].AneuploidyRisk)
		assert.Less(t, developmentTable[i].BlastocystRate, developmentTable[i-1].BlastocystRate)
	}
}

func TestReserveForAMH(t *testing.T) {
	tests := []struct {
		name         string
		amh          float64
		wantCategory string
	}{
		{"Severely diminished", 0.2, "severely diminished reserve"},
		{"Boundary at 0.5 belongs to next band", 0.5, "diminished reserve"},
		{"Normal reserve", 2.5, "normal reserve"},
		{"High reserve", 5.0, "high reserve"},
		{"PCOS range", 9.0, "very high reserve (PCOS-range)"},
		{"Extreme AMH falls back to highest band", 60, "very high reserve (PCOS-range)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := ReserveForAMH(tt.amh)
			assert.Equal(t, tt.wantCategory, row.Category)
		})
	}
}

func TestFertilizationRatesForAge_ICSIAlwaysAboveConventional(t *testing.T) {
	for _, row := range fertilizationTable {
		assert.Greater(t, row.ICSIRate, row.ConventionalRate,
			"ICSI base rate must exceed the conventional rate in every band")
	}
}

func TestMaturationRateForAge(t *testing.T) {
	assert.Equal(t, 0.82, MaturationRateForAge(28))
	assert.Equal(t, 0.74, MaturationRateForAge(41))
	assert.Equal(t, 0.70, MaturationRateForAge(48))
	assert.Equal(t, 0.70, MaturationRateForAge(90), "out-of-table age uses the oldest band")
}

func TestCleavageRateForAge(t *testing.T) {
	assert.Equal(t, 0.95, CleavageRateForAge(28))
	assert.Equal(t, 0.78, CleavageRateForAge(44))
	assert.Greater(t, CleavageRateForAge(28), CleavageRateForAge(44))
}

func TestProfileForDiagnosis(t *testing.T) {
	tests := []struct {
		name       string
		diagnosis  domain.DiagnosisType
		wantOocyte float64
		wantFert   float64
	}{
		{"Unexplained is neutral", domain.UNEXPLAINED, 1.00, 1.00},
		{"Tubal is neutral", domain.TUBAL, 1.00, 1.00},
		{"Severe male factor hits fertilization only", domain.MALE_FACTOR_SEVERE, 1.00, 0.75},
		{"DOR hits oocyte yield hardest", domain.DIMINISHED_OVARIAN_RESERVE, 0.70, 0.95},
		{"Ovulatory boosts yield", domain.OVULATORY, 1.15, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ProfileForDiagnosis(tt.diagnosis)
			assert.Equal(t, tt.wantOocyte, profile.Oocyte)
			assert.Equal(t, tt.wantFert, profile.Fertilization)
		})
	}
}

func TestProfileForDiagnosis_EveryVariantHasARow(t *testing.T) {
	for _, d := range domain.AllDiagnoses() {
		_, ok := diagnosisTable[d]
		assert.True(t, ok, "diagnosis %s missing from table", d)
	}
}

func TestProfileForDiagnosis_UnknownFallsBackToOther(t *testing.T) {
	profile := ProfileForDiagnosis(domain.DiagnosisType("SOMETHING_NEW"))
	assert.Equal(t, diagnosisTable[domain.OTHER], profile)
}

func TestEstrogenResponseForRatio(t *testing.T) {
	tests := []struct {
		name      string
		ratio     float64
		wantLabel string
	}{
		{"Severe under-response", 0.2, "severe under-response"},
		{"Under-response", 0.58, "under-response"},
		{"Normal", 1.0, "normal response"},
		{"Elevated", 1.5, "elevated response"},
		{"Over-response", 2.5, "over-response"},
		{"Severe over-response", 4.0, "severe over-response (OHSS risk)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLabel, EstrogenResponseForRatio(tt.ratio).Label)
		})
	}
}

func TestPercentileLabel(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0.3, "below 25th percentile"},
		{0.6, "25th to 40th percentile"},
		{1.0, "average response (40th to 60th percentile)"},
		{1.3, "60th to 75th percentile"},
		{1.8, "above 75th percentile"},
		{2.5, "excellent response"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PercentileLabel(tt.ratio), "ratio %.2f", tt.ratio)
	}
}

func TestMedianOocytesForAge(t *testing.T) {
	assert.Equal(t, 12.0, MedianOocytesForAge(32))
	assert.Equal(t, 4.0, MedianOocytesForAge(44))
	assert.Equal(t, 4.0, MedianOocytesForAge(70))
}

func TestEuploidyVarianceForAge(t *testing.T) {
	assert.Equal(t, 0.06, EuploidyVarianceForAge(25))
	assert.Equal(t, 0.16, EuploidyVarianceForAge(44))
	assert.Equal(t, 0.16, EuploidyVarianceForAge(70))
}
