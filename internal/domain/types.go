package domain

// Core Enums and Types

// DiagnosisType represents the fixed set of fertility diagnoses
type DiagnosisType string

const (
	UNEXPLAINED                DiagnosisType = "UNEXPLAINED"
	MALE_FACTOR_MILD           DiagnosisType = "MALE_FACTOR_MILD"
	MALE_FACTOR_SEVERE         DiagnosisType = "MALE_FACTOR_SEVERE"
	OVULATORY                  DiagnosisType = "OVULATORY"
	TUBAL                      DiagnosisType = "TUBAL"
	ENDOMETRIOSIS              DiagnosisType = "ENDOMETRIOSIS"
	DIMINISHED_OVARIAN_RESERVE DiagnosisType = "DIMINISHED_OVARIAN_RESERVE"
	OTHER                      DiagnosisType = "OTHER"
)

// String returns the string representation of the diagnosis type
func (d DiagnosisType) String() string {
	return string(d)
}

// IsValid checks whether the diagnosis is one of the fixed variants
func (d DiagnosisType) IsValid() bool {
	switch d {
	case UNEXPLAINED, MALE_FACTOR_MILD, MALE_FACTOR_SEVERE, OVULATORY,
		TUBAL, ENDOMETRIOSIS, DIMINISHED_OVARIAN_RESERVE, OTHER:
		return true
	}
	return false
}

// AllDiagnoses lists every diagnosis variant in a stable order
func AllDiagnoses() []DiagnosisType {
	return []DiagnosisType{
		UNEXPLAINED,
		MALE_FACTOR_MILD,
		MALE_FACTOR_SEVERE,
		OVULATORY,
		TUBAL,
		ENDOMETRIOSIS,
		DIMINISHED_OVARIAN_RESERVE,
		OTHER,
	}
}

// Procedure represents the fertilization procedure selected by the
// recommendation step. The cascade reads this enum, never the explanation text.
type Procedure string

const (
	ICSI             Procedure = "ICSI"
	CONVENTIONAL_IVF Procedure = "CONVENTIONAL_IVF"
)

// String returns the string representation of the procedure
func (p Procedure) String() string {
	return string(p)
}

// ConfidenceLevel represents the overall confidence in a prediction
type ConfidenceLevel string

const (
	HIGH     ConfidenceLevel = "HIGH"
	MODERATE ConfidenceLevel = "MODERATE"
	LOW      ConfidenceLevel = "LOW"
)

// String returns the string representation of the confidence level
func (c ConfidenceLevel) String() string {
	return string(c)
}
