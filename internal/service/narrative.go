package service

import (
	"fmt"

	"github.com/ivf-outcome-server/internal/domain"
)

// The two disclaimers terminate every note list.
const (
	disclaimerStatistical = "These estimates are statistical projections based on population-level data and do not guarantee individual outcomes."
	disclaimerSpecialist  = "Discuss these results with your fertility specialist before making treatment decisions."
)

// overallConfidence maps the input profile to a confidence label. Age
// deductions are mutually exclusive ranges, so at most one applies.
func overallConfidence(in domain.PredictionInputs) domain.ConfidenceLevel {
	score := 1.0
	if in.Age > 42 {
		score -= 0.3
	} else if in.Age < 25 {
		score -= 0.2
	}
	if in.AMHLevel < 0.5 || in.AMHLevel > 10 {
		score -= 0.2
	}
	if in.DiagnosisType == domain.OTHER || in.DiagnosisType == domain.DIMINISHED_OVARIAN_RESERVE {
		score -= 0.2
	}

	switch {
	case score >= 0.8:
		return domain.HIGH
	case score >= 0.5:
		return domain.MODERATE
	default:
		return domain.LOW
	}
}

// clinicalNotes generates the ordered note list. The check order (age, AMH,
// oocyte count, diagnosis, disclaimers) is part of the contract since notes
// are presented in list order.
func clinicalNotes(in domain.PredictionInputs, predictedOocytes float64) []string {
	notes := make([]string, 0, 6)

	switch {
	case in.Age >= 43:
		notes = append(notes, "Age 43 or older is associated with substantially reduced ovarian response and higher embryo aneuploidy rates.")
	case in.Age >= 40:
		notes = append(notes, "Advanced maternal age (40+) reduces both expected oocyte yield and the fraction of chromosomally normal embryos.")
	case in.Age < 25:
		notes = append(notes, "At a very young maternal age, individual response can vary more widely than population averages suggest.")
	}

	switch {
	case in.AMHLevel < 0.5:
		notes = append(notes, "AMH below 0.5 ng/mL indicates severely diminished ovarian reserve; a poor response to stimulation is likely.")
	case in.AMHLevel < 1.0:
		notes = append(notes, "AMH below 1.0 ng/mL suggests diminished ovarian reserve.")
	case in.AMHLevel > 6.8:
		notes = append(notes, "AMH above 6.8 ng/mL suggests a high-reserve (PCOS-range) profile; monitoring for ovarian hyperstimulation is advised.")
	}

	switch {
	case predictedOocytes < 5:
		notes = append(notes, fmt.Sprintf("Fewer than 5 oocytes are predicted (%.1f); consider discussing protocol adjustments or cycle pooling.", predictedOocytes))
	case predictedOocytes > 20:
		notes = append(notes, fmt.Sprintf("A high oocyte yield is predicted (%.1f); stimulation should be monitored for hyperstimulation risk.", predictedOocytes))
	}

	switch in.DiagnosisType {
	case domain.DIMINISHED_OVARIAN_RESERVE:
		notes = append(notes, "Diminished ovarian reserve typically lowers both oocyte yield and embryo quality; these predictions carry wider uncertainty.")
	case domain.MALE_FACTOR_SEVERE:
		notes = append(notes, "Severe male factor infertility strongly favors ICSI fertilization.")
	case domain.ENDOMETRIOSIS:
		notes = append(notes, "Endometriosis can reduce oocyte yield and embryo quality beyond what age and AMH alone predict.")
	case domain.OTHER:
		notes = append(notes, "An unspecified diagnosis limits how precisely outcomes can be modeled; these estimates rely on population baselines.")
	}

	notes = append(notes, disclaimerStatistical, disclaimerSpecialist)
	return notes
}

// References returns the static bibliography attached to every result.
func References() []string {
	return []string{
		"La Marca A, et al. Anti-Mullerian hormone (AMH) as a predictive marker in assisted reproductive technology. Hum Reprod Update. 2010;16(2):113-130.",
		"SART National Summary Report: preliminary live birth and retrieval outcomes by age group.",
		"Franasiak JM, et al. The nature of aneuploidy with increasing age of the female partner. Fertil Steril. 2014;101(3):656-663.",
		"Palermo G, et al. Pregnancies after intracytoplasmic injection of single spermatozoon into an oocyte. Lancet. 1992;340(8810):17-18.",
		"Gardner DK, Schoolcraft WB. Culture and transfer of human blastocysts. Curr Opin Obstet Gynecol. 1999;11(3):307-311.",
	}
}
