package service

import (
	"github.com/ivf-outcome-server/internal/domain"
)

// assembleCascade stitches the stage outputs into the reconciled ledger.
// Every loss is the difference of adjacent counts, never re-derived from
// rates, so upstream = downstream + loss holds by construction.
func assembleCascade(total, mature, fertilized, day3, blastocysts, euploid float64) domain.CascadeFlow {
	aneuploid := blastocysts - euploid

	return domain.CascadeFlow{
		TotalOocytes:         total,
		MatureOocytes:        mature,
		FertilizedEmbryos:    fertilized,
		Day3Embryos:          day3,
		Blastocysts:          blastocysts,
		EuploidBlastocysts:   euploid,
		AneuploidBlastocysts: aneuploid,
		StageLosses: domain.StageLosses{
			ImmatureOocytes:          total - mature,
			FertilizationFailure:     mature - fertilized,
			Day3Arrest:               fertilized - day3,
			BlastocystArrest:         day3 - blastocysts,
			ChromosomalAbnormalities: aneuploid,
		},
	}
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
