package services

import "github.com/terraincognita07/cyclecast/internal/models"

// PredictCurrentPhase classifies a cycle day. The menstrual cutoff is a fixed
// day and does not scale with cycle length; the ovulation band is the same
// midpoint ± half-width used by PredictOvulationPhase.
func (model *CycleModel) PredictCurrentPhase(day int, cycleLength int) models.Phase {
	midpoint := cycleLength / 2
	halfWidth := model.constants.OvulationHalfWidth

	switch {
	case day <= model.constants.MenstrualPhaseEnd:
		return models.PhaseMenstrual
	case day <= midpoint-halfWidth:
		return models.PhaseFollicular
	case day <= midpoint+halfWidth:
		return models.PhaseOvulation
	default:
		return models.PhaseLuteal
	}
}
