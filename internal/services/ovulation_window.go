package services

import "github.com/terraincognita07/cyclecast/internal/models"

// PredictOvulationPhase places ovulation at the integer midpoint of the cycle
// with a fixed half-width window around it. The window is not clamped to
// 1..cycleLength unless the constants ask for it, so very short cycles can
// produce bounds below day 1.
func (model *CycleModel) PredictOvulationPhase(cycleLength int) models.OvulationWindow {
	ovulationDay := cycleLength / 2
	halfWidth := model.constants.OvulationHalfWidth

	window := models.OvulationWindow{
		OvulationDay: ovulationDay,
		WindowStart:  ovulationDay - halfWidth,
		WindowEnd:    ovulationDay + halfWidth,
	}
	if cycleLength <= 0 {
		window.PeakEstrogen = []float64{}
		return window
	}

	window.PeakEstrogen = make([]float64, 0, window.WindowEnd-window.WindowStart+1)
	for _, day := range window.Days() {
		window.PeakEstrogen = append(window.PeakEstrogen, model.estrogenLevel(day, cycleLength))
	}

	if model.constants.ClampOvulationWindow {
		return window.Clamp(cycleLength)
	}
	return window
}
