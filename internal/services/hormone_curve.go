package services

import (
	"math"

	"github.com/terraincognita07/cyclecast/internal/models"
)

// HormoneLevels returns estrogen and progesterone for a cycle day. Estrogen is
// a half-sine bump over the whole cycle; progesterone stays at its minimum for
// the first half and rises as a half-sine over the second. Both return to
// their minimums at day == cycleLength. cycleLength must be positive.
func (model *CycleModel) HormoneLevels(day int, cycleLength int) (float64, float64) {
	return model.estrogenLevel(day, cycleLength), model.progesteroneLevel(day, cycleLength)
}

func (model *CycleModel) HormoneSample(day int, cycleLength int) models.HormoneSample {
	estrogen, progesterone := model.HormoneLevels(day, cycleLength)
	return models.HormoneSample{
		Day:          day,
		Estrogen:     estrogen,
		Progesterone: progesterone,
	}
}

// HormoneCurve samples days 1..cycleLength in order.
func (model *CycleModel) HormoneCurve(cycleLength int) []models.HormoneSample {
	if cycleLength <= 0 {
		return nil
	}
	samples := make([]models.HormoneSample, 0, cycleLength)
	for day := 1; day <= cycleLength; day++ {
		samples = append(samples, model.HormoneSample(day, cycleLength))
	}
	return samples
}

func (model *CycleModel) estrogenLevel(day int, cycleLength int) float64 {
	minimum := model.constants.EstrogenMin
	maximum := model.constants.EstrogenMax
	return minimum + (maximum-minimum)*math.Sin(math.Pi*float64(day)/float64(cycleLength))
}

func (model *CycleModel) progesteroneLevel(day int, cycleLength int) float64 {
	minimum := model.constants.ProgesteroneMin
	maximum := model.constants.ProgesteroneMax

	half := float64(cycleLength) / 2
	if float64(day) < half {
		return minimum
	}
	return minimum + (maximum-minimum)*math.Sin(math.Pi*(float64(day)-half)/half)
}
