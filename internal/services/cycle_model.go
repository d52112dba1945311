package services

import "github.com/terraincognita07/cyclecast/internal/models"

// CycleModel is the deterministic hormone/phase model. It only reads its
// constants, so a single instance can be shared between goroutines.
type CycleModel struct {
	constants models.CycleConstants
}

func NewCycleModel(constants models.CycleConstants) *CycleModel {
	return &CycleModel{constants: constants}
}

func (model *CycleModel) Constants() models.CycleConstants {
	return model.constants
}

// Predict runs every model function for one set of validated parameters.
func (model *CycleModel) Predict(params models.CycleParameters) (models.CyclePrediction, error) {
	if params.CycleLength <= 0 {
		return models.CyclePrediction{}, &RangeError{
			Field: FieldCycleLength,
			Value: params.CycleLength,
			Min:   model.constants.MinCycleLength,
			Max:   model.constants.MaxCycleLength,
		}
	}

	return models.CyclePrediction{
		Parameters:    params,
		Hormones:      model.HormoneSample(params.Day, params.CycleLength),
		Ovulation:     model.PredictOvulationPhase(params.CycleLength),
		Phase:         model.PredictCurrentPhase(params.Day, params.CycleLength),
		NextPeriod:    nextPeriodFrom(params.LastPeriodStart, params.CycleLength),
		Curve:         model.HormoneCurve(params.CycleLength),
		ExtendedCycle: params.Irregular && params.CycleLength > model.constants.MaxCycleLength,
	}, nil
}
