package models

// CycleConstants holds every tunable of the cycle model. It is built once at
// startup and passed by value; nothing mutates it afterwards.
type CycleConstants struct {
	EstrogenMin     float64
	EstrogenMax     float64
	ProgesteroneMin float64
	ProgesteroneMax float64

	MenstrualPhaseEnd  int
	OvulationHalfWidth int

	MinCycleLength          int
	MaxCycleLength          int
	IrregularMaxCycleLength int

	ClampOvulationWindow bool
}

func DefaultCycleConstants() CycleConstants {
	return CycleConstants{
		EstrogenMin:             50,
		EstrogenMax:             200,
		ProgesteroneMin:         1,
		ProgesteroneMax:         25,
		MenstrualPhaseEnd:       5,
		OvulationHalfWidth:      2,
		MinCycleLength:          21,
		MaxCycleLength:          35,
		IrregularMaxCycleLength: 90,
	}
}

// CycleLengthBounds returns the accepted cycle length range for the given
// irregular-cycle flag.
func (constants CycleConstants) CycleLengthBounds(irregular bool) (int, int) {
	if irregular {
		return constants.MinCycleLength, constants.IrregularMaxCycleLength
	}
	return constants.MinCycleLength, constants.MaxCycleLength
}
