package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/cyclecast/internal/models"
)

const (
	FieldCycleLength = "cycle_length"
	FieldDay         = "day"
)

var ErrInvalidRange = errors.New("value out of range")

var validate = validator.New()

// RangeError reports a day or cycle length outside the accepted bounds.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", err.Field, err.Min, err.Max, err.Value)
}

func (err *RangeError) Unwrap() error {
	return ErrInvalidRange
}

type CycleInput struct {
	LastPeriodStart string
	CycleLength     int
	// Day is derived from LastPeriodStart and Today when zero.
	Day       int
	Irregular bool
	Today     time.Time
}

func (model *CycleModel) ValidateCycleInput(input CycleInput) (models.CycleParameters, error) {
	if err := model.ValidateCycleLength(input.CycleLength, input.Irregular); err != nil {
		return models.CycleParameters{}, err
	}

	rawDate := strings.TrimSpace(input.LastPeriodStart)
	if err := validate.Var(rawDate, "required,datetime="+models.DateLayout); err != nil {
		return models.CycleParameters{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, input.LastPeriodStart)
	}
	lastPeriodStart, err := ParseCycleDate(rawDate)
	if err != nil {
		return models.CycleParameters{}, err
	}

	day := input.Day
	if day == 0 && !input.Today.IsZero() {
		day = CycleDayOn(lastPeriodStart, input.Today, input.CycleLength)
	}
	if err := ValidateCycleDay(day, input.CycleLength); err != nil {
		return models.CycleParameters{}, err
	}

	return models.CycleParameters{
		CycleLength:     input.CycleLength,
		Day:             day,
		LastPeriodStart: lastPeriodStart,
		Irregular:       input.Irregular,
	}, nil
}

func (model *CycleModel) ValidateCycleLength(cycleLength int, irregular bool) error {
	minLength, maxLength := model.constants.CycleLengthBounds(irregular)
	return validateIntRange(FieldCycleLength, cycleLength, minLength, maxLength)
}

func ValidateCycleDay(day int, cycleLength int) error {
	return validateIntRange(FieldDay, day, 1, cycleLength)
}

// CycleDayOn returns the 1-indexed cycle day of today, projecting the last
// period start forward by whole cycles. Zero means today precedes the start.
func CycleDayOn(lastPeriodStart time.Time, today time.Time, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	start := dateOnly(lastPeriodStart)
	current := dateOnly(today)
	if current.Before(start) {
		return 0
	}
	elapsed := int((current.Unix() - start.Unix()) / 86400)
	return elapsed%cycleLength + 1
}

func validateIntRange(field string, value int, minimum int, maximum int) error {
	if err := validate.Var(value, fmt.Sprintf("gte=%d,lte=%d", minimum, maximum)); err != nil {
		return &RangeError{Field: field, Value: value, Min: minimum, Max: maximum}
	}
	return nil
}
