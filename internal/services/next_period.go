package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
)

var ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

func (model *CycleModel) PredictNextPeriod(lastPeriodStart string, cycleLength int) (models.NextPeriodPrediction, error) {
	start, err := ParseCycleDate(lastPeriodStart)
	if err != nil {
		return models.NextPeriodPrediction{}, err
	}
	return nextPeriodFrom(start, cycleLength), nil
}

func nextPeriodFrom(lastPeriodStart time.Time, cycleLength int) models.NextPeriodPrediction {
	return models.NextPeriodPrediction{Date: dateOnly(lastPeriodStart).AddDate(0, 0, cycleLength)}
}

func ParseCycleDate(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation(models.DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return parsed, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
