package services

import (
	"errors"
	"testing"
	"time"
)

func TestValidateCycleInputAcceptsValidValues(t *testing.T) {
	t.Parallel()

	model := newDefaultCycleModel()
	params, err := model.ValidateCycleInput(CycleInput{
		LastPeriodStart: " 2024-10-01 ",
		CycleLength:     28,
		Day:             14,
	})
	if err != nil {
		t.Fatalf("expected valid input, got error: %v", err)
	}
	if params.CycleLength != 28 || params.Day != 14 || params.Irregular {
		t.Fatalf("unexpected parameters: %#v", params)
	}
	if got := params.LastPeriodStart.Format("2006-01-02"); got != "2024-10-01" {
		t.Fatalf("expected last period start 2024-10-01, got %s", got)
	}
}

func TestValidateCycleInputRangePolicy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		input     CycleInput
		wantField string
		wantMin   int
		wantMax   int
	}{
		{name: "cycle too short", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 20, Day: 1}, wantField: FieldCycleLength, wantMin: 21, wantMax: 35},
		{name: "cycle too long for regular", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 36, Day: 1}, wantField: FieldCycleLength, wantMin: 21, wantMax: 35},
		{name: "cycle too long for irregular", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 91, Day: 1, Irregular: true}, wantField: FieldCycleLength, wantMin: 21, wantMax: 90},
		{name: "day zero without today", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 28}, wantField: FieldDay, wantMin: 1, wantMax: 28},
		{name: "day beyond cycle", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 28, Day: 29}, wantField: FieldDay, wantMin: 1, wantMax: 28},
		{name: "negative day", input: CycleInput{LastPeriodStart: "2024-10-01", CycleLength: 28, Day: -3}, wantField: FieldDay, wantMin: 1, wantMax: 28},
	}

	model := newDefaultCycleModel()
	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := model.ValidateCycleInput(testCase.input)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("expected *RangeError, got %T", err)
			}
			if rangeErr.Field != testCase.wantField || rangeErr.Min != testCase.wantMin || rangeErr.Max != testCase.wantMax {
				t.Fatalf("expected %s in %d..%d, got %#v", testCase.wantField, testCase.wantMin, testCase.wantMax, rangeErr)
			}
		})
	}
}

func TestValidateCycleInputIrregularAllowsLongCycles(t *testing.T) {
	t.Parallel()

	model := newDefaultCycleModel()
	params, err := model.ValidateCycleInput(CycleInput{
		LastPeriodStart: "2024-10-01",
		CycleLength:     60,
		Day:             45,
		Irregular:       true,
	})
	if err != nil {
		t.Fatalf("expected irregular 60-day cycle to pass, got %v", err)
	}
	if !params.Irregular {
		t.Fatal("expected irregular flag to be kept")
	}
}

func TestValidateCycleInputRejectsInvalidDate(t *testing.T) {
	t.Parallel()

	model := newDefaultCycleModel()
	for _, raw := range []string{"", "2024-10-1", "10/01/2024", "2024-02-31"} {
		_, err := model.ValidateCycleInput(CycleInput{LastPeriodStart: raw, CycleLength: 28, Day: 3})
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("input %q: expected ErrInvalidDateFormat, got %v", raw, err)
		}
	}
}

func TestValidateCycleInputDerivesDayFromToday(t *testing.T) {
	t.Parallel()

	model := newDefaultCycleModel()
	today := time.Date(2024, time.October, 10, 18, 30, 0, 0, time.UTC)
	params, err := model.ValidateCycleInput(CycleInput{
		LastPeriodStart: "2024-10-01",
		CycleLength:     28,
		Today:           today,
	})
	if err != nil {
		t.Fatalf("expected derived day to validate, got %v", err)
	}
	if params.Day != 10 {
		t.Fatalf("expected derived day 10, got %d", params.Day)
	}

	_, err = model.ValidateCycleInput(CycleInput{
		LastPeriodStart: "2024-10-11",
		CycleLength:     28,
		Today:           today,
	})
	var rangeErr *RangeError
	if !errors.As(err, &rangeErr) || rangeErr.Field != FieldDay {
		t.Fatalf("expected day range error for future start, got %v", err)
	}
}

func TestCycleDayOn(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		start time.Time
		today time.Time
		want  int
	}{
		{name: "same day", today: start, want: 1},
		{name: "last day of cycle", today: start.AddDate(0, 0, 27), want: 28},
		{name: "projected into next cycle", today: start.AddDate(0, 0, 28), want: 1},
		{name: "two cycles later", today: start.AddDate(0, 0, 60), want: 5},
		{name: "before start", today: start.AddDate(0, 0, -1), want: 0},
		{name: "far past start", start: time.Date(1700, time.January, 1, 0, 0, 0, 0, time.UTC), today: time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC), want: 19},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cycleStart := start
			if !testCase.start.IsZero() {
				cycleStart = testCase.start
			}
			if got := CycleDayOn(cycleStart, testCase.today, 28); got != testCase.want {
				t.Fatalf("expected cycle day %d, got %d", testCase.want, got)
			}
		})
	}
}

func TestValidateCycleLengthHonorsIrregularBound(t *testing.T) {
	t.Parallel()

	model := newDefaultCycleModel()
	if err := model.ValidateCycleLength(60, false); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected regular 60-day cycle to be out of range, got %v", err)
	}
	if err := model.ValidateCycleLength(60, true); err != nil {
		t.Fatalf("expected irregular 60-day cycle to pass, got %v", err)
	}
	if err := ValidateCycleDay(29, 28); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected day 29 of 28 to be out of range, got %v", err)
	}
}
