package models

import (
	"strings"
	"time"
)

const (
	DefaultCycleLength = 28
	DateLayout         = "2006-01-02"
)

type Phase string

const (
	PhaseMenstrual  Phase = "Menstrual"
	PhaseFollicular Phase = "Follicular"
	PhaseOvulation  Phase = "Ovulation"
	PhaseLuteal     Phase = "Luteal"
)

func (phase Phase) String() string {
	return string(phase)
}

// Key is the lowercase form used for locale lookups, e.g. "phase.luteal".
func (phase Phase) Key() string {
	return strings.ToLower(string(phase))
}

type CycleParameters struct {
	CycleLength     int
	Day             int
	LastPeriodStart time.Time
	Irregular       bool
}

type HormoneSample struct {
	Day          int     `json:"day"`
	Estrogen     float64 `json:"estrogen"`
	Progesterone float64 `json:"progesterone"`
}

type OvulationWindow struct {
	OvulationDay int       `json:"ovulation_day"`
	WindowStart  int       `json:"window_start"`
	WindowEnd    int       `json:"window_end"`
	PeakEstrogen []float64 `json:"peak_estrogen"`
}

// Days lists the window's days in ascending order.
func (window OvulationWindow) Days() []int {
	if window.WindowEnd < window.WindowStart {
		return nil
	}
	days := make([]int, 0, window.WindowEnd-window.WindowStart+1)
	for day := window.WindowStart; day <= window.WindowEnd; day++ {
		days = append(days, day)
	}
	return days
}

// Clamp trims the window to 1..cycleLength, dropping the peak samples that
// fall outside it. The ovulation day itself is left untouched.
func (window OvulationWindow) Clamp(cycleLength int) OvulationWindow {
	start := max(window.WindowStart, 1)
	end := min(window.WindowEnd, cycleLength)

	clamped := OvulationWindow{
		OvulationDay: window.OvulationDay,
		WindowStart:  start,
		WindowEnd:    end,
		PeakEstrogen: []float64{},
	}
	for index, day := range window.Days() {
		if day < start || day > end || index >= len(window.PeakEstrogen) {
			continue
		}
		clamped.PeakEstrogen = append(clamped.PeakEstrogen, window.PeakEstrogen[index])
	}
	return clamped
}

type NextPeriodPrediction struct {
	Date time.Time
}

func (prediction NextPeriodPrediction) Format() string {
	if prediction.Date.IsZero() {
		return ""
	}
	return prediction.Date.Format(DateLayout)
}

type CyclePrediction struct {
	Parameters    CycleParameters
	Hormones      HormoneSample
	Ovulation     OvulationWindow
	Phase         Phase
	NextPeriod    NextPeriodPrediction
	Curve         []HormoneSample
	ExtendedCycle bool
}
