package api

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

type Handler struct {
	model        *services.CycleModel
	sessions     *cycleSessionCodec
	i18n         *i18n.Manager
	log          *logrus.Logger
	location     *time.Location
	cookieSecure bool
	now          func() time.Time
}

type phaseResponse struct {
	Day         int          `json:"day"`
	CycleLength int          `json:"cycle_length"`
	Phase       models.Phase `json:"phase"`
	Label       string       `json:"label"`
}

type nextPeriodResponse struct {
	LastPeriodStart string `json:"last_period_start"`
	CycleLength     int    `json:"cycle_length"`
	NextPeriodStart string `json:"next_period_start"`
}

type curveResponse struct {
	CycleLength int                    `json:"cycle_length"`
	Samples     []models.HormoneSample `json:"samples"`
}

type predictionResponse struct {
	LastPeriodStart string                 `json:"last_period_start"`
	CycleLength     int                    `json:"cycle_length"`
	Day             int                    `json:"day"`
	Irregular       bool                   `json:"irregular"`
	Today           string                 `json:"today"`
	Estrogen        float64                `json:"estrogen"`
	Progesterone    float64                `json:"progesterone"`
	Phase           models.Phase           `json:"phase"`
	PhaseLabel      string                 `json:"phase_label"`
	Ovulation       models.OvulationWindow `json:"ovulation"`
	NextPeriodStart string                 `json:"next_period_start"`
	Curve           []models.HormoneSample `json:"curve"`
	Notices         []string               `json:"notices,omitempty"`
}
