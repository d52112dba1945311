package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

var curveCSVHeaders = []string{"day", "estrogen", "progesterone"}

func (handler *Handler) HormoneLevels(c *fiber.Ctx) error {
	payload, err := parseHormoneLevelsPayload(c)
	if err != nil {
		return handler.cycleError(c, err)
	}
	if err := handler.model.ValidateCycleLength(payload.CycleLength, payload.Irregular); err != nil {
		return handler.cycleError(c, err)
	}
	if err := services.ValidateCycleDay(payload.Day, payload.CycleLength); err != nil {
		return handler.cycleError(c, err)
	}

	return c.JSON(handler.model.HormoneSample(payload.Day, payload.CycleLength))
}

func (handler *Handler) Ovulation(c *fiber.Ctx) error {
	query, err := handler.validatedCycleQuery(c)
	if err != nil {
		return handler.cycleError(c, err)
	}
	return c.JSON(handler.model.PredictOvulationPhase(query.CycleLength))
}

func (handler *Handler) Phase(c *fiber.Ctx) error {
	query, err := handler.validatedCycleQuery(c)
	if err != nil {
		return handler.cycleError(c, err)
	}
	if strings.TrimSpace(c.Query("day")) == "" {
		return handler.cycleError(c, errInvalidInput)
	}
	day, err := parseOptionalInt(c.Query("day"), 0)
	if err != nil {
		return handler.cycleError(c, fmt.Errorf("%w: day", errInvalidInput))
	}
	if err := services.ValidateCycleDay(day, query.CycleLength); err != nil {
		return handler.cycleError(c, err)
	}

	phase := handler.model.PredictCurrentPhase(day, query.CycleLength)
	return c.JSON(phaseResponse{
		Day:         day,
		CycleLength: query.CycleLength,
		Phase:       phase,
		Label:       handler.phaseLabel(c, phase),
	})
}

func (handler *Handler) NextPeriod(c *fiber.Ctx) error {
	query, err := handler.validatedCycleQuery(c)
	if err != nil {
		return handler.cycleError(c, err)
	}

	lastPeriodStart := strings.TrimSpace(c.Query("last_period_start"))
	prediction, err := handler.model.PredictNextPeriod(lastPeriodStart, query.CycleLength)
	if err != nil {
		return handler.cycleError(c, err)
	}

	return c.JSON(nextPeriodResponse{
		LastPeriodStart: lastPeriodStart,
		CycleLength:     query.CycleLength,
		NextPeriodStart: prediction.Format(),
	})
}

func (handler *Handler) Curve(c *fiber.Ctx) error {
	query, err := handler.validatedCycleQuery(c)
	if err != nil {
		return handler.cycleError(c, err)
	}
	samples := handler.model.HormoneCurve(query.CycleLength)

	switch strings.ToLower(strings.TrimSpace(c.Query("format", "json"))) {
	case "json":
		return c.JSON(curveResponse{CycleLength: query.CycleLength, Samples: samples})
	case "csv":
		return handler.curveCSV(c, query.CycleLength, samples)
	default:
		return handler.cycleError(c, fmt.Errorf("%w: format", errInvalidInput))
	}
}

func (handler *Handler) curveCSV(c *fiber.Ctx, cycleLength int, samples []models.HormoneSample) error {
	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(curveCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "export_failed", "failed to build export")
	}

	for _, sample := range samples {
		if err := writer.Write([]string{
			strconv.Itoa(sample.Day),
			strconv.FormatFloat(sample.Estrogen, 'f', 4, 64),
			strconv.FormatFloat(sample.Progesterone, 'f', 4, 64),
		}); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "export_failed", "failed to build export")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "export_failed", "failed to build export")
	}

	setExportAttachmentHeaders(c, "text/csv; charset=utf-8", fmt.Sprintf("cyclecast-curve-%d.csv", cycleLength))
	return c.Send(output.Bytes())
}

func (handler *Handler) validatedCycleQuery(c *fiber.Ctx) (cycleQuery, error) {
	query, err := parseCycleQuery(c)
	if err != nil {
		return cycleQuery{}, err
	}
	if err := handler.model.ValidateCycleLength(query.CycleLength, query.Irregular); err != nil {
		return cycleQuery{}, err
	}
	return query, nil
}

func (handler *Handler) phaseLabel(c *fiber.Ctx, phase models.Phase) string {
	return handler.i18n.Translate(handler.currentLanguage(c), "phase."+phase.Key())
}
