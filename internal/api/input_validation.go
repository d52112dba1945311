package api

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/models"
)

type hormoneLevelsPayload struct {
	Day         int  `json:"day"`
	CycleLength int  `json:"cycle_length"`
	Irregular   bool `json:"irregular"`
}

type cycleInputPayload struct {
	LastPeriodStart string `json:"last_period_start"`
	CycleLength     int    `json:"cycle_length"`
	Day             int    `json:"day"`
	Irregular       bool   `json:"irregular"`
}

// cycleQuery is the shared cycle_length/irregular pair read by the GET tools.
type cycleQuery struct {
	CycleLength int
	Irregular   bool
}

func parseHormoneLevelsPayload(c *fiber.Ctx) (hormoneLevelsPayload, error) {
	payload := hormoneLevelsPayload{}
	if isJSONBody(c) {
		if err := c.BodyParser(&payload); err != nil {
			return hormoneLevelsPayload{}, fmt.Errorf("%w: %v", errInvalidInput, err)
		}
	} else {
		day, err := parseOptionalInt(c.FormValue("day"), 0)
		if err != nil {
			return hormoneLevelsPayload{}, fmt.Errorf("%w: day", errInvalidInput)
		}
		cycleLength, err := parseOptionalInt(c.FormValue("cycle_length"), 0)
		if err != nil {
			return hormoneLevelsPayload{}, fmt.Errorf("%w: cycle_length", errInvalidInput)
		}
		payload = hormoneLevelsPayload{
			Day:         day,
			CycleLength: cycleLength,
			Irregular:   parseBoolValue(c.FormValue("irregular")),
		}
	}

	if payload.CycleLength == 0 {
		payload.CycleLength = models.DefaultCycleLength
	}
	return payload, nil
}

func parseCycleInputPayload(c *fiber.Ctx) (cycleInputPayload, error) {
	if isJSONBody(c) {
		payload := cycleInputPayload{}
		if err := c.BodyParser(&payload); err != nil {
			return cycleInputPayload{}, fmt.Errorf("%w: %v", errInvalidInput, err)
		}
		return payload, nil
	}

	cycleLength, err := parseOptionalInt(c.FormValue("cycle_length"), 0)
	if err != nil {
		return cycleInputPayload{}, fmt.Errorf("%w: cycle_length", errInvalidInput)
	}
	day, err := parseOptionalInt(c.FormValue("day"), 0)
	if err != nil {
		return cycleInputPayload{}, fmt.Errorf("%w: day", errInvalidInput)
	}
	return cycleInputPayload{
		LastPeriodStart: strings.TrimSpace(c.FormValue("last_period_start")),
		CycleLength:     cycleLength,
		Day:             day,
		Irregular:       parseBoolValue(c.FormValue("irregular")),
	}, nil
}

func parseCycleQuery(c *fiber.Ctx) (cycleQuery, error) {
	cycleLength, err := parseOptionalInt(c.Query("cycle_length"), models.DefaultCycleLength)
	if err != nil {
		return cycleQuery{}, fmt.Errorf("%w: cycle_length", errInvalidInput)
	}
	return cycleQuery{
		CycleLength: cycleLength,
		Irregular:   parseBoolValue(c.Query("irregular")),
	}, nil
}
