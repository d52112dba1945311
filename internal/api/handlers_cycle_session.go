package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func (handler *Handler) SaveCycle(c *fiber.Ctx) error {
	payload, err := parseCycleInputPayload(c)
	if err != nil {
		return handler.cycleError(c, err)
	}

	state := cycleSessionState{
		LastPeriodStart: payload.LastPeriodStart,
		CycleLength:     payload.CycleLength,
		Day:             payload.Day,
		Irregular:       payload.Irregular,
	}
	prediction, today, err := handler.predictFromState(state)
	if err != nil {
		return handler.cycleError(c, err)
	}

	token, err := handler.sessions.encode(state, handler.now())
	if err != nil {
		handler.requestLog(c).WithError(err).Error("failed to sign cycle session")
		return apiError(c, fiber.StatusInternalServerError, "session_failed", "failed to save cycle data")
	}
	handler.setSessionCookie(c, token, handler.now().Add(cycleSessionTTL))

	language := handler.currentLanguage(c)
	response := handler.buildPredictionResponse(c, prediction, today)
	response.Notices = append([]string{handler.i18n.Translate(language, "notice.predictions_calculated")}, response.Notices...)
	return c.JSON(response)
}

func (handler *Handler) ShowCycle(c *fiber.Ctx) error {
	raw := c.Cookies(sessionCookieName)
	if raw == "" {
		return handler.localizedError(c, fiber.StatusNotFound, errorCodeNoCycleData)
	}

	state, err := handler.sessions.decode(raw, handler.now())
	if err != nil {
		handler.requestLog(c).WithError(err).Warn("ignoring invalid cycle session cookie")
		handler.clearSessionCookie(c)
		return handler.localizedError(c, fiber.StatusNotFound, errorCodeNoCycleData)
	}

	prediction, today, err := handler.predictFromState(state)
	if err != nil {
		return handler.cycleError(c, err)
	}
	return c.JSON(handler.buildPredictionResponse(c, prediction, today))
}

func (handler *Handler) ClearCycle(c *fiber.Ctx) error {
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) predictFromState(state cycleSessionState) (models.CyclePrediction, time.Time, error) {
	today := handler.today()
	params, err := handler.model.ValidateCycleInput(services.CycleInput{
		LastPeriodStart: state.LastPeriodStart,
		CycleLength:     state.CycleLength,
		Day:             state.Day,
		Irregular:       state.Irregular,
		Today:           today,
	})
	if err != nil {
		return models.CyclePrediction{}, today, err
	}

	prediction, err := handler.model.Predict(params)
	return prediction, today, err
}

func (handler *Handler) buildPredictionResponse(c *fiber.Ctx, prediction models.CyclePrediction, today time.Time) predictionResponse {
	language := handler.currentLanguage(c)
	params := prediction.Parameters

	response := predictionResponse{
		LastPeriodStart: params.LastPeriodStart.Format(models.DateLayout),
		CycleLength:     params.CycleLength,
		Day:             params.Day,
		Irregular:       params.Irregular,
		Today:           today.Format(models.DateLayout),
		Estrogen:        prediction.Hormones.Estrogen,
		Progesterone:    prediction.Hormones.Progesterone,
		Phase:           prediction.Phase,
		PhaseLabel:      handler.phaseLabel(c, prediction.Phase),
		Ovulation:       prediction.Ovulation,
		NextPeriodStart: prediction.NextPeriod.Format(),
		Curve:           prediction.Curve,
	}
	if prediction.ExtendedCycle {
		response.Notices = append(response.Notices, handler.i18n.Translatef(language, "notice.extended_cycle", params.CycleLength))
	}
	return response
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	handler.setSessionCookie(c, "", handler.now().Add(-time.Hour))
}
