package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/cyclecast/internal/services"
)

const (
	errorCodeInvalidInput      = "invalid_input"
	errorCodeInvalidDateFormat = "invalid_date_format"
	errorCodeNoCycleData       = "no_cycle_data"
	errorCodeNotFound          = "not_found"
)

var errInvalidInput = errors.New("invalid input")

// cycleError maps model and policy failures to a localized 400 response.
func (handler *Handler) cycleError(c *fiber.Ctx, err error) error {
	language := handler.currentLanguage(c)
	handler.requestLog(c).WithError(err).Debug("rejected cycle input")

	var rangeErr *services.RangeError
	switch {
	case errors.As(err, &rangeErr):
		code := rangeErr.Field + "_out_of_range"
		message := handler.i18n.Translatef(language, "error."+code, rangeErr.Min, rangeErr.Max)
		return apiError(c, fiber.StatusBadRequest, code, message)
	case errors.Is(err, services.ErrInvalidDateFormat):
		return handler.localizedError(c, fiber.StatusBadRequest, errorCodeInvalidDateFormat)
	default:
		return handler.localizedError(c, fiber.StatusBadRequest, errorCodeInvalidInput)
	}
}

func (handler *Handler) localizedError(c *fiber.Ctx, status int, code string) error {
	message := handler.i18n.Translate(handler.currentLanguage(c), "error."+code)
	return apiError(c, status, code, message)
}
