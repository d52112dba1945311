package api

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func NewHandler(model *services.CycleModel, secret string, location *time.Location, i18nManager *i18n.Manager, log *logrus.Logger, cookieSecure bool) (*Handler, error) {
	if model == nil {
		return nil, errors.New("cycle model is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}
	if log == nil {
		log = logrus.New()
	}

	sessions, err := newCycleSessionCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	return &Handler{
		model:        model,
		sessions:     sessions,
		i18n:         i18nManager,
		log:          log,
		location:     location,
		cookieSecure: cookieSecure,
		now:          time.Now,
	}, nil
}

// today is the current calendar day in the configured location.
func (handler *Handler) today() time.Time {
	now := handler.now().In(handler.location)
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
