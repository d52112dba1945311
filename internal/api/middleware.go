package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	sessionCookieName   = "cyclecast_session"
	languageCookieName  = "cyclecast_lang"
	requestIDHeader     = "X-Request-ID"
	contextLanguageKey  = "current_language"
	contextRequestIDKey = "request_id"
	maxRequestIDLength  = 64
)

func (handler *Handler) RequestIDMiddleware(c *fiber.Ctx) error {
	requestID := strings.TrimSpace(c.Get(requestIDHeader))
	if requestID == "" || len(requestID) > maxRequestIDLength {
		requestID = uuid.NewString()
	}

	c.Locals(contextRequestIDKey, requestID)
	c.Set(requestIDHeader, requestID)
	return c.Next()
}

func currentRequestID(c *fiber.Ctx) string {
	requestID, _ := c.Locals(contextRequestIDKey).(string)
	return requestID
}

func (handler *Handler) requestLog(c *fiber.Ctx) *logrus.Entry {
	return handler.log.WithFields(logrus.Fields{
		"request_id": currentRequestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
	})
}
