package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/models"
	"github.com/terraincognita07/cyclecast/internal/services"
)

const testSecretKey = "test-secret-key-with-at-least-32-characters"

var testNow = time.Date(2024, time.October, 15, 12, 0, 0, 0, time.UTC)

func newCycleTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	handler, err := NewHandler(services.NewCycleModel(models.DefaultCycleConstants()), testSecretKey, time.UTC, i18nManager, log, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.now = func() time.Time { return testNow }

	app := fiber.New()
	app.Use(handler.RequestIDMiddleware)
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	return app, handler
}

func responseCookieValue(cookies []*http.Cookie, name string) string {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie.Value
		}
	}
	return ""
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeJSONResponse(t *testing.T, response *http.Response, target any) {
	t.Helper()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func readAPIError(t *testing.T, response *http.Response) apiErrorBody {
	t.Helper()
	body := apiErrorBody{}
	decodeJSONResponse(t, response, &body)
	return body
}

func jsonBody(payload string) io.Reader {
	return strings.NewReader(payload)
}
