package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/lang/:lang", handler.SetLanguage)

	api := app.Group("/api")
	api.Post("/hormone-levels", handler.HormoneLevels)
	api.Get("/ovulation", handler.Ovulation)
	api.Get("/phase", handler.Phase)
	api.Get("/next-period", handler.NextPeriod)
	api.Get("/curve", handler.Curve)

	api.Post("/cycle", handler.SaveCycle)
	api.Get("/cycle", handler.ShowCycle)
	api.Delete("/cycle", handler.ClearCycle)

	app.Use(handler.NotFound)
}
