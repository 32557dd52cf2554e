package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"polo-scraper/metrics"
	"polo-scraper/utils"
)

// New builds the HTTP app with its middleware and routes.
func New(h *PoloHandler, reg *metrics.Registry, log *utils.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Polo Scraper",
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			msg := "Internal Server Error"

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				msg = e.Message
			}
			if code >= fiber.StatusInternalServerError {
				log.Error("[server] %s %s: %v", c.Method(), c.Path(), err)
			}
			return c.Status(code).JSON(fiber.Map{"error": msg})
		},
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${method} ${path} - ${ip} - ${latency} - ${locals:requestid}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(cors.New())

	api := app.Group("/api")
	polos := api.Group("/polos")
	polos.Get("/", h.ListPolos)
	// Static segments must be registered ahead of the :id route.
	polos.Get("/export", h.ExportPolos)
	polos.Get("/insights", h.PoloInsights)
	polos.Get("/:id", h.GetPolo)
	api.Get("/search", h.SearchPolos)
	api.Get("/health", h.Health)

	app.Get("/metrics", adaptor.HTTPHandler(reg.Handler()))

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})
	return app
}
