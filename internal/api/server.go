package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/summarypro/summarybot/internal/repository"
)

// NewServer builds the optional status server: liveness plus a read-only
// view of recent summary runs for debugging prompt/response pairs.
func NewServer(summaryLog repository.SummaryLogRepository, log *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "SummaryBot Status",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/api/summaries", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		if limit <= 0 || limit > 100 {
			limit = 20
		}

		records, err := summaryLog.ListRecent(c.Context(), limit)
		if err != nil {
			log.WithError(err).Error("Failed to list summary log")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list summaries",
			})
		}
		return c.JSON(records)
	})

	return app
}
